package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mrhapile/skindx/internal/prompt"
	"github.com/mrhapile/skindx/pkg/engine"
	"github.com/mrhapile/skindx/pkg/rules"
)

var separator = strings.Repeat("=", 60)

// runDemo diagnoses the preset case, then offers one interactive round.
func runDemo(cmd *cobra.Command, _ []string) error {
	ctx, span := tracer.Start(cmd.Context(), "demo")
	defer span.End()

	out := cmd.OutOrStdout()
	store, eng, err := loadEngine()
	if err != nil {
		return err
	}
	preset, ok := store.Preset(cfg.DefaultPreset)
	if !ok {
		return fmt.Errorf("knowledge base has no preset %q", cfg.DefaultPreset)
	}

	fmt.Fprintf(out, "\nDEMO: preset case %q\n", cfg.DefaultPreset)
	if err := writeResult(out, diagnose(ctx, store, eng, "demo", preset)); err != nil {
		return err
	}

	if !noInteractive {
		in := bufio.NewReader(cmd.InOrStdin())
		fmt.Fprintln(out, "\n"+separator)
		again, err := prompt.Confirm(in, out, "\nTry another case?")
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading answer: %w", err)
		}
		if again {
			if err := interactive(ctx, out, in, store, eng); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(out, "\n"+separator)
	fmt.Fprintln(out, "Thank you for using the skin diagnosis expert system!")
	fmt.Fprintln(out, separator)
	return nil
}

// interactive runs one menu round. Bad answers are reported and end the
// round without failing the command.
func interactive(ctx context.Context, out io.Writer, in *bufio.Reader, store *rules.Store, eng *engine.Engine) error {
	preset, _ := store.Preset(cfg.DefaultPreset)

	fmt.Fprintln(out, "\n"+separator)
	fmt.Fprintln(out, "INTERACTIVE MODE")
	fmt.Fprintln(out, separator)
	fmt.Fprintln(out)

	menu := prompt.NewMenu(store.Symptoms(), preset)
	facts, err := menu.Ask(in, out)
	switch {
	case errors.Is(err, prompt.ErrEmptySelection):
		log.Warn().Err(err).Msg("Interactive round aborted")
		fmt.Fprintln(out, "\n✗ No valid facts were selected.")
		return nil
	case errors.Is(err, prompt.ErrInvalidInput), errors.Is(err, io.EOF):
		log.Warn().Err(err).Msg("Interactive round aborted")
		fmt.Fprintln(out, "\n✗ Invalid input.")
		return nil
	case err != nil:
		return fmt.Errorf("reading selection: %w", err)
	}

	fmt.Fprintf(out, "\nSelected facts: %s\n", strings.Join(facts.Sorted(), ", "))
	return writeResult(out, diagnose(ctx, store, eng, "interactive", facts))
}
