package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mrhapile/skindx/pkg/rules"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a knowledge base file",
	Long:  "Parses a YAML knowledge base and checks every rule: unique ids, a conclusion, confidence within [0,1] and no rule concluding its own precondition.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, span := tracer.Start(cmd.Context(), "validate")
		defer span.End()

		path := args[0]
		store, err := rules.LoadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Knowledge base validation failed")
			fmt.Fprintf(os.Stderr, "✗ Validation failed: %s\n", path)
			return fmt.Errorf("validation failed: %w", err)
		}

		log.Info().Str("file", path).Int("rules", store.Len()).Msg("Knowledge base validated")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Knowledge base valid: %s\n", path)
		fmt.Fprintf(out, "  Rules:    %d\n", store.Len())
		fmt.Fprintf(out, "  Symptoms: %d\n", len(store.Symptoms()))
		fmt.Fprintf(out, "  Presets:  %d\n", len(store.Presets()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
