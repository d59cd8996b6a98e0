package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mrhapile/skindx/internal/batch"
	"github.com/mrhapile/skindx/internal/config"
	"github.com/mrhapile/skindx/pkg/engine"
	"github.com/mrhapile/skindx/pkg/rules"
	"github.com/mrhapile/skindx/pkg/types"
)

var (
	diagnosePreset  string
	diagnoseCases   string
	diagnoseWorkers int
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [fact...]",
	Short: "Diagnose a set of observed facts",
	Long: `Runs forward chaining over the given facts and prints the derived
diagnoses. Facts are passed as arguments (quote labels containing spaces),
taken from a named preset, or read from a YAML cases file for batch runs.`,
	Example: `  skindx diagnose "Flek Hitam" "Bintik Putih"
  skindx diagnose --preset default --trace
  skindx diagnose --cases cases.yaml --workers 8 -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, span := tracer.Start(cmd.Context(), "diagnose")
		defer span.End()

		store, eng, err := loadEngine()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if diagnoseCases != "" {
			if len(args) > 0 || diagnosePreset != "" {
				return fmt.Errorf("--cases cannot be combined with facts or --preset")
			}
			span.SetAttributes(attribute.String("skindx.cases_file", diagnoseCases))
			return runBatch(ctx, out, store, eng)
		}

		facts := types.NewFactSet(args...)
		if diagnosePreset != "" {
			preset, ok := store.Preset(diagnosePreset)
			if !ok {
				return fmt.Errorf("unknown preset %q (available: %v)", diagnosePreset, store.Presets())
			}
			for f := range preset {
				facts.Add(f)
			}
		}
		if facts.Len() == 0 {
			fmt.Fprintln(os.Stderr, "✗ No facts given")
			return fmt.Errorf("no facts given: pass facts as arguments, --preset or --cases")
		}

		return writeResult(out, diagnose(ctx, store, eng, "cli", facts))
	},
}

func runBatch(ctx context.Context, out io.Writer, store *rules.Store, eng *engine.Engine) error {
	cases, err := batch.LoadCasesFile(diagnoseCases)
	if err != nil {
		log.Error().Err(err).Str("file", diagnoseCases).Msg("Loading cases failed")
		fmt.Fprintf(os.Stderr, "✗ Cannot load cases: %s\n", diagnoseCases)
		return err
	}

	outcomes, err := batch.Run(ctx, tracedDiagnoser{ctx: ctx, store: store, eng: eng}, cases, cfg.Workers)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", diagnoseCases).
		Int("cases", len(outcomes)).
		Int("workers", cfg.Workers).
		Msg("Batch complete")

	if cfg.Output == config.OutputJSON {
		return writeJSON(out, outcomes)
	}
	for _, o := range outcomes {
		fmt.Fprintf(out, "\n%s\nCASE: %s\n", separator, o.Case)
		if err := writeResult(out, o.Result); err != nil {
			return err
		}
	}
	return nil
}

// tracedDiagnoser runs batch cases through diagnose so each case gets
// its own span, metrics and log line.
type tracedDiagnoser struct {
	ctx   context.Context
	store *rules.Store
	eng   *engine.Engine
}

func (d tracedDiagnoser) Diagnose(facts types.FactSet) types.DiagnosisResult {
	return diagnose(d.ctx, d.store, d.eng, "batch", facts)
}

func init() {
	diagnoseCmd.Flags().StringVar(&diagnosePreset, "preset", "", "add the facts of a named preset")
	diagnoseCmd.Flags().StringVar(&diagnoseCases, "cases", "", "YAML file with named cases to diagnose concurrently")
	diagnoseCmd.Flags().IntVar(&diagnoseWorkers, "workers", config.DefaultWorkers, "concurrent cases in batch mode")
	_ = viper.BindPFlag(config.KeyWorkers, diagnoseCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(diagnoseCmd)
}
