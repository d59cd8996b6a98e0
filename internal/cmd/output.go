package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrhapile/skindx/internal/config"
	"github.com/mrhapile/skindx/internal/otel"
	"github.com/mrhapile/skindx/pkg/engine"
	"github.com/mrhapile/skindx/pkg/render"
	"github.com/mrhapile/skindx/pkg/rules"
	"github.com/mrhapile/skindx/pkg/types"
)

// loadEngine builds the rule store named by the config and an engine over it.
func loadEngine() (*rules.Store, *engine.Engine, error) {
	store, err := cfg.Store()
	if err != nil {
		return nil, nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	log.Debug().
		Str("rules_file", cfg.RulesFile).
		Int("rules", store.Len()).
		Int("symptoms", len(store.Symptoms())).
		Msg("Knowledge base loaded")
	return store, engine.New(store), nil
}

// diagnose runs one case inside a span and records metrics.
func diagnose(ctx context.Context, store *rules.Store, eng *engine.Engine, name string, facts types.FactSet) types.DiagnosisResult {
	ctx, span := tracer.Start(ctx, "diagnose.case", trace.WithAttributes(otel.AttrCase.String(name)))
	defer span.End()

	res := eng.Diagnose(facts)
	span.SetAttributes(otel.ResultAttributes(res)...)
	otel.RecordInference(ctx, res)

	warnUnknownFacts(store, facts)

	log.Info().
		Str("case", name).
		Str("run_id", res.RunID).
		Strs("facts", facts.Sorted()).
		Strs("fired", res.FiredRules).
		Int("iterations", res.Iterations).
		Func(otel.LogTraceFields(ctx)).
		Msg("Diagnosis complete")
	return res
}

// warnUnknownFacts logs labels the knowledge base does not list. They
// are still passed to the engine, where they simply match nothing.
func warnUnknownFacts(store *rules.Store, facts types.FactSet) {
	if len(store.Symptoms()) == 0 {
		return
	}
	for _, f := range facts.Sorted() {
		if !store.Recognized(f) {
			log.Warn().Str("fact", f).Msg("Fact is not a recognized symptom or treatment")
		}
	}
}

func reportOptions() render.ReportOptions {
	return render.ReportOptions{
		ShowTree:  cfg.ShowTree,
		ShowTrace: cfg.ShowTrace,
		Styles:    render.DefaultStyles(),
	}
}

// writeResult prints res in the configured output format.
func writeResult(w io.Writer, res types.DiagnosisResult) error {
	if cfg.Output == config.OutputJSON {
		return writeJSON(w, res)
	}
	_, err := io.WriteString(w, render.Report(res, reportOptions()))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
