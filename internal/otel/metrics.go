package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mrhapile/skindx/pkg/types"
)

const meterName = "github.com/mrhapile/skindx/internal/otel"

// Attribute keys shared by spans and metrics.
const (
	AttrRunID      = attribute.Key("skindx.run_id")
	AttrFactCount  = attribute.Key("skindx.facts.initial")
	AttrFiredCount = attribute.Key("skindx.rules.fired_count")
	AttrIterations = attribute.Key("skindx.iterations")
	AttrCase       = attribute.Key("skindx.case")
	AttrRuleID     = attribute.Key("skindx.rule_id")
)

// RecordInference counts one inference run and each rule it fired.
// Instruments are resolved from the global provider on every call so
// that a provider installed by Setup is picked up.
func RecordInference(ctx context.Context, res types.DiagnosisResult) {
	m := Meter(meterName)

	runs, err := m.Int64Counter("skindx.inference.runs",
		metric.WithDescription("Number of forward-chaining runs"))
	if err == nil {
		runs.Add(ctx, 1, metric.WithAttributes(
			attribute.Bool("skindx.diagnosed", len(res.FiredRules) > 0),
		))
	}

	fired, err := m.Int64Counter("skindx.rules.fired",
		metric.WithDescription("Rule firings by rule id"))
	if err == nil {
		for _, id := range res.FiredRules {
			fired.Add(ctx, 1, metric.WithAttributes(AttrRuleID.String(id)))
		}
	}
}

// ResultAttributes describes a run for span attributes.
func ResultAttributes(res types.DiagnosisResult) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrRunID.String(res.RunID),
		AttrFactCount.Int(res.InitialFacts.Len()),
		AttrFiredCount.Int(len(res.FiredRules)),
		AttrIterations.Int(res.Iterations),
	}
}
