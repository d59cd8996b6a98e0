package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrhapile/skindx/pkg/types"
)

// Name identifies this engine in results.
const Name = "forward-chaining"

// Diagnose runs Infer and packages the outcome with the derived
// diagnoses. Like Infer it performs no I/O.
func (e *Engine) Diagnose(initial types.FactSet) types.DiagnosisResult {
	inf := e.Infer(initial)

	return types.DiagnosisResult{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Engine:       Name,
		InitialFacts: initial.Clone(),
		Inference:    inf,
		Diagnoses:    diagnoses(initial, inf),
	}
}

// diagnoses pairs every derived fact, in label order, with the trace
// entry that produced it. If several entries conclude the same label,
// the latest one wins.
func diagnoses(initial types.FactSet, inf types.Inference) []types.Diagnosis {
	byLabel := make(map[string]types.TraceEntry)
	for _, t := range inf.Trace {
		byLabel[t.Conclusion] = t
	}

	out := []types.Diagnosis{}
	for _, label := range inf.FinalFacts.Difference(initial).Sorted() {
		t, ok := byLabel[label]
		if !ok {
			continue
		}
		out = append(out, types.Diagnosis{
			Label:          label,
			RuleID:         t.RuleID,
			Confidence:     t.Confidence,
			Explanation:    t.Explanation,
			Recommendation: t.Recommendation,
		})
	}
	return out
}
