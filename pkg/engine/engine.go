package engine

import (
	"github.com/mrhapile/skindx/pkg/types"
)

// Engine runs forward chaining over a fixed rule base.
// It holds only the rules, snapshotted at construction, so one Engine
// may serve concurrent Infer calls.
type Engine struct {
	rules []types.Rule
}

// New snapshots the rules of src.
func New(src RuleSource) *Engine {
	return &Engine{rules: src.Rules()}
}

// Rules returns the rules the engine evaluates, in order.
func (e *Engine) Rules() []types.Rule {
	out := make([]types.Rule, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.Clone()
	}
	return out
}

// Infer derives facts from initial until a fixed point is reached.
// It is a pure function that:
//   - Never mutates the input
//   - Never performs I/O
//   - Produces deterministic, repeatable output
//
// Rules are scanned in order; a rule fires when all its preconditions
// are in working memory and its conclusion is not. Each rule fires at
// most once, so the loop ends after at most len(rules)+1 scans.
func (e *Engine) Infer(initial types.FactSet) types.Inference {
	memory := initial.Clone()
	fired := make(map[string]bool, len(e.rules))
	result := types.Inference{
		FiredRules: []string{},
		Trace:      []types.TraceEntry{},
	}

	for changed := true; changed; {
		changed = false
		result.Iterations++

		for _, rule := range e.rules {
			if fired[rule.ID] {
				continue
			}
			if !rule.Satisfied(memory) || memory.Has(rule.Conclusion) {
				continue
			}

			memory.Add(rule.Conclusion)
			fired[rule.ID] = true
			changed = true

			result.FiredRules = append(result.FiredRules, rule.ID)
			result.Trace = append(result.Trace, types.TraceEntry{
				Iteration:      result.Iterations,
				RuleID:         rule.ID,
				Conditions:     append([]string{}, rule.Preconditions...),
				Conclusion:     rule.Conclusion,
				Confidence:     rule.Confidence,
				Explanation:    rule.Explanation,
				Recommendation: rule.Recommendation,
			})
		}
	}

	result.FinalFacts = memory
	return result
}
