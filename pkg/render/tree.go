// Package render turns inference output into human-readable text.
// Every function here is pure: it only builds strings.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mrhapile/skindx/pkg/types"
)

const ruleWidth = 60

// RuleLookup resolves rule ids to their definitions.
type RuleLookup interface {
	Lookup(id string) (types.Rule, bool)
}

// Tree renders the decision tree for fired rules, in firing order,
// resolving each id through rules.
func Tree(initial types.FactSet, fired []string, rules RuleLookup) string {
	steps := make([]treeStep, 0, len(fired))
	for _, id := range fired {
		r, ok := rules.Lookup(id)
		if !ok {
			steps = append(steps, treeStep{id: id, unknown: true})
			continue
		}
		steps = append(steps, treeStep{
			id:         id,
			conditions: r.Preconditions,
			conclusion: r.Conclusion,
			confidence: r.Confidence,
		})
	}
	return renderTree(initial, steps)
}

// TreeFromTrace renders the same tree from the snapshots in a trace.
func TreeFromTrace(initial types.FactSet, trace []types.TraceEntry) string {
	steps := make([]treeStep, 0, len(trace))
	for _, t := range trace {
		steps = append(steps, treeStep{
			id:         t.RuleID,
			conditions: t.Conditions,
			conclusion: t.Conclusion,
			confidence: t.Confidence,
		})
	}
	return renderTree(initial, steps)
}

type treeStep struct {
	id         string
	conditions []string
	conclusion string
	confidence float64
	unknown    bool
}

func renderTree(initial types.FactSet, steps []treeStep) string {
	var b strings.Builder

	banner(&b, "DECISION TREE")
	b.WriteString("\nInitial facts:\n")
	facts := initial.Sorted()
	if len(facts) == 0 {
		b.WriteString("  └─ (none)\n")
	}
	for _, f := range facts {
		fmt.Fprintf(&b, "  └─ %s\n", f)
	}
	b.WriteString("\n")

	if len(steps) == 0 {
		b.WriteString("No rules fired.\n")
		return b.String()
	}

	b.WriteString("Inference:\n")
	for i, s := range steps {
		fmt.Fprintf(&b, "\n%d. Rule %s:\n", i+1, s.id)
		if s.unknown {
			b.WriteString("   (unknown rule)\n")
			continue
		}

		conds := append([]string(nil), s.conditions...)
		sort.Strings(conds)
		b.WriteString("   IF:\n")
		if len(conds) == 0 {
			b.WriteString("     ├─ (always)\n")
		}
		for _, c := range conds {
			fmt.Fprintf(&b, "     ├─ %s\n", c)
		}
		b.WriteString("   THEN:\n")
		fmt.Fprintf(&b, "     └─ %s (confidence: %.0f%%)\n", s.conclusion, types.Percent(s.confidence))
	}

	return b.String()
}

func banner(b *strings.Builder, title string) {
	line := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(b, "%s\n%s\n%s\n", line, title, line)
}
