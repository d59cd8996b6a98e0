package render

import (
	"fmt"
	"strings"

	"github.com/mrhapile/skindx/pkg/types"
)

// ReportOptions selects the optional report sections.
type ReportOptions struct {
	ShowTrace bool
	ShowTree  bool
	Styles    Styles
}

// Report renders a full diagnosis report for res.
func Report(res types.DiagnosisResult, opts ReportOptions) string {
	st := opts.Styles
	var b strings.Builder

	line := strings.Repeat("=", ruleWidth)
	b.WriteString(line + "\n")
	b.WriteString(st.Title.Render("SKIN DIAGNOSIS EXPERT SYSTEM") + "\n")
	b.WriteString(st.Muted.Render("Forward chaining method") + "\n")
	b.WriteString(line + "\n")

	fmt.Fprintf(&b, "\nTime:   %s\n", res.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run ID: %s\n", res.RunID)

	initial := res.InitialFacts.Sorted()
	fmt.Fprintf(&b, "\n%s\n", st.Heading.Render(fmt.Sprintf("INITIAL FACTS (%d):", len(initial))))
	for i, f := range initial {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, f)
	}

	if opts.ShowTrace {
		writeIterations(&b, res, st)
	}

	b.WriteString("\n" + line + "\n")
	b.WriteString(st.Title.Render("DIAGNOSIS RESULT") + "\n")
	b.WriteString(line + "\n")

	if len(res.FiredRules) == 0 {
		b.WriteString("\n" + st.Error.Render("✗ No rule matched.") + "\n")
		b.WriteString("No diagnosis can be derived from the given facts.\n")
		b.WriteString("\n" + st.Muted.Render("Hint: add more symptoms or the treatments currently in use.") + "\n")
	} else {
		msg := fmt.Sprintf("✓ %d rule(s) fired: %s", len(res.FiredRules), strings.Join(res.FiredRules, ", "))
		b.WriteString("\n" + st.Success.Render(msg) + "\n")
		writeDiagnoses(&b, res.Diagnoses, st)
		writeFinalFacts(&b, res, st)
	}

	if opts.ShowTree {
		b.WriteString("\n")
		b.WriteString(TreeFromTrace(res.InitialFacts, res.Trace))
	}

	return b.String()
}

func writeDiagnoses(b *strings.Builder, ds []types.Diagnosis, st Styles) {
	if len(ds) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", st.Heading.Render(fmt.Sprintf("DIAGNOSES (%d):", len(ds))))
	for i, d := range ds {
		fmt.Fprintf(b, "\n%d. %s\n", i+1, st.Highlight.Render(d.Label))
		fmt.Fprintf(b, "   Rule:           %s\n", d.RuleID)
		fmt.Fprintf(b, "   Confidence:     %.1f%%\n", types.Percent(d.Confidence))
		fmt.Fprintf(b, "   Explanation:    %s\n", d.Explanation)
		fmt.Fprintf(b, "   Recommendation: %s\n", d.Recommendation)
	}
}

func writeFinalFacts(b *strings.Builder, res types.DiagnosisResult, st Styles) {
	final := res.FinalFacts.Sorted()
	fmt.Fprintf(b, "\n%s\n", st.Heading.Render(fmt.Sprintf("FINAL FACTS (%d):", len(final))))
	for _, f := range final {
		marker := "     "
		if !res.InitialFacts.Has(f) {
			marker = st.Success.Render("[new]")
		}
		fmt.Fprintf(b, "  %s %s\n", marker, f)
	}
}

// writeIterations replays the trace scan by scan. Working memory at the
// start of iteration k is the initial facts plus every conclusion fired
// in an earlier iteration.
func writeIterations(b *strings.Builder, res types.DiagnosisResult, st Styles) {
	memory := res.InitialFacts.Clone()
	line := strings.Repeat("=", ruleWidth)
	next := 0

	for it := 1; it <= res.Iterations; it++ {
		fmt.Fprintf(b, "\n%s\n%s\n%s\n", line, st.Heading.Render(fmt.Sprintf("ITERATION %d", it)), line)
		fmt.Fprintf(b, "Working memory: [%s]\n", strings.Join(memory.Sorted(), ", "))

		var added []string
		for ; next < len(res.Trace) && res.Trace[next].Iteration == it; next++ {
			t := res.Trace[next]
			fmt.Fprintf(b, "\n%s\n", st.Success.Render(fmt.Sprintf("✓ Rule %s fired", t.RuleID)))
			fmt.Fprintf(b, "  Conditions:  %s\n", strings.Join(t.Conditions, " AND "))
			fmt.Fprintf(b, "  Conclusion:  %s\n", t.Conclusion)
			fmt.Fprintf(b, "  Confidence:  %.1f%%\n", types.Percent(t.Confidence))
			fmt.Fprintf(b, "  Explanation: %s\n", t.Explanation)
			added = append(added, t.Conclusion)
		}
		if len(added) == 0 {
			b.WriteString(st.Muted.Render("No new facts; fixed point reached.") + "\n")
		}
		for _, c := range added {
			memory.Add(c)
		}
	}
}
