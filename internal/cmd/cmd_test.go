package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/skindx/internal/batch"
	"github.com/mrhapile/skindx/pkg/types"
)

// execute runs the root command with fresh flag state and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	// A nil slice makes cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	expected := []string{"diagnose", "rules", "symptoms", "validate", "version"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "subcommand %q should be registered", name)
	}
}

func TestRootCommand_HelpOutput(t *testing.T) {
	out, err := execute(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "forward chaining")
	assert.Contains(t, out, "diagnose")
	assert.Contains(t, out, "--no-interactive")
}

func TestVersionVars_HaveDefaults(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "none", Commit)
	assert.Equal(t, "unknown", BuildDate)
}

func TestDemo_NonInteractive(t *testing.T) {
	out, err := execute(t, "", "--no-interactive")
	require.NoError(t, err)

	assert.Contains(t, out, `DEMO: preset case "default"`)
	assert.Contains(t, out, "INITIAL FACTS (3):")
	assert.Contains(t, out, "No rule matched.")
	assert.Contains(t, out, "No rules fired.")
	assert.NotContains(t, out, "Try another case?")
	assert.Contains(t, out, "Thank you")
}

func TestDemo_DeclineAnotherCase(t *testing.T) {
	out, err := execute(t, "n\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Try another case? (y/n): ")
	assert.NotContains(t, out, "INTERACTIVE MODE")
	assert.Contains(t, out, "Thank you")
}

func TestDemo_EOFOnConfirm(t *testing.T) {
	out, err := execute(t, "")
	require.NoError(t, err)

	assert.Contains(t, out, "Thank you")
}

func TestDemo_InteractiveRound(t *testing.T) {
	out, err := execute(t, "y\n1,2\n", "--tree=false")
	require.NoError(t, err)

	assert.Contains(t, out, "INTERACTIVE MODE")
	assert.Contains(t, out, " 1. Bintik Putih")
	assert.Contains(t, out, "Selected facts: Bintik Putih, Flek Hitam")
	assert.Contains(t, out, "✓ 1 rule(s) fired: R2")
	assert.Contains(t, out, "Pigmentasi Karena Hormon")
	assert.NotContains(t, out, "DECISION TREE")
}

func TestDemo_InteractiveDefault(t *testing.T) {
	out, err := execute(t, "y\ndefault\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Selected facts: Gatal-gatal, Kulit Kusam, Pori-pori Besar")
}

func TestDemo_InteractiveBadInput(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		want  string
	}{
		{"not a number", "y\nabc\n", "✗ Invalid input."},
		{"out of range", "y\n42\n", "✗ No valid facts were selected."},
		{"no answer", "y\n", "✗ Invalid input."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Thank you")
		})
	}
}

func TestDiagnose_Facts(t *testing.T) {
	out, err := execute(t, "", "diagnose", "Flek Hitam", "Bintik Putih", "--trace")
	require.NoError(t, err)

	assert.Contains(t, out, "ITERATION 1")
	assert.Contains(t, out, "✓ Rule R2 fired")
	assert.Contains(t, out, "[new] Pigmentasi Karena Hormon")
	assert.Contains(t, out, "DECISION TREE")
}

func TestDiagnose_JSON(t *testing.T) {
	out, err := execute(t, "", "diagnose", "-o", "json",
		"Pembersih dengan Salicylic Acid", "Spot Treatment dengan Benzoyl Peroxide")
	require.NoError(t, err)

	var res types.DiagnosisResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"R1", "R3"}, res.FiredRules)
	assert.Equal(t, "forward-chaining", res.Engine)
	assert.True(t, res.FinalFacts.Has("Jerawat"))
	require.Len(t, res.Diagnoses, 2)
	assert.Equal(t, "Bekas Jerawat", res.Diagnoses[0].Label)
}

func TestDiagnose_Preset(t *testing.T) {
	out, err := execute(t, "", "diagnose", "--preset", "default", "Kulit Reda")
	require.NoError(t, err)

	assert.Contains(t, out, "R4")
	assert.Contains(t, out, "Kulit Terkontaminasi Debu")
}

func TestDiagnose_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no facts", []string{"diagnose"}, "no facts given"},
		{"unknown preset", []string{"diagnose", "--preset", "nope"}, "unknown preset"},
		{"cases with facts", []string{"diagnose", "--cases", "x.yaml", "Flek Hitam"}, "cannot be combined"},
		{"bad output", []string{"diagnose", "-o", "xml", "Flek Hitam"}, "invalid configuration"},
		{"missing rules file", []string{"diagnose", "--rules", "/nonexistent/kb.yaml", "Flek Hitam"}, "loading knowledge base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDiagnose_UnknownFactIsInert(t *testing.T) {
	out, err := execute(t, "", "diagnose", "Rambut Rontok")
	require.NoError(t, err)

	assert.Contains(t, out, "No rule matched.")
}

func TestDiagnose_Batch(t *testing.T) {
	cases := writeFile(t, "cases.yaml", `
cases:
  - name: hormonal
    facts: [Flek Hitam, Bintik Putih]
  - name: dust
    facts: [Pori-pori Besar, Kulit Kusam, Kulit Reda]
`)

	out, err := execute(t, "", "diagnose", "--cases", cases, "--workers", "2", "-o", "json")
	require.NoError(t, err)

	var outcomes []batch.Outcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcomes))
	require.Len(t, outcomes, 2)
	assert.Equal(t, "hormonal", outcomes[0].Case)
	assert.Equal(t, []string{"R2"}, outcomes[0].Result.FiredRules)
	assert.Equal(t, "dust", outcomes[1].Case)
	assert.Equal(t, []string{"R4"}, outcomes[1].Result.FiredRules)
}

func TestDiagnose_BatchText(t *testing.T) {
	cases := writeFile(t, "cases.yaml", "cases:\n  - name: only\n    facts: [Gatal-gatal]\n")

	out, err := execute(t, "", "diagnose", "--cases", cases)
	require.NoError(t, err)

	assert.Contains(t, out, "CASE: only")
	assert.Contains(t, out, "No rule matched.")
}

const customKB = `
rules:
  - id: C1
    if: [sore]
    then: irritated
    confidence: 0.6
  - id: C2
    if: [irritated]
    then: inflamed
    confidence: 0.7
symptoms: [sore]
presets:
  default: [sore]
`

func TestDiagnose_CustomRulesChain(t *testing.T) {
	kb := writeFile(t, "kb.yaml", customKB)

	out, err := execute(t, "", "diagnose", "--rules", kb, "-o", "json", "sore")
	require.NoError(t, err)

	var res types.DiagnosisResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"C1", "C2"}, res.FiredRules)
	assert.Equal(t, types.NewFactSet("sore", "irritated", "inflamed"), res.FinalFacts)
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "", "rules")
	require.NoError(t, err)

	assert.Contains(t, out, "R1: IF Pembersih dengan Salicylic Acid AND Spot Treatment dengan Benzoyl Peroxide THEN Jerawat (confidence: 95%)")
	assert.Less(t, strings.Index(out, "R2:"), strings.Index(out, "R3:"))
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := execute(t, "", "rules", "-o", "json")
	require.NoError(t, err)

	var rs []types.Rule
	require.NoError(t, json.Unmarshal([]byte(out), &rs))
	require.Len(t, rs, 5)
	assert.Equal(t, "R5", rs[4].ID)
}

func TestSymptomsCommand(t *testing.T) {
	out, err := execute(t, "", "symptoms")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, " 1. Bintik Putih\n"))
	assert.Contains(t, out, " 9. Spot Treatment dengan Benzoyl Peroxide")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "", "validate", writeFile(t, "kb.yaml", customKB))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Knowledge base valid")
	assert.Contains(t, out, "Rules:    2")

	bad := writeFile(t, "bad.yaml", "rules:\n  - id: X\n    if: [a]\n    then: a\n")
	_, err = execute(t, "", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, out, "skindx ")
	assert.Contains(t, out, "Commit:     none")
}
