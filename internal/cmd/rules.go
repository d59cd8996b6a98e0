package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrhapile/skindx/internal/config"
	"github.com/mrhapile/skindx/pkg/types"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules of the knowledge base in evaluation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := loadEngine()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if cfg.Output == config.OutputJSON {
			return writeJSON(out, store.Rules())
		}
		for _, r := range store.Rules() {
			fmt.Fprintf(out, "%s: IF %s THEN %s (confidence: %.0f%%)\n",
				r.ID, strings.Join(r.Preconditions, " AND "), r.Conclusion, types.Percent(r.Confidence))
			if r.Explanation != "" {
				fmt.Fprintf(out, "    Explanation:    %s\n", r.Explanation)
			}
			if r.Recommendation != "" {
				fmt.Fprintf(out, "    Recommendation: %s\n", r.Recommendation)
			}
		}
		return nil
	},
}

var symptomsCmd = &cobra.Command{
	Use:   "symptoms",
	Short: "List the recognized symptoms and treatments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := loadEngine()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if cfg.Output == config.OutputJSON {
			return writeJSON(out, store.Symptoms())
		}
		for i, s := range store.Symptoms() {
			fmt.Fprintf(out, "%2d. %s\n", i+1, s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(symptomsCmd)
}
