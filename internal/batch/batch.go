// Package batch evaluates many cases against one shared engine.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mrhapile/skindx/pkg/types"
)

// Case is one named set of observed facts.
type Case struct {
	Name  string   `yaml:"name" json:"name" validate:"required"`
	Facts []string `yaml:"facts" json:"facts" validate:"dive,required"`
}

// Outcome pairs a case with its diagnosis.
type Outcome struct {
	Case   string                `json:"case"`
	Result types.DiagnosisResult `json:"result"`
}

// Diagnoser is satisfied by *engine.Engine.
type Diagnoser interface {
	Diagnose(initial types.FactSet) types.DiagnosisResult
}

type casesFile struct {
	Cases []Case `yaml:"cases" validate:"required,min=1,dive"`
}

var casesValidate = validator.New(validator.WithRequiredStructEnabled())

// LoadCases parses a YAML cases file.
func LoadCases(r io.Reader) ([]Case, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f casesFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("cases file is empty")
		}
		return nil, fmt.Errorf("decoding cases: %w", err)
	}
	if err := casesValidate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid cases: %w", err)
	}

	seen := make(map[string]bool, len(f.Cases))
	for _, c := range f.Cases {
		if seen[c.Name] {
			return nil, fmt.Errorf("invalid cases: duplicate case name %q", c.Name)
		}
		seen[c.Name] = true
	}
	return f.Cases, nil
}

// LoadCasesFile reads cases from path.
func LoadCasesFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cases file: %w", err)
	}
	defer f.Close()
	return LoadCases(f)
}

// Run diagnoses every case with at most workers concurrent runs.
// Outcomes keep the order of cases. Cancelling ctx stops cases that
// have not started yet.
func Run(ctx context.Context, d Diagnoser, cases []Case, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = 1
	}

	out := make([]Outcome, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res := d.Diagnose(types.NewFactSet(c.Facts...))
			out[i] = Outcome{Case: c.Name, Result: res}

			log.Debug().
				Str("case", c.Name).
				Str("run_id", res.RunID).
				Strs("fired", res.FiredRules).
				Int("iterations", res.Iterations).
				Msg("case diagnosed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}
	return out, nil
}
