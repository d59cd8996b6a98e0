// Package rules holds the knowledge base: an immutable, ordered rule
// collection plus the symptom and treatment labels it recognizes.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/mrhapile/skindx/pkg/types"
)

var (
	ErrInvalidRule   = errors.New("invalid rule")
	ErrDuplicateRule = errors.New("duplicate rule id")
	ErrSelfReference = errors.New("rule concludes one of its own preconditions")
)

// ruleValidate checks the struct tags on types.Rule.
var ruleValidate = validator.New(validator.WithRequiredStructEnabled())

// Store is the read-only rule base. Accessors return copies, so a Store
// can be shared by any number of goroutines without locking.
type Store struct {
	rules    []types.Rule
	index    map[string]int
	symptoms []string
	presets  map[string]types.FactSet
}

// NewStore validates the rules and builds a Store. Rule order is kept
// as given; it is the evaluation order of the engine.
func NewStore(rules []types.Rule, symptoms []string, presets map[string][]string) (*Store, error) {
	s := &Store{
		rules:   make([]types.Rule, 0, len(rules)),
		index:   make(map[string]int, len(rules)),
		presets: make(map[string]types.FactSet, len(presets)),
	}

	for i, r := range rules {
		if err := ruleValidate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: rule #%d (%q): %w", ErrInvalidRule, i+1, r.ID, err)
		}
		if _, dup := s.index[r.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.ID)
		}

		r = r.Clone()
		r.Preconditions = normalize(r.Preconditions)
		for _, p := range r.Preconditions {
			if p == r.Conclusion {
				return nil, fmt.Errorf("%w: %s (%q)", ErrSelfReference, r.ID, p)
			}
		}

		s.index[r.ID] = len(s.rules)
		s.rules = append(s.rules, r)
	}

	s.symptoms = normalize(symptoms)
	for name, facts := range presets {
		s.presets[name] = types.NewFactSet(facts...)
	}

	return s, nil
}

// Rules returns the rules in declaration order.
func (s *Store) Rules() []types.Rule {
	out := make([]types.Rule, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Clone()
	}
	return out
}

// Lookup returns the rule with the given id.
func (s *Store) Lookup(id string) (types.Rule, bool) {
	i, ok := s.index[id]
	if !ok {
		return types.Rule{}, false
	}
	return s.rules[i].Clone(), true
}

// Symptoms returns the recognized input labels, sorted.
// The engine does not use them; they drive menus and input checks.
func (s *Store) Symptoms() []string {
	return append([]string(nil), s.symptoms...)
}

// Recognized reports whether label is a known input label.
func (s *Store) Recognized(label string) bool {
	i := sort.SearchStrings(s.symptoms, label)
	return i < len(s.symptoms) && s.symptoms[i] == label
}

// Preset returns a copy of the named preset fact set.
func (s *Store) Preset(name string) (types.FactSet, bool) {
	p, ok := s.presets[name]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Presets returns the preset names, sorted.
func (s *Store) Presets() []string {
	names := make([]string, 0, len(s.presets))
	for n := range s.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Store) Len() int {
	return len(s.rules)
}

// normalize sorts and deduplicates labels.
func normalize(labels []string) []string {
	out := types.NewFactSet(labels...).Sorted()
	if len(out) == 0 {
		return nil
	}
	return out
}
