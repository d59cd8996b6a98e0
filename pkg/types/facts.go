package types

import (
	"encoding/json"
	"sort"
)

// FactSet is a set of fact labels. Symptoms, treatments and derived
// diagnoses share the same namespace.
type FactSet map[string]struct{}

// NewFactSet returns a set holding the given labels.
func NewFactSet(labels ...string) FactSet {
	s := make(FactSet, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

func (s FactSet) Add(label string) {
	s[label] = struct{}{}
}

func (s FactSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

func (s FactSet) Len() int {
	return len(s)
}

// Clone returns an independent copy. A nil set clones to an empty set.
func (s FactSet) Clone() FactSet {
	c := make(FactSet, len(s))
	for l := range s {
		c[l] = struct{}{}
	}
	return c
}

// ContainsAll reports whether every label is in the set.
// An empty label list is trivially contained.
func (s FactSet) ContainsAll(labels []string) bool {
	for _, l := range labels {
		if !s.Has(l) {
			return false
		}
	}
	return true
}

// Difference returns the labels in s that are not in other.
func (s FactSet) Difference(other FactSet) FactSet {
	d := make(FactSet)
	for l := range s {
		if !other.Has(l) {
			d[l] = struct{}{}
		}
	}
	return d
}

// Sorted returns the labels in lexical order.
func (s FactSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s FactSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *FactSet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s = NewFactSet(labels...)
	return nil
}
