package types

// Rule is a single condition→conclusion entry of the knowledge base.
// Preconditions are kept deduplicated and sorted; they are matched as a set.
type Rule struct {
	ID             string   `json:"id" yaml:"id" validate:"required"`
	Preconditions  []string `json:"if" yaml:"if" validate:"dive,required"`
	Conclusion     string   `json:"then" yaml:"then" validate:"required"`
	Confidence     float64  `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
	Explanation    string   `json:"explanation" yaml:"explanation"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
}

// Satisfied reports whether all preconditions hold in memory.
func (r Rule) Satisfied(memory FactSet) bool {
	return memory.ContainsAll(r.Preconditions)
}

// Clone returns a copy that shares no slices with r.
func (r Rule) Clone() Rule {
	c := r
	c.Preconditions = append([]string(nil), r.Preconditions...)
	return c
}
