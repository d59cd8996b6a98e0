package types

// Diagnosis is a fact derived during a run, with the rule that produced it.
type Diagnosis struct {
	Label          string  `json:"label"`
	RuleID         string  `json:"ruleId"`
	Confidence     float64 `json:"confidence"`
	Explanation    string  `json:"explanation"`
	Recommendation string  `json:"recommendation"`
}
