package types

// TraceEntry records one rule firing.
type TraceEntry struct {
	Iteration      int      `json:"iteration"`
	RuleID         string   `json:"ruleId"`
	Conditions     []string `json:"conditions"`
	Conclusion     string   `json:"conclusion"`
	Confidence     float64  `json:"confidence"`
	Explanation    string   `json:"explanation"`
	Recommendation string   `json:"recommendation"`
}

// Inference is the raw output of one forward-chaining run.
type Inference struct {
	FinalFacts FactSet      `json:"finalFacts"`
	FiredRules []string     `json:"firedRules"`
	Trace      []TraceEntry `json:"trace"`
	// Iterations counts rule scans, including the last one that fired nothing.
	Iterations int `json:"iterations"`
}
