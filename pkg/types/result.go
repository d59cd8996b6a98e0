package types

import "time"

type DiagnosisResult struct {
	RunID        string    `json:"runId"`
	GeneratedAt  time.Time `json:"generatedAt"`
	Engine       string    `json:"engine"` // "forward-chaining"
	InitialFacts FactSet   `json:"initialFacts"`
	Inference
	Diagnoses []Diagnosis `json:"diagnoses"`
}

// NewFacts returns the facts derived during the run.
func (r DiagnosisResult) NewFacts() FactSet {
	return r.FinalFacts.Difference(r.InitialFacts)
}
