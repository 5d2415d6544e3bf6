package lfx

// Outcome represents what happened to a single file
type Outcome string

const (
	OutcomeConverted Outcome = "converted"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)
