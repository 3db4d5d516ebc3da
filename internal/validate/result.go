// Package validate implements the validation state machine that walks a
// decoded TAP DataInterchange, enforces the mandatory-element rules of
// GSMA TD.57, and on a Fatal violation builds the RAP ReturnDetail that
// rejects it.
package validate

// Result is the fixed outcome lattice a Validate call returns, ordered
// TAPValid < FatalError < ValidationImpossible by severity.
type Result int

const (
	// TAPValid means no rule was violated; no RAP was produced.
	TAPValid Result = iota
	// FatalError means a rule was violated and a RAP was produced and
	// persisted with status OUTFILE_CREATED_AND_SENT.
	FatalError
	// ValidationImpossible means either the minimum-addressable triple is
	// absent from the TAP header, or RAP production itself failed.
	ValidationImpossible
)

func (r Result) String() string {
	switch r {
	case TAPValid:
		return "TAP_VALID"
	case FatalError:
		return "FATAL_ERROR"
	case ValidationImpossible:
		return "VALIDATION_IMPOSSIBLE"
	default:
		return "UNKNOWN_RESULT"
	}
}
