package validate

import "example.com/tapgate/internal/tap"
import "example.com/tapgate/internal/rap"

// EmitErrorKind classifies why building and delivering a rejecting RAP
// failed, for callers that want to distinguish causes without string
// matching.
type EmitErrorKind int

const (
	EmitErrorUnknown EmitErrorKind = iota
	CatalogueError
	EncodeError
	UploadError
	AmountOutOfRange
)

func (k EmitErrorKind) String() string {
	switch k {
	case CatalogueError:
		return "catalogue"
	case EncodeError:
		return "encode"
	case UploadError:
		return "upload"
	case AmountOutOfRange:
		return "amount_out_of_range"
	default:
		return "unknown"
	}
}

// EmitError wraps whatever went wrong while an Emitter tried to build,
// persist, and deliver a rejecting RAP. A non-nil EmitError always turns a
// Validate call's result into ValidationImpossible: the rule violation was
// real, but this core could not finish reporting it.
type EmitError struct {
	Kind EmitErrorKind
	Err  error
}

func (e *EmitError) Error() string {
	return "emit rap (" + e.Kind.String() + "): " + e.Err.Error()
}

func (e *EmitError) Unwrap() error { return e.Err }

// Emitter builds the RAP ReturnDetail produced by a rule violation into a
// full ReturnBatch, persists it through the catalogue, and uploads it.
// internal/rapfile provides the production implementation; tests supply a
// stub.
type Emitter interface {
	Emit(tb *tap.TransferBatch, detail rap.ReturnDetail) error
}
