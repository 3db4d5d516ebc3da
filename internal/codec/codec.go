// Package codec defines the external BER/DER collaborator the validation
// core depends on, plus a runnable JSON-based reference implementation so
// the repository can be exercised end to end without a vendor ASN.1
// library.
//
// Decoding and encoding the real TAP/RAP wire format belongs to whatever
// ASN.1 toolchain a deployment plugs in here; this package only gives that
// collaborator a shape to depend on.
package codec

import "example.com/tapgate/internal/tap"
import "example.com/tapgate/internal/rap"

// Codec decodes a TAP DataInterchange and encodes a RAP ReturnBatch. A real
// deployment backs this with an ASN.1 BER/DER implementation; tests and the
// bundled CLI/daemon use JSONCodec.
type Codec interface {
	Decode(data []byte) (tap.DataInterchange, error)
	Encode(batch rap.ReturnBatch) ([]byte, error)
}

// DecodeError wraps a failure in the external decode step. Validation never
// constructs these itself; they only flow in from a Codec implementation.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "tap decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }
