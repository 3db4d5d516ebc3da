package codec

import (
	"encoding/json"
	"fmt"

	"example.com/tapgate/internal/rap"
	"example.com/tapgate/internal/tap"
)

// JSONCodec is a reference Codec that round-trips the decoded in-memory
// shapes as JSON instead of BER/DER. It exists so the repository builds and
// runs end to end; a production deployment swaps it for a real ASN.1
// implementation without touching internal/validate or internal/rapfile.
type JSONCodec struct{}

// NewJSONCodec returns the reference codec.
func NewJSONCodec() *JSONCodec { return &JSONCodec{} }

func (JSONCodec) Decode(data []byte) (tap.DataInterchange, error) {
	var di tap.DataInterchange
	if err := json.Unmarshal(data, &di); err != nil {
		return tap.DataInterchange{}, &DecodeError{Err: fmt.Errorf("unmarshal DataInterchange: %w", err)}
	}
	return di, nil
}

func (JSONCodec) Encode(batch rap.ReturnBatch) ([]byte, error) {
	b, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal ReturnBatch: %w", err)
	}
	return b, nil
}
