package report

import (
	"encoding/json"
	"os"
)

// SaveRejectionJSON writes rep as indented JSON to out, for downstream
// tooling that wants the structured rejection rather than the PDF.
func SaveRejectionJSON(rep RejectionReport, out string) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0o644)
}

// LoadRejectionJSON reads a RejectionReport previously written by
// SaveRejectionJSON.
func LoadRejectionJSON(path string) (RejectionReport, error) {
	var rep RejectionReport
	b, err := os.ReadFile(path)
	if err != nil {
		return rep, err
	}
	err = json.Unmarshal(b, &rep)
	return rep, err
}
