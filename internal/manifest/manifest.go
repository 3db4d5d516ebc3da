// Package manifest builds an audit inventory of the RAP and report
// artifacts a run has emitted, so a hub operator can confirm exactly what
// left the system without re-reading the emission log.
package manifest

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"example.com/tapgate/internal/common"
)

// Item describes one artifact on disk.
type Item struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Sha256 string `json:"sha256"`
	Type   string `json:"type"`
}

// Manifest is the full inventory produced by Build.
type Manifest struct {
	CreatedAt time.Time `json:"createdAt"`
	ShaAlgo   string    `json:"shaAlgo"`
	Items     []Item    `json:"items"`
}

// Build hashes each path and classifies it by extension. A path that
// cannot be opened or read aborts the whole build; a partial manifest
// would misrepresent what was actually emitted.
func Build(paths []string) (Manifest, error) {
	m := Manifest{CreatedAt: time.Now().UTC(), ShaAlgo: "sha256"}
	for _, p := range paths {
		hex, sz, err := common.Sha256OfFile(p)
		if err != nil {
			return m, err
		}
		m.Items = append(m.Items, Item{Path: p, Size: sz, Sha256: hex, Type: classify(p)})
	}
	return m, nil
}

func classify(path string) string {
	switch {
	case hasExt(path, ".rap", ".ret"):
		return "rap"
	case hasExt(path, ".json"):
		return "json"
	case hasExt(path, ".pdf"):
		return "pdf"
	default:
		return "other"
	}
}

func hasExt(path string, exts ...string) bool {
	lower := strings.ToLower(path)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

// Save writes m as indented JSON to out.
func Save(m Manifest, out string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0o644)
}

// Load reads a Manifest previously written by Save.
func Load(path string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(b, &m)
	return m, err
}
