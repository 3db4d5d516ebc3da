package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestBuildClassifiesAndHashes(t *testing.T) {
	dir := t.TempDir()
	rapPath := writeTempFile(t, dir, "RAP_11111_0000000001.P.rap", "payload-one")
	jsonPath := writeTempFile(t, dir, "rejection.json", `{"ok":true}`)
	pdfPath := writeTempFile(t, dir, "rejection.pdf", "%PDF-1.4 fake")
	otherPath := writeTempFile(t, dir, "notes.txt", "misc")

	m, err := Build([]string{rapPath, jsonPath, pdfPath, otherPath})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(m.Items))
	}
	wantTypes := map[string]string{
		rapPath:   "rap",
		jsonPath:  "json",
		pdfPath:   "pdf",
		otherPath: "other",
	}
	for _, item := range m.Items {
		if item.Sha256 == "" {
			t.Fatalf("item %s missing hash", item.Path)
		}
		if item.Type != wantTypes[item.Path] {
			t.Fatalf("item %s: type = %q, want %q", item.Path, item.Type, wantTypes[item.Path])
		}
	}
}

func TestBuildMissingFile(t *testing.T) {
	_, err := Build([]string{filepath.Join(t.TempDir(), "does-not-exist")})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := writeTempFile(t, dir, "RAP_11111_0000000002.P.rap", "payload-two")
	m, err := Build([]string{src})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	out := filepath.Join(dir, "manifest.json")
	if err := Save(m, out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Sha256 != m.Items[0].Sha256 {
		t.Fatalf("round trip mismatch: got %+v", loaded)
	}
}
