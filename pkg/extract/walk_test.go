package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "download_001.json", want: true},
		{name: "download_001.JSON", want: false},
		{name: "._download_001.json", want: false},
		{name: "download_ERROR.json", want: false},
		{name: "errors.json", want: false},
		{name: "notes.txt", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.name); got != tt.want {
				t.Errorf("Eligible(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.json"), "{}")
	writeFile(t, filepath.Join(root, "a", "z.json"), "{}")
	writeFile(t, filepath.Join(root, "a", "._z.json"), "{}")
	writeFile(t, filepath.Join(root, "a", "error_log.json"), "{}")
	writeFile(t, filepath.Join(root, "c.txt"), "")

	got, err := Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{
		filepath.Join(root, "a", "z.json"),
		filepath.Join(root, "b.json"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if _, err := Walk(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Walk() error = nil, want error for missing root")
	}
}
