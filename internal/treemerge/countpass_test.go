package treemerge

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCountFilesCountsEveryAncestor(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "1.txt"))
	writeFile(t, filepath.Join(root, "a", "2.txt"))
	writeFile(t, filepath.Join(root, "a", "sub", "3.txt"))
	writeFile(t, filepath.Join(root, "b.txt"))

	counts, err := CountFiles([]string{root})
	if err != nil {
		t.Fatalf("CountFiles: %v", err)
	}

	cases := map[string]uint64{
		filepath.Join(root, "a", "sub"): 1,
		filepath.Join(root, "a"):        3,
		root:                            4,
		rootPath:                        4,
	}
	for path, want := range cases {
		got, ok := counts.Lookup([]byte(path))
		if !ok {
			t.Errorf("Lookup(%q): not found, want %d", path, want)
			continue
		}
		if got != want {
			t.Errorf("Lookup(%q) = %d, want %d", path, got, want)
		}
	}
}

func TestCountFilesMultipleRootsAccumulate(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	writeFile(t, filepath.Join(root1, "1.txt"))
	writeFile(t, filepath.Join(root2, "2.txt"))
	writeFile(t, filepath.Join(root2, "3.txt"))

	counts, err := CountFiles([]string{root1, root2})
	if err != nil {
		t.Fatalf("CountFiles: %v", err)
	}

	got, ok := counts.Lookup([]byte(rootPath))
	if !ok || got != 3 {
		t.Errorf("Lookup(%q) = (%d, %t), want (3, true)", rootPath, got, ok)
	}
}

func TestCountFilesReturnsPartialResultOnEnumerationError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.txt"))

	missing := filepath.Join(root, "does-not-exist")
	counts, err := CountFiles([]string{root, missing})
	if err == nil {
		t.Fatalf("expected an enumeration error for missing root")
	}
	got, ok := counts.Lookup([]byte(root))
	if !ok || got != 1 {
		t.Errorf("expected the valid root's count to survive the error, got (%d, %t)", got, ok)
	}
}
