package scan

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dupfiles/treemerge/internal/hashalgo"
)

func collect(t *testing.T, root string, opts Options) ([]string, []error) {
	t.Helper()
	algo, err := hashalgo.ByName(hashalgo.DefaultName)
	if err != nil {
		t.Fatal(err)
	}

	out, errs := Walk(root, algo, opts)
	var paths []string
	var errlist []error

	outOpen, errsOpen := true, true
	for outOpen || errsOpen {
		select {
		case f, ok := <-out:
			if !ok {
				outOpen = false
				out = nil
				continue
			}
			paths = append(paths, f.Path())
		case e, ok := <-errs:
			if !ok {
				errsOpen = false
				errs = nil
				continue
			}
			errlist = append(errlist, e)
		}
	}
	sort.Strings(paths)
	return paths, errlist
}

func TestWalkVisitsEveryFile(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), "a")
	mustWriteFile(t, filepath.Join(root, "sub", "b.txt"), "b")

	paths, errs := collect(t, root, Options{Concurrency: 2})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []string{filepath.Join(root, "a.txt"), filepath.Join(root, "sub", "b.txt")}
	sort.Strings(want)
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkExcludesBasename(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "keep.txt"), "x")
	mustWriteFile(t, filepath.Join(root, "skip.txt"), "y")

	paths, errs := collect(t, root, Options{
		Concurrency: 1,
		Exclude:     Exclude{Basename: []string{"skip.txt"}},
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(paths) != 1 || paths[0] != filepath.Join(root, "keep.txt") {
		t.Fatalf("got %v, want only keep.txt", paths)
	}
}

func TestWalkExcludesSubtree(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "keep.txt"), "x")
	mustWriteFile(t, filepath.Join(root, "skip", "nested.txt"), "y")

	paths, errs := collect(t, root, Options{
		Concurrency: 1,
		Exclude:     Exclude{Tree: []string{"skip"}},
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(paths) != 1 || paths[0] != filepath.Join(root, "keep.txt") {
		t.Fatalf("got %v, want only keep.txt", paths)
	}
}

func TestWalkProducesSameDigestForIdenticalContent(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "x.txt"), "same content")
	mustWriteFile(t, filepath.Join(root, "y.txt"), "same content")

	algo, err := hashalgo.ByName(hashalgo.DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	out, errs := Walk(root, algo, Options{Concurrency: 2})

	digests := make(map[string]string)
	outOpen, errsOpen := true, true
	for outOpen || errsOpen {
		select {
		case f, ok := <-out:
			if !ok {
				outOpen = false
				out = nil
				continue
			}
			digests[f.Path()] = f.Digest().String()
		case e, ok := <-errs:
			if !ok {
				errsOpen = false
				errs = nil
				continue
			}
			t.Fatalf("unexpected error: %v", e)
		}
	}

	if digests[filepath.Join(root, "x.txt")] != digests[filepath.Join(root, "y.txt")] {
		t.Errorf("identical content hashed to different digests: %v", digests)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
