// Package hashalgo collects the content-hash algorithms a scan can use to
// produce the per-file digests fed into package treemerge. Each algorithm
// is a small wrapper around a standard-library or third-party hash.Hash,
// registered under the name reported by Name() so the CLI and session
// config can select one by string.
package hashalgo

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Algorithm hashes file content incrementally, matching hash.Hash's
// Write/Reset contract plus a couple of conveniences scan needs: reading a
// whole file in one call, and producing a fresh, independent instance for
// use by another worker.
type Algorithm interface {
	// Name returns the algorithm's registered name.
	Name() string
	// OutputSize returns the number of bytes Sum returns.
	OutputSize() int
	// WriteFile hashes the entire content of the file at path.
	WriteFile(path string) error
	// WriteBytes folds data into the hash state.
	WriteBytes(data []byte) error
	// Sum returns the digest accumulated so far.
	Sum() []byte
	// Reset returns the algorithm to its initial state.
	Reset()
	// NewCopy returns a fresh instance of the same algorithm, independent
	// hash state, so concurrent workers never share one.
	NewCopy() Algorithm
}

// DefaultName is the algorithm used when a session does not request one
// explicitly.
const DefaultName = "fnv-1a-128"

var registry = map[string]func() Algorithm{}

func register(name string, factory func() Algorithm) {
	registry[name] = factory
}

// ByName returns a fresh Algorithm instance for the given registered name.
func ByName(name string) (Algorithm, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("hashalgo: unknown algorithm %q (known: %v)", name, Names())
	}
	return factory(), nil
}

// Names returns every registered algorithm name, sorted for stable CLI
// output (see cmd/treemerge's hash-algos subcommand).
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// readFile is shared by every algorithm's WriteFile implementation: open,
// stream through the hash, close.
func readFile(path string, w io.Writer) error {
	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()
	_, err = io.Copy(w, fd)
	return err
}
