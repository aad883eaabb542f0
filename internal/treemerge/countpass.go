package treemerge

import (
	"io/fs"
	"path/filepath"

	"github.com/dupfiles/treemerge/internal/pathtrie"
)

// CountFiles runs the one-time file-count pass: it enumerates every regular
// file beneath roots and returns a trie mapping each ancestor directory path
// to the number of regular files it transitively contains.
//
// This is the only filesystem I/O the core performs on its own; everything
// else (digest computation, the matched-file stream) is supplied by the
// caller. A traversal error is returned alongside whatever partial count-map
// was built before the error — the merger remains usable with an
// under-populated count-map, it will simply under-report (see Merger.Feed).
func CountFiles(roots []string) (*pathtrie.Trie[uint64], error) {
	counts := &pathtrie.Trie[uint64]{}

	var files pathtrie.Trie[struct{}]
	var firstErr error

	for _, root := range roots {
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return nil
			}
			if d.Type().IsRegular() {
				files.Insert([]byte(p), struct{}{})
			}
			return nil
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	files.Walk(func(key []byte, _ struct{}) bool {
		incrementAncestors(counts, string(key))
		return true
	})

	return counts, firstErr
}

// incrementAncestors increments the count-map entry for every ancestor
// directory of filePath (including the root), walking from the rightmost
// '/' leftward per the distilled spec's algorithm.
func incrementAncestors(counts *pathtrie.Trie[uint64], filePath string) {
	for dir := dirOf(filePath); ; dir = parentDir(dir) {
		current, _ := counts.Lookup([]byte(dir))
		counts.Insert([]byte(dir), current+1)
		if dir == rootPath {
			break
		}
	}
}
