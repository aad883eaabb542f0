package treemerge

// directory is the aggregate record maintained for one directory path. It
// accumulates matched files incrementally and commutatively: rollingFP and
// digestMultiset are both order-independent reductions, so files may be fed
// in any order and interleaved across directories (see add).
type directory struct {
	path string

	matchedFiles   []File
	digestMultiset map[string]int // keyed by Digest.String(); counts occurrences

	rollingFP uint64

	expectedCount uint64

	children []*directory

	finished bool

	// queued is set once this directory has been placed on the merger's
	// promotion worklist, so it is never enqueued a second time even if it
	// is looked up again later (e.g. as a promotion target for a sibling).
	queued bool
}

// newDirectory creates an empty record for path. The caller is responsible
// for setting expectedCount from the count-map immediately afterwards.
func newDirectory(path string) *directory {
	return &directory{
		path:           path,
		digestMultiset: make(map[string]int),
	}
}

// add folds file into the directory's aggregate state. Commutative: feeding
// the same set of files in any order, or interleaved with files belonging
// to other directories, produces identical rollingFP and digestMultiset.
func (d *directory) add(f File) {
	d.matchedFiles = append(d.matchedFiles, f)
	d.rollingFP ^= f.Digest().fingerprintWord()
	d.digestMultiset[f.Digest().String()]++
}

// full reports whether every regular file known to live under this
// directory (per the count pass) has been matched.
func (d *directory) full() bool {
	return uint64(len(d.matchedFiles)) == d.expectedCount
}

// equal reports whether a and b aggregate the same multiset of file
// digests. The caller is expected to have already filtered on matching
// rollingFP as a fast-path filter; equal performs the full check that
// resolves fingerprint collisions.
func equal(a, b *directory) bool {
	if a.rollingFP != b.rollingFP {
		return false
	}
	if len(a.digestMultiset) != len(b.digestMultiset) {
		return false
	}
	for digest, count := range a.digestMultiset {
		if b.digestMultiset[digest] != count {
			return false
		}
	}
	return true
}

// markFinishedRecursively sets finished on d and every directory reachable
// through its merged children, suppressing later reports for the subtree.
func (d *directory) markFinishedRecursively() {
	d.finished = true
	for _, child := range d.children {
		child.markFinishedRecursively()
	}
}
