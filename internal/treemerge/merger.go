package treemerge

import (
	"fmt"
	"io"

	"github.com/dupfiles/treemerge/internal/pathtrie"
)

// PathsProvider is the minimal slice of the session's configuration the
// merger needs: the list of root paths to run the count pass over. Package
// session implements this; defining it here keeps treemerge free of a
// dependency on any particular configuration-loading mechanism.
type PathsProvider interface {
	RootPaths() []string
}

// Merger is the tree-merger core. Feed files into it one at a time via
// Feed, then call Finish once to emit duplicate-directory groups.
//
// Merger is not safe for concurrent use: Feed calls must be serialized by
// the caller, and Finish must not be called until feeding is complete.
type Merger struct {
	countMap *pathtrie.Trie[uint64]
	dirMap   *pathtrie.Trie[*directory]

	// worklist holds every directory that has become full but has not yet
	// been promoted into its parent. mergeUp drains it by index, appending
	// newly-full parents as it goes, so it doubles as a FIFO queue.
	worklist []*directory

	// fullDirs accumulates every directory that ever became full, in the
	// order it happened. Finish groups these by fingerprint once feeding
	// and merging are both complete, reading each directory's current
	// rollingFP at that point rather than caching a value from whenever it
	// was first observed as full (see extract).
	fullDirs []*directory
}

// New creates a Merger and immediately runs the file-count pass over the
// session's root paths. If the count pass does not complete cleanly, New
// still returns a usable Merger (prone to under-reporting, see CountFiles)
// alongside the error; the caller decides whether to log it and continue
// or treat it as fatal.
func New(session PathsProvider) (*Merger, error) {
	counts, err := CountFiles(session.RootPaths())
	return &Merger{
		countMap: counts,
		dirMap:   &pathtrie.Trie[*directory]{},
	}, err
}

// Feed locates or creates the Directory owning f, folds f's digest into it,
// and queues the directory for promotion once it becomes full.
//
// Feed is not idempotent per (directory, file): feeding the same file twice
// corrupts that directory's fingerprint. f.Path() must be absolute and
// f.Digest() must be non-empty.
func (m *Merger) Feed(f File) error {
	if f.Path() == "" {
		return fmt.Errorf("treemerge: Feed: empty path")
	}
	if len(f.Digest()) == 0 {
		return fmt.Errorf("treemerge: Feed: empty digest for %q", f.Path())
	}

	dirPath := dirOf(f.Path())
	dir, ok := m.dirMap.Lookup([]byte(dirPath))
	if !ok {
		dir = newDirectory(dirPath)
		dir.expectedCount, _ = m.countMap.Lookup([]byte(dirPath))
		m.dirMap.Insert([]byte(dirPath), dir)
	}

	dir.add(f)
	m.enqueueIfFull(dir)
	return nil
}

// enqueueIfFull places d on the promotion worklist the first time it is
// observed full. The queued guard makes this safe to call after every add
// to any directory, regardless of whether d was just created, already
// existed from an earlier Feed, or was just folded into as a promotion
// target inside mergeUp.
func (m *Merger) enqueueIfFull(d *directory) {
	if d.queued || !d.full() {
		return
	}
	d.queued = true
	m.worklist = append(m.worklist, d)
	m.fullDirs = append(m.fullDirs, d)
}

// Finish drains the promotion worklist, groups full directories by
// fingerprint, confirms equality by digest-multiset comparison, and writes
// each duplicate-directory group to w as one line per member followed by a
// "--" line:
//
//	<hex_fingerprint> <directory_path>
//	...
//	--
//
// Singleton groups (no confirmed duplicate) produce no output. Finish must
// be called exactly once, after all Feed calls have completed.
func (m *Merger) Finish(w io.Writer) error {
	m.mergeUp()
	return m.extract(w)
}

// mergeUp promotes every full directory into its parent, one level at a
// time, until the worklist is exhausted. It is a plain FIFO worklist drain,
// not a fixed number of depth-sorted rounds: a directory is promoted
// exactly once, the moment it is discovered full (whether that happens
// directly via Feed or as the side effect of a child folding into it right
// here), and its promotion may in turn make its own parent newly full, which
// appends the parent to the same worklist for its own later promotion.
// A directory whose expectedCount is zero (e.g. because the count pass
// never reached it) never becomes full and is silently dropped — by
// monotonicity, it cannot cause any higher level to fill in either.
func (m *Merger) mergeUp() {
	for i := 0; i < len(m.worklist); i++ {
		dir := m.worklist[i]

		parentPath := parentDir(dir.path)
		if parentPath == dir.path {
			// Reached the root: nothing to promote into.
			continue
		}

		parent, ok := m.dirMap.Lookup([]byte(parentPath))
		if !ok {
			parent = newDirectory(parentPath)
			parent.expectedCount, _ = m.countMap.Lookup([]byte(parentPath))
			m.dirMap.Insert([]byte(parentPath), parent)
		}

		for _, f := range dir.matchedFiles {
			parent.add(f)
		}
		parent.children = append(parent.children, dir)
		m.enqueueIfFull(parent)
	}
}

// extract buckets every directory that ever became full by its *current*
// rollingFP, confirms equality within each bucket, and emits each
// unfinished member while marking its subtree finished to suppress
// redundant descendant reports.
//
// Bucketing happens here, not at the moment each directory was discovered
// full: a directory's rollingFP only stops changing once every directory
// below it has also finished folding up, which in general is not true yet
// at the instant it first satisfies full() (see mergeUp). Re-reading
// rollingFP now, after mergeUp has fully drained, guarantees every
// directory is keyed by its final, complete fingerprint rather than
// whatever partial value it held when first enqueued.
//
// Classes are then processed shallowest-first across the *entire* grouping
// table, not bucket by bucket: map iteration order is unspecified, and a
// deep duplicate pair sharing no fingerprint with its ancestors could
// otherwise be written before the ancestor pair that should suppress it.
// Sorting by each class's shallowest member first guarantees an ancestor
// group is always extracted (and its subtree marked finished) before any
// of its descendants are considered.
func (m *Merger) extract(w io.Writer) error {
	grouping := make(map[uint64][]*directory)
	for _, d := range m.fullDirs {
		grouping[d.rollingFP] = append(grouping[d.rollingFP], d)
	}

	var classes [][]*directory
	for _, members := range grouping {
		for _, class := range classifyByEquality(members) {
			if len(class) >= 2 {
				sortByDepthAscending(class)
				classes = append(classes, class)
			}
		}
	}
	sortClassesByMinDepth(classes)

	for _, class := range classes {
		wrote := false
		for _, dir := range class {
			if dir.finished {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s %s\n", fingerprintHex(dir.rollingFP), dir.path); err != nil {
				return err
			}
			dir.markFinishedRecursively()
			wrote = true
		}
		if !wrote {
			continue
		}
		if _, err := fmt.Fprintln(w, "--"); err != nil {
			return err
		}
	}
	return nil
}

// sortClassesByMinDepth sorts classes in place by the depth of each class's
// shallowest member (classes are already sorted shallowest-first
// internally, so that is simply class[0]).
func sortClassesByMinDepth(classes [][]*directory) {
	for i := 1; i < len(classes); i++ {
		for j := i; j > 0 && depth(classes[j-1][0].path) > depth(classes[j][0].path); j-- {
			classes[j-1], classes[j] = classes[j], classes[j-1]
		}
	}
}

// classifyByEquality splits a fingerprint bucket into equivalence classes
// by full multiset comparison, resolving fingerprint collisions: two
// directories sharing rollingFP but disagreeing on digestMultiset end up in
// distinct classes and are therefore never reported as duplicates of one
// another.
func classifyByEquality(members []*directory) [][]*directory {
	var classes [][]*directory
	for _, d := range members {
		placed := false
		for i, class := range classes {
			if equal(d, class[0]) {
				classes[i] = append(classes[i], d)
				placed = true
				break
			}
		}
		if !placed {
			classes = append(classes, []*directory{d})
		}
	}
	return classes
}

// sortByDepthAscending sorts class in place, shallowest directory first,
// ordering directories at the same depth by path, so the result does not
// depend on the order in which the directories became full.
func sortByDepthAscending(class []*directory) {
	for i := 1; i < len(class); i++ {
		for j := i; j > 0 && (depth(class[j-1].path) > depth(class[j].path) ||
			depth(class[j-1].path) == depth(class[j].path) && class[j-1].path > class[j].path); j-- {
			class[j-1], class[j] = class[j], class[j-1]
		}
	}
}

func fingerprintHex(fp uint64) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 0; i < 8; i++ {
		b := byte(fp >> (8 * (7 - i)))
		buf[i*2] = hexDigits[b>>4]
		buf[i*2+1] = hexDigits[b&0x0f]
	}
	return string(buf)
}
