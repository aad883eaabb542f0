// Package scan is the external collaborator that walks a filesystem tree,
// content-hashes every node it finds, and emits a stream of
// treemerge.File values ready to feed into a Merger.
//
// Unlike the reference implementation's walker, scan never hashes
// directories itself — directory aggregation is treemerge's job now
// (treemerge.directory.rollingFP) — so the pipeline here is strictly
// unidirectional: walk, hash leaves, emit.
package scan

import "regexp"

// NodeType classifies a filesystem entry the way a report line does (see
// package report): one letter per kind, matching the reference
// implementation's convention.
type NodeType byte

const (
	TypeFile    NodeType = 'F'
	TypeDir     NodeType = 'D'
	TypeSymlink NodeType = 'L'
	TypeDevice  NodeType = 'C'
	TypePipe    NodeType = 'P'
	TypeSocket  NodeType = 'S'
	TypeUnknown NodeType = 'X'
)

// Exclude holds the filters applied while walking, checked against each
// entry's basename (or, for Tree, its path relative to the walk root)
// before it is descended into or emitted.
type Exclude struct {
	// Basename excludes any entry whose name exactly matches one of these.
	Basename []string
	// BasenameRegex excludes any entry whose name matches one of these
	// compiled patterns.
	BasenameRegex []*regexp.Regexp
	// Tree excludes an entire subtree rooted at one of these paths
	// (relative to the walk root).
	Tree []string
}

func (e Exclude) matchesBasename(name string) bool {
	for _, b := range e.Basename {
		if b == name {
			return true
		}
	}
	for _, re := range e.BasenameRegex {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func (e Exclude) matchesTree(relPath string) bool {
	for _, t := range e.Tree {
		if t == relPath {
			return true
		}
	}
	return false
}

// Options configures a Walk call.
type Options struct {
	Exclude Exclude
	// Concurrency is the number of hashing workers; at least 1 is used
	// regardless of what's configured.
	Concurrency int
	// IgnorePermErrors swallows permission-denied errors encountered while
	// reading a directory's entries instead of aborting the walk.
	IgnorePermErrors bool
	// BasenameMode, when set, folds the entry's basename (plus a U+001F
	// unit separator) into the hash ahead of its content, matching the
	// reference implementation's name-sensitive hashing mode.
	BasenameMode bool
}
