package treemerge

import "strings"

// rootPath is the canonical representation of the filesystem root. All
// directory paths handled by this package are absolute, slash-separated,
// and never carry a trailing slash except rootPath itself.
const rootPath = "/"

// parentDir returns the parent directory of p. parentDir(rootPath) returns
// rootPath itself — callers use this fixed point to detect that they have
// reached the top of the tree (see Merger.Finish).
func parentDir(p string) string {
	if p == rootPath || p == "" {
		return rootPath
	}
	i := strings.LastIndexByte(p, '/')
	if i <= 0 {
		return rootPath
	}
	return p[:i]
}

// dirOf returns the directory containing filePath, i.e. parentDir applied
// to a file path rather than a directory path.
func dirOf(filePath string) string {
	i := strings.LastIndexByte(filePath, '/')
	if i <= 0 {
		return rootPath
	}
	return filePath[:i]
}

// depth returns the number of '/' occurrences in p, used by the extractor
// to sort duplicate-group members shallowest-first.
func depth(p string) int {
	return strings.Count(p, "/")
}
