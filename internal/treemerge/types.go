// Package treemerge implements the tree-merger core: given a stream of
// files that have already been matched by content digest, it discovers
// whole directories that are duplicates of other directories and reports
// them in preference to their individual files.
//
// The package does no I/O beyond path-string inspection and the one-time
// file-count pass (see CountFiles); it never opens a file or computes a
// digest. Those concerns belong to the caller's collaborators, e.g.
// package scan.
package treemerge

import "encoding/binary"

// Digest is a fixed-width cryptographic summary of a file's content. Two
// files are considered duplicates iff their digests are byte-identical.
type Digest []byte

// fingerprintWord returns the leading 8 bytes of the digest interpreted as
// a little-endian unsigned integer, used to fold into a directory's rolling
// fingerprint. Digests shorter than 8 bytes are zero-padded on the right.
func (d Digest) fingerprintWord() uint64 {
	var buf [8]byte
	copy(buf[:], d)
	return binary.LittleEndian.Uint64(buf[:])
}

func (d Digest) String() string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(d)*2)
	for i, b := range d {
		out[i*2] = hexDigits[b>>4]
		out[i*2+1] = hexDigits[b&0x0f]
	}
	return string(out)
}

// File is the external record fed into the merger one at a time. Path must
// be absolute; Digest must be non-empty.
type File interface {
	Path() string
	Digest() Digest
}

// file is the trivial File implementation used by callers that already
// have a path and a digest in hand, e.g. package scan.
type file struct {
	path   string
	digest Digest
}

// NewFile returns a File wrapping the given path and digest.
func NewFile(path string, digest Digest) File {
	return file{path: path, digest: digest}
}

func (f file) Path() string   { return f.path }
func (f file) Digest() Digest { return f.digest }
