// Package report reads and writes the line-oriented report file format: one
// head line describing the run, followed by one tail line per filesystem
// node visited by a scan.
//
//	# <version> <timestamp> <hash-algo> <B|E> <root-name> <base-path>
//	<hex-digest> <node-type> <file-size> <path>
//	...
//
// The timestamp is UTC in the form YYYY-MM-DDTHH:MM:SS, with no zone
// offset. The format and its parsing approach (one regex per line kind,
// one head line recognized by its leading '#') are grounded on the reference
// implementation's reports.go/reports_read.go/reports_write.go.
package report

import (
	"time"
)

// HeadLine is the report's first line: metadata about the run that
// produced every following tail line.
type HeadLine struct {
	Version       [3]uint16
	Timestamp     time.Time
	HashAlgorithm string
	BasenameMode  bool
	RootName      string
	BasePath      string
}

// TailLine is one filesystem node: its digest, type, size, and path
// relative to HeadLine.BasePath.
type TailLine struct {
	Digest   []byte
	NodeType byte
	FileSize uint64
	Path     string
}

const formatVersion = "1.0.0"

const timeLayout = "2006-01-02T15:04:05"
