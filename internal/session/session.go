// Package session holds a run's resolved configuration: which paths to
// scan, which hash algorithm to use, how much concurrency to allow, and
// which files to exclude. Values are resolved in precedence order — CLI
// flags override a TOML config file, which overrides hard-coded defaults —
// mirroring the config-file-plus-flags convention used throughout the
// example pack's filesystem CLIs.
package session

import (
	"fmt"
	"regexp"

	"github.com/dupfiles/treemerge/internal/hashalgo"
	"github.com/dupfiles/treemerge/internal/scan"
)

func compileExcludeRegex(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("session: invalid exclude-basename-regex %q: %w", pattern, err)
	}
	return re, nil
}

// Session is the fully-resolved configuration for one run.
type Session struct {
	Paths            []string
	HashAlgorithm    string
	Concurrency      int
	IgnorePermErrors bool
	BasenameMode     bool
	Exclude          scan.Exclude
}

// RootPaths satisfies treemerge.PathsProvider.
func (s *Session) RootPaths() []string {
	return s.Paths
}

// ScanOptions adapts the session into scan.Options for a Walk call.
func (s *Session) ScanOptions() scan.Options {
	return scan.Options{
		Exclude:          s.Exclude,
		Concurrency:      s.Concurrency,
		IgnorePermErrors: s.IgnorePermErrors,
		BasenameMode:     s.BasenameMode,
	}
}

// Validate checks that the resolved Session is usable: at least one root
// path, a known hash algorithm, and a sane concurrency level.
func (s *Session) Validate() error {
	if len(s.Paths) == 0 {
		return fmt.Errorf("session: no root paths configured")
	}
	if _, err := hashalgo.ByName(s.HashAlgorithm); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if s.Concurrency < 1 {
		s.Concurrency = 1
	}
	return nil
}

// Defaults returns the hard-coded baseline every Session starts from,
// before a config file or CLI flags are applied.
func Defaults() Session {
	return Session{
		HashAlgorithm:    hashalgo.DefaultName,
		Concurrency:      4,
		IgnorePermErrors: false,
		BasenameMode:     false,
	}
}
