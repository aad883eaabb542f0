package session

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// FileConfig mirrors a TOML config file's shape. Every field is a pointer
// (or nil slice) so Apply can tell "absent from the file" apart from "the
// file explicitly sets the zero value" — only present fields override the
// Session they're applied onto.
type FileConfig struct {
	Paths            []string `toml:"paths"`
	HashAlgorithm    *string  `toml:"hash_algorithm"`
	Concurrency      *int     `toml:"concurrency"`
	IgnorePermErrors *bool    `toml:"ignore_perm_errors"`
	BasenameMode     *bool    `toml:"basename_mode"`

	ExcludeBasename      []string `toml:"exclude_basename"`
	ExcludeBasenameRegex []string `toml:"exclude_basename_regex"`
	ExcludeTree          []string `toml:"exclude_tree"`
}

// LoadFile decodes a TOML config file at path.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("session: could not read config file %q: %w", path, err)
	}
	return fc, nil
}

// Apply overlays fc's present fields onto s, giving the file precedence
// over whatever default s already carries. Flags applied afterwards by
// the caller take precedence over both.
func (fc FileConfig) Apply(s *Session) error {
	if len(fc.Paths) > 0 {
		s.Paths = fc.Paths
	}
	if fc.HashAlgorithm != nil {
		s.HashAlgorithm = *fc.HashAlgorithm
	}
	if fc.Concurrency != nil {
		s.Concurrency = *fc.Concurrency
	}
	if fc.IgnorePermErrors != nil {
		s.IgnorePermErrors = *fc.IgnorePermErrors
	}
	if fc.BasenameMode != nil {
		s.BasenameMode = *fc.BasenameMode
	}

	if len(fc.ExcludeBasename) > 0 {
		s.Exclude.Basename = append(s.Exclude.Basename, fc.ExcludeBasename...)
	}
	if len(fc.ExcludeTree) > 0 {
		s.Exclude.Tree = append(s.Exclude.Tree, fc.ExcludeTree...)
	}
	for _, pattern := range fc.ExcludeBasenameRegex {
		re, err := compileExcludeRegex(pattern)
		if err != nil {
			return err
		}
		s.Exclude.BasenameRegex = append(s.Exclude.BasenameRegex, re)
	}
	return nil
}
