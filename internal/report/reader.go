package report

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	headLineRegex = regexp.MustCompile(`^# +([0-9]+(?:\.[0-9]+){0,2}) +([0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}) +([-_a-zA-Z0-9]+) +(B|E) +([-._a-zA-Z0-9]+) +(.+)$`)
	tailLineRegex = regexp.MustCompile(`^([0-9a-fA-F]+) +([A-Z]) +([0-9]+) (.+)$`)
)

// Reader parses a report file one tail line at a time via Next, recognizing
// and recording the head line (the first line starting with '#') the first
// time it is encountered.
type Reader struct {
	scanner *bufio.Scanner
	Head    HeadLine
	gotHead bool
}

// NewReader wraps r. The caller owns r's lifecycle.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next tail line, or io.EOF once the report is exhausted.
// The head line is parsed transparently and never returned from Next; read
// the Head field after the first successful Next to inspect it.
func (rr *Reader) Next() (TailLine, error) {
	for {
		if !rr.scanner.Scan() {
			if err := rr.scanner.Err(); err != nil {
				return TailLine{}, err
			}
			return TailLine{}, io.EOF
		}

		line := strings.TrimRight(rr.scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if line[0] == '#' {
			if rr.gotHead {
				continue // a comment line after the head is ignored
			}
			head, err := parseHeadLine(line)
			if err != nil {
				return TailLine{}, err
			}
			rr.Head = head
			rr.gotHead = true
			continue
		}

		return parseTailLine(line)
	}
}

func parseHeadLine(line string) (HeadLine, error) {
	groups := headLineRegex.FindStringSubmatch(line)
	if groups == nil {
		return HeadLine{}, fmt.Errorf("report: could not parse head line %q", line)
	}

	version, err := parseVersion(groups[1])
	if err != nil {
		return HeadLine{}, err
	}
	timestamp, err := ParseTimestamp(groups[2])
	if err != nil {
		return HeadLine{}, err
	}

	return HeadLine{
		Version:       version,
		Timestamp:     timestamp,
		HashAlgorithm: strings.ToLower(groups[3]),
		BasenameMode:  groups[4] == "B",
		RootName:      groups[5],
		BasePath:      groups[6],
	}, nil
}

func parseTailLine(line string) (TailLine, error) {
	groups := tailLineRegex.FindStringSubmatch(line)
	if groups == nil {
		return TailLine{}, fmt.Errorf("report: could not parse tail line %q", line)
	}

	digest, err := hex.DecodeString(groups[1])
	if err != nil {
		return TailLine{}, fmt.Errorf("report: invalid hex digest %q: %w", groups[1], err)
	}
	size, err := strconv.ParseUint(groups[3], 10, 64)
	if err != nil {
		return TailLine{}, fmt.Errorf("report: invalid file size %q: %w", groups[3], err)
	}

	return TailLine{
		Digest:   digest,
		NodeType: groups[2][0],
		FileSize: size,
		Path:     groups[4],
	}, nil
}

func parseVersion(version string) ([3]uint16, error) {
	var out [3]uint16
	parts := strings.SplitN(version, ".", 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 16)
		if err != nil {
			return out, fmt.Errorf("report: invalid version number %q: %w", version, err)
		}
		out[i] = uint16(n)
	}
	return out, nil
}

// ParseTimestamp parses a head line's timestamp field.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
