package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dupfiles/treemerge/internal/report"
	"github.com/dupfiles/treemerge/internal/treemerge"
	"github.com/spf13/cobra"
)

// FindCommand replays one or more report files (as written by `scan
// --report-dir`) through a fresh Merger. File digests come from the reports
// alone; the only filesystem access is the Merger's file-count pass over the
// base paths named in the reports' head lines. Equivalent subtrees are
// reported the same way a live scan would report them.
type FindCommand struct {
	Reports []string
	Output  string
}

var findCmd = &cobra.Command{
	Use:   "find [reports...]",
	Short: "Find duplicate subtrees recorded across one or more report files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &FindCommand{Reports: args, Output: argFindOutput}
		code, err := c.Run(w)
		exitCode = code
		cmdError = err
		return err
	},
}

var argFindOutput string

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().StringVarP(&argFindOutput, "output", "o", "", "write duplicate groups to this file instead of stdout")
}

// reportPaths collects every root path recorded in the given report files'
// head lines, so the Merger's file-count pass can run over the same trees
// the reports were generated from.
type reportPaths []string

func (p reportPaths) RootPaths() []string { return p }

// Run replays c.Reports and writes duplicate groups to out (or c.Output).
func (c *FindCommand) Run(out Output) (int, error) {
	var roots reportPaths
	headByRoot := make(map[string]report.HeadLine)

	for _, path := range c.Reports {
		fd, err := os.Open(path)
		if err != nil {
			return 2, err
		}
		rd := report.NewReader(fd)
		if _, err := rd.Next(); err != nil && err != io.EOF {
			fd.Close()
			return 2, fmt.Errorf("find: %s: %w", path, err)
		}
		fd.Close()
		roots = append(roots, rd.Head.BasePath)
		headByRoot[rd.Head.BasePath] = rd.Head
	}

	merger, err := treemerge.New(roots)
	if err != nil {
		log.WithError(err).Warn("count pass did not complete cleanly; duplicate detection may under-report")
	}

	for _, path := range c.Reports {
		if err := c.replay(merger, path); err != nil {
			log.WithError(err).WithField("report", path).Warn("replay did not complete cleanly")
		}
	}

	dest := os.Stdout
	if c.Output != "" {
		fd, err := os.Create(c.Output)
		if err != nil {
			return 4, err
		}
		defer fd.Close()
		dest = fd
	}

	if err := merger.Finish(dest); err != nil {
		return 5, err
	}
	if c.Output != "" {
		out.Printfln("wrote duplicate groups to %s", c.Output)
	}
	return 0, nil
}

func (c *FindCommand) replay(merger *treemerge.Merger, path string) error {
	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	rd := report.NewReader(fd)
	for {
		tail, err := rd.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		abs := filepath.Join(rd.Head.BasePath, tail.Path)
		if err := merger.Feed(treemerge.NewFile(abs, treemerge.Digest(tail.Digest))); err != nil {
			return err
		}
	}
}
