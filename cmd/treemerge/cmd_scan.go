package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dupfiles/treemerge/internal/hashalgo"
	"github.com/dupfiles/treemerge/internal/report"
	"github.com/dupfiles/treemerge/internal/scan"
	"github.com/dupfiles/treemerge/internal/session"
	"github.com/dupfiles/treemerge/internal/treemerge"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ScanCommand walks one or more root paths, hashes every node, folds
// digests bottom-up, and reports duplicate directory groups. It optionally
// also writes one report file per root, in the reference implementation's
// report format, for later replay via the find command. The report holds
// one tail line per non-directory node; every tail line carries node type
// 'F' and file size 0, whatever the node's actual kind and size.
type ScanCommand struct {
	Paths            []string
	HashAlgorithm    string
	Concurrency      int
	IgnorePermErrors bool
	BasenameMode     bool
	Output           string
	ReportDir        string
	Overwrite        bool
	Config           string
}

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan one or more directory trees and report duplicate subtrees",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &ScanCommand{Paths: args, Config: argConfig}
		if cmd.Flags().Changed("hash-algo") {
			c.HashAlgorithm = argScanHashAlgo
		}
		if cmd.Flags().Changed("concurrency") {
			c.Concurrency = argScanConcurrency
		}
		if cmd.Flags().Changed("ignore-perm-errors") {
			c.IgnorePermErrors = argScanIgnorePermErrors
		}
		if cmd.Flags().Changed("basename-mode") {
			c.BasenameMode = argScanBasenameMode
		}
		c.Output = argScanOutput
		c.ReportDir = argScanReportDir
		c.Overwrite = argScanOverwrite

		code, err := c.Run(w)
		exitCode = code
		cmdError = err
		return err
	},
}

var argScanHashAlgo string
var argScanConcurrency int
var argScanIgnorePermErrors bool
var argScanBasenameMode bool
var argScanOutput string
var argScanReportDir string
var argScanOverwrite bool

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&argScanHashAlgo, "hash-algo", hashalgo.DefaultName, "content hash algorithm to use")
	scanCmd.Flags().IntVar(&argScanConcurrency, "concurrency", 4, "number of hashing workers")
	scanCmd.Flags().BoolVar(&argScanIgnorePermErrors, "ignore-perm-errors", false, "skip unreadable entries instead of aborting")
	scanCmd.Flags().BoolVar(&argScanBasenameMode, "basename-mode", false, "fold each entry's basename into its hash")
	scanCmd.Flags().StringVarP(&argScanOutput, "output", "o", EnvOr("TREEMERGE_OUTPUT", ""), "write duplicate groups to this file instead of stdout")
	scanCmd.Flags().StringVar(&argScanReportDir, "report-dir", "", "also write one per-node report file per root into this directory")
	scanCmd.Flags().BoolVar(&argScanOverwrite, "overwrite", false, "overwrite --output or --report-dir files if they already exist")
}

// Run executes the scan subcommand, writing duplicate-directory groups to
// out and returning a process exit code plus any fatal error.
func (c *ScanCommand) Run(out Output) (int, error) {
	sess := session.Defaults()
	sess.Paths = c.Paths
	if c.Config != "" {
		fc, err := session.LoadFile(c.Config)
		if err != nil {
			return 2, err
		}
		if err := fc.Apply(&sess); err != nil {
			return 2, err
		}
	}
	if c.HashAlgorithm != "" {
		sess.HashAlgorithm = c.HashAlgorithm
	}
	if c.Concurrency > 0 {
		sess.Concurrency = c.Concurrency
	}
	sess.IgnorePermErrors = sess.IgnorePermErrors || c.IgnorePermErrors
	sess.BasenameMode = sess.BasenameMode || c.BasenameMode
	// CLI paths always win over whatever the config file set, since the
	// user named them explicitly on this invocation.
	sess.Paths = c.Paths

	if err := sess.Validate(); err != nil {
		return 2, err
	}

	if c.ReportDir != "" && !c.Overwrite {
		for _, root := range sess.Paths {
			absRoot, err := filepath.Abs(root)
			if err != nil {
				return 2, err
			}
			reportPath := filepath.Join(c.ReportDir, filepath.Base(absRoot)+".fsr")
			if _, err := os.Stat(reportPath); err == nil {
				return 3, fmt.Errorf("file %q already exists and --overwrite was not specified", reportPath)
			}
		}
	}

	var dest = os.Stdout
	if c.Output != "" {
		if !c.Overwrite {
			if _, err := os.Stat(c.Output); err == nil {
				return 3, fmt.Errorf("file %q already exists and --overwrite was not specified", c.Output)
			}
		}
		fd, err := os.Create(c.Output)
		if err != nil {
			return 4, err
		}
		defer fd.Close()
		dest = fd
	}

	merger, err := treemerge.New(&sess)
	if err != nil {
		log.WithError(err).Warn("count pass did not complete cleanly; duplicate detection may under-report")
	}

	for _, root := range sess.Paths {
		if err := c.scanOneRoot(&sess, merger, root); err != nil {
			log.WithError(err).WithField("root", root).Warn("scan did not complete cleanly for this root")
		}
	}

	if err := merger.Finish(dest); err != nil {
		return 5, err
	}
	if c.Output != "" {
		out.Printfln("wrote duplicate groups to %s", c.Output)
	}
	return 0, nil
}

func (c *ScanCommand) scanOneRoot(sess *session.Session, merger *treemerge.Merger, root string) error {
	algo, err := hashalgo.ByName(sess.HashAlgorithm)
	if err != nil {
		return err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	var reportWriter *report.Writer
	var reportFile *os.File
	if c.ReportDir != "" {
		reportFile, err = os.Create(filepath.Join(c.ReportDir, filepath.Base(absRoot)+".fsr"))
		if err != nil {
			return err
		}
		defer reportFile.Close()
		reportWriter = report.NewWriter(reportFile)
		if err := reportWriter.WriteHead(report.HeadLine{
			Timestamp:     time.Now(),
			HashAlgorithm: sess.HashAlgorithm,
			BasenameMode:  sess.BasenameMode,
			RootName:      filepath.Base(absRoot),
			BasePath:      absRoot,
		}); err != nil {
			return err
		}
	}

	var bar *progressbar.ProgressBar
	if term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.NewOptions64(-1,
			progressbar.OptionSetDescription(fmt.Sprintf("scanning %s", absRoot)),
			progressbar.OptionSetWriter(os.Stderr),
		)
	}

	nodes, errs := scan.Walk(absRoot, algo, sess.ScanOptions())
	var scanErr error
	var totalBytes uint64
	for nodes != nil || errs != nil {
		select {
		case f, ok := <-nodes:
			if !ok {
				nodes = nil
				continue
			}
			if err := merger.Feed(f); err != nil {
				scanErr = err
			}
			if reportWriter != nil {
				totalBytes += uint64(len(f.Digest()))
				rel, err := filepath.Rel(absRoot, f.Path())
				if err != nil {
					rel = f.Path()
				}
				_ = reportWriter.WriteTail(report.TailLine{
					Digest:   []byte(f.Digest()),
					NodeType: 'F',
					FileSize: 0,
					Path:     rel,
				})
			}
			if bar != nil {
				if info, err := os.Lstat(f.Path()); err == nil {
					totalBytes += uint64(info.Size())
				}
				_ = bar.Add(1)
			}
		case e, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.WithError(e).WithField("root", absRoot).Warn("scan error")
			scanErr = e
		}
	}
	if bar != nil {
		_ = bar.Finish()
		log.WithField("bytes-hashed", humanize.Bytes(totalBytes)).Debug("scan complete")
	}
	return scanErr
}
