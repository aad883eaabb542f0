package scan

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/dupfiles/treemerge/internal/hashalgo"
	"github.com/dupfiles/treemerge/internal/treemerge"
)

// entry is one non-directory node discovered by the walker, queued for a
// hashing worker.
type entry struct {
	path string // absolute
	typ  NodeType
}

// Walk traverses root in DFS order (descending into subdirectories before
// visiting their files, matching the reference implementation's default),
// hashes every non-directory node with a worker pool sized by
// opts.Concurrency, and streams the results as treemerge.File values.
//
// algo is never used directly for hashing — each worker calls
// algo.NewCopy() to get its own independent hash state — so the caller's
// instance is only a template.
//
// The returned channels are both closed once the walk and every in-flight
// hash have completed. Callers should drain both until closed.
func Walk(root string, algo hashalgo.Algorithm, opts Options) (<-chan treemerge.File, <-chan error) {
	out := make(chan treemerge.File)
	errs := make(chan error)

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	jobs := make(chan entry)

	var workers sync.WaitGroup
	workers.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer workers.Done()
			h := algo.NewCopy()
			for e := range jobs {
				f, err := hashEntry(h, root, e, opts.BasenameMode)
				if err != nil {
					errs <- err
					continue
				}
				out <- f
			}
		}()
	}

	go func() {
		err := walkDir(root, "", opts, jobs)
		close(jobs)
		workers.Wait()
		close(out)
		if err != nil {
			errs <- err
		}
		close(errs)
	}()

	return out, errs
}

// walkDir descends into root/relPath, queuing every discovered
// non-directory node onto jobs. Subdirectories are visited before sibling
// files at the same level, matching the reference implementation's DFS
// walk order.
func walkDir(root, relPath string, opts Options, jobs chan<- entry) error {
	if opts.Exclude.matchesTree(relPath) {
		return nil
	}

	fullPath := filepath.Join(root, relPath)
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if opts.IgnorePermErrors && isPermissionError(err) {
			return nil
		}
		return err
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if opts.Exclude.matchesBasename(e.Name()) {
			continue
		}
		if err := walkDir(root, filepath.Join(relPath, e.Name()), opts, jobs); err != nil {
			return err
		}
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if opts.Exclude.matchesBasename(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if opts.IgnorePermErrors && isPermissionError(err) {
				continue
			}
			return err
		}
		jobs <- entry{
			path: filepath.Join(fullPath, e.Name()),
			typ:  nodeType(info.Mode()),
		}
	}

	return nil
}

// hashEntry produces the treemerge.File for one non-directory node,
// content-hashing regular files and identity-hashing everything else from
// its metadata, mirroring the reference implementation's
// HashOneNonDirectory.
func hashEntry(h hashalgo.Algorithm, root string, e entry, basenameMode bool) (treemerge.File, error) {
	h.Reset()
	if basenameMode {
		if err := h.WriteBytes([]byte(filepath.Base(e.path))); err != nil {
			return nil, err
		}
		if err := h.WriteBytes([]byte{31}); err != nil { // U+001F unit separator
			return nil, err
		}
	}

	switch e.typ {
	case TypeFile:
		if err := h.WriteFile(e.path); err != nil {
			return nil, err
		}
	case TypeSymlink:
		target, err := os.Readlink(e.path)
		if err != nil {
			return nil, err
		}
		if err := h.WriteBytes([]byte("link to ")); err != nil {
			return nil, err
		}
		if err := h.WriteBytes([]byte(target)); err != nil {
			return nil, err
		}
	case TypeDevice:
		if err := h.WriteBytes([]byte("device file")); err != nil {
			return nil, err
		}
	case TypePipe:
		if err := h.WriteBytes([]byte("FIFO pipe")); err != nil {
			return nil, err
		}
	case TypeSocket:
		if err := h.WriteBytes([]byte("UNIX domain socket")); err != nil {
			return nil, err
		}
	default:
		return nil, errUnknownNodeType(e.path)
	}

	return treemerge.NewFile(e.path, treemerge.Digest(h.Sum())), nil
}

func nodeType(mode os.FileMode) NodeType {
	switch {
	case mode.IsRegular():
		return TypeFile
	case mode.IsDir():
		return TypeDir
	case mode&os.ModeSymlink != 0:
		return TypeSymlink
	case mode&os.ModeDevice != 0:
		return TypeDevice
	case mode&os.ModeNamedPipe != 0:
		return TypePipe
	case mode&os.ModeSocket != 0:
		return TypeSocket
	default:
		return TypeUnknown
	}
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission)
}

func errUnknownNodeType(path string) error {
	return &unknownNodeTypeError{path: path}
}

type unknownNodeTypeError struct {
	path string
}

func (e *unknownNodeTypeError) Error() string {
	return "scan: unknown node type at " + e.path
}
