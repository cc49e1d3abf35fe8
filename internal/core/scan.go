package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Digital-Shane/treeview"
	"github.com/doriginvision/hanzi-tidy/internal/media"
)

// defaultTraversalCap bounds the number of nodes one walk may visit.
const defaultTraversalCap = 2000000

type treeBuilderFunc func(context.Context, string, bool, ...treeview.Option[treeview.FileInfo]) (*treeview.Tree[treeview.FileInfo], error)

var scanTreeBuilder treeBuilderFunc = buildFileTree

// ScanOption tunes a single SelectCandidates call.
type ScanOption func(*scanOptions)

type scanOptions struct {
	maxDepth     int
	traversalCap int
	progress     func(visited int)
}

// WithMaxDepth limits how deep below the root the walk descends. Zero or
// less means no limit. A walk cut short by the limit fails with ErrDepthLimit.
func WithMaxDepth(depth int) ScanOption {
	return func(o *scanOptions) {
		o.maxDepth = max(depth, 0)
	}
}

// WithProgress registers a callback invoked with the running count of
// regular files seen by the walk.
func WithProgress(fn func(visited int)) ScanOption {
	return func(o *scanOptions) {
		o.progress = fn
	}
}

// SelectCandidates walks root and returns every image file matching the
// selection rule, in walk order. Symbolic links are never followed.
//
// The whole tree is visited before anything is returned. A root that is
// missing, unreadable or not a directory, or a walk that fails part way,
// yields a *ScanError and no candidates.
func SelectCandidates(ctx context.Context, root string, opts ...ScanOption) ([]Candidate, int, error) {
	o := scanOptions{traversalCap: defaultTraversalCap}
	for _, opt := range opts {
		opt(&o)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, 0, &ScanError{Root: root, Err: err}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, 0, &ScanError{Root: absRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, 0, &ScanError{Root: absRoot, Err: fmt.Errorf("not a directory")}
	}

	visited := 0
	tree, err := scanTreeBuilder(ctx, absRoot, false,
		treeview.WithMaxDepth[treeview.FileInfo](o.maxDepth),
		treeview.WithTraversalCap[treeview.FileInfo](o.traversalCap),
		treeview.WithFilterFunc(func(fi treeview.FileInfo) bool {
			return fi.IsDir() || fi.FileInfo.Mode().IsRegular()
		}),
		treeview.WithProgressCallback[treeview.FileInfo](func(_ int, n *treeview.Node[treeview.FileInfo]) {
			if n.Data().IsDir() {
				return
			}
			visited++
			if o.progress != nil {
				o.progress(visited)
			}
		}),
	)
	if err != nil {
		return nil, visited, &ScanError{Root: absRoot, Err: err}
	}
	if tree == nil {
		return nil, visited, &ScanError{Root: absRoot, Err: fmt.Errorf("walk produced no tree")}
	}

	var candidates []Candidate
	for ni, err := range tree.All(ctx) {
		if err != nil {
			return nil, visited, &ScanError{Root: absRoot, Err: err}
		}
		data := ni.Node.Data()
		if data.IsDir() || !data.FileInfo.Mode().IsRegular() {
			continue
		}
		path := data.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(absRoot, path)
		}
		if c, ok := matchCandidate(path); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, visited, nil
}

// matchCandidate applies the name rules to a regular file path: image suffix,
// Hanzi in the parent directory name, no Hanzi in the file name.
func matchCandidate(path string) (Candidate, bool) {
	name := filepath.Base(path)
	if !media.IsImage(name) {
		return Candidate{}, false
	}
	parent := filepath.Base(filepath.Dir(path))
	if !media.HasHanzi(parent) {
		return Candidate{}, false
	}
	if media.HasHanzi(name) {
		return Candidate{}, false
	}
	return Candidate{Path: path, ParentName: parent, Name: name}, true
}

// buildFileTree walks path into a treeview tree without following symbolic
// links below the root. Unlike treeview.NewTreeFromFileSystem it does not track inodes, so
// hard links to one file are two ordinary entries.
func buildFileTree(ctx context.Context, path string, _ bool, opts ...treeview.Option[treeview.FileInfo]) (*treeview.Tree[treeview.FileInfo], error) {
	cfg := treeview.NewMasterConfig(opts)

	// The root itself may be a link the user chose
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", treeview.ErrFileSystem, err)
	}
	root := treeview.NewFileSystemNode(path, info)
	count := 1
	cfg.ReportProgress(count, root)

	if info.IsDir() {
		if err := walkDir(ctx, root, 0, cfg, &count); err != nil {
			return nil, err
		}
	}
	return treeview.NewTreeFromCfg([]*treeview.Node[treeview.FileInfo]{root}, cfg), nil
}

func walkDir(ctx context.Context, parent *treeview.Node[treeview.FileInfo], depth int, cfg *treeview.MasterConfig[treeview.FileInfo], count *int) error {
	dir := parent.Data().Path
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", treeview.ErrDirectoryScan, dir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		childPath := filepath.Join(dir, entry.Name())
		// DirEntry.Info reports the link itself, not its target
		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("%w: %s: %w", treeview.ErrFileSystem, childPath, err)
		}
		if cfg.ShouldFilter(treeview.FileInfo{FileInfo: info, Path: childPath}) {
			continue
		}
		if cfg.HasDepthLimitBeenReached(depth) {
			return fmt.Errorf("%w: %s", ErrDepthLimit, dir)
		}

		child := treeview.NewFileSystemNode(childPath, info)
		*count++
		cfg.ReportProgress(*count, child)
		if cfg.HasTraversalCapBeenReached(*count) {
			return fmt.Errorf("%w: %s", treeview.ErrTraversalLimit, childPath)
		}
		if info.IsDir() {
			if err := walkDir(ctx, child, depth+1, cfg, count); err != nil {
				return err
			}
		}
		parent.AddChild(child)
	}
	return nil
}
