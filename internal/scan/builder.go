package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/dirsnap/internal/ignore"
	"github.com/temirov/dirsnap/internal/types"
)

// Builder constructs directory snapshot trees using configured options.
type Builder struct {
	Options types.BuildOptions
}

// NewBuilder constructs a Builder with the provided options.
func NewBuilder(options types.BuildOptions) *Builder {
	return &Builder{Options: options}
}

// Build produces the snapshot tree rooted at rootPath. The returned error is
// non-nil only when the context is cancelled between directory visits;
// filesystem failures degrade to the documented fallback nodes and never
// abort a scan. The root is never marked skipped, even when its own visible
// entry count exceeds the truncation threshold.
func (builder *Builder) Build(parentContext context.Context, rootPath string) (*types.TreeNode, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		absoluteRootPath = filepath.Clean(rootPath)
	}
	return builder.buildPath(parentContext, absoluteRootPath, nil, true)
}

// buildPath resolves one path into a node. Unreadable paths and symlinks
// degrade to a zero-size file node; callers that need to distinguish an
// unreadable directory from a tiny file must treat this as a known
// limitation of the snapshot contract.
func (builder *Builder) buildPath(buildContext context.Context, path string, stack ignore.Stack, isRoot bool) (*types.TreeNode, error) {
	if contextError := buildContext.Err(); contextError != nil {
		return nil, contextError
	}

	node := &types.TreeNode{
		Name: filepath.Base(path),
		Path: path,
	}

	pathInfo, statError := os.Lstat(path)
	if statError != nil || pathInfo.Mode()&fs.ModeSymlink != 0 {
		node.Kind = types.NodeKindFile
		return node, nil
	}
	if !pathInfo.IsDir() {
		node.Kind = types.NodeKindFile
		node.SizeBytes = pathInfo.Size()
		return node, nil
	}

	node.Kind = types.NodeKindFolder
	levelStack := stack.Push(ignore.NewMatcher(path, builder.Options, isRoot))

	var excludedEntries []Entry
	var visibleEntries []Entry
	for _, entry := range ScanDirectory(path) {
		if entry.IsSymlink {
			continue
		}
		if levelStack.IsExcluded(entry.AbsolutePath, entry.IsDirectory) {
			excludedEntries = append(excludedEntries, entry)
		} else {
			visibleEntries = append(visibleEntries, entry)
		}
	}

	// The threshold applies to the visible count so ignored clutter does
	// not itself trigger truncation. The scan root is exempt.
	if !isRoot && builder.Options.MaxLeaf > 0 && len(visibleEntries) > builder.Options.MaxLeaf {
		node.SkipReason = types.SkipReasonTooManyEntries
		return node, nil
	}

	children := make([]*types.TreeNode, 0, len(visibleEntries)+len(excludedEntries))
	for _, excludedEntry := range excludedEntries {
		// Excluded files carry no information once gone; an excluded
		// directory still surfaces as a stub so the tree shows that
		// unknown content exists beneath it.
		if !excludedEntry.IsDirectory {
			continue
		}
		children = append(children, &types.TreeNode{
			Name:       excludedEntry.Name,
			Path:       excludedEntry.AbsolutePath,
			Kind:       types.NodeKindFolder,
			SkipReason: types.SkipReasonIgnoredByRule,
		})
	}

	visibleChildren, visibleBuildError := builder.buildVisibleEntries(buildContext, visibleEntries, levelStack)
	if visibleBuildError != nil {
		return nil, visibleBuildError
	}
	children = append(children, visibleChildren...)

	sortChildren(children)
	node.Children = children
	return node, nil
}

// buildVisibleEntries resolves the visible entries of one directory into
// nodes, preserving entry order in the returned slice. When more than one
// worker is configured, sibling subtrees are built in parallel; each
// recursive call receives the same immutable stack snapshot and writes only
// its own index-addressed slot, so ordering stays deterministic.
func (builder *Builder) buildVisibleEntries(buildContext context.Context, visibleEntries []Entry, levelStack ignore.Stack) ([]*types.TreeNode, error) {
	results := make([]*types.TreeNode, len(visibleEntries))

	if builder.Options.Workers > 1 {
		group, groupContext := errgroup.WithContext(buildContext)
		group.SetLimit(builder.Options.Workers)
		for entryIndex, visibleEntry := range visibleEntries {
			entryIndex, visibleEntry := entryIndex, visibleEntry
			if !visibleEntry.IsDirectory {
				results[entryIndex] = newFileNode(visibleEntry)
				continue
			}
			group.Go(func() error {
				childNode, childBuildError := builder.buildPath(groupContext, visibleEntry.AbsolutePath, levelStack, false)
				if childBuildError != nil {
					return childBuildError
				}
				results[entryIndex] = childNode
				return nil
			})
		}
		if waitError := group.Wait(); waitError != nil {
			return nil, waitError
		}
		return results, nil
	}

	for entryIndex, visibleEntry := range visibleEntries {
		if !visibleEntry.IsDirectory {
			results[entryIndex] = newFileNode(visibleEntry)
			continue
		}
		childNode, childBuildError := builder.buildPath(buildContext, visibleEntry.AbsolutePath, levelStack, false)
		if childBuildError != nil {
			return nil, childBuildError
		}
		results[entryIndex] = childNode
	}
	return results, nil
}

func newFileNode(entry Entry) *types.TreeNode {
	return &types.TreeNode{
		Name:      entry.Name,
		Path:      entry.AbsolutePath,
		Kind:      types.NodeKindFile,
		SizeBytes: entry.SizeBytes,
	}
}

// sortChildren orders folders before files, then case-sensitive
// lexicographic by name within each group.
func sortChildren(children []*types.TreeNode) {
	sort.SliceStable(children, func(firstIndex, secondIndex int) bool {
		if children[firstIndex].Kind != children[secondIndex].Kind {
			return children[firstIndex].Kind == types.NodeKindFolder
		}
		return children[firstIndex].Name < children[secondIndex].Name
	})
}
