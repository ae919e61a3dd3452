// Package types defines every cross‑package data structure used by the dirsnap CLI.
package types

import "encoding/xml"

const (
	NodeKindFile   = "file"
	NodeKindFolder = "folder"

	// SkipReasonNone marks a node whose contents were fully processed.
	SkipReasonNone = ""
	// SkipReasonIgnoredByRule marks a folder excluded by a cascading ignore rule.
	SkipReasonIgnoredByRule = "ignored"
	// SkipReasonTooManyEntries marks a folder collapsed because its visible
	// entry count exceeded the configured threshold.
	SkipReasonTooManyEntries = "too-many-entries"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// TreeNode represents one entry of a directory snapshot.
//
// Children is nil for file nodes and for folder nodes carrying a skip
// reason: recursion was never performed there, not merely skipped in
// rendering. A visited folder always carries a non-nil (possibly empty)
// Children slice.
type TreeNode struct {
	XMLName    xml.Name    `json:"-" xml:"node"`
	Name       string      `json:"name" xml:"name"`
	Path       string      `json:"path" xml:"path"`
	Kind       string      `json:"kind" xml:"kind"`
	SkipReason string      `json:"skipReason,omitempty" xml:"skipReason,omitempty"`
	SizeBytes  int64       `json:"sizeBytes,omitempty" xml:"sizeBytes,omitempty"`
	Children   []*TreeNode `json:"children,omitempty" xml:"children>node,omitempty"`
}

// BuildOptions configures a snapshot build.
type BuildOptions struct {
	// MaxLeaf collapses a directory once its visible entry count exceeds
	// this value. Zero disables the policy. The scan root is exempt.
	MaxLeaf int
	// IgnorePatterns are extra exclusion patterns applied only at the scan root.
	IgnorePatterns []string
	UseGitignore   bool
	UseIgnoreFile  bool
	IncludeGit     bool
	// Workers bounds parallel descent into sibling subtrees. Values below
	// two select the plain sequential recursion.
	Workers int
}

// TreeSummary captures the aggregate counts of a finished snapshot tree.
type TreeSummary struct {
	TotalFiles      int `json:"totalFiles" xml:"totalFiles"`
	TotalFolders    int `json:"totalFolders" xml:"totalFolders"`
	SkippedByIgnore int `json:"skippedByIgnore" xml:"skippedByIgnore"`
	SkippedBySize   int `json:"skippedBySize" xml:"skippedBySize"`
}

// Add returns the receiver's counts accumulated with another summary.
func (summary TreeSummary) Add(other TreeSummary) TreeSummary {
	summary.TotalFiles += other.TotalFiles
	summary.TotalFolders += other.TotalFolders
	summary.SkippedByIgnore += other.SkippedByIgnore
	summary.SkippedBySize += other.SkippedBySize
	return summary
}
