package scan

import "github.com/temirov/dirsnap/internal/types"

// Summarize walks a finished snapshot tree and counts files, folders, and
// skip reasons. Every folder counts toward TotalFolders, the root included;
// a skipped folder additionally counts toward its skip bucket. Skipped
// folders have no children, so the walk terminates there naturally.
func Summarize(node *types.TreeNode) types.TreeSummary {
	var summary types.TreeSummary
	accumulateSummary(node, &summary)
	return summary
}

func accumulateSummary(node *types.TreeNode, summary *types.TreeSummary) {
	if node == nil {
		return
	}
	switch node.Kind {
	case types.NodeKindFile:
		summary.TotalFiles++
	case types.NodeKindFolder:
		summary.TotalFolders++
		switch node.SkipReason {
		case types.SkipReasonIgnoredByRule:
			summary.SkippedByIgnore++
		case types.SkipReasonTooManyEntries:
			summary.SkippedBySize++
		}
	}
	for _, child := range node.Children {
		accumulateSummary(child, summary)
	}
}
