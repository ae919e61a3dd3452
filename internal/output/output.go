// Package output renders snapshot trees as raw text, JSON, or XML.
package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/temirov/dirsnap/internal/scan"
	"github.com/temirov/dirsnap/internal/types"
	"github.com/temirov/dirsnap/internal/utils"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader      = xml.Header
	xmlRootElement = "result"

	// ignoredMarker annotates a folder collapsed by an ignore rule.
	ignoredMarker = "ignored"
	// truncatedMarker annotates a folder collapsed by the entry-count threshold.
	truncatedMarker = "truncated"

	emptyJSONArray = "[]"
)

// RenderTreeRaw renders one snapshot tree as an indented text tree. Skipped
// folders carry a marker explaining why they were not expanded; files carry
// their human-readable size.
func RenderTreeRaw(node *types.TreeNode) string {
	if node == nil {
		return ""
	}
	if node.Kind == types.NodeKindFile {
		return fmt.Sprintf("[File] %s\n", node.Path)
	}
	printedTree := treeprint.NewWithRoot(node.Path)
	appendChildren(printedTree, node)
	return printedTree.String()
}

// appendChildren adds the node's children to the printed branch in their
// already-sorted order.
func appendChildren(branch treeprint.Tree, node *types.TreeNode) {
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		if child.Kind == types.NodeKindFile {
			if child.SizeBytes > 0 {
				branch.AddMetaNode(utils.FormatFileSize(child.SizeBytes), child.Name)
			} else {
				branch.AddNode(child.Name)
			}
			continue
		}
		switch child.SkipReason {
		case types.SkipReasonIgnoredByRule:
			branch.AddMetaBranch(ignoredMarker, child.Name)
		case types.SkipReasonTooManyEntries:
			branch.AddMetaBranch(truncatedMarker, child.Name)
		default:
			appendChildren(branch.AddBranch(child.Name), child)
		}
	}
}

// RenderTreesRaw renders a sequence of snapshot trees, separated by blank
// lines, optionally followed by the aggregate summary line.
func RenderTreesRaw(nodes []*types.TreeNode, includeSummary bool) string {
	var builder strings.Builder
	for nodeIndex, node := range nodes {
		if nodeIndex > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(RenderTreeRaw(node))
	}
	if includeSummary {
		var aggregate types.TreeSummary
		for _, node := range nodes {
			aggregate = aggregate.Add(scan.Summarize(node))
		}
		builder.WriteString(FormatSummaryLine(aggregate))
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderTreesJSON marshals snapshot trees to indented JSON. A single tree is
// rendered as one object rather than a one-element array.
func RenderTreesJSON(nodes []*types.TreeNode) (string, error) {
	if len(nodes) == 0 {
		return emptyJSONArray, nil
	}
	if len(nodes) == 1 {
		encoded, jsonEncodeError := json.MarshalIndent(nodes[0], indentPrefix, indentSpacer)
		return string(encoded), jsonEncodeError
	}
	encoded, jsonEncodeError := json.MarshalIndent(nodes, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderTreesXML marshals snapshot trees as an XML document under a result
// root element.
func RenderTreesXML(nodes []*types.TreeNode) (string, error) {
	wrapper := struct {
		XMLName xml.Name          `xml:""`
		Nodes   []*types.TreeNode `xml:"node"`
	}{
		XMLName: xml.Name{Local: xmlRootElement},
		Nodes:   nodes,
	}
	encoded, xmlMarshalError := xml.MarshalIndent(wrapper, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded), nil
}

// FormatSummaryLine formats the aggregate counts produced by scan.Summarize.
func FormatSummaryLine(summary types.TreeSummary) string {
	fileLabel := "files"
	if summary.TotalFiles == 1 {
		fileLabel = "file"
	}
	folderLabel := "folders"
	if summary.TotalFolders == 1 {
		folderLabel = "folder"
	}
	return fmt.Sprintf(
		"Summary: %d %s, %d %s, %d ignored, %d truncated",
		summary.TotalFiles, fileLabel,
		summary.TotalFolders, folderLabel,
		summary.SkippedByIgnore, summary.SkippedBySize,
	)
}
