package utils_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/dirsnap/internal/utils"
)

// TestDeduplicatePatterns verifies order-preserving deduplication.
func TestDeduplicatePatterns(testingHandle *testing.T) {
	deduplicated := utils.DeduplicatePatterns([]string{"a", "b", "a", "c", "b"})
	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(deduplicated, expected) {
		testingHandle.Fatalf("expected %v, got %v", expected, deduplicated)
	}
}

// TestRelativePathOrSelf verifies relative resolution and the same-directory case.
func TestRelativePathOrSelf(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()

	if relative := utils.RelativePathOrSelf(rootDirectory, rootDirectory); relative != "." {
		testingHandle.Errorf("expected '.' for identical paths, got %q", relative)
	}
	nestedPath := filepath.Join(rootDirectory, "sub", "file.txt")
	if relative := utils.RelativePathOrSelf(nestedPath, rootDirectory); relative != "sub/file.txt" {
		testingHandle.Errorf("expected forward-slash relative path, got %q", relative)
	}
}

// TestFormatFileSize verifies unit selection and rounding.
func TestFormatFileSize(testingHandle *testing.T) {
	testCases := []struct {
		bytes    int64
		expected string
	}{
		{0, "0b"},
		{-5, "0b"},
		{512, "512b"},
		{1024, "1kb"},
		{1536, "1.5kb"},
		{2048, "2kb"},
		{10 * 1024 * 1024, "10mb"},
	}
	for _, testCase := range testCases {
		if formatted := utils.FormatFileSize(testCase.bytes); formatted != testCase.expected {
			testingHandle.Errorf("FormatFileSize(%d): expected %q, got %q", testCase.bytes, testCase.expected, formatted)
		}
	}
}
