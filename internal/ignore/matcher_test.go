package ignore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/dirsnap/internal/ignore"
	"github.com/temirov/dirsnap/internal/types"
)

const gitIgnoreFileName = ".gitignore"

func defaultBuildOptions() types.BuildOptions {
	return types.BuildOptions{
		UseGitignore:  true,
		UseIgnoreFile: true,
	}
}

func writeIgnoreDeclaration(testingHandle *testing.T, directoryPath string, fileName string, content string) {
	testingHandle.Helper()
	writeError := os.WriteFile(filepath.Join(directoryPath, fileName), []byte(content), 0o644)
	if writeError != nil {
		testingHandle.Fatalf("writing %s: %v", fileName, writeError)
	}
}

// TestMatcherDirectoryOnlyPattern verifies that a pattern with a trailing
// separator excludes a directory but not a same-named file or a sibling
// whose name merely shares the prefix.
func TestMatcherDirectoryOnlyPattern(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeIgnoreDeclaration(testingHandle, rootDirectory, gitIgnoreFileName, "coverage/\n")

	matcher := ignore.NewMatcher(rootDirectory, defaultBuildOptions(), true)

	if !matcher.Excludes(filepath.Join(rootDirectory, "coverage"), true) {
		testingHandle.Errorf("expected directory 'coverage' to be excluded")
	}
	if matcher.Excludes(filepath.Join(rootDirectory, "coverage"), false) {
		testingHandle.Errorf("directory-only pattern must not exclude a file named 'coverage'")
	}
	if matcher.Excludes(filepath.Join(rootDirectory, "coverage_file"), false) {
		testingHandle.Errorf("directory-only pattern must not exclude sibling 'coverage_file'")
	}
}

// TestMatcherAnchoredNestedPattern verifies that a pattern containing a
// separator anchors to the declaring directory instead of matching the base
// name anywhere.
func TestMatcherAnchoredNestedPattern(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeIgnoreDeclaration(testingHandle, rootDirectory, gitIgnoreFileName, "src/ignore.txt\n")

	matcher := ignore.NewMatcher(rootDirectory, defaultBuildOptions(), true)

	if !matcher.Excludes(filepath.Join(rootDirectory, "src", "ignore.txt"), false) {
		testingHandle.Errorf("expected src/ignore.txt to be excluded")
	}
	if matcher.Excludes(filepath.Join(rootDirectory, "ignore.txt"), false) {
		testingHandle.Errorf("anchored pattern must not exclude root-level ignore.txt")
	}
	if matcher.Excludes(filepath.Join(rootDirectory, "other", "src", "ignore.txt"), false) {
		testingHandle.Errorf("anchored pattern must not exclude a deeper src/ignore.txt")
	}
}

// TestMatcherExternalPatternsOnlyAtRoot verifies that externally supplied
// patterns and the version-control exclusion apply only to the root level
// matcher.
func TestMatcherExternalPatternsOnlyAtRoot(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	buildOptions := defaultBuildOptions()
	buildOptions.IgnorePatterns = []string{"vendor/"}

	rootMatcher := ignore.NewMatcher(rootDirectory, buildOptions, true)
	if !rootMatcher.Excludes(filepath.Join(rootDirectory, "vendor"), true) {
		testingHandle.Errorf("expected external pattern to exclude vendor at the root")
	}
	if !rootMatcher.Excludes(filepath.Join(rootDirectory, ".git"), true) {
		testingHandle.Errorf("expected the git metadata directory to be excluded at the root")
	}

	nestedDirectory := filepath.Join(rootDirectory, "nested")
	if mkdirError := os.Mkdir(nestedDirectory, 0o755); mkdirError != nil {
		testingHandle.Fatalf("mkdir nested: %v", mkdirError)
	}
	nestedMatcher := ignore.NewMatcher(nestedDirectory, buildOptions, false)
	if nestedMatcher.Excludes(filepath.Join(nestedDirectory, "vendor"), true) {
		testingHandle.Errorf("external patterns must not apply to non-root levels")
	}
}

// TestMatcherIncludeGitOption verifies that the fixed git exclusion can be
// lifted.
func TestMatcherIncludeGitOption(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	buildOptions := defaultBuildOptions()
	buildOptions.IncludeGit = true

	matcher := ignore.NewMatcher(rootDirectory, buildOptions, true)
	if matcher.Excludes(filepath.Join(rootDirectory, ".git"), true) {
		testingHandle.Errorf("git directory must not be excluded when IncludeGit is set")
	}
}

// TestStackResolvesLevelsRelativeToDeclaringDirectory verifies the cascading
// semantics: a rule declared in a nested directory's ignore file applies
// beneath that directory only, while root-level rules cascade down.
func TestStackResolvesLevelsRelativeToDeclaringDirectory(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	nestedDirectory := filepath.Join(rootDirectory, "sub")
	if mkdirError := os.Mkdir(nestedDirectory, 0o755); mkdirError != nil {
		testingHandle.Fatalf("mkdir sub: %v", mkdirError)
	}
	writeIgnoreDeclaration(testingHandle, rootDirectory, gitIgnoreFileName, "rootonly.txt\n")
	writeIgnoreDeclaration(testingHandle, nestedDirectory, gitIgnoreFileName, "build/\n")

	buildOptions := defaultBuildOptions()
	rootStack := ignore.Stack{}.Push(ignore.NewMatcher(rootDirectory, buildOptions, true))
	nestedStack := rootStack.Push(ignore.NewMatcher(nestedDirectory, buildOptions, false))

	if !nestedStack.IsExcluded(filepath.Join(nestedDirectory, "build"), true) {
		testingHandle.Errorf("expected sub/build to be excluded by the nested level")
	}
	if rootStack.IsExcluded(filepath.Join(rootDirectory, "build"), true) {
		testingHandle.Errorf("nested rule must not exclude a root-level build directory")
	}
	if !nestedStack.IsExcluded(filepath.Join(nestedDirectory, "rootonly.txt"), false) {
		testingHandle.Errorf("root-level rule must cascade into nested directories")
	}
}

// TestStackPushLeavesReceiverUnmodified verifies copy-on-descend behavior.
func TestStackPushLeavesReceiverUnmodified(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	buildOptions := defaultBuildOptions()

	baseStack := ignore.Stack{}.Push(ignore.NewMatcher(rootDirectory, buildOptions, true))
	extendedStack := baseStack.Push(ignore.NewMatcher(rootDirectory, buildOptions, false))

	if len(baseStack) != 1 {
		testingHandle.Fatalf("Push mutated the receiving stack: length %d", len(baseStack))
	}
	if len(extendedStack) != 2 {
		testingHandle.Fatalf("expected extended stack of length 2, got %d", len(extendedStack))
	}
}

// TestMatcherIgnoresEntriesOutsideDeclaringDirectory verifies that a level
// never excludes paths outside its own descent.
func TestMatcherIgnoresEntriesOutsideDeclaringDirectory(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	nestedDirectory := filepath.Join(rootDirectory, "inner")
	if mkdirError := os.Mkdir(nestedDirectory, 0o755); mkdirError != nil {
		testingHandle.Fatalf("mkdir inner: %v", mkdirError)
	}
	writeIgnoreDeclaration(testingHandle, nestedDirectory, gitIgnoreFileName, "notes.txt\n")

	nestedMatcher := ignore.NewMatcher(nestedDirectory, defaultBuildOptions(), false)
	if nestedMatcher.Excludes(filepath.Join(rootDirectory, "notes.txt"), false) {
		testingHandle.Errorf("a nested level must not exclude entries outside its declaring directory")
	}
}
