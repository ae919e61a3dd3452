// Package ignore implements the cascading ignore-rule stack that decides
// which entries a directory snapshot excludes. Each directory level declares
// its own rules; a candidate path is tested against every level relative to
// the directory that declared that level's rules, exactly as layered
// .gitignore files behave.
package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/dirsnap/internal/config"
	"github.com/temirov/dirsnap/internal/types"
	"github.com/temirov/dirsnap/internal/utils"
)

const directoryPatternSuffix = "/"

// Matcher wraps the ignore rules declared at one directory level together
// with the absolute path of the directory that declared them.
type Matcher struct {
	declaringDirectory string
	rules              *gitignore.GitIgnore
}

// NewMatcher builds the matcher for one directory level from the directory's
// own ignore declarations. An unreadable or missing declaration file
// contributes no rules. Only at the scan root the fixed version-control
// metadata exclusion and the externally supplied patterns are added.
func NewMatcher(directoryPath string, options types.BuildOptions, atRoot bool) *Matcher {
	var patternLines []string
	if options.UseIgnoreFile {
		declaredPatterns, _ := config.LoadIgnoreFilePatterns(filepath.Join(directoryPath, utils.IgnoreFileName))
		patternLines = append(patternLines, declaredPatterns...)
	}
	if options.UseGitignore {
		declaredPatterns, _ := config.LoadIgnoreFilePatterns(filepath.Join(directoryPath, utils.GitIgnoreFileName))
		patternLines = append(patternLines, declaredPatterns...)
	}
	if atRoot {
		// Declaration files are themselves never part of a snapshot. Their
		// basenames carry no directory separator, so gitignore semantics
		// apply them at every depth beneath the root.
		patternLines = append(patternLines, utils.IgnoreFileName, utils.GitIgnoreFileName)
		if !options.IncludeGit {
			patternLines = append(patternLines, utils.GitDirectoryName+directoryPatternSuffix)
		}
		for _, externalPattern := range options.IgnorePatterns {
			trimmedPattern := strings.TrimSpace(externalPattern)
			if trimmedPattern != "" {
				patternLines = append(patternLines, trimmedPattern)
			}
		}
	}
	for patternIndex, patternLine := range patternLines {
		patternLines[patternIndex] = anchorNestedPattern(patternLine)
	}
	patternLines = utils.DeduplicatePatterns(patternLines)

	return &Matcher{
		declaringDirectory: directoryPath,
		rules:              gitignore.CompileIgnoreLines(patternLines...),
	}
}

// anchorNestedPattern applies the anchoring rule for patterns containing a
// non-trailing separator: "sub/name" is relative to the declaring directory,
// not a match at arbitrary depth, so it gains a leading separator before
// compilation. Patterns with at most a trailing separator keep their
// match-at-any-depth behavior, as do explicitly anchored and "**" patterns.
func anchorNestedPattern(patternLine string) string {
	body := patternLine
	negated := strings.HasPrefix(body, "!")
	if negated {
		body = body[1:]
	}
	if strings.HasPrefix(body, directoryPatternSuffix) || strings.HasPrefix(body, "**") {
		return patternLine
	}
	if !strings.Contains(strings.TrimSuffix(body, directoryPatternSuffix), directoryPatternSuffix) {
		return patternLine
	}
	if negated {
		return "!" + directoryPatternSuffix + body
	}
	return directoryPatternSuffix + body
}

// Excludes reports whether the entry at absoluteEntryPath is excluded by
// this level's rules. The entry path is resolved relative to the declaring
// directory before matching; entries outside the declaring directory's
// descent are never excluded. For directories the directory form (trailing
// separator) is tested first so directory-only patterns apply, then the
// plain form; a directory-only pattern never matches a same-named file.
func (matcher *Matcher) Excludes(absoluteEntryPath string, isDirectory bool) bool {
	relativeEntryPath := utils.RelativePathOrSelf(absoluteEntryPath, matcher.declaringDirectory)
	if relativeEntryPath == "." || strings.HasPrefix(relativeEntryPath, "..") || filepath.IsAbs(relativeEntryPath) {
		return false
	}
	if isDirectory && matcher.rules.MatchesPath(relativeEntryPath+directoryPatternSuffix) {
		return true
	}
	return matcher.rules.MatchesPath(relativeEntryPath)
}

// Stack is the ordered list of matchers accumulated from the scan root down
// to the current directory. Stacks are copied on descent: Push returns a new
// stack and never mutates the receiver, so sibling subtrees share no state.
type Stack []*Matcher

// Push returns a new stack extended with the given level, leaving the
// receiver unmodified.
func (stack Stack) Push(level *Matcher) Stack {
	extended := make(Stack, 0, len(stack)+1)
	extended = append(extended, stack...)
	return append(extended, level)
}

// IsExcluded reports whether any level of the stack excludes the entry.
// Levels are tested from the scan root downward and the first match wins;
// cascading rules are purely additive exclusion, a deeper level can never
// re-include a path an outer level excluded.
func (stack Stack) IsExcluded(absoluteEntryPath string, isDirectory bool) bool {
	for _, level := range stack {
		if level.Excludes(absoluteEntryPath, isDirectory) {
			return true
		}
	}
	return false
}
