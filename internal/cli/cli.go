// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/temirov/dirsnap/internal/config"
	"github.com/temirov/dirsnap/internal/output"
	"github.com/temirov/dirsnap/internal/scan"
	"github.com/temirov/dirsnap/internal/services/clipboard"
	"github.com/temirov/dirsnap/internal/types"
	"github.com/temirov/dirsnap/internal/utils"
)

const (
	exclusionFlagName   = "e"
	noGitignoreFlagName = "no-gitignore"
	noIgnoreFlagName    = "no-ignore"
	includeGitFlagName  = "git"
	maxLeafFlagName     = "max-leaf"
	workersFlagName     = "workers"
	formatFlagName      = "format"
	summaryFlagName     = "summary"
	copyFlagName        = "copy"
	configFlagName      = "config"
	versionFlagName     = "version"
	globalFlagName      = "global"
	forceFlagName       = "force"

	versionTemplate      = "dirsnap version: %s\n"
	defaultPath          = "."
	rootUse              = "dirsnap"
	rootShortDescription = "dirsnap command line interface"
	rootLongDescription  = `dirsnap snapshots a directory subtree into a version-control-aware tree.
Entries matched by cascading ignore rules are reported as collapsed folders
rather than silently dropped, and directories with too many visible entries
can be collapsed to bound output size. Use --format to select raw, json, or
xml output, and --version to print the application version.`
	versionFlagDescription = "display application version"

	treeUse              = "tree [paths...]"
	treeAlias            = "t"
	treeShortDescription = "display directory snapshot tree (" + treeAlias + ")"
	treeLongDescription  = `Snapshot one or more paths into directory trees.
Folders excluded by ignore rules appear collapsed with an [ignored] marker;
folders whose visible entry count exceeds --max-leaf appear with a
[truncated] marker. Use --format to select raw, json, or xml output.`
	treeUsageExample = `  # Render the snapshot in JSON format
  dirsnap tree --format json ./cmd

  # Exclude the vendor directory and collapse large directories
  dirsnap tree -e vendor --max-leaf 50 .`

	initUse              = "init"
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write the default ` + utils.ConfigFileName + ` configuration.
Use --global to write into the home configuration directory instead of the
working directory, and --force to overwrite an existing file.`

	exclusionFlagDescription        = "exclude path pattern (applied at the scan root)"
	disableGitignoreFlagDescription = "do not use .gitignore declarations"
	disableIgnoreFlagDescription    = "do not use .ignore declarations"
	includeGitFlagDescription       = "include git metadata directory"
	maxLeafFlagDescription          = "collapse directories with more visible entries than this (0 disables)"
	workersFlagDescription          = "bound for parallel descent into sibling subtrees"
	formatFlagDescription           = "output format"
	summaryFlagDescription          = "append the aggregate summary line"
	copyFlagDescription             = "copy rendered output to the system clipboard"
	configFlagDescription           = "explicit configuration file path"
	globalFlagDescription           = "write configuration into the home directory"
	forceFlagDescription            = "overwrite an existing configuration file"

	defaultOutputFormat = types.FormatRaw
	defaultWorkerCount  = 1

	invalidFormatMessage        = "invalid format value '%s'"
	invalidMaxLeafMessage       = "invalid max-leaf value %d: must be zero or positive"
	invalidWorkersMessage       = "invalid workers value %d: must be positive"
	unsupportedCommandMessage   = "unsupported command"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	configurationWrittenFormat  = "Wrote configuration to %s\n"

	warningSkipPathFormat      = "Warning: skipping %s: %v\n"
	warningClipboardFormat     = "Warning: unable to copy output to clipboard: %v\n"
	errorAbsolutePathFormat    = "abs failed for '%s': %w"
	errorPathMissingFormat     = "path '%s' does not exist"
	errorStatFormat            = "stat failed for '%s': %w"
	errorNoValidPathsMessage   = "no valid paths"
	errorLoadConfigurationFmt  = "loading configuration: %w"
	errorRenderingOutputFormat = "generating output: %w"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// Execute runs the dirsnap application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// pathOptions stores configuration for path-related flags.
type pathOptions struct {
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
	includeGit        bool
}

// addPathFlags registers path-related flags on the command.
func addPathFlags(command *cobra.Command, options *pathOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	command.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	command.Flags().BoolVar(&options.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
	command.Flags().BoolVar(&options.includeGit, includeGitFlagName, false, includeGitFlagDescription)
}

// treeSettings is the fully resolved configuration of one tree invocation,
// combining built-in defaults, the configuration file, and command flags.
type treeSettings struct {
	buildOptions   types.BuildOptions
	format         string
	includeSummary bool
	copyOutput     bool
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand() *cobra.Command {
	var pathConfiguration pathOptions
	var outputFormat string
	var maxLeafThreshold int
	var workerCount int
	var summaryEnabled bool
	var copyEnabled bool
	var configurationPath string

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: configurationPath,
			})
			if configurationError != nil {
				return fmt.Errorf(errorLoadConfigurationFmt, configurationError)
			}

			settings, settingsError := resolveTreeSettings(command, treeFlagValues{
				pathConfiguration: pathConfiguration,
				format:            outputFormat,
				maxLeaf:           maxLeafThreshold,
				workers:           workerCount,
				summary:           summaryEnabled,
				copyOutput:        copyEnabled,
			}, applicationConfiguration.Tree)
			if settingsError != nil {
				return settingsError
			}

			commandContext, stopSignalHandling := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
			defer stopSignalHandling()

			return runTree(commandContext, arguments, settings, clipboard.NewService())
		},
	}

	addPathFlags(treeCommand, &pathConfiguration)
	treeCommand.Flags().StringVar(&outputFormat, formatFlagName, defaultOutputFormat, formatFlagDescription)
	treeCommand.Flags().IntVar(&maxLeafThreshold, maxLeafFlagName, 0, maxLeafFlagDescription)
	treeCommand.Flags().IntVar(&workerCount, workersFlagName, defaultWorkerCount, workersFlagDescription)
	treeCommand.Flags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &summaryEnabled, summaryFlagName, true, summaryFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	return treeCommand
}

// treeFlagValues carries the raw flag values of one tree invocation.
type treeFlagValues struct {
	pathConfiguration pathOptions
	format            string
	maxLeaf           int
	workers           int
	summary           bool
	copyOutput        bool
}

// resolveTreeSettings combines flag values with configuration file defaults.
// An explicitly set flag always wins over the configuration file.
func resolveTreeSettings(command *cobra.Command, flagValues treeFlagValues, configuration config.TreeCommandConfiguration) (treeSettings, error) {
	settings := treeSettings{
		format:         defaultOutputFormat,
		includeSummary: true,
		buildOptions: types.BuildOptions{
			UseGitignore:  true,
			UseIgnoreFile: true,
			Workers:       defaultWorkerCount,
		},
	}

	if configuration.Format != "" {
		settings.format = configuration.Format
	}
	if configuration.Summary != nil {
		settings.includeSummary = *configuration.Summary
	}
	if configuration.MaxLeaf != nil {
		settings.buildOptions.MaxLeaf = *configuration.MaxLeaf
	}
	if configuration.Workers != nil {
		settings.buildOptions.Workers = *configuration.Workers
	}
	if configuration.Clipboard != nil {
		settings.copyOutput = *configuration.Clipboard
	}
	if configuration.Paths.UseGitignore != nil {
		settings.buildOptions.UseGitignore = *configuration.Paths.UseGitignore
	}
	if configuration.Paths.UseIgnoreFile != nil {
		settings.buildOptions.UseIgnoreFile = *configuration.Paths.UseIgnoreFile
	}
	if configuration.Paths.IncludeGit != nil {
		settings.buildOptions.IncludeGit = *configuration.Paths.IncludeGit
	}
	settings.buildOptions.IgnorePatterns = append(settings.buildOptions.IgnorePatterns, configuration.Paths.Exclude...)

	commandFlags := command.Flags()
	if commandFlags.Changed(formatFlagName) {
		settings.format = flagValues.format
	}
	if commandFlags.Changed(summaryFlagName) {
		settings.includeSummary = flagValues.summary
	}
	if commandFlags.Changed(copyFlagName) {
		settings.copyOutput = flagValues.copyOutput
	}
	if commandFlags.Changed(maxLeafFlagName) {
		settings.buildOptions.MaxLeaf = flagValues.maxLeaf
	}
	if commandFlags.Changed(workersFlagName) {
		settings.buildOptions.Workers = flagValues.workers
	}
	if commandFlags.Changed(noGitignoreFlagName) {
		settings.buildOptions.UseGitignore = !flagValues.pathConfiguration.disableGitignore
	}
	if commandFlags.Changed(noIgnoreFlagName) {
		settings.buildOptions.UseIgnoreFile = !flagValues.pathConfiguration.disableIgnoreFile
	}
	if commandFlags.Changed(includeGitFlagName) {
		settings.buildOptions.IncludeGit = flagValues.pathConfiguration.includeGit
	}
	settings.buildOptions.IgnorePatterns = append(settings.buildOptions.IgnorePatterns, flagValues.pathConfiguration.exclusionPatterns...)
	settings.buildOptions.IgnorePatterns = utils.DeduplicatePatterns(settings.buildOptions.IgnorePatterns)

	settings.format = strings.ToLower(settings.format)
	if !isSupportedFormat(settings.format) {
		return treeSettings{}, fmt.Errorf(invalidFormatMessage, settings.format)
	}
	if settings.buildOptions.MaxLeaf < 0 {
		return treeSettings{}, fmt.Errorf(invalidMaxLeafMessage, settings.buildOptions.MaxLeaf)
	}
	if settings.buildOptions.Workers < 1 {
		return treeSettings{}, fmt.Errorf(invalidWorkersMessage, settings.buildOptions.Workers)
	}
	return settings, nil
}

// runTree snapshots every validated path and renders the collected trees.
func runTree(commandContext context.Context, inputPaths []string, settings treeSettings, copier clipboard.Copier) error {
	validatedPaths, validationError := resolveAndValidatePaths(inputPaths)
	if validationError != nil {
		return validationError
	}

	builder := scan.NewBuilder(settings.buildOptions)
	collectedNodes := make([]*types.TreeNode, 0, len(validatedPaths))
	for _, validatedPath := range validatedPaths {
		if !validatedPath.IsDir {
			collectedNodes = append(collectedNodes, newSingleFileNode(validatedPath.AbsolutePath))
			continue
		}
		rootNode, buildError := builder.Build(commandContext, validatedPath.AbsolutePath)
		if buildError != nil {
			return buildError
		}
		collectedNodes = append(collectedNodes, rootNode)
	}

	renderedOutput, renderError := renderTrees(collectedNodes, settings.format, settings.includeSummary)
	if renderError != nil {
		return fmt.Errorf(errorRenderingOutputFormat, renderError)
	}
	fmt.Print(renderedOutput)
	if !strings.HasSuffix(renderedOutput, "\n") {
		fmt.Println()
	}

	if settings.copyOutput && copier != nil {
		if copyError := copier.Copy(renderedOutput); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		}
	}
	return nil
}

// newSingleFileNode represents an explicitly requested file path as a file
// node; a stat failure degrades to size zero, matching the builder's policy.
func newSingleFileNode(absolutePath string) *types.TreeNode {
	fileNode := &types.TreeNode{
		Name: filepath.Base(absolutePath),
		Path: absolutePath,
		Kind: types.NodeKindFile,
	}
	if pathInfo, statError := os.Stat(absolutePath); statError == nil {
		fileNode.SizeBytes = pathInfo.Size()
	}
	return fileNode
}

// renderTrees renders the collected nodes in the requested format.
func renderTrees(nodes []*types.TreeNode, format string, includeSummary bool) (string, error) {
	switch format {
	case types.FormatJSON:
		return output.RenderTreesJSON(nodes)
	case types.FormatXML:
		return output.RenderTreesXML(nodes)
	case types.FormatRaw:
		return output.RenderTreesRaw(nodes, includeSummary), nil
	default:
		return "", fmt.Errorf(unsupportedCommandMessage)
	}
}

// resolveAndValidatePaths converts input paths to absolute paths, checks
// existence, determines if they are files or directories, and removes
// duplicates. Invalid paths are skipped with a warning; it is an error only
// when no path survives.
func resolveAndValidatePaths(inputPaths []string) ([]types.ValidatedPath, error) {
	uniquePaths := make(map[string]struct{})
	var validatedPaths []types.ValidatedPath
	for _, inputPath := range inputPaths {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			fmt.Fprintf(os.Stderr, warningSkipPathFormat, inputPath, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError))
			continue
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, alreadySeen := uniquePaths[cleanPath]; alreadySeen {
			continue
		}
		pathInfo, statError := os.Stat(cleanPath)
		if statError != nil {
			if os.IsNotExist(statError) {
				fmt.Fprintf(os.Stderr, warningSkipPathFormat, inputPath, fmt.Errorf(errorPathMissingFormat, cleanPath))
			} else {
				fmt.Fprintf(os.Stderr, warningSkipPathFormat, inputPath, fmt.Errorf(errorStatFormat, cleanPath, statError))
			}
			continue
		}
		uniquePaths[cleanPath] = struct{}{}
		validatedPaths = append(validatedPaths, types.ValidatedPath{
			AbsolutePath: cleanPath,
			IsDir:        pathInfo.IsDir(),
		})
	}
	if len(validatedPaths) == 0 {
		return nil, fmt.Errorf(errorNoValidPathsMessage)
	}
	return validatedPaths, nil
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Printf(configurationWrittenFormat, writtenPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}
