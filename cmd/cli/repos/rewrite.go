package repos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/mailshift/internal/batch"
	"github.com/temirov/mailshift/internal/plan"
	"github.com/temirov/mailshift/internal/repos/dependencies"
	"github.com/temirov/mailshift/internal/repos/discovery"
	"github.com/temirov/mailshift/internal/repos/prompt"
	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/rewrite"
	"github.com/temirov/mailshift/internal/selection"
	"github.com/temirov/mailshift/internal/summary"
	"github.com/temirov/mailshift/internal/utils"
	flagutils "github.com/temirov/mailshift/internal/utils/flags"
)

const (
	rewriteUseConstant              = "rewrite [root ...]"
	rewriteShortDescriptionConstant = "Replace a commit email address across repository history"
	rewriteLongDescriptionConstant  = "rewrite replaces one author/committer email address with another across the full history of the selected repositories. Local repositories are discovered under the given roots and picked from a numbered menu; --remote URLs are cloned first. Every destructive step asks for confirmation."

	sourceEmailQuestionConstant      = "Email address to replace: "
	destinationEmailQuestionConstant = "Replacement email address: "
	targetModeQuestionConstant       = "Rewrite local repositories or remote URLs? [local/remote] (default local): "
	scanRootQuestionConstant         = "Directory to scan for repositories (default .): "
	remoteURLsQuestionConstant       = "Repository URLs (comma-separated): "
	targetModeChoiceLabelConstant    = "mode"
	defaultScanRootConstant          = "."
	emptyEmailMessageConstant        = "email address must not be empty"
	emptyRemoteListMessageConstant   = "at least one repository URL is required"
	noRepositoriesFoundTemplate      = "No repositories found under %s\n"
	rootsJoinSeparatorConstant       = ", "

	ruleResolutionErrorTemplate   = "resolve rewrite rule: %w"
	targetResolutionErrorTemplate = "resolve repositories: %w"
	planConfirmationErrorTemplate = "confirm plan: %w"
	reportWriteErrorTemplate      = "write run report: %w"
	batchInterruptedErrorTemplate = "rewrite stopped: %w"

	rewriteCancelledLogMessage  = "rewrite cancelled before any repository was modified"
	rewriteFinishedLogMessage   = "rewrite finished"
	reportWrittenLogMessage     = "run report written"
	logFieldSummaryConstant     = "summary"
	logFieldModeConstant        = "mode"
	logFieldTargetCountConstant = "target_count"
	logFieldReportConstant      = "report"
)

var (
	errEmptyEmail      = errors.New(emptyEmailMessageConstant)
	errEmptyRemoteList = errors.New(emptyRemoteListMessageConstant)
)

// RewriteCommandBuilder assembles the rewrite command.
type RewriteCommandBuilder struct {
	LoggerProvider               LoggerProvider
	Discoverer                   shared.RepositoryDiscoverer
	GitExecutor                  shared.GitExecutor
	GitManager                   shared.GitRepositoryManager
	Engine                       rewrite.Engine
	Inspector                    batch.IdentityInspector
	FileSystem                   shared.FileSystem
	PrompterFactory              PrompterFactory
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() RewriteConfiguration
}

// rewriteRequest is the configuration merged with explicitly set flags.
type rewriteRequest struct {
	flagRoots        []string
	configuredRoots  []string
	remoteURLs       []string
	sourceEmail      string
	destinationEmail string
	cloneDirectory   string
	match            string
	dryRun           bool
	reportPath       string
}

// Build constructs the rewrite command.
func (builder *RewriteCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   rewriteUseConstant,
		Short: rewriteShortDescriptionConstant,
		Long:  rewriteLongDescriptionConstant,
	}

	rootValues := flagutils.BindRootFlags(command, flagutils.RootFlagValues{}, flagutils.RootFlagDefinition{Enabled: true})
	targetValues := flagutils.BindTargetFlags(command)
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.DefaultExecutionFlagDefinitions())

	command.RunE = func(command *cobra.Command, arguments []string) error {
		request := builder.resolveRequest(command, rootValues, targetValues)
		return builder.run(command, arguments, request)
	}

	return command, nil
}

func (builder *RewriteCommandBuilder) run(command *cobra.Command, arguments []string, request rewriteRequest) error {
	logger := resolveLogger(builder.LoggerProvider)
	output, palette := resolveOutput(command)
	reporter := shared.NewWriterReporter(output)
	prompter := resolvePrompter(builder.PrompterFactory, command)

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}
	gitManager, managerError := dependencies.ResolveGitRepositoryManager(builder.GitManager, gitExecutor)
	if managerError != nil {
		return managerError
	}
	engine, engineError := dependencies.ResolveRewriteEngine(builder.Engine, gitExecutor)
	if engineError != nil {
		return engineError
	}
	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)
	inspector := builder.Inspector
	if inspector == nil {
		inspector = rewrite.NewIdentityInspector()
	}

	rule, ruleError := resolveRule(prompter, reporter, request)
	if ruleError != nil {
		return fmt.Errorf(ruleResolutionErrorTemplate, ruleError)
	}

	mode, targets, targetsError := builder.resolveTargets(arguments, request, prompter, reporter)
	if targetsError != nil {
		return fmt.Errorf(targetResolutionErrorTemplate, targetsError)
	}
	if len(targets) == 0 {
		return nil
	}

	selected := shared.NewSelectionSet(targets)
	if mode == shared.TargetKindLocal {
		chosen, selectionError := selection.NewSelector(prompter, reporter, palette).Select(targets)
		if selectionError != nil {
			return fmt.Errorf(targetResolutionErrorTemplate, selectionError)
		}
		selected = chosen
	}

	confirmed, confirmationError := plan.NewGate(prompter, reporter, palette).Confirm(plan.Plan{
		Rule:    rule,
		Mode:    mode,
		Targets: selected,
		DryRun:  request.dryRun,
	})
	if confirmationError != nil {
		return fmt.Errorf(planConfirmationErrorTemplate, confirmationError)
	}
	if !confirmed {
		logger.Info(rewriteCancelledLogMessage)
		return nil
	}

	orchestrator, orchestratorError := batch.NewOrchestrator(batch.Dependencies{
		GitManager: gitManager,
		Engine:     engine,
		Inspector:  inspector,
		FileSystem: fileSystem,
		Prompter:   prompter,
		Reporter:   reporter,
		Palette:    palette,
		Logger:     logger,
	})
	if orchestratorError != nil {
		return orchestratorError
	}

	ledger := orchestrator.Run(command.Context(), batch.Options{
		Rule:           rule,
		Targets:        selected,
		CloneDirectory: request.cloneDirectory,
		DryRun:         request.dryRun,
	})

	summary.NewReporter(reporter, palette).Report(ledger)
	logger.Info(
		rewriteFinishedLogMessage,
		zap.String(logFieldModeConstant, mode.String()),
		zap.Int(logFieldTargetCountConstant, selected.Len()),
		zap.String(logFieldSummaryConstant, summary.ExitSummary(ledger)),
	)

	if len(request.reportPath) > 0 {
		if reportError := summary.WriteYAMLReport(fileSystem, request.reportPath, resolveRunIdentifier(command), rule, ledger); reportError != nil {
			return fmt.Errorf(reportWriteErrorTemplate, reportError)
		}
		logger.Info(reportWrittenLogMessage, zap.String(logFieldReportConstant, request.reportPath))
	}

	if ledger.Interrupted() {
		return fmt.Errorf(batchInterruptedErrorTemplate, shared.ErrPromptInterrupted)
	}
	return nil
}

// resolveTargets returns the candidate targets and the mode they belong to.
// Remote URLs win over roots; when neither is known the operator is asked.
func (builder *RewriteCommandBuilder) resolveTargets(arguments []string, request rewriteRequest, prompter shared.Prompter, reporter shared.Reporter) (shared.TargetKind, []shared.RepositoryTarget, error) {
	if len(request.remoteURLs) > 0 {
		targets, targetsError := buildRemoteTargets(request.remoteURLs)
		return shared.TargetKindRemote, targets, targetsError
	}

	roots := determineRepositoryRoots(arguments, request.flagRoots, request.configuredRoots)
	if len(roots) == 0 {
		mode, modeError := prompt.AskUntilValid(prompter, reporter, targetModeQuestionConstant, parseTargetMode)
		if modeError != nil {
			return shared.TargetKindLocal, nil, modeError
		}
		if mode == shared.TargetKindRemote {
			targets, targetsError := prompt.AskUntilValid(prompter, reporter, remoteURLsQuestionConstant, func(answer string) ([]shared.RepositoryTarget, error) {
				return buildRemoteTargets(splitRemoteURLs(answer))
			})
			return shared.TargetKindRemote, targets, targetsError
		}

		scanRoot, scanRootError := prompter.Ask(scanRootQuestionConstant)
		if scanRootError != nil {
			return shared.TargetKindLocal, nil, scanRootError
		}
		roots = rootSanitizer.Sanitize([]string{scanRoot})
		if len(roots) == 0 {
			roots = []string{defaultScanRootConstant}
		}
	}

	discoverer := dependencies.ResolveRepositoryDiscoverer(builder.Discoverer)
	targets, locateError := discovery.LocateTargets(discoverer, roots, request.match)
	if locateError != nil {
		return shared.TargetKindLocal, nil, locateError
	}
	if len(targets) == 0 {
		reporter.Printf(noRepositoriesFoundTemplate, strings.Join(roots, rootsJoinSeparatorConstant))
	}
	return shared.TargetKindLocal, targets, nil
}

func (builder *RewriteCommandBuilder) resolveRequest(command *cobra.Command, rootValues *flagutils.RootFlagValues, targetValues *flagutils.TargetFlagValues) rewriteRequest {
	configuration := builder.resolveConfiguration()
	request := rewriteRequest{
		configuredRoots:  configuration.RepositoryRoots,
		remoteURLs:       configuration.RemoteURLs,
		sourceEmail:      configuration.SourceEmail,
		destinationEmail: configuration.DestinationEmail,
		cloneDirectory:   configuration.CloneDirectory,
		match:            configuration.Match,
		dryRun:           configuration.DryRun,
		reportPath:       configuration.ReportPath,
	}

	flagSet := command.Flags()
	if flagSet.Changed(flagutils.DefaultRootFlagName) {
		request.flagRoots = rootValues.Roots
	}
	if flagSet.Changed(flagutils.RemoteFlagName) {
		request.remoteURLs = trimValues(targetValues.RemoteURLs)
	}
	if flagSet.Changed(flagutils.SourceEmailFlagName) {
		request.sourceEmail = strings.TrimSpace(targetValues.SourceEmail)
	}
	if flagSet.Changed(flagutils.DestinationEmailFlagName) {
		request.destinationEmail = strings.TrimSpace(targetValues.DestinationEmail)
	}
	if flagSet.Changed(flagutils.CloneDirectoryFlagName) {
		if cloneDirectory := pathSanitizer.SanitizePath(targetValues.CloneDirectory); len(cloneDirectory) > 0 {
			request.cloneDirectory = cloneDirectory
		}
	}
	if flagSet.Changed(flagutils.MatchFlagName) {
		request.match = strings.TrimSpace(targetValues.Match)
	}

	if executionFlags, available := flagutils.ResolveExecutionFlags(command); available {
		if executionFlags.DryRunSet {
			request.dryRun = executionFlags.DryRun
		}
		if executionFlags.ReportPathSet {
			request.reportPath = pathSanitizer.SanitizePath(executionFlags.ReportPath)
		}
	}
	return request
}

func (builder *RewriteCommandBuilder) resolveConfiguration() RewriteConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultRewriteConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

// resolveRule asks for whichever address is missing. The rule is built once per run.
func resolveRule(prompter shared.Prompter, reporter shared.Reporter, request rewriteRequest) (rewrite.Rule, error) {
	sourceEmail := request.sourceEmail
	if len(sourceEmail) == 0 {
		answer, askError := prompt.AskUntilValid(prompter, reporter, sourceEmailQuestionConstant, parseEmail)
		if askError != nil {
			return rewrite.Rule{}, askError
		}
		sourceEmail = answer
	}

	destinationEmail := request.destinationEmail
	if len(destinationEmail) == 0 {
		answer, askError := prompt.AskUntilValid(prompter, reporter, destinationEmailQuestionConstant, parseEmail)
		if askError != nil {
			return rewrite.Rule{}, askError
		}
		destinationEmail = answer
	}

	return rewrite.NewRule(sourceEmail, destinationEmail)
}

func parseEmail(answer string) (string, error) {
	trimmed := strings.TrimSpace(answer)
	if len(trimmed) == 0 {
		return "", errEmptyEmail
	}
	return trimmed, nil
}

func parseTargetMode(answer string) (shared.TargetKind, error) {
	if len(strings.TrimSpace(answer)) == 0 {
		return shared.TargetKindLocal, nil
	}
	choice, choiceError := flagutils.ValidateChoice(
		targetModeChoiceLabelConstant,
		answer,
		[]string{shared.TargetKindLocal.String(), shared.TargetKindRemote.String()},
	)
	if choiceError != nil {
		return shared.TargetKindLocal, choiceError
	}
	if choice == shared.TargetKindRemote.String() {
		return shared.TargetKindRemote, nil
	}
	return shared.TargetKindLocal, nil
}

func buildRemoteTargets(remoteURLs []string) ([]shared.RepositoryTarget, error) {
	if len(remoteURLs) == 0 {
		return nil, errEmptyRemoteList
	}
	targets := make([]shared.RepositoryTarget, 0, len(remoteURLs))
	for _, remoteURL := range remoteURLs {
		target, targetError := shared.NewRemoteTarget(remoteURL)
		if targetError != nil {
			return nil, targetError
		}
		targets = append(targets, target)
	}
	return shared.NewSelectionSet(targets).Targets(), nil
}

func resolveRunIdentifier(command *cobra.Command) string {
	if command != nil {
		if runIdentifier, exists := utils.NewCommandContextAccessor().RunIdentifier(command.Context()); exists {
			return runIdentifier
		}
	}
	return uuid.NewString()
}
