package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/mailshift/internal/gitrepo"
	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/rewrite"
	"github.com/temirov/mailshift/internal/ui"
)

const (
	startMessage            = "REWRITE-START: %s (%s)\n"
	ruleMessage             = "  rule: %s\n"
	skipDeclinedMessage     = "REWRITE-SKIP: %s (operator declined)\n"
	clonedMessage           = "REWRITE-CLONED: %s into %s\n"
	rewrittenMessage        = "REWRITE-DONE: %s history rewritten\n"
	originRestoredMessage   = "REWRITE-ORIGIN: %s origin restored to %s\n"
	pushSkipNoOriginMessage = "REWRITE-PUSH-SKIP: %s (no origin remote)\n"
	pushSkipDeclinedMessage = "REWRITE-PUSH-SKIP: %s (push declined)\n"
	pushedMessage           = "REWRITE-PUSHED: %s all branches force-pushed to %s\n"
	tagsDeletedMessage      = "REWRITE-TAGS: %s deleted %d remote tags\n"
	failureMessage          = "REWRITE-FAIL: %s (%s)\n"
	interruptedMessage      = "REWRITE-INTERRUPTED: stopping, %d remaining repositories skipped\n"
	planRemoteMessage       = "PLAN-REWRITE: %s would be cloned into %s and rewritten (%s)\n"
	planLocalMessage        = "PLAN-REWRITE: %s %d of %d commits match %s (%d authors, %d committers, %d taggers)\n"

	destructivePromptTemplate   = "Rewrite the entire history of %s? This is destructive."
	irreversiblePromptTemplate  = "Rewritten commits get new identifiers and cannot be restored. Continue with %s?"
	pushPromptTemplate          = "Force-push all branches of %s to %s?"
	pushReconfirmPromptTemplate = "Force-pushing replaces the remote history of %s. Push anyway?"

	destinationExistsTemplate      = "clone destination %s already exists"
	cloneDirectoryErrorTemplate    = "prepare clone directory %s: %w"
	inspectDestinationTemplate     = "inspect clone destination %s: %w"
	confirmationErrorTemplate      = "read confirmation: %w"
	cloneDirectoryPermissions      = 0o755
	logFieldTargetConstant         = "target"
	logFieldKindConstant           = "kind"
	targetFailedLogMessageConstant = "repository rewrite failed"

	gitManagerMissingMessage = "rewrite orchestrator requires a git repository manager"
	engineMissingMessage     = "rewrite orchestrator requires a rewrite engine"
	fileSystemMissingMessage = "rewrite orchestrator requires a filesystem"
	prompterMissingMessage   = "rewrite orchestrator requires a prompter"
)

var (
	// ErrGitManagerNotConfigured indicates Dependencies.GitManager is nil.
	ErrGitManagerNotConfigured = errors.New(gitManagerMissingMessage)
	// ErrEngineNotConfigured indicates Dependencies.Engine is nil.
	ErrEngineNotConfigured = errors.New(engineMissingMessage)
	// ErrFileSystemNotConfigured indicates Dependencies.FileSystem is nil.
	ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessage)
	// ErrPrompterNotConfigured indicates Dependencies.Prompter is nil.
	ErrPrompterNotConfigured = errors.New(prompterMissingMessage)
)

// IdentityInspector counts the commits a rule would change without modifying history.
type IdentityInspector interface {
	Inspect(repositoryPath string, rule rewrite.Rule) (rewrite.InspectionResult, error)
}

// Options configures a batch run.
type Options struct {
	Rule           rewrite.Rule
	Targets        shared.SelectionSet
	CloneDirectory string
	DryRun         bool
}

// Dependencies captures collaborators required to rewrite repositories.
type Dependencies struct {
	GitManager shared.GitRepositoryManager
	Engine     rewrite.Engine
	Inspector  IdentityInspector
	FileSystem shared.FileSystem
	Prompter   shared.Prompter
	Reporter   shared.Reporter
	Palette    ui.Palette
	Logger     *zap.Logger
}

// Orchestrator processes every selected target through the rewrite sequence.
type Orchestrator struct {
	dependencies Dependencies
}

// NewOrchestrator validates dependencies and constructs an Orchestrator.
func NewOrchestrator(dependencies Dependencies) (*Orchestrator, error) {
	if dependencies.GitManager == nil {
		return nil, ErrGitManagerNotConfigured
	}
	if dependencies.Engine == nil {
		return nil, ErrEngineNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	if dependencies.Reporter == nil {
		dependencies.Reporter = shared.NewWriterReporter(nil)
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Orchestrator{dependencies: dependencies}, nil
}

// Run processes the targets sequentially and returns the ledger. Every target is
// recorded exactly once as succeeded, failed or skipped. An interrupted prompt
// stops the batch and the unprocessed targets are skipped.
func (orchestrator *Orchestrator) Run(executionContext context.Context, options Options) *Ledger {
	ledger := NewLedger()
	targets := options.Targets.Targets()
	for index, target := range targets {
		orchestrator.processTarget(executionContext, options, target, ledger)
		if !ledger.Interrupted() {
			continue
		}
		remaining := targets[index+1:]
		for _, remainingTarget := range remaining {
			ledger.RecordSkip(remainingTarget, SkipReasonInterrupted)
		}
		orchestrator.printf(interruptedMessage, len(remaining))
		break
	}
	return ledger
}

// processTarget records exactly one outcome for target. An interrupt before the
// rewrite records a skip and one after it records a failure.
func (orchestrator *Orchestrator) processTarget(executionContext context.Context, options Options, target shared.RepositoryTarget, ledger *Ledger) {
	palette := orchestrator.dependencies.Palette
	orchestrator.printf(startMessage, palette.Title(target.Identifier()), target.Kind)
	orchestrator.printf(ruleMessage, options.Rule)

	if options.DryRun {
		if planError := orchestrator.describePlan(options, target); planError != nil {
			orchestrator.recordFailure(ledger, target, planError)
			return
		}
		ledger.RecordSkip(target, SkipReasonDryRun)
		return
	}

	confirmed, confirmationError := orchestrator.confirmDestructiveRewrite(target)
	if errors.Is(confirmationError, shared.ErrPromptInterrupted) {
		ledger.RecordSkip(target, SkipReasonInterrupted)
		ledger.MarkInterrupted()
		return
	}
	if confirmationError != nil {
		orchestrator.recordFailure(ledger, target, confirmationError)
		return
	}
	if !confirmed {
		orchestrator.printf(skipDeclinedMessage, target.Identifier())
		ledger.RecordSkip(target, SkipReasonOperatorDeclined)
		return
	}

	if rewriteError := orchestrator.rewriteTarget(executionContext, options, target); rewriteError != nil {
		orchestrator.recordFailure(ledger, target, rewriteError)
		if errors.Is(rewriteError, shared.ErrPromptInterrupted) {
			ledger.MarkInterrupted()
		}
		return
	}
	ledger.RecordSuccess(target)
}

func (orchestrator *Orchestrator) confirmDestructiveRewrite(target shared.RepositoryTarget) (bool, error) {
	palette := orchestrator.dependencies.Palette
	prompts := []string{
		palette.Failure(fmt.Sprintf(destructivePromptTemplate, target.Identifier())),
		palette.Failure(fmt.Sprintf(irreversiblePromptTemplate, target.Identifier())),
	}
	for _, prompt := range prompts {
		confirmed, confirmationError := orchestrator.dependencies.Prompter.Confirm(prompt, false)
		if confirmationError != nil {
			return false, fmt.Errorf(confirmationErrorTemplate, confirmationError)
		}
		if !confirmed {
			return false, nil
		}
	}
	return true, nil
}

func (orchestrator *Orchestrator) rewriteTarget(executionContext context.Context, options Options, target shared.RepositoryTarget) error {
	gitManager := orchestrator.dependencies.GitManager

	repositoryPath := target.Location
	originURL := ""
	hasOrigin := false
	if target.IsRemote() {
		clonedPath, cloneError := orchestrator.cloneTarget(executionContext, options.CloneDirectory, target)
		if cloneError != nil {
			return cloneError
		}
		repositoryPath = clonedPath
		originURL = target.Location
		hasOrigin = true
	} else {
		currentOriginURL, originFound, lookupError := gitManager.GetRemoteURL(executionContext, repositoryPath, shared.OriginRemoteNameConstant)
		if lookupError != nil {
			return lookupError
		}
		originURL = currentOriginURL
		hasOrigin = originFound
	}

	if rewriteError := orchestrator.dependencies.Engine.Rewrite(executionContext, repositoryPath, options.Rule); rewriteError != nil {
		return rewriteError
	}
	orchestrator.printf(rewrittenMessage, target.Identifier())

	if !hasOrigin {
		orchestrator.printf(pushSkipNoOriginMessage, target.Identifier())
		return nil
	}
	if restoreError := orchestrator.restoreOrigin(executionContext, repositoryPath, originURL, target); restoreError != nil {
		return restoreError
	}

	return orchestrator.pushAndPruneTags(executionContext, repositoryPath, originURL, target)
}

func (orchestrator *Orchestrator) cloneTarget(executionContext context.Context, cloneDirectory string, target shared.RepositoryTarget) (string, error) {
	fileSystem := orchestrator.dependencies.FileSystem

	directoryName, nameError := gitrepo.CloneDirectoryName(target.Location)
	if nameError != nil {
		return "", nameError
	}

	parentDirectory, absError := fileSystem.Abs(cloneDirectory)
	if absError != nil {
		return "", fmt.Errorf(cloneDirectoryErrorTemplate, cloneDirectory, absError)
	}
	if mkdirError := fileSystem.MkdirAll(parentDirectory, cloneDirectoryPermissions); mkdirError != nil {
		return "", fmt.Errorf(cloneDirectoryErrorTemplate, parentDirectory, mkdirError)
	}

	destination := filepath.Join(parentDirectory, directoryName)
	_, statError := fileSystem.Stat(destination)
	switch {
	case statError == nil:
		return "", fmt.Errorf(destinationExistsTemplate, destination)
	case !errors.Is(statError, fs.ErrNotExist):
		return "", fmt.Errorf(inspectDestinationTemplate, destination, statError)
	}

	if cloneError := orchestrator.dependencies.GitManager.Clone(executionContext, parentDirectory, target.Location, directoryName); cloneError != nil {
		return "", cloneError
	}
	orchestrator.printf(clonedMessage, target.Identifier(), destination)
	return destination, nil
}

// restoreOrigin re-registers origin, which filter-repo removes while rewriting.
func (orchestrator *Orchestrator) restoreOrigin(executionContext context.Context, repositoryPath string, originURL string, target shared.RepositoryTarget) error {
	gitManager := orchestrator.dependencies.GitManager

	_, originStillPresent, lookupError := gitManager.GetRemoteURL(executionContext, repositoryPath, shared.OriginRemoteNameConstant)
	if lookupError != nil {
		return lookupError
	}
	if !originStillPresent {
		if addError := gitManager.AddRemote(executionContext, repositoryPath, shared.OriginRemoteNameConstant, originURL); addError != nil {
			return addError
		}
	}
	orchestrator.printf(originRestoredMessage, target.Identifier(), originURL)
	return nil
}

func (orchestrator *Orchestrator) pushAndPruneTags(executionContext context.Context, repositoryPath string, originURL string, target shared.RepositoryTarget) error {
	palette := orchestrator.dependencies.Palette
	prompter := orchestrator.dependencies.Prompter
	gitManager := orchestrator.dependencies.GitManager

	prompts := []string{
		fmt.Sprintf(pushPromptTemplate, target.Identifier(), originURL),
		palette.Failure(fmt.Sprintf(pushReconfirmPromptTemplate, originURL)),
	}
	for _, prompt := range prompts {
		confirmed, confirmationError := prompter.Confirm(prompt, false)
		if confirmationError != nil {
			return fmt.Errorf(confirmationErrorTemplate, confirmationError)
		}
		if !confirmed {
			orchestrator.printf(pushSkipDeclinedMessage, target.Identifier())
			return nil
		}
	}

	if pushError := gitManager.ForcePushAll(executionContext, repositoryPath); pushError != nil {
		return pushError
	}
	orchestrator.printf(pushedMessage, palette.Success(target.Identifier()), originURL)

	tagNames, listError := gitManager.ListRemoteTags(executionContext, repositoryPath, shared.OriginRemoteNameConstant)
	if listError != nil {
		return listError
	}
	for _, tagName := range tagNames {
		if deleteError := gitManager.DeleteRemoteTag(executionContext, repositoryPath, shared.OriginRemoteNameConstant, tagName); deleteError != nil {
			return deleteError
		}
	}
	orchestrator.printf(tagsDeletedMessage, target.Identifier(), len(tagNames))
	return nil
}

func (orchestrator *Orchestrator) describePlan(options Options, target shared.RepositoryTarget) error {
	if target.IsRemote() {
		directoryName, nameError := gitrepo.CloneDirectoryName(target.Location)
		if nameError != nil {
			return nameError
		}
		orchestrator.printf(planRemoteMessage, target.Identifier(), filepath.Join(options.CloneDirectory, directoryName), options.Rule)
		return nil
	}

	if orchestrator.dependencies.Inspector == nil {
		return nil
	}
	inspection, inspectionError := orchestrator.dependencies.Inspector.Inspect(target.Location, options.Rule)
	if inspectionError != nil {
		return inspectionError
	}
	orchestrator.printf(
		planLocalMessage,
		target.Identifier(),
		inspection.MatchingCommits,
		inspection.TotalCommits,
		options.Rule.SourceEmail,
		inspection.MatchingAuthors,
		inspection.MatchingCommitters,
		inspection.MatchingTaggers,
	)
	return nil
}

func (orchestrator *Orchestrator) recordFailure(ledger *Ledger, target shared.RepositoryTarget, failure error) {
	orchestrator.printf(failureMessage, orchestrator.dependencies.Palette.Failure(target.Identifier()), failure)
	orchestrator.dependencies.Logger.Warn(
		targetFailedLogMessageConstant,
		zap.String(logFieldTargetConstant, target.Location),
		zap.String(logFieldKindConstant, target.Kind.String()),
		zap.Error(failure),
	)
	ledger.RecordFailure(target, failure)
}

func (orchestrator *Orchestrator) printf(format string, arguments ...any) {
	orchestrator.dependencies.Reporter.Printf(format, arguments...)
}
