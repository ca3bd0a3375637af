package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	commandArgumentsJoinSeparatorConstant   = " "
	multilineArgumentPlaceholderConstant    = "<script>"
	unknownFailureMessageConstant           = "unknown error"
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	emptyStringConstant                     = ""
)

const (
	gitCloneSubcommandNameConstant      = "clone"
	gitRemoteSubcommandNameConstant     = "remote"
	gitRemoteAddSubcommandNameConstant  = "add"
	gitRemoteGetURLSubcommandConstant   = "get-url"
	gitPushSubcommandNameConstant       = "push"
	gitDeleteFlagConstant               = "--delete"
	gitAllFlagConstant                  = "--all"
	gitLSRemoteSubcommandNameConstant   = "ls-remote"
	gitFilterRepoSubcommandNameConstant = "filter-repo"
)

// Templates take (stage-specific values..., exit code, stderr suffix) for failures
// and (stage-specific values..., failure text) for execution failures.
var (
	gitCloneMessages = stageTemplates{
		start:            "Cloning %s into %s",
		success:          "Cloned %s into %s",
		failure:          "Failed to clone %s into %s (exit code %d%s)",
		executionFailure: "Unable to clone %s into %s: %s",
	}
	gitRemoteAddMessages = stageTemplates{
		start:            "Registering %s remote %s in %s",
		success:          "Registered %s remote %s in %s",
		failure:          "Failed to register %s remote %s in %s (exit code %d%s)",
		executionFailure: "Unable to register %s remote %s in %s: %s",
	}
	gitRemoteLookupMessages = stageTemplates{
		start:            "Checking %s remote in %s",
		success:          "Read %s remote in %s",
		failure:          "No readable %s remote in %s (exit code %d%s)",
		executionFailure: "Unable to read %s remote in %s: %s",
	}
	gitForcePushMessages = stageTemplates{
		start:            "Force-pushing all branches from %s",
		success:          "Force-pushed all branches from %s",
		failure:          "Failed to force-push branches from %s (exit code %d%s)",
		executionFailure: "Unable to force-push branches from %s: %s",
	}
	gitPushDeletionMessages = stageTemplates{
		start:            "Deleting remote reference %s from %s in %s",
		success:          "Deleted remote reference %s from %s in %s",
		failure:          "Failed to delete remote reference %s from %s in %s (exit code %d%s)",
		executionFailure: "Unable to delete remote reference %s from %s in %s: %s",
	}
	gitLSRemoteMessages = stageTemplates{
		start:            "Listing remote references on %s from %s",
		success:          "Listed remote references on %s from %s",
		failure:          "Failed to list remote references on %s from %s (exit code %d%s)",
		executionFailure: "Unable to list remote references on %s from %s: %s",
	}
	gitFilterRepoMessages = stageTemplates{
		start:            "Rewriting history in %s",
		success:          "Rewrote history in %s",
		failure:          "Failed to rewrite history in %s (exit code %d%s)",
		executionFailure: "Unable to rewrite history in %s: %s",
	}
)

type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a command that exited with zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that exited with a non-zero code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing a command that could not run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch strings.TrimSpace(arguments[0]) {
	case gitCloneSubcommandNameConstant:
		source := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
		destination := formatter.argumentAtIndex(arguments, 2)
		if len(destination) == 0 {
			destination = workingDirectory
		}
		return formatter.render(gitCloneMessages, stage, result, failure, source, destination)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		if deletionTarget := formatter.extractDeletionTarget(arguments); len(deletionTarget) > 0 {
			remoteName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
			return formatter.render(gitPushDeletionMessages, stage, result, failure, deletionTarget, remoteName, workingDirectory)
		}
		if containsArgument(arguments, gitAllFlagConstant) {
			return formatter.render(gitForcePushMessages, stage, result, failure, workingDirectory)
		}
	case gitLSRemoteSubcommandNameConstant:
		remoteName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
		return formatter.render(gitLSRemoteMessages, stage, result, failure, remoteName, workingDirectory)
	case gitFilterRepoSubcommandNameConstant:
		return formatter.render(gitFilterRepoMessages, stage, result, failure, workingDirectory)
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))

	switch formatter.argumentAtIndex(arguments, 1) {
	case gitRemoteAddSubcommandNameConstant:
		remoteURL := formatter.ensureValue(formatter.argumentAtIndex(arguments, 3))
		return formatter.render(gitRemoteAddMessages, stage, result, failure, remoteName, remoteURL, workingDirectory)
	case gitRemoteGetURLSubcommandConstant:
		return formatter.render(gitRemoteLookupMessages, stage, result, failure, remoteName, workingDirectory)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) render(templates stageTemplates, stage messageStage, result ExecutionResult, failure error, values ...any) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, values...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, values...)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, append(values, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))...)
	default:
		return fmt.Sprintf(templates.executionFailure, append(values, formatter.describeFailure(failure))...)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	label := formatter.describeCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, label)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, label)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, label, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, label, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeCommandLabel(command ShellCommand) string {
	parts := []string{string(command.Name)}
	for _, argument := range command.Details.Arguments {
		if strings.Contains(argument, "\n") {
			parts = append(parts, multilineArgumentPlaceholderConstant)
			continue
		}
		parts = append(parts, argument)
	}
	label := strings.Join(parts, commandArgumentsJoinSeparatorConstant)

	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return label
	}
	return label + fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmed := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmed) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmed := strings.TrimSpace(standardError)
	if len(trimmed) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmed)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return strings.TrimSpace(arguments[index])
}

func (formatter CommandMessageFormatter) extractDeletionTarget(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == gitDeleteFlagConstant && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, expected string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == expected {
			return true
		}
	}
	return false
}
