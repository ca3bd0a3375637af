package repos

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/mailshift/internal/repos/prompt"
	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/ui"
)

const (
	missingRepositoryRootsErrorMessageConstant = "no repository roots provided; pass a directory, use --root, or configure tools.rewrite.roots"
	remoteURLListSeparatorConstant             = ","
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// PrompterFactory creates prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) shared.Prompter

// determineRepositoryRoots prefers positional arguments, then the --root flag, then configuration.
func determineRepositoryRoots(arguments []string, flagRoots []string, configuredRoots []string) []string {
	for _, candidates := range [][]string{arguments, flagRoots, configuredRoots} {
		if roots := rootSanitizer.Sanitize(filterBooleanLiterals(candidates)); len(roots) > 0 {
			return roots
		}
	}
	return nil
}

func requireRepositoryRoots(command *cobra.Command, arguments []string, flagRoots []string, configuredRoots []string) ([]string, error) {
	resolvedRoots := determineRepositoryRoots(arguments, flagRoots, configuredRoots)
	if len(resolvedRoots) > 0 {
		return resolvedRoots, nil
	}

	if command != nil {
		_ = command.Help()
	}

	return nil, errors.New(missingRepositoryRootsErrorMessageConstant)
}

// filterBooleanLiterals drops "true"/"false" left behind by shells that expand
// a boolean flag without its value into a positional argument.
func filterBooleanLiterals(raw []string) []string {
	filtered := make([]string, 0, len(raw))
	for _, argument := range raw {
		if isBooleanLiteral(strings.TrimSpace(argument)) {
			continue
		}
		filtered = append(filtered, argument)
	}
	return filtered
}

func isBooleanLiteral(value string) bool {
	switch strings.ToLower(value) {
	case "true", "false":
		return true
	default:
		return false
	}
}

// splitRemoteURLs splits an interactive comma-separated answer into URLs.
func splitRemoteURLs(answer string) []string {
	return trimValues(strings.Split(answer, remoteURLListSeparatorConstant))
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolvePrompter(factory PrompterFactory, command *cobra.Command) shared.Prompter {
	if factory != nil {
		prompter := factory(command)
		if prompter != nil {
			return prompter
		}
	}
	return prompt.NewPrompter(command.InOrStdin(), command.OutOrStdout())
}

// resolveOutput wraps the command's standard output so styled text degrades to
// the terminal's color capability, and picks a palette matching the destination.
func resolveOutput(command *cobra.Command) (io.Writer, ui.Palette) {
	standardOutput := command.OutOrStdout()
	return ui.NewStyledWriter(standardOutput), ui.NewPaletteForWriter(standardOutput)
}
