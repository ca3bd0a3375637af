package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/mailshift/internal/execshell"
	"github.com/temirov/mailshift/internal/repos/shared"
)

const (
	filterRepoSubcommandConstant         = "filter-repo"
	filterRepoForceFlagConstant          = "--force"
	filterRepoEmailCallbackFlagConstant  = "--email-callback"
	executorNotConfiguredMessageConstant = "rewrite engine requires a git executor"
	rewriteErrorTemplateConstant         = "rewrite history in %s: %w"
	callbackTemplateConstant             = "if email == %s:\n    return %s\nreturn email\n"
	hexadecimalDigitsConstant            = "0123456789abcdef"
)

// ErrGitExecutorNotConfigured indicates the engine was created without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// Engine rewrites the history of a repository according to a rule.
type Engine interface {
	Rewrite(executionContext context.Context, repositoryPath string, rule Rule) error
}

// FilterRepoEngine runs `git filter-repo --force --email-callback` in the repository.
type FilterRepoEngine struct {
	executor shared.GitExecutor
}

// NewFilterRepoEngine constructs a FilterRepoEngine.
func NewFilterRepoEngine(executor shared.GitExecutor) (*FilterRepoEngine, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &FilterRepoEngine{executor: executor}, nil
}

// Rewrite applies the rule to every author, committer and tagger email reachable in the repository.
func (engine *FilterRepoEngine) Rewrite(executionContext context.Context, repositoryPath string, rule Rule) error {
	_, executionError := engine.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			filterRepoSubcommandConstant,
			filterRepoForceFlagConstant,
			filterRepoEmailCallbackFlagConstant,
			BuildEmailCallback(rule),
		},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(rewriteErrorTemplateConstant, repositoryPath, executionError)
	}
	return nil
}

// BuildEmailCallback renders the Python body filter-repo evaluates for every email.
// filter-repo hands the callback raw bytes, so both addresses become bytes literals.
func BuildEmailCallback(rule Rule) string {
	return fmt.Sprintf(callbackTemplateConstant, pythonBytesLiteral(rule.SourceEmail), pythonBytesLiteral(rule.DestinationEmail))
}

func pythonBytesLiteral(value string) string {
	var builder strings.Builder
	builder.WriteString(`b"`)
	for index := 0; index < len(value); index++ {
		character := value[index]
		switch {
		case character == '\\':
			builder.WriteString(`\\`)
		case character == '"':
			builder.WriteString(`\"`)
		case character >= 0x20 && character <= 0x7e:
			builder.WriteByte(character)
		default:
			builder.WriteString(`\x`)
			builder.WriteByte(hexadecimalDigitsConstant[character>>4])
			builder.WriteByte(hexadecimalDigitsConstant[character&0x0f])
		}
	}
	builder.WriteString(`"`)
	return builder.String()
}
