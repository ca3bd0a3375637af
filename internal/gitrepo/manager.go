package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/mailshift/internal/execshell"
	"github.com/temirov/mailshift/internal/repos/shared"
)

const (
	gitCloneSubcommandConstant        = "clone"
	gitRemoteSubcommandConstant       = "remote"
	gitRemoteAddSubcommandConstant    = "add"
	gitRemoteGetURLSubcommandConstant = "get-url"
	gitPushSubcommandConstant         = "push"
	gitForceFlagConstant              = "--force"
	gitAllFlagConstant                = "--all"
	gitDeleteFlagConstant             = "--delete"
	gitLSRemoteSubcommandConstant     = "ls-remote"
	gitTagsFlagConstant               = "--tags"

	requiredValueMessageConstant          = "value required"
	executorNotConfiguredMessageConstant  = "git executor not configured"
	operationErrorTemplateConstant        = "%s: %w"
	cloneOperationNameConstant            = "clone"
	addRemoteOperationNameConstant        = "add remote"
	getRemoteURLOperationNameConstant     = "read remote url"
	forcePushOperationNameConstant        = "force push"
	listRemoteTagsOperationNameConstant   = "list remote tags"
	deleteRemoteTagOperationNameConstant  = "delete remote tag"
	remoteTagReferencePrefixConstant      = "refs/tags/"
	peeledTagReferenceSuffixConstant      = "^{}"
	remoteTagListingLineSeparatorConstant = "\n"
	repositoryPathArgumentNameConstant    = "repository path"
	remoteNameArgumentNameConstant        = "remote name"
	remoteURLArgumentNameConstant         = "remote url"
	tagNameArgumentNameConstant           = "tag name"
	directoryNameArgumentNameConstant     = "directory name"
	parentDirectoryArgumentNameConstant   = "parent directory"
	missingArgumentErrorTemplateConstant  = "%s: %s %s"
)

// ErrGitExecutorNotConfigured indicates the manager was created without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// RepositoryManager runs git commands against repositories through a GitExecutor.
type RepositoryManager struct {
	executor shared.GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor shared.GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// Clone clones remoteURL into parentDirectory/directoryName.
func (manager *RepositoryManager) Clone(executionContext context.Context, parentDirectory string, remoteURL string, directoryName string) error {
	if err := requireArguments(cloneOperationNameConstant,
		namedArgument{name: parentDirectoryArgumentNameConstant, value: parentDirectory},
		namedArgument{name: remoteURLArgumentNameConstant, value: remoteURL},
		namedArgument{name: directoryNameArgumentNameConstant, value: directoryName},
	); err != nil {
		return err
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCloneSubcommandConstant, remoteURL, directoryName},
		WorkingDirectory: parentDirectory,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, cloneOperationNameConstant, executionError)
	}
	return nil
}

// AddRemote registers a remote in the repository.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	if err := requireArguments(addRemoteOperationNameConstant,
		namedArgument{name: repositoryPathArgumentNameConstant, value: repositoryPath},
		namedArgument{name: remoteNameArgumentNameConstant, value: remoteName},
		namedArgument{name: remoteURLArgumentNameConstant, value: remoteURL},
	); err != nil {
		return err
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteAddSubcommandConstant, remoteName, remoteURL},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, addRemoteOperationNameConstant, executionError)
	}
	return nil
}

// GetRemoteURL returns the URL of the named remote. A non-zero exit from git
// means the remote does not exist and is reported as found == false.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, bool, error) {
	if err := requireArguments(getRemoteURLOperationNameConstant,
		namedArgument{name: repositoryPathArgumentNameConstant, value: repositoryPath},
		namedArgument{name: remoteNameArgumentNameConstant, value: remoteName},
	); err != nil {
		return "", false, err
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return "", false, nil
		}
		return "", false, fmt.Errorf(operationErrorTemplateConstant, getRemoteURLOperationNameConstant, executionError)
	}

	remoteURL := strings.TrimSpace(executionResult.StandardOutput)
	if len(remoteURL) == 0 {
		return "", false, nil
	}
	return remoteURL, true, nil
}

// ForcePushAll force-pushes every local branch to the default remote.
func (manager *RepositoryManager) ForcePushAll(executionContext context.Context, repositoryPath string) error {
	if err := requireArguments(forcePushOperationNameConstant,
		namedArgument{name: repositoryPathArgumentNameConstant, value: repositoryPath},
	); err != nil {
		return err
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitPushSubcommandConstant, gitForceFlagConstant, gitAllFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, forcePushOperationNameConstant, executionError)
	}
	return nil
}

// ListRemoteTags returns the tag names advertised by the remote, excluding peeled entries.
func (manager *RepositoryManager) ListRemoteTags(executionContext context.Context, repositoryPath string, remoteName string) ([]string, error) {
	if err := requireArguments(listRemoteTagsOperationNameConstant,
		namedArgument{name: repositoryPathArgumentNameConstant, value: repositoryPath},
		namedArgument{name: remoteNameArgumentNameConstant, value: remoteName},
	); err != nil {
		return nil, err
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitLSRemoteSubcommandConstant, gitTagsFlagConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(operationErrorTemplateConstant, listRemoteTagsOperationNameConstant, executionError)
	}
	return ParseRemoteTagListing(executionResult.StandardOutput), nil
}

// DeleteRemoteTag deletes a single tag from the remote.
func (manager *RepositoryManager) DeleteRemoteTag(executionContext context.Context, repositoryPath string, remoteName string, tagName string) error {
	if err := requireArguments(deleteRemoteTagOperationNameConstant,
		namedArgument{name: repositoryPathArgumentNameConstant, value: repositoryPath},
		namedArgument{name: remoteNameArgumentNameConstant, value: remoteName},
		namedArgument{name: tagNameArgumentNameConstant, value: tagName},
	); err != nil {
		return err
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitPushSubcommandConstant, remoteName, gitDeleteFlagConstant, tagName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(operationErrorTemplateConstant, deleteRemoteTagOperationNameConstant, executionError)
	}
	return nil
}

// ParseRemoteTagListing extracts tag names from `git ls-remote --tags` output.
// Lines without a refs/tags/ reference and peeled ^{} entries are ignored.
func ParseRemoteTagListing(listing string) []string {
	var tagNames []string
	for _, line := range strings.Split(listing, remoteTagListingLineSeparatorConstant) {
		referenceIndex := strings.LastIndex(line, remoteTagReferencePrefixConstant)
		if referenceIndex == -1 {
			continue
		}
		tagName := strings.TrimSpace(line[referenceIndex+len(remoteTagReferencePrefixConstant):])
		if len(tagName) == 0 || strings.HasSuffix(tagName, peeledTagReferenceSuffixConstant) {
			continue
		}
		tagNames = append(tagNames, tagName)
	}
	return tagNames
}

type namedArgument struct {
	name  string
	value string
}

func requireArguments(operation string, arguments ...namedArgument) error {
	for _, argument := range arguments {
		if len(strings.TrimSpace(argument.value)) == 0 {
			return fmt.Errorf(missingArgumentErrorTemplateConstant, operation, argument.name, requiredValueMessageConstant)
		}
	}
	return nil
}
