package shared

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/temirov/mailshift/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the remote restored after a rewrite and used for pushes.
	OriginRemoteNameConstant = "origin"

	targetLocationRequiredMessageConstant = "repository target location must not be empty"
	targetLocationNewlineMessageConstant  = "repository target location must not contain newlines"
	promptInterruptedMessageConstant      = "prompt interrupted by operator"
)

// ErrTargetLocationRequired indicates a target was constructed without a path or URL.
var ErrTargetLocationRequired = errors.New(targetLocationRequiredMessageConstant)

// ErrTargetLocationInvalid indicates a target location spans multiple lines.
var ErrTargetLocationInvalid = errors.New(targetLocationNewlineMessageConstant)

// ErrPromptInterrupted indicates the operator interrupted a prompt, for example with Ctrl-C
// on a terminal in raw mode. Callers stop the run instead of treating it as a failed answer.
var ErrPromptInterrupted = errors.New(promptInterruptedMessageConstant)

// TargetKind distinguishes working copies on disk from URLs that must be cloned first.
type TargetKind int

// Supported target kinds.
const (
	TargetKindLocal TargetKind = iota
	TargetKindRemote
)

// String returns the operator-facing name of the kind.
func (kind TargetKind) String() string {
	switch kind {
	case TargetKindRemote:
		return "remote"
	default:
		return "local"
	}
}

// RepositoryTarget is a repository selected for rewriting.
type RepositoryTarget struct {
	Kind        TargetKind
	Location    string
	DisplayName string
}

// NewLocalTarget builds a target for an existing working copy.
func NewLocalTarget(path string, displayName string) (RepositoryTarget, error) {
	location, locationError := normalizeTargetLocation(path)
	if locationError != nil {
		return RepositoryTarget{}, locationError
	}
	trimmedDisplayName := strings.TrimSpace(displayName)
	if len(trimmedDisplayName) == 0 {
		trimmedDisplayName = location
	}
	return RepositoryTarget{Kind: TargetKindLocal, Location: location, DisplayName: trimmedDisplayName}, nil
}

// NewRemoteTarget builds a target for a URL. Remote targets are displayed by their raw URL.
func NewRemoteTarget(remoteURL string) (RepositoryTarget, error) {
	location, locationError := normalizeTargetLocation(remoteURL)
	if locationError != nil {
		return RepositoryTarget{}, locationError
	}
	return RepositoryTarget{Kind: TargetKindRemote, Location: location, DisplayName: location}, nil
}

// IsRemote reports whether the target must be cloned before rewriting.
func (target RepositoryTarget) IsRemote() bool {
	return target.Kind == TargetKindRemote
}

// Identifier returns the name used in progress and summary output.
func (target RepositoryTarget) Identifier() string {
	if len(target.DisplayName) > 0 {
		return target.DisplayName
	}
	return target.Location
}

func normalizeTargetLocation(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", ErrTargetLocationRequired
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		return "", ErrTargetLocationInvalid
	}
	return trimmed, nil
}

// SelectionSet is the ordered, duplicate-free list of targets chosen for a run.
type SelectionSet struct {
	targets []RepositoryTarget
}

// NewSelectionSet keeps the first occurrence of every target and preserves order.
func NewSelectionSet(targets []RepositoryTarget) SelectionSet {
	type targetKey struct {
		kind     TargetKind
		location string
	}

	seen := make(map[targetKey]struct{}, len(targets))
	unique := make([]RepositoryTarget, 0, len(targets))
	for _, target := range targets {
		key := targetKey{kind: target.Kind, location: target.Location}
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, target)
	}
	return SelectionSet{targets: unique}
}

// Targets returns a copy of the selected targets.
func (selection SelectionSet) Targets() []RepositoryTarget {
	return append([]RepositoryTarget(nil), selection.targets...)
}

// Len returns the number of selected targets.
func (selection SelectionSet) Len() int {
	return len(selection.targets)
}

// FileSystem exposes filesystem operations required by repository services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	MkdirAll(path string, permissions fs.FileMode) error
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitRepositoryManager exposes the git operations performed around a history rewrite.
type GitRepositoryManager interface {
	Clone(executionContext context.Context, parentDirectory string, remoteURL string, directoryName string) error
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, bool, error)
	ForcePushAll(executionContext context.Context, repositoryPath string) error
	ListRemoteTags(executionContext context.Context, repositoryPath string, remoteName string) ([]string, error)
	DeleteRemoteTag(executionContext context.Context, repositoryPath string, remoteName string, tagName string) error
}

// Prompter collects free-text answers and yes/no confirmations from the operator.
type Prompter interface {
	Ask(prompt string) (string, error)
	Confirm(prompt string, defaultAnswer bool) (bool, error)
}

// RepositoryDiscoverer locates Git repositories for bulk operations.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string) ([]string, error)
}
