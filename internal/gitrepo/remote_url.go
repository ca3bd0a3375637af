package gitrepo

import (
	"fmt"
	"strings"
)

const (
	pathSeparatorConstant               = "/"
	scpPathDelimiterConstant            = ":"
	querySeparatorConstant              = "?"
	fragmentSeparatorConstant           = "#"
	gitSuffixConstant                   = ".git"
	currentDirectoryNameConstant        = "."
	parentDirectoryNameConstant         = ".."
	remoteURLParseErrorTemplateConstant = "%s: %s"
	invalidRemoteURLMessageConstant     = "cannot derive a directory name from remote url"
)

// RemoteURLParseError indicates a remote string could not be turned into a clone directory name.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// CloneDirectoryName returns the directory git would create when cloning remoteURL:
// the last path segment with query, fragment, trailing slashes and the .git suffix removed.
// Both URL and scp-style (git@host:org/repo.git) remotes are supported.
func CloneDirectoryName(remoteURL string) (string, error) {
	trimmedRemote := strings.TrimSpace(remoteURL)
	if len(trimmedRemote) == 0 {
		return "", RemoteURLParseError{Input: remoteURL, Message: requiredValueMessageConstant}
	}

	withoutSuffixes := trimmedRemote
	if fragmentIndex := strings.Index(withoutSuffixes, fragmentSeparatorConstant); fragmentIndex != -1 {
		withoutSuffixes = withoutSuffixes[:fragmentIndex]
	}
	if queryIndex := strings.Index(withoutSuffixes, querySeparatorConstant); queryIndex != -1 {
		withoutSuffixes = withoutSuffixes[:queryIndex]
	}
	withoutSuffixes = strings.TrimRight(withoutSuffixes, pathSeparatorConstant)

	segment := withoutSuffixes
	if separatorIndex := strings.LastIndex(segment, pathSeparatorConstant); separatorIndex != -1 {
		segment = segment[separatorIndex+1:]
	}
	if delimiterIndex := strings.LastIndex(segment, scpPathDelimiterConstant); delimiterIndex != -1 {
		segment = segment[delimiterIndex+1:]
	}
	segment = strings.TrimSuffix(segment, gitSuffixConstant)

	if len(segment) == 0 || segment == currentDirectoryNameConstant || segment == parentDirectoryNameConstant {
		return "", RemoteURLParseError{Input: remoteURL, Message: invalidRemoteURLMessageConstant}
	}
	return segment, nil
}
