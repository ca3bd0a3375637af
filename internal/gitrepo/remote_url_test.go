package gitrepo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mailshift/internal/gitrepo"
)

func TestCloneDirectoryName(testInstance *testing.T) {
	testCases := []struct {
		name         string
		remoteURL    string
		expectedName string
		expectError  bool
	}{
		{name: "https_with_git_suffix", remoteURL: "https://host/org/repo.git", expectedName: "repo"},
		{name: "https_without_suffix", remoteURL: "https://host/org/repo", expectedName: "repo"},
		{name: "trailing_slash", remoteURL: "https://host/org/repo.git/", expectedName: "repo"},
		{name: "query_and_fragment", remoteURL: "https://host/org/repo.git?ref=main#readme", expectedName: "repo"},
		{name: "scp_style", remoteURL: "git@github.com:org/tools.git", expectedName: "tools"},
		{name: "scp_style_without_owner", remoteURL: "git@host:tools.git", expectedName: "tools"},
		{name: "ssh_url", remoteURL: "ssh://git@host:2222/org/service.git", expectedName: "service"},
		{name: "local_bare_path", remoteURL: "/srv/git/origin.git", expectedName: "origin"},
		{name: "keeps_inner_dots", remoteURL: "https://host/org/my.project.git", expectedName: "my.project"},
		{name: "rejects_empty", remoteURL: "  ", expectError: true},
		{name: "rejects_bare_suffix", remoteURL: "https://host/org/.git", expectError: true},
		{name: "rejects_parent_directory", remoteURL: "../", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			directoryName, parseError := gitrepo.CloneDirectoryName(testCase.remoteURL)
			if testCase.expectError {
				var remoteParseError gitrepo.RemoteURLParseError
				require.True(testInstance, errors.As(parseError, &remoteParseError))
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedName, directoryName)
		})
	}
}
