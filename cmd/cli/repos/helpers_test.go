package repos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mailshift/internal/repos/shared"
)

const testRepositoryRelativePathConstant = "projects/example"

func TestDetermineRepositoryRootsSanitizesInputs(testInstance *testing.T) {
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	require.NoError(testInstance, homeDirectoryError)

	tildeArgument := filepath.Join("~", testRepositoryRelativePathConstant)
	expectedExpanded := filepath.Join(homeDirectory, testRepositoryRelativePathConstant)

	testCases := []struct {
		name             string
		arguments        []string
		flagRoots        []string
		configured       []string
		expectedResolved []string
	}{
		{
			name:             "arguments_preferred",
			arguments:        []string{"  " + tildeArgument + "\t"},
			flagRoots:        []string{"/flagged"},
			configured:       []string{"/configured"},
			expectedResolved: []string{expectedExpanded},
		},
		{
			name:             "flags_used_when_arguments_filtered",
			arguments:        []string{"", "true", "FALSE"},
			flagRoots:        []string{"/flagged", "/flagged/nested"},
			configured:       []string{"/configured"},
			expectedResolved: []string{"/flagged"},
		},
		{
			name:             "configuration_used_last",
			configured:       []string{"  " + tildeArgument + "  "},
			expectedResolved: []string{expectedExpanded},
		},
		{
			name:             "nothing_resolved",
			arguments:        []string{" "},
			expectedResolved: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			resolved := determineRepositoryRoots(testCase.arguments, testCase.flagRoots, testCase.configured)
			require.Equal(subTest, testCase.expectedResolved, resolved)
		})
	}
}

func TestRequireRepositoryRootsReportsMissingRoots(testInstance *testing.T) {
	roots, rootsError := requireRepositoryRoots(nil, nil, nil, nil)
	require.Nil(testInstance, roots)
	require.EqualError(testInstance, rootsError, missingRepositoryRootsErrorMessageConstant)
}

func TestParseTargetMode(testInstance *testing.T) {
	testCases := []struct {
		name         string
		answer       string
		expectedKind shared.TargetKind
		expectError  bool
	}{
		{name: "empty_defaults_to_local", answer: "  ", expectedKind: shared.TargetKindLocal},
		{name: "local", answer: "local", expectedKind: shared.TargetKindLocal},
		{name: "remote_case_insensitive", answer: " Remote ", expectedKind: shared.TargetKindRemote},
		{name: "unknown", answer: "cloud", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			kind, parseError := parseTargetMode(testCase.answer)
			if testCase.expectError {
				require.Error(subTest, parseError)
				return
			}
			require.NoError(subTest, parseError)
			require.Equal(subTest, testCase.expectedKind, kind)
		})
	}
}

func TestBuildRemoteTargetsSplitsAndDeduplicates(testInstance *testing.T) {
	targets, buildError := buildRemoteTargets(splitRemoteURLs("https://example.com/a.git, ,git@example.com:org/b.git,https://example.com/a.git"))
	require.NoError(testInstance, buildError)
	require.Len(testInstance, targets, 2)
	require.Equal(testInstance, "https://example.com/a.git", targets[0].Location)
	require.Equal(testInstance, "git@example.com:org/b.git", targets[1].Location)
	require.True(testInstance, targets[1].IsRemote())

	_, emptyError := buildRemoteTargets(splitRemoteURLs(" , "))
	require.ErrorIs(testInstance, emptyError, errEmptyRemoteList)
}

func TestRewriteConfigurationSanitize(testInstance *testing.T) {
	sanitized := RewriteConfiguration{
		RepositoryRoots:  []string{" /repos/ ", "/repos/nested", ""},
		RemoteURLs:       []string{" https://example.com/a.git ", " "},
		SourceEmail:      " old@example.com ",
		DestinationEmail: "new@example.com\n",
		CloneDirectory:   "  ",
		Match:            " api ",
		ReportPath:       " /tmp/reports/../run.yaml ",
	}.sanitize()

	require.Equal(testInstance, RewriteConfiguration{
		RepositoryRoots:  []string{"/repos"},
		RemoteURLs:       []string{"https://example.com/a.git"},
		SourceEmail:      "old@example.com",
		DestinationEmail: "new@example.com",
		CloneDirectory:   defaultCloneDirectoryConstant,
		Match:            "api",
		ReportPath:       "/tmp/run.yaml",
	}, sanitized)
}
