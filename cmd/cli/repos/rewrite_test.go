package repos_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/mailshift/cmd/cli/repos"
	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/summary"
	"github.com/temirov/mailshift/internal/testsupport"
)

const (
	testSourceEmailConstant      = "old@example.com"
	testDestinationEmailConstant = "new@example.com"
	testWorkspaceRootConstant    = "/workspace"
	testWebOriginConstant        = "git@example.com:org/web.git"
	testAPIRemoteURLConstant     = "https://example.com/org/api.git"
	testWebRemoteURLConstant     = "https://example.com/org/web.git"
)

var emailFlags = []string{"--from", testSourceEmailConstant, "--to", testDestinationEmailConstant}

func withEmailFlags(arguments ...string) []string {
	return append(append([]string{}, emailFlags...), arguments...)
}

func TestRewriteCommandRewritesSelectedLocalRepository(testInstance *testing.T) {
	harness := newRewriteHarness(testInstance, repos.RewriteConfiguration{}, "2", "y", "y", "y", "y", "y")
	harness.manager.origins["/workspace/web"] = testWebOriginConstant
	harness.manager.tags = []string{"v1.0.0"}

	require.NoError(testInstance, harness.execute(testInstance, withEmailFlags(testWorkspaceRootConstant)...))

	require.Equal(testInstance, []string{"/workspace/web"}, harness.engine.rewritten)
	require.Equal(testInstance, testSourceEmailConstant, harness.engine.rules[0].SourceEmail)
	require.Equal(testInstance, testDestinationEmailConstant, harness.engine.rules[0].DestinationEmail)
	require.Equal(testInstance, []string{
		"add-remote origin " + testWebOriginConstant,
		"push web",
		"delete-tag v1.0.0",
	}, harness.manager.calls)
	require.Equal(testInstance, []string{testWorkspaceRootConstant}, harness.discoverer.ReceivedRoots)
	require.Zero(testInstance, harness.prompter.Remaining())

	output := harness.output.String()
	require.Contains(testInstance, output, "Rewrite plan")
	require.Contains(testInstance, output, "Succeeded: 1")
	require.Contains(testInstance, output, "Failed: 0")
}

func TestRewriteCommandPlanDeclinedLeavesRepositoriesUntouched(testInstance *testing.T) {
	harness := newRewriteHarness(testInstance, repos.RewriteConfiguration{}, "all", "n")

	require.NoError(testInstance, harness.execute(testInstance, withEmailFlags(testWorkspaceRootConstant)...))

	require.Empty(testInstance, harness.engine.rewritten)
	require.Empty(testInstance, harness.manager.calls)
	require.Contains(testInstance, harness.output.String(), "Cancelled. No repository was modified.")
	require.NotContains(testInstance, harness.output.String(), "Summary")
}

func TestRewriteCommandPromptsForMissingEmails(testInstance *testing.T) {
	harness := newRewriteHarness(testInstance, repos.RewriteConfiguration{}, "", testSourceEmailConstant, testDestinationEmailConstant, "1", "n")

	require.NoError(testInstance, harness.execute(testInstance, testWorkspaceRootConstant))

	require.Equal(testInstance, "Email address to replace: ", harness.prompter.ReceivedPrompts[0])
	require.Equal(testInstance, "Email address to replace: ", harness.prompter.ReceivedPrompts[1])
	require.Equal(testInstance, "Replacement email address: ", harness.prompter.ReceivedPrompts[2])
	output := harness.output.String()
	require.Contains(testInstance, output, "Invalid input: email address must not be empty")
	require.Contains(testInstance, output, testSourceEmailConstant)
	require.Contains(testInstance, output, testDestinationEmailConstant)
}

func TestRewriteCommandUsesConfiguredValuesUnlessFlagsOverride(testInstance *testing.T) {
	configuration := repos.RewriteConfiguration{
		RepositoryRoots:  []string{"/configured"},
		SourceEmail:      "configured-old@example.com",
		DestinationEmail: testDestinationEmailConstant,
	}

	testCases := []struct {
		name                string
		arguments           []string
		expectedRoots       []string
		expectedSourceEmail string
	}{
		{
			name:                "configuration",
			arguments:           nil,
			expectedRoots:       []string{"/configured"},
			expectedSourceEmail: "configured-old@example.com",
		},
		{
			name:                "flags",
			arguments:           []string{"--root", "/flagged", "--from", "flag-old@example.com"},
			expectedRoots:       []string{"/flagged"},
			expectedSourceEmail: "flag-old@example.com",
		},
		{
			name:                "positional_roots_win",
			arguments:           []string{"--root", "/flagged", "/positional"},
			expectedRoots:       []string{"/positional"},
			expectedSourceEmail: "configured-old@example.com",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			harness := newRewriteHarness(subTest, configuration, "all", "n")

			require.NoError(subTest, harness.execute(subTest, testCase.arguments...))

			require.Equal(subTest, testCase.expectedRoots, harness.discoverer.ReceivedRoots)
			require.Contains(subTest, harness.output.String(), testCase.expectedSourceEmail)
			require.Zero(subTest, harness.prompter.Remaining())
		})
	}
}

func TestRewriteCommandClonesAndPushesRemoteRepository(testInstance *testing.T) {
	cloneDirectory := testInstance.TempDir()
	harness := newRewriteHarness(testInstance, repos.RewriteConfiguration{}, "y", "y", "y", "y", "y")

	executionError := harness.execute(testInstance, withEmailFlags("--remote", testAPIRemoteURLConstant, "--clone-dir", cloneDirectory)...)
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, []string{
		"clone " + testAPIRemoteURLConstant + " api",
		"add-remote origin " + testAPIRemoteURLConstant,
		"push api",
	}, harness.manager.calls)
	require.Equal(testInstance, []string{filepath.Join(cloneDirectory, "api")}, harness.engine.rewritten)
	require.Nil(testInstance, harness.discoverer.ReceivedRoots)
	for _, receivedPrompt := range harness.prompter.ReceivedPrompts {
		require.NotContains(testInstance, receivedPrompt, "Select repositories")
	}
	require.Contains(testInstance, harness.output.String(), "Succeeded: 1")
}

func TestRewriteCommandAsksForModeWhenNoTargetsAreKnown(testInstance *testing.T) {
	testCases := []struct {
		name                string
		answers             []string
		expectedRoots       []string
		expectedOutputParts []string
	}{
		{
			name:    "remote",
			answers: []string{"bogus", "remote", testAPIRemoteURLConstant + ", " + testWebRemoteURLConstant, "n"},
			expectedOutputParts: []string{
				"Invalid input: unsupported mode \"bogus\"",
				testAPIRemoteURLConstant,
				testWebRemoteURLConstant,
				"Cancelled.",
			},
		},
		{
			name:                "remote_requires_urls",
			answers:             []string{"remote", " , ", testAPIRemoteURLConstant, "n"},
			expectedOutputParts: []string{"Invalid input: at least one repository URL is required", testAPIRemoteURLConstant},
		},
		{
			name:                "local",
			answers:             []string{"", testWorkspaceRootConstant, "all", "n"},
			expectedRoots:       []string{testWorkspaceRootConstant},
			expectedOutputParts: []string{"api", "web", "Cancelled."},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			harness := newRewriteHarness(subTest, repos.RewriteConfiguration{}, testCase.answers...)

			require.NoError(subTest, harness.execute(subTest, emailFlags...))

			require.Equal(subTest, testCase.expectedRoots, harness.discoverer.ReceivedRoots)
			for _, expectedPart := range testCase.expectedOutputParts {
				require.Contains(subTest, harness.output.String(), expectedPart)
			}
			require.Empty(subTest, harness.engine.rewritten)
			require.Zero(subTest, harness.prompter.Remaining())
		})
	}
}

func TestRewriteCommandDryRunWritesReport(testInstance *testing.T) {
	reportPath := filepath.Join(testInstance.TempDir(), "reports", "run.yaml")
	harness := newRewriteHarness(testInstance, repos.RewriteConfiguration{}, "all")

	executionError := harness.execute(testInstance, withEmailFlags(testWorkspaceRootConstant, "--dry-run", "--report", reportPath)...)
	require.NoError(testInstance, executionError)

	require.Empty(testInstance, harness.engine.rewritten)
	require.Empty(testInstance, harness.manager.calls)
	output := harness.output.String()
	require.Contains(testInstance, output, "2 of 4 commits match")
	require.Contains(testInstance, output, "Skipped: 2")

	content, readError := os.ReadFile(reportPath)
	require.NoError(testInstance, readError)
	var document summary.Document
	require.NoError(testInstance, yaml.Unmarshal(content, &document))
	require.NotEmpty(testInstance, document.RunID)
	require.Equal(testInstance, testSourceEmailConstant, document.Rule.SourceEmail)
	require.Equal(testInstance, summary.TotalsDocument{Skipped: 2}, document.Totals)
}

func TestRewriteCommandStopsWhenInterrupted(testInstance *testing.T) {
	reportPath := filepath.Join(testInstance.TempDir(), "run.yaml")
	harness := newRewriteHarness(testInstance, repos.RewriteConfiguration{}, "all", "y", testsupport.InterruptAnswer)

	executionError := harness.execute(testInstance, withEmailFlags(testWorkspaceRootConstant, "--report", reportPath)...)

	require.ErrorIs(testInstance, executionError, shared.ErrPromptInterrupted)
	require.Empty(testInstance, harness.engine.rewritten)
	require.Empty(testInstance, harness.manager.calls)
	require.Zero(testInstance, harness.prompter.Remaining())

	output := harness.output.String()
	require.Contains(testInstance, output, "Skipped: 2")
	require.Contains(testInstance, output, "Run interrupted by operator")

	content, readError := os.ReadFile(reportPath)
	require.NoError(testInstance, readError)
	var document summary.Document
	require.NoError(testInstance, yaml.Unmarshal(content, &document))
	require.True(testInstance, document.Interrupted)
	require.Equal(testInstance, summary.TotalsDocument{Skipped: 2}, document.Totals)
}

func TestRewriteCommandReportsNoRepositories(testInstance *testing.T) {
	harness := newRewriteHarness(testInstance, repos.RewriteConfiguration{})
	harness.discoverer.Repositories = nil

	require.NoError(testInstance, harness.execute(testInstance, withEmailFlags(testWorkspaceRootConstant)...))

	require.Contains(testInstance, harness.output.String(), "No repositories found under /workspace")
	require.Empty(testInstance, harness.prompter.ReceivedPrompts)
}

func TestRewriteCommandFailsOutsideTheBatch(testInstance *testing.T) {
	discoveryFailure := errors.New("permission denied")

	testCases := []struct {
		name          string
		arguments     []string
		discoveryErr  error
		expectedError error
		expectedText  string
	}{
		{
			name:          "closed_input_before_rule",
			arguments:     []string{testWorkspaceRootConstant},
			expectedError: io.EOF,
			expectedText:  "resolve rewrite rule",
		},
		{
			name:          "closed_input_during_selection",
			arguments:     withEmailFlags(testWorkspaceRootConstant),
			expectedError: io.EOF,
			expectedText:  "resolve repositories",
		},
		{
			name:          "discovery_failure",
			arguments:     withEmailFlags(testWorkspaceRootConstant),
			discoveryErr:  discoveryFailure,
			expectedError: discoveryFailure,
			expectedText:  "permission denied",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			harness := newRewriteHarness(subTest, repos.RewriteConfiguration{})
			harness.discoverer.DiscoveryError = testCase.discoveryErr

			executionError := harness.execute(subTest, testCase.arguments...)

			require.Error(subTest, executionError)
			require.ErrorIs(subTest, executionError, testCase.expectedError)
			require.Contains(subTest, executionError.Error(), testCase.expectedText)
			require.Empty(subTest, harness.engine.rewritten)
		})
	}
}
