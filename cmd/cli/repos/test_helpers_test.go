package repos_test

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/mailshift/cmd/cli/repos"
	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/rewrite"
	"github.com/temirov/mailshift/internal/testsupport"
)

type recordingGitManager struct {
	origins map[string]string
	tags    []string
	calls   []string
}

func newRecordingGitManager() *recordingGitManager {
	return &recordingGitManager{origins: map[string]string{}}
}

func (manager *recordingGitManager) Clone(_ context.Context, parentDirectory string, remoteURL string, directoryName string) error {
	manager.calls = append(manager.calls, fmt.Sprintf("clone %s %s", remoteURL, directoryName))
	manager.origins[filepath.Join(parentDirectory, directoryName)] = remoteURL
	return nil
}

func (manager *recordingGitManager) AddRemote(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	manager.calls = append(manager.calls, fmt.Sprintf("add-remote %s %s", remoteName, remoteURL))
	manager.origins[repositoryPath] = remoteURL
	return nil
}

func (manager *recordingGitManager) GetRemoteURL(_ context.Context, repositoryPath string, _ string) (string, bool, error) {
	remoteURL, exists := manager.origins[repositoryPath]
	return remoteURL, exists, nil
}

func (manager *recordingGitManager) ForcePushAll(_ context.Context, repositoryPath string) error {
	manager.calls = append(manager.calls, "push "+filepath.Base(repositoryPath))
	return nil
}

func (manager *recordingGitManager) ListRemoteTags(context.Context, string, string) ([]string, error) {
	return append([]string{}, manager.tags...), nil
}

func (manager *recordingGitManager) DeleteRemoteTag(_ context.Context, _ string, _ string, tagName string) error {
	manager.calls = append(manager.calls, "delete-tag "+tagName)
	return nil
}

// recordingEngine mimics filter-repo by dropping the origin of every rewritten repository.
type recordingEngine struct {
	manager   *recordingGitManager
	rewritten []string
	rules     []rewrite.Rule
}

func (engine *recordingEngine) Rewrite(_ context.Context, repositoryPath string, rule rewrite.Rule) error {
	engine.rewritten = append(engine.rewritten, repositoryPath)
	engine.rules = append(engine.rules, rule)
	delete(engine.manager.origins, repositoryPath)
	return nil
}

type fixedInspector struct{}

func (fixedInspector) Inspect(string, rewrite.Rule) (rewrite.InspectionResult, error) {
	return rewrite.InspectionResult{TotalCommits: 4, MatchingAuthors: 2, MatchingCommitters: 1, MatchingCommits: 2}, nil
}

type rewriteHarness struct {
	discoverer *testsupport.RepositoryDiscovererStub
	manager    *recordingGitManager
	engine     *recordingEngine
	prompter   *testsupport.ScriptedPrompter
	output     *bytes.Buffer
	builder    repos.RewriteCommandBuilder
}

func newRewriteHarness(testInstance *testing.T, configuration repos.RewriteConfiguration, answers ...string) *rewriteHarness {
	testInstance.Helper()

	manager := newRecordingGitManager()
	harness := &rewriteHarness{
		discoverer: &testsupport.RepositoryDiscovererStub{Repositories: []string{"/workspace/api", "/workspace/web"}},
		manager:    manager,
		engine:     &recordingEngine{manager: manager},
		prompter:   testsupport.NewScriptedPrompter(answers...),
		output:     &bytes.Buffer{},
	}
	harness.builder = repos.RewriteCommandBuilder{
		Discoverer: harness.discoverer,
		GitManager: manager,
		Engine:     harness.engine,
		Inspector:  fixedInspector{},
		PrompterFactory: func(*cobra.Command) shared.Prompter {
			return harness.prompter
		},
		ConfigurationProvider: func() repos.RewriteConfiguration {
			return configuration
		},
	}
	return harness
}

func (harness *rewriteHarness) execute(testInstance *testing.T, arguments ...string) error {
	testInstance.Helper()

	command, buildError := harness.builder.Build()
	require.NoError(testInstance, buildError)
	command.SetContext(context.Background())
	command.SetArgs(append([]string{}, arguments...))
	command.SetOut(harness.output)
	command.SetErr(harness.output)
	command.SilenceUsage = true
	command.SilenceErrors = true
	return command.Execute()
}
