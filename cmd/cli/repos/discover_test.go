package repos_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mailshift/cmd/cli/repos"
	"github.com/temirov/mailshift/internal/testsupport"
)

func TestDiscoverCommandListsRepositories(testInstance *testing.T) {
	testCases := []struct {
		name               string
		configuration      repos.RewriteConfiguration
		arguments          []string
		expectedRoots      []string
		expectedContains   []string
		expectedNotContain []string
	}{
		{
			name:             "positional_root",
			arguments:        []string{testWorkspaceRootConstant},
			expectedRoots:    []string{testWorkspaceRootConstant},
			expectedContains: []string{"Repositories under /workspace: 2", "api", "/workspace/web"},
		},
		{
			name:               "configured_root_and_match",
			configuration:      repos.RewriteConfiguration{RepositoryRoots: []string{testWorkspaceRootConstant}},
			arguments:          []string{"--match", "wb"},
			expectedRoots:      []string{testWorkspaceRootConstant},
			expectedContains:   []string{"Repositories under /workspace: 1", "/workspace/web"},
			expectedNotContain: []string{"/workspace/api"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			discoverer := &testsupport.RepositoryDiscovererStub{Repositories: []string{"/workspace/api", "/workspace/web"}}
			configuration := testCase.configuration
			builder := repos.DiscoverCommandBuilder{
				Discoverer: discoverer,
				ConfigurationProvider: func() repos.RewriteConfiguration {
					return configuration
				},
			}

			command, buildError := builder.Build()
			require.NoError(subTest, buildError)
			output := &bytes.Buffer{}
			command.SetContext(context.Background())
			command.SetOut(output)
			command.SetArgs(append([]string{}, testCase.arguments...))

			require.NoError(subTest, command.Execute())
			require.Equal(subTest, testCase.expectedRoots, discoverer.ReceivedRoots)
			for _, expected := range testCase.expectedContains {
				require.Contains(subTest, output.String(), expected)
			}
			for _, unexpected := range testCase.expectedNotContain {
				require.NotContains(subTest, output.String(), unexpected)
			}
		})
	}
}

func TestDiscoverCommandRequiresRoots(testInstance *testing.T) {
	builder := repos.DiscoverCommandBuilder{Discoverer: &testsupport.RepositoryDiscovererStub{}}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetContext(context.Background())
	command.SetOut(&bytes.Buffer{})
	command.SetArgs([]string{})
	command.SilenceErrors = true
	command.SilenceUsage = true

	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "no repository roots provided")
}
