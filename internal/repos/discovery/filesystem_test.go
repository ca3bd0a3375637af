package discovery_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mailshift/internal/repos/discovery"
)

const (
	developerDirectoryName             = "Dev"
	engineeringGroupDirectoryName      = "Group1"
	applicationRepositoryDirectoryName = "Repo1"
	serviceRepositoryDirectoryName     = "Repo2"
	toolsRepositoryDirectoryName       = "Repo3"
	vendoredRepositoryDirectoryName    = "vendored"
	gitMetadataDirectoryName           = ".git"
	singleRootSubtestTitle             = "discoversRepositoriesFromSingleRoot"
	combinedRootsSubtestTitle          = "discoversRepositoriesFromParentAndNestedRoots"
	repositoryDirectoryPermissions     = 0o755
	gitFilePermissions                 = 0o644
)

type repositoryDefinition struct {
	directorySegments []string
}

func (definition repositoryDefinition) repositoryPath(rootDirectory string) string {
	segments := append([]string{rootDirectory}, definition.directorySegments...)
	return filepath.Join(segments...)
}

func (definition repositoryDefinition) gitMetadataPath(rootDirectory string) string {
	return filepath.Join(definition.repositoryPath(rootDirectory), gitMetadataDirectoryName)
}

type filesystemDiscoveryTestScenario struct {
	title                      string
	rootDirectoriesConstructor func(string) []string
}

func (scenario filesystemDiscoveryTestScenario) execute(
	testFramework *testing.T,
	repositoryDefinitions []repositoryDefinition,
) {
	testFramework.Helper()

	temporaryRootDirectory := testFramework.TempDir()
	for _, repositoryDefinition := range repositoryDefinitions {
		creationError := os.MkdirAll(repositoryDefinition.gitMetadataPath(temporaryRootDirectory), repositoryDirectoryPermissions)
		require.NoError(testFramework, creationError)
	}

	repositoryDiscoverer := discovery.NewFilesystemRepositoryDiscoverer()
	discoveredRepositories, discoveryError := repositoryDiscoverer.DiscoverRepositories(
		scenario.rootDirectoriesConstructor(temporaryRootDirectory),
	)
	require.NoError(testFramework, discoveryError)

	expectedRepositories := make([]string, 0, len(repositoryDefinitions))
	for _, repositoryDefinition := range repositoryDefinitions {
		expectedRepositories = append(expectedRepositories, repositoryDefinition.repositoryPath(temporaryRootDirectory))
	}

	sort.Strings(expectedRepositories)
	require.Equal(testFramework, expectedRepositories, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererDiscoversNestedLayouts(testFramework *testing.T) {
	repositoryDefinitions := []repositoryDefinition{
		{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, applicationRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, serviceRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, toolsRepositoryDirectoryName}},
	}

	testScenarios := []filesystemDiscoveryTestScenario{
		{
			title: singleRootSubtestTitle,
			rootDirectoriesConstructor: func(rootDirectory string) []string {
				return []string{rootDirectory}
			},
		},
		{
			title: combinedRootsSubtestTitle,
			rootDirectoriesConstructor: func(rootDirectory string) []string {
				developerDirectoryPath := filepath.Join(rootDirectory, developerDirectoryName)
				engineeringGroupDirectoryPath := filepath.Join(developerDirectoryPath, engineeringGroupDirectoryName)
				return []string{engineeringGroupDirectoryPath, rootDirectory, developerDirectoryPath}
			},
		},
	}

	for _, testScenario := range testScenarios {
		testFramework.Run(testScenario.title, func(testFramework *testing.T) {
			testScenario.execute(testFramework, repositoryDefinitions)
		})
	}
}

func TestFilesystemRepositoryDiscovererPrunesInsideRepositories(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()
	outerRepository := filepath.Join(rootDirectory, toolsRepositoryDirectoryName)
	nestedRepository := filepath.Join(outerRepository, vendoredRepositoryDirectoryName, applicationRepositoryDirectoryName)
	worktreeRepository := filepath.Join(rootDirectory, serviceRepositoryDirectoryName)

	require.NoError(testFramework, os.MkdirAll(filepath.Join(outerRepository, gitMetadataDirectoryName), repositoryDirectoryPermissions))
	require.NoError(testFramework, os.MkdirAll(filepath.Join(nestedRepository, gitMetadataDirectoryName), repositoryDirectoryPermissions))
	require.NoError(testFramework, os.MkdirAll(worktreeRepository, repositoryDirectoryPermissions))
	require.NoError(testFramework, os.WriteFile(filepath.Join(worktreeRepository, gitMetadataDirectoryName), []byte("gitdir: /elsewhere\n"), gitFilePermissions))

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories([]string{rootDirectory})
	require.NoError(testFramework, discoveryError)
	require.Equal(testFramework, []string{worktreeRepository, outerRepository}, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererReportsRootThatIsRepository(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()
	require.NoError(testFramework, os.MkdirAll(filepath.Join(rootDirectory, gitMetadataDirectoryName), repositoryDirectoryPermissions))
	require.NoError(testFramework, os.MkdirAll(filepath.Join(rootDirectory, toolsRepositoryDirectoryName, gitMetadataDirectoryName), repositoryDirectoryPermissions))

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories([]string{rootDirectory})
	require.NoError(testFramework, discoveryError)
	require.Equal(testFramework, []string{rootDirectory}, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererPropagatesReadErrors(testFramework *testing.T) {
	missingRoot := filepath.Join(testFramework.TempDir(), "missing")

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories([]string{missingRoot})
	require.Error(testFramework, discoveryError)
	require.ErrorIs(testFramework, discoveryError, os.ErrNotExist)
	require.Nil(testFramework, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererReturnsEmptyForPlainDirectories(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()
	require.NoError(testFramework, os.MkdirAll(filepath.Join(rootDirectory, "notes", "drafts"), repositoryDirectoryPermissions))

	discoveredRepositories, discoveryError := discovery.NewFilesystemRepositoryDiscoverer().DiscoverRepositories([]string{rootDirectory})
	require.NoError(testFramework, discoveryError)
	require.Empty(testFramework, discoveredRepositories)
}
