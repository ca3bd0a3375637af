package discovery

import (
	"path/filepath"
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/temirov/mailshift/internal/repos/shared"
)

const currentDirectoryMarkerConstant = "."

type repositoryPathSource []string

func (source repositoryPathSource) String(index int) string {
	return source[index]
}

func (source repositoryPathSource) Len() int {
	return len(source)
}

// FilterRepositories keeps the paths that fuzzy-match pattern. An empty pattern keeps everything.
// The result preserves the input order rather than the match score order.
func FilterRepositories(pattern string, repositoryPaths []string) []string {
	if len(pattern) == 0 {
		return append([]string(nil), repositoryPaths...)
	}

	matches := fuzzy.FindFrom(pattern, repositoryPathSource(repositoryPaths))
	matchedIndexes := make([]int, 0, len(matches))
	for _, match := range matches {
		matchedIndexes = append(matchedIndexes, match.Index)
	}
	sort.Ints(matchedIndexes)

	filtered := make([]string, 0, len(matchedIndexes))
	for _, matchedIndex := range matchedIndexes {
		filtered = append(filtered, repositoryPaths[matchedIndex])
	}
	return filtered
}

// DisplayName returns the repository path relative to the root it was found under.
// A root that is itself a repository is displayed by the base name of its absolute path,
// so "." resolves to the current directory's name.
func DisplayName(root string, repositoryPath string) string {
	relativePath, relativeError := filepath.Rel(root, repositoryPath)
	if relativeError != nil {
		return repositoryPath
	}
	if relativePath != currentDirectoryMarkerConstant {
		return relativePath
	}
	absolutePath, absoluteError := filepath.Abs(repositoryPath)
	if absoluteError != nil {
		return filepath.Base(repositoryPath)
	}
	return filepath.Base(absolutePath)
}

// BuildLocalTargets converts repository paths found under root into local targets.
func BuildLocalTargets(root string, repositoryPaths []string) ([]shared.RepositoryTarget, error) {
	targets := make([]shared.RepositoryTarget, 0, len(repositoryPaths))
	for _, repositoryPath := range repositoryPaths {
		target, targetError := shared.NewLocalTarget(repositoryPath, DisplayName(root, repositoryPath))
		if targetError != nil {
			return nil, targetError
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// LocateTargets discovers repositories under each root, applies the optional fuzzy
// pattern to the display names, and returns the targets sorted by path without duplicates.
func LocateTargets(discoverer shared.RepositoryDiscoverer, roots []string, pattern string) ([]shared.RepositoryTarget, error) {
	var located []shared.RepositoryTarget
	for _, root := range roots {
		repositoryPaths, discoveryError := discoverer.DiscoverRepositories([]string{root})
		if discoveryError != nil {
			return nil, discoveryError
		}

		displayNames := make([]string, 0, len(repositoryPaths))
		pathsByDisplayName := make(map[string]string, len(repositoryPaths))
		for _, repositoryPath := range repositoryPaths {
			displayName := DisplayName(root, repositoryPath)
			displayNames = append(displayNames, displayName)
			pathsByDisplayName[displayName] = repositoryPath
		}

		var selectedPaths []string
		for _, displayName := range FilterRepositories(pattern, displayNames) {
			selectedPaths = append(selectedPaths, pathsByDisplayName[displayName])
		}

		targets, targetsError := BuildLocalTargets(root, selectedPaths)
		if targetsError != nil {
			return nil, targetsError
		}
		located = append(located, targets...)
	}

	sort.SliceStable(located, func(left int, right int) bool {
		return located[left].Location < located[right].Location
	})
	return shared.NewSelectionSet(located).Targets(), nil
}
