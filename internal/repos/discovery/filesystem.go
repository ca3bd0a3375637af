package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const (
	gitMetadataEntryNameConstant   = ".git"
	discoveryErrorTemplateConstant = "discover repositories under %s: %w"
)

// FilesystemRepositoryDiscoverer locates git working copies on disk.
type FilesystemRepositoryDiscoverer struct{}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// DiscoverRepositories walks the provided roots and returns directories containing a .git entry.
// Descent stops at every hit, so repositories nested inside another repository are not reported.
// Results are de-duplicated across roots and sorted. Filesystem read errors are returned.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	seen := make(map[string]struct{})
	var repositories []string

	for _, root := range roots {
		walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				return walkError
			}
			if !directoryEntry.IsDir() {
				return nil
			}

			isRepository, inspectionError := containsGitMetadata(path)
			if inspectionError != nil {
				return inspectionError
			}
			if !isRepository {
				return nil
			}

			if _, alreadySeen := seen[path]; !alreadySeen {
				seen[path] = struct{}{}
				repositories = append(repositories, path)
			}
			return fs.SkipDir
		})
		if walkError != nil {
			return nil, fmt.Errorf(discoveryErrorTemplateConstant, root, walkError)
		}
	}

	sort.Strings(repositories)
	return repositories, nil
}

// containsGitMetadata accepts both a .git directory and a .git file (worktrees and submodules).
func containsGitMetadata(directoryPath string) (bool, error) {
	_, statError := os.Lstat(filepath.Join(directoryPath, gitMetadataEntryNameConstant))
	if statError == nil {
		return true, nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, statError
}
