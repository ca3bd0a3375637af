package testsupport

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

const (
	fixtureFileNameTemplateConstant = "change-%02d.txt"
	fixtureFilePermissionsConstant  = 0o644
	fixtureAuthorNameConstant       = "Fixture Author"
	fixtureCommitterNameConstant    = "Fixture Committer"
	fixtureTaggerEmailConstant      = "release@example.com"
	gitExecutableNameConstant       = "git"
	filterRepoSubcommandConstant    = "filter-repo"
	versionFlagConstant             = "--version"
)

// FixtureCommit describes one commit of a fixture repository.
type FixtureCommit struct {
	Message        string
	AuthorEmail    string
	CommitterEmail string
}

// CreateRepository initializes a working copy at path and records the commits in order.
func CreateRepository(testInstance *testing.T, path string, commits []FixtureCommit) *git.Repository {
	testInstance.Helper()

	repository, initError := git.PlainInit(path, false)
	require.NoError(testInstance, initError)

	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)

	baseTime := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	for index, commit := range commits {
		fileName := fmt.Sprintf(fixtureFileNameTemplateConstant, index)
		require.NoError(testInstance, os.WriteFile(filepath.Join(path, fileName), []byte(commit.Message), fixtureFilePermissionsConstant))
		_, addError := worktree.Add(fileName)
		require.NoError(testInstance, addError)

		committerEmail := commit.CommitterEmail
		if len(committerEmail) == 0 {
			committerEmail = commit.AuthorEmail
		}
		when := baseTime.Add(time.Duration(index) * time.Minute)
		_, commitError := worktree.Commit(commit.Message, &git.CommitOptions{
			Author:    &object.Signature{Name: fixtureAuthorNameConstant, Email: commit.AuthorEmail, When: when},
			Committer: &object.Signature{Name: fixtureCommitterNameConstant, Email: committerEmail, When: when},
		})
		require.NoError(testInstance, commitError)
	}
	return repository
}

// CreateTag creates a lightweight tag on HEAD.
func CreateTag(testInstance *testing.T, repository *git.Repository, tagName string) {
	testInstance.Helper()

	head, headError := repository.Head()
	require.NoError(testInstance, headError)
	_, tagError := repository.CreateTag(tagName, head.Hash(), nil)
	require.NoError(testInstance, tagError)
}

// CreateAnnotatedTag creates an annotated tag on HEAD.
func CreateAnnotatedTag(testInstance *testing.T, repository *git.Repository, tagName string, message string) {
	testInstance.Helper()

	head, headError := repository.Head()
	require.NoError(testInstance, headError)
	_, tagError := repository.CreateTag(tagName, head.Hash(), &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: fixtureAuthorNameConstant, Email: fixtureTaggerEmailConstant, When: time.Date(2024, time.January, 2, 12, 0, 0, 0, time.UTC)},
		Message: message,
	})
	require.NoError(testInstance, tagError)
}

// CloneBare creates a bare clone of sourcePath at destinationPath with the git executable.
func CloneBare(testInstance *testing.T, sourcePath string, destinationPath string) {
	testInstance.Helper()
	RequireGit(testInstance)

	output, cloneError := exec.Command(gitExecutableNameConstant, "clone", "--bare", sourcePath, destinationPath).CombinedOutput()
	require.NoError(testInstance, cloneError, string(output))
}

// ReadCommits returns the commits reachable from HEAD, oldest first.
func ReadCommits(testInstance *testing.T, path string) []FixtureCommit {
	testInstance.Helper()

	repository, openError := git.PlainOpen(path)
	require.NoError(testInstance, openError)
	head, headError := repository.Head()
	require.NoError(testInstance, headError)

	commitIterator, logError := repository.Log(&git.LogOptions{From: head.Hash()})
	require.NoError(testInstance, logError)

	var newestFirst []FixtureCommit
	require.NoError(testInstance, commitIterator.ForEach(func(commit *object.Commit) error {
		newestFirst = append(newestFirst, FixtureCommit{
			Message:        commit.Message,
			AuthorEmail:    commit.Author.Email,
			CommitterEmail: commit.Committer.Email,
		})
		return nil
	}))

	oldestFirst := make([]FixtureCommit, 0, len(newestFirst))
	for index := len(newestFirst) - 1; index >= 0; index-- {
		oldestFirst = append(oldestFirst, newestFirst[index])
	}
	return oldestFirst
}

// ListTags returns the tag names stored in the repository at path.
func ListTags(testInstance *testing.T, path string) []string {
	testInstance.Helper()

	repository, openError := git.PlainOpen(path)
	require.NoError(testInstance, openError)
	tagIterator, tagsError := repository.Tags()
	require.NoError(testInstance, tagsError)

	var tagNames []string
	require.NoError(testInstance, tagIterator.ForEach(func(reference *plumbing.Reference) error {
		tagNames = append(tagNames, reference.Name().Short())
		return nil
	}))
	return tagNames
}

// RequireGit skips the test when the git executable is unavailable.
func RequireGit(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(gitExecutableNameConstant); lookupError != nil {
		testInstance.Skip("git is not installed")
	}
}

// RequireGitFilterRepo skips the test unless both git and git-filter-repo are installed.
func RequireGitFilterRepo(testInstance *testing.T) {
	testInstance.Helper()
	RequireGit(testInstance)
	if runError := exec.Command(gitExecutableNameConstant, filterRepoSubcommandConstant, versionFlagConstant).Run(); runError != nil {
		testInstance.Skip("git filter-repo is not installed")
	}
}
