package rewrite

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const inspectionErrorTemplateConstant = "inspect %s: %w"

// InspectionResult counts the commits a rule would change.
type InspectionResult struct {
	TotalCommits       int
	MatchingAuthors    int
	MatchingCommitters int
	MatchingCommits    int
	MatchingTaggers    int
}

// IdentityInspector scans history without modifying it.
type IdentityInspector struct{}

// NewIdentityInspector constructs an IdentityInspector.
func NewIdentityInspector() *IdentityInspector {
	return &IdentityInspector{}
}

// Inspect opens the working copy at repositoryPath and counts matching identities.
func (inspector *IdentityInspector) Inspect(repositoryPath string, rule Rule) (InspectionResult, error) {
	repository, openError := git.PlainOpen(repositoryPath)
	if openError != nil {
		return InspectionResult{}, fmt.Errorf(inspectionErrorTemplateConstant, repositoryPath, openError)
	}
	inspectionResult, inspectionError := inspector.InspectRepository(repository, rule)
	if inspectionError != nil {
		return InspectionResult{}, fmt.Errorf(inspectionErrorTemplateConstant, repositoryPath, inspectionError)
	}
	return inspectionResult, nil
}

// InspectRepository walks every commit reachable from any reference exactly once.
// Annotated tags are peeled to the object they point at and their taggers are counted.
func (inspector *IdentityInspector) InspectRepository(repository *git.Repository, rule Rule) (InspectionResult, error) {
	references, referencesError := repository.References()
	if referencesError != nil {
		return InspectionResult{}, referencesError
	}

	visitedCommits := make(map[plumbing.Hash]struct{})
	visitedTags := make(map[plumbing.Hash]struct{})
	result := InspectionResult{}
	iterationError := references.ForEach(func(reference *plumbing.Reference) error {
		if reference.Type() != plumbing.HashReference {
			return nil
		}

		commitHash, isCommit, peelError := peelToCommit(repository, reference.Hash(), visitedTags, &result, rule)
		if peelError != nil {
			return peelError
		}
		if !isCommit {
			return nil
		}

		commitIterator, logError := repository.Log(&git.LogOptions{From: commitHash})
		if logError != nil {
			return logError
		}
		return commitIterator.ForEach(func(commit *object.Commit) error {
			if _, seen := visitedCommits[commit.Hash]; seen {
				return nil
			}
			visitedCommits[commit.Hash] = struct{}{}
			result.record(commit, rule)
			return nil
		})
	})
	if iterationError != nil {
		return InspectionResult{}, iterationError
	}
	return result, nil
}

// peelToCommit follows annotated tag chains until it reaches a non-tag object.
// Tags pointing at trees or blobs report isCommit false.
func peelToCommit(repository *git.Repository, hash plumbing.Hash, visitedTags map[plumbing.Hash]struct{}, result *InspectionResult, rule Rule) (plumbing.Hash, bool, error) {
	for {
		gitObject, objectError := repository.Object(plumbing.AnyObject, hash)
		if objectError != nil {
			return plumbing.ZeroHash, false, objectError
		}
		switch typedObject := gitObject.(type) {
		case *object.Commit:
			return typedObject.Hash, true, nil
		case *object.Tag:
			if _, seen := visitedTags[typedObject.Hash]; !seen {
				visitedTags[typedObject.Hash] = struct{}{}
				result.recordTag(typedObject, rule)
			}
			hash = typedObject.Target
		default:
			return plumbing.ZeroHash, false, nil
		}
	}
}

func (result *InspectionResult) record(commit *object.Commit, rule Rule) {
	result.TotalCommits++
	authorMatches := rule.Matches(commit.Author.Email)
	committerMatches := rule.Matches(commit.Committer.Email)
	if authorMatches {
		result.MatchingAuthors++
	}
	if committerMatches {
		result.MatchingCommitters++
	}
	if authorMatches || committerMatches {
		result.MatchingCommits++
	}
}

func (result *InspectionResult) recordTag(tag *object.Tag, rule Rule) {
	if rule.Matches(tag.Tagger.Email) {
		result.MatchingTaggers++
	}
}
