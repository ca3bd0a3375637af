package selection

import (
	"errors"
	"fmt"

	"github.com/temirov/mailshift/internal/repos/prompt"
	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/ui"
)

const (
	menuHeadingConstant            = "Repositories"
	menuEntryTemplateConstant      = "  %3d) %s\n"
	menuEntryPathTemplateConstant  = " %s"
	selectionQuestionConstant      = "Select repositories (comma-separated numbers or 'all'): "
	prompterMissingMessageConstant = "selector requires a prompter"
)

// ErrPrompterNotConfigured indicates the selector cannot ask the operator.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// Selector renders a numbered menu of candidates and asks which to process.
type Selector struct {
	prompter shared.Prompter
	reporter shared.Reporter
	palette  ui.Palette
}

// NewSelector constructs a Selector.
func NewSelector(prompter shared.Prompter, reporter shared.Reporter, palette ui.Palette) *Selector {
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &Selector{prompter: prompter, reporter: reporter, palette: palette}
}

// Select repeats the question until the answer is valid. Only prompter errors,
// such as closed input, are returned.
func (selector *Selector) Select(candidates []shared.RepositoryTarget) (shared.SelectionSet, error) {
	if selector.prompter == nil {
		return shared.SelectionSet{}, ErrPrompterNotConfigured
	}

	selector.renderMenu(candidates)
	indexes, selectionError := prompt.AskUntilValid(selector.prompter, selector.reporter, selectionQuestionConstant, func(answer string) ([]int, error) {
		return ParseSelection(answer, len(candidates))
	})
	if selectionError != nil {
		return shared.SelectionSet{}, selectionError
	}

	chosen := make([]shared.RepositoryTarget, 0, len(indexes))
	for _, index := range indexes {
		chosen = append(chosen, candidates[index])
	}
	return shared.NewSelectionSet(chosen), nil
}

func (selector *Selector) renderMenu(candidates []shared.RepositoryTarget) {
	selector.reporter.Printf("%s\n", selector.palette.Title(menuHeadingConstant))
	for index, candidate := range candidates {
		label := selector.palette.Accent(candidate.Identifier())
		if candidate.Identifier() != candidate.Location {
			label += selector.palette.Muted(fmt.Sprintf(menuEntryPathTemplateConstant, candidate.Location))
		}
		selector.reporter.Printf(menuEntryTemplateConstant, index+1, label)
	}
}
