// Package plan renders the resolved rewrite and asks for the single go/no-go
// confirmation that precedes any repository mutation.
package plan

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/rewrite"
	"github.com/temirov/mailshift/internal/ui"
)

const (
	planHeadingConstant             = "Rewrite plan"
	sourceEmailLabelConstant        = "Source email"
	destinationEmailLabelConstant   = "Destination email"
	modeLabelConstant               = "Mode"
	repositoryCountLabelConstant    = "Repositories"
	repositoryLabelTemplateConstant = "Repository %d"
	executionLabelConstant          = "Execution"
	confirmationQuestionConstant    = "Start rewriting the repositories above?"
	cancellationNoticeConstant      = "Cancelled. No repository was modified.\n"
	dryRunNoticeConstant            = "Dry run: repositories will be inspected but not modified.\n"
	prompterMissingMessageConstant  = "plan gate requires a prompter"
)

// ErrPrompterNotConfigured indicates the gate cannot ask for confirmation.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// Plan is the fully resolved operation presented to the operator.
type Plan struct {
	Rule    rewrite.Rule
	Mode    shared.TargetKind
	Targets shared.SelectionSet
	DryRun  bool
}

// Gate presents a Plan and collects the operator's decision.
type Gate struct {
	prompter shared.Prompter
	reporter shared.Reporter
	palette  ui.Palette
}

// NewGate constructs a Gate.
func NewGate(prompter shared.Prompter, reporter shared.Reporter, palette ui.Palette) *Gate {
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &Gate{prompter: prompter, reporter: reporter, palette: palette}
}

// Confirm renders the plan and asks one yes/no question defaulting to no.
// A dry run is rendered without asking because nothing will be modified.
func (gate *Gate) Confirm(operation Plan) (bool, error) {
	gate.render(operation)

	if operation.DryRun {
		gate.reporter.Printf("%s", gate.palette.Muted(dryRunNoticeConstant))
		return true, nil
	}
	if gate.prompter == nil {
		return false, ErrPrompterNotConfigured
	}

	confirmed, confirmationError := gate.prompter.Confirm(gate.palette.Failure(confirmationQuestionConstant), false)
	if confirmationError != nil {
		return false, confirmationError
	}
	if !confirmed {
		gate.reporter.Printf("%s", gate.palette.Muted(cancellationNoticeConstant))
		return false, nil
	}
	return true, nil
}

func (gate *Gate) render(operation Plan) {
	targets := operation.Targets.Targets()
	rows := [][]string{
		{sourceEmailLabelConstant, gate.palette.Failure(operation.Rule.SourceEmail)},
		{destinationEmailLabelConstant, gate.palette.Success(operation.Rule.DestinationEmail)},
		{modeLabelConstant, operation.Mode.String()},
		{repositoryCountLabelConstant, strconv.Itoa(len(targets))},
	}
	for index, target := range targets {
		rows = append(rows, []string{fmt.Sprintf(repositoryLabelTemplateConstant, index+1), gate.palette.Accent(target.Identifier())})
	}
	if operation.DryRun {
		rows = append(rows, []string{executionLabelConstant, shared.ExecutionModeDryRun.String()})
	}

	gate.reporter.Printf("%s\n", gate.palette.Title(planHeadingConstant))
	gate.reporter.Printf("%s", gate.palette.KeyValueTable(rows))
}
