package summary

import (
	"fmt"

	"github.com/temirov/mailshift/internal/batch"
	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/ui"
)

const (
	summaryHeadingConstant       = "Summary"
	succeededLabelConstant       = "Succeeded"
	failedLabelConstant          = "Failed"
	skippedLabelConstant         = "Skipped"
	headingLineTemplateConstant  = "%s\n"
	categoryLineTemplateConstant = "  %s: %d\n"
	entryLineTemplateConstant    = "    %s\n"
	failureLineTemplateConstant  = "    %s: %s\n"
	skippedLineTemplateConstant  = "    %s (%s)\n"
	interruptedNoticeConstant    = "Run interrupted by operator; remaining repositories were skipped."
)

// Reporter prints the per-category counts and identifiers of a finished batch.
type Reporter struct {
	reporter shared.Reporter
	palette  ui.Palette
}

// NewReporter constructs a Reporter writing through the provided sink.
func NewReporter(reporter shared.Reporter, palette ui.Palette) *Reporter {
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &Reporter{reporter: reporter, palette: palette}
}

// Report prints every category, including empty ones, so the totals always add up.
func (summaryReporter *Reporter) Report(ledger *batch.Ledger) {
	if ledger == nil {
		ledger = batch.NewLedger()
	}
	palette := summaryReporter.palette

	summaryReporter.reporter.Printf(headingLineTemplateConstant, palette.Title(summaryHeadingConstant))

	succeeded := ledger.Succeeded()
	summaryReporter.reporter.Printf(categoryLineTemplateConstant, palette.Success(succeededLabelConstant), len(succeeded))
	for _, outcome := range succeeded {
		summaryReporter.reporter.Printf(entryLineTemplateConstant, outcome.Target.Identifier())
	}

	failed := ledger.Failed()
	summaryReporter.reporter.Printf(categoryLineTemplateConstant, palette.Failure(failedLabelConstant), len(failed))
	for _, outcome := range failed {
		summaryReporter.reporter.Printf(failureLineTemplateConstant, outcome.Target.Identifier(), outcome.Reason)
	}

	skipped := ledger.Skipped()
	summaryReporter.reporter.Printf(categoryLineTemplateConstant, palette.Muted(skippedLabelConstant), len(skipped))
	for _, outcome := range skipped {
		summaryReporter.reporter.Printf(skippedLineTemplateConstant, outcome.Target.Identifier(), outcome.Reason)
	}

	if ledger.Interrupted() {
		summaryReporter.reporter.Printf(headingLineTemplateConstant, palette.Failure(interruptedNoticeConstant))
	}
}

// ExitSummary returns a one-line description suitable for the final log entry.
func ExitSummary(ledger *batch.Ledger) string {
	return fmt.Sprintf("%d succeeded, %d failed, %d skipped", len(ledger.Succeeded()), len(ledger.Failed()), len(ledger.Skipped()))
}
