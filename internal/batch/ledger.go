package batch

import "github.com/temirov/mailshift/internal/repos/shared"

// Skip reasons recorded in the ledger.
const (
	SkipReasonOperatorDeclined = "operator declined"
	SkipReasonDryRun           = "dry run"
	SkipReasonInterrupted      = "interrupted"
)

// Outcome is one ledger entry. Reason holds the error text for failures and
// the skip reason for skipped targets.
type Outcome struct {
	Target shared.RepositoryTarget
	Reason string
}

// Ledger is an append-only record of what happened to each processed target.
type Ledger struct {
	succeeded []Outcome
	failed    []Outcome
	skipped   []Outcome

	interrupted bool
}

// NewLedger constructs an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// RecordSuccess appends a successfully processed target.
func (ledger *Ledger) RecordSuccess(target shared.RepositoryTarget) {
	ledger.succeeded = append(ledger.succeeded, Outcome{Target: target})
}

// RecordFailure appends a target whose processing failed.
func (ledger *Ledger) RecordFailure(target shared.RepositoryTarget, failure error) {
	reason := ""
	if failure != nil {
		reason = failure.Error()
	}
	ledger.failed = append(ledger.failed, Outcome{Target: target, Reason: reason})
}

// RecordSkip appends a target that was intentionally not processed.
func (ledger *Ledger) RecordSkip(target shared.RepositoryTarget, reason string) {
	ledger.skipped = append(ledger.skipped, Outcome{Target: target, Reason: reason})
}

// Succeeded returns the successful entries in processing order.
func (ledger *Ledger) Succeeded() []Outcome {
	return append([]Outcome(nil), ledger.succeeded...)
}

// Failed returns the failed entries in processing order.
func (ledger *Ledger) Failed() []Outcome {
	return append([]Outcome(nil), ledger.failed...)
}

// Skipped returns the skipped entries in processing order.
func (ledger *Ledger) Skipped() []Outcome {
	return append([]Outcome(nil), ledger.skipped...)
}

// MarkInterrupted records that the operator stopped the batch before it finished.
func (ledger *Ledger) MarkInterrupted() {
	ledger.interrupted = true
}

// Interrupted reports whether the operator stopped the batch.
func (ledger *Ledger) Interrupted() bool {
	return ledger.interrupted
}

// Total returns the number of recorded targets.
func (ledger *Ledger) Total() int {
	return len(ledger.succeeded) + len(ledger.failed) + len(ledger.skipped)
}
