package summary

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/mailshift/internal/batch"
	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/rewrite"
)

const (
	reportPathRequiredMessageConstant = "report path is required"
	fileSystemMissingMessageConstant  = "report writer requires a filesystem"
	encodeReportErrorTemplateConstant = "encode report: %w"
	writeReportErrorTemplateConstant  = "write report %s: %w"
	reportDirectoryPermissions        = 0o755
	reportFilePermissions             = 0o644
)

var (
	// ErrReportPathRequired indicates WriteYAMLReport received an empty path.
	ErrReportPathRequired = errors.New(reportPathRequiredMessageConstant)
	// ErrFileSystemNotConfigured indicates WriteYAMLReport received a nil filesystem.
	ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)
)

// Document is the YAML representation of a finished batch.
type Document struct {
	RunID       string          `yaml:"run_id"`
	Rule        RuleDocument    `yaml:"rule"`
	Interrupted bool            `yaml:"interrupted,omitempty"`
	Totals      TotalsDocument  `yaml:"totals"`
	Succeeded   []EntryDocument `yaml:"succeeded"`
	Failed      []EntryDocument `yaml:"failed"`
	Skipped     []EntryDocument `yaml:"skipped"`
}

// RuleDocument records the applied mapping.
type RuleDocument struct {
	SourceEmail      string `yaml:"source_email"`
	DestinationEmail string `yaml:"destination_email"`
}

// TotalsDocument records per-category counts.
type TotalsDocument struct {
	Succeeded int `yaml:"succeeded"`
	Failed    int `yaml:"failed"`
	Skipped   int `yaml:"skipped"`
}

// EntryDocument records one target.
type EntryDocument struct {
	Repository string `yaml:"repository"`
	Kind       string `yaml:"kind"`
	Location   string `yaml:"location"`
	Reason     string `yaml:"reason,omitempty"`
}

// BuildDocument converts a ledger into its report representation.
func BuildDocument(runID string, rule rewrite.Rule, ledger *batch.Ledger) Document {
	if ledger == nil {
		ledger = batch.NewLedger()
	}
	document := Document{
		RunID:       runID,
		Rule:        RuleDocument{SourceEmail: rule.SourceEmail, DestinationEmail: rule.DestinationEmail},
		Interrupted: ledger.Interrupted(),
		Succeeded:   convertOutcomes(ledger.Succeeded()),
		Failed:      convertOutcomes(ledger.Failed()),
		Skipped:     convertOutcomes(ledger.Skipped()),
	}
	document.Totals = TotalsDocument{
		Succeeded: len(document.Succeeded),
		Failed:    len(document.Failed),
		Skipped:   len(document.Skipped),
	}
	return document
}

// WriteYAMLReport encodes the batch outcome and stores it at reportPath, creating parent directories.
func WriteYAMLReport(fileSystem shared.FileSystem, reportPath string, runID string, rule rewrite.Rule, ledger *batch.Ledger) error {
	if fileSystem == nil {
		return ErrFileSystemNotConfigured
	}
	trimmedPath := strings.TrimSpace(reportPath)
	if len(trimmedPath) == 0 {
		return ErrReportPathRequired
	}

	encoded, encodeError := yaml.Marshal(BuildDocument(runID, rule, ledger))
	if encodeError != nil {
		return fmt.Errorf(encodeReportErrorTemplateConstant, encodeError)
	}
	if mkdirError := fileSystem.MkdirAll(filepath.Dir(trimmedPath), reportDirectoryPermissions); mkdirError != nil {
		return fmt.Errorf(writeReportErrorTemplateConstant, trimmedPath, mkdirError)
	}
	if writeError := fileSystem.WriteFile(trimmedPath, encoded, reportFilePermissions); writeError != nil {
		return fmt.Errorf(writeReportErrorTemplateConstant, trimmedPath, writeError)
	}
	return nil
}

func convertOutcomes(outcomes []batch.Outcome) []EntryDocument {
	entries := make([]EntryDocument, 0, len(outcomes))
	for _, outcome := range outcomes {
		entries = append(entries, EntryDocument{
			Repository: outcome.Target.Identifier(),
			Kind:       outcome.Target.Kind.String(),
			Location:   outcome.Target.Location,
			Reason:     outcome.Reason,
		})
	}
	return entries
}
