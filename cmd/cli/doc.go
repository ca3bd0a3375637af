// Package cli constructs the mailshift command-line interface: the Cobra command
// hierarchy, the layered configuration loader, and the structured logger that
// every run carries with its own run identifier.
package cli
