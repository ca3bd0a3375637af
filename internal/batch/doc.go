// Package batch runs the per-repository rewrite sequence over a selection and
// records every target in an outcome ledger.
//
// Targets are processed one at a time. A failure while processing one target
// is recorded and never prevents the remaining targets from running.
package batch
