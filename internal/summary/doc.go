// Package summary reports the outcome of a rewrite batch, both as operator-facing
// text and as an optional YAML document for later inspection.
package summary
