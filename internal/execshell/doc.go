// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging and typed errors, and
// OSCommandRunner is the os/exec-backed default. Every git invocation made by
// mailshift, including the filter-repo history rewrite, goes through here with
// an explicit working directory.
package execshell
