package shared

// ExecutionMode specifies whether a run mutates repositories or only describes what it would do.
type ExecutionMode int

const (
	// ExecutionModeApply runs every confirmed step.
	ExecutionModeApply ExecutionMode = iota
	// ExecutionModeDryRun prints plans and runs no mutating command.
	ExecutionModeDryRun
)

// ExecutionModeFromBool converts the dry-run flag into a mode.
func ExecutionModeFromBool(dryRun bool) ExecutionMode {
	if dryRun {
		return ExecutionModeDryRun
	}
	return ExecutionModeApply
}

// IsDryRun reports whether mutation is disabled.
func (mode ExecutionMode) IsDryRun() bool {
	return mode == ExecutionModeDryRun
}

// String returns the operator-facing name of the mode.
func (mode ExecutionMode) String() string {
	if mode.IsDryRun() {
		return "dry run"
	}
	return "apply"
}
