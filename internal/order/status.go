package order

// Status tracks a session's submission state machine:
// Idle -> Submitting -> {Succeeded, Failed} -> Idle.
type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusSubmitting Status = "SUBMITTING"
	StatusSucceeded  Status = "SUCCEEDED"
	StatusFailed     Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving from one status to another is a
// legal step of the submission state machine. Terminal states only return
// to Idle; at most one submission is in flight at a time.
func CanTransitionTo(from, to Status) bool {
	switch from {
	case StatusIdle:
		return to == StatusSubmitting
	case StatusSubmitting:
		return to == StatusSucceeded || to == StatusFailed
	case StatusSucceeded, StatusFailed:
		return to == StatusIdle
	}
	return false
}
