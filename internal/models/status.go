package models

// Status is a complaint lifecycle state. RESOLVED and REJECTED are terminal.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusRejected   Status = "REJECTED"
)

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// ParseStatus maps a raw string to a Status. Unknown strings report false.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusResolved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// Priority is the urgency a complaint was filed with.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority maps a raw string to a Priority. Unknown strings report false.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}
