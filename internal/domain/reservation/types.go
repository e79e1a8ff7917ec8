package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDenied    Status = "denied"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusClosed    Status = "closed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied, StatusCancelled, StatusCompleted, StatusClosed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition leaves s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDenied, StatusCancelled, StatusClosed:
		return true
	default:
		return false
	}
}

// IsConfirmed reports whether the reservation occupies its slot in the
// confirmed interval registry.
func (s Status) IsConfirmed() bool {
	return s == StatusApproved || s == StatusCompleted
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusDenied, StatusCancelled},
	StatusApproved:  {StatusCancelled, StatusCompleted},
	StatusCompleted: {StatusClosed},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
