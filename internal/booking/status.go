package booking

import "fmt"

type Status string

const (
	StatusPending           Status = "pending"
	StatusAssigned          Status = "assigned"
	StatusPlanning          Status = "planning"
	StatusMaterialsPrepared Status = "materials-prepared"
	StatusOnTheWay          Status = "on-the-way"
	StatusInProgress        Status = "in-progress"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAssigned, StatusPlanning, StatusMaterialsPrepared,
		StatusOnTheWay, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// Step is the single advance action available from a status.
type Step struct {
	Next  Status `json:"next"`
	Label string `json:"label"`
}

// flow is the booking lifecycle: each non-terminal status has exactly one
// successor. Completed and cancelled have none. Pending's step is the admin
// assignment, not a decorator action.
var flow = map[Status]Step{
	StatusPending:           {Next: StatusAssigned, Label: "Assign decorator"},
	StatusAssigned:          {Next: StatusPlanning, Label: "Start planning"},
	StatusPlanning:          {Next: StatusMaterialsPrepared, Label: "Materials prepared"},
	StatusMaterialsPrepared: {Next: StatusOnTheWay, Label: "On the way"},
	StatusOnTheWay:          {Next: StatusInProgress, Label: "Start work"},
	StatusInProgress:        {Next: StatusCompleted, Label: "Mark completed"},
}

// NextStep returns the advance action for a status. Terminal and unknown
// statuses have none.
func NextStep(s Status) (Step, bool) {
	step, ok := flow[s]
	return step, ok
}

func CanAdvance(from, to Status) bool {
	step, ok := flow[from]
	if !ok {
		return false
	}
	return step.Next == to
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanCancel reports whether a booking may still be cancelled. Any known
// non-terminal status qualifies; who may cancel is decided by the handlers.
func CanCancel(s Status) bool {
	if _, err := ParseStatus(string(s)); err != nil {
		return false
	}
	return !IsTerminal(s)
}

// Badge maps a status to its display tier. Unrecognized statuses get the
// lowest tier rather than an error.
func Badge(s Status) string {
	switch s {
	case StatusCompleted:
		return "success"
	case StatusCancelled:
		return "danger"
	case StatusInProgress:
		return "active"
	case StatusAssigned, StatusPlanning, StatusMaterialsPrepared, StatusOnTheWay:
		return "info"
	default:
		return "muted"
	}
}
