package order

import "github.com/BruksfildServices01/room-booking/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusAccepted, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", httperr.ErrValidation("invalid_status", "Unknown order status.")
}

// IsTerminal reports whether the order is finished. Finishing an order
// releases its room.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transitions
// ===============================

// transitions lists, per current status, the statuses each actor kind may
// move an order to.
var transitions = map[Status]map[Status][]Role{
	StatusPending: {
		StatusAccepted:  {RoleProvider},
		StatusCompleted: {RoleProvider},
		StatusCancelled: {RoleProvider, RoleCustomer},
	},
	StatusAccepted: {
		StatusCompleted: {RoleProvider},
		StatusCancelled: {RoleProvider, RoleCustomer},
	},
}

func CanTransition(from, to Status, role Role) error {
	for _, r := range transitions[from][to] {
		if r == role {
			return nil
		}
	}
	return httperr.ErrValidation("invalid_transition", "Order cannot move from "+string(from)+" to "+string(to)+".")
}
