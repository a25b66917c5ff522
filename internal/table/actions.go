package table

import (
	"github.com/localtalent/console/internal/core/domain"
)

// Endpoint identifies which resource a table shows; it selects row actions.
type Endpoint string

const (
	EndpointService Endpoint = "service"
	EndpointBooking Endpoint = "booking"
	EndpointUser    Endpoint = "user"
)

func (e Endpoint) Valid() bool {
	switch e {
	case EndpointService, EndpointBooking, EndpointUser:
		return true
	}
	return false
}

// Action is a per-row operation.
type Action string

const (
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
)

// Label is the button text of the action.
func (a Action) Label() string {
	switch a {
	case ActionEdit:
		return "Edit"
	case ActionDelete:
		return "Delete"
	case ActionApprove:
		return "Approve"
	case ActionReject:
		return "Reject"
	case ActionAccept:
		return "Accept"
	case ActionDecline:
		return "Decline"
	}
	return string(a)
}

// ActionsFor lists the row actions offered for endpoint to role. Display
// only: the remote API decides what is allowed.
func ActionsFor(endpoint Endpoint, role domain.Role) []Action {
	switch endpoint {
	case EndpointService:
		if role == domain.RoleAdmin {
			return []Action{ActionApprove, ActionReject}
		}
		return []Action{ActionEdit, ActionDelete}
	case EndpointBooking:
		if role == domain.RoleFreelancer {
			return []Action{ActionAccept, ActionDecline}
		}
	case EndpointUser:
		if role == domain.RoleAdmin {
			return []Action{ActionDelete}
		}
	}
	return nil
}

// HasActionColumn reports whether the table reserves an actions column.
// Customers never get one and neither do admins on bookings.
func HasActionColumn(endpoint Endpoint, role domain.Role) bool {
	return !(role == domain.RoleUser || (role == domain.RoleAdmin && endpoint == EndpointBooking))
}

// CanCreate reports whether the "Create New" entry is offered.
func CanCreate(endpoint Endpoint, role domain.Role) bool {
	return endpoint == EndpointService && role == domain.RoleFreelancer
}
