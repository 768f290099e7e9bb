package lifecycle

import (
	"errors"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrForbidden         = errors.New("actor may not perform this transition")
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidDates      = errors.New("start date must be before end date")
)

// Actor identifies who is attempting a transition. ShopID is set for owners
// and scopes owner-level actions to bookings placed at their own shop.
type Actor struct {
	ID     uint
	Role   models.Role
	ShopID uint
}

type Trigger string

const (
	TriggerCancel         Trigger = "cancel"
	TriggerModify         Trigger = "modify"
	TriggerHandover       Trigger = "handover_confirmed"
	TriggerReturn         Trigger = "return_confirmed"
	TriggerOverrideCancel Trigger = "override_cancel"
)

// transitions is the full state machine. Completed and cancelled are terminal
// and deliberately absent: any trigger from them fails.
var transitions = map[models.BookingStatus]map[Trigger]models.BookingStatus{
	models.BookingStatusUpcoming: {
		TriggerCancel:         models.BookingStatusCancelled,
		TriggerModify:         models.BookingStatusUpcoming,
		TriggerHandover:       models.BookingStatusActive,
		TriggerOverrideCancel: models.BookingStatusCancelled,
	},
	models.BookingStatusActive: {
		TriggerReturn:         models.BookingStatusCompleted,
		TriggerOverrideCancel: models.BookingStatusCancelled,
	},
}

// Next resolves the target status for a trigger, or ErrInvalidTransition.
func Next(from models.BookingStatus, trig Trigger) (models.BookingStatus, error) {
	to, ok := transitions[from][trig]
	if !ok {
		return "", ErrInvalidTransition
	}
	return to, nil
}

// authorizeTrigger enforces the actor rules of the transition table. Ownership
// and role checks happen before the status is consulted, so a forbidden actor
// learns nothing about the booking's state.
func authorizeTrigger(trig Trigger, actor Actor, b *models.Booking) error {
	switch trig {
	case TriggerCancel, TriggerModify:
		if actor.ID != b.CustomerID {
			return ErrForbidden
		}
	case TriggerHandover, TriggerReturn:
		switch actor.Role {
		case models.RoleStaff, models.RoleOwner, models.RoleAdmin:
		default:
			return ErrForbidden
		}
	case TriggerOverrideCancel:
		switch actor.Role {
		case models.RoleAdmin:
		case models.RoleOwner:
			if actor.ShopID != b.ShopID {
				return ErrForbidden
			}
		default:
			return ErrForbidden
		}
	default:
		return ErrInvalidTransition
	}
	return nil
}
