package models

import (
	"gorm.io/gorm"
)

type TaskType string

const (
	TaskTypeDelivery TaskType = "delivery"
	TaskTypePickup   TaskType = "pickup"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Task is a staff-facing projection of a booking that needs a physical
// handover. Tasks never carry booking state of their own: marking one done
// goes through the lifecycle controller, which updates both records in the
// same transaction.
type Task struct {
	gorm.Model
	Type      TaskType   `json:"type" gorm:"not null"`
	BookingID uint       `json:"bookingId" gorm:"not null"`
	Booking   Booking    `json:"booking"`
	Status    TaskStatus `json:"status" gorm:"not null;default:'pending'"`
	Address   string     `json:"address"`
}
