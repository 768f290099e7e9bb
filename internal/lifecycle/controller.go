package lifecycle

import (
	"context"
	"time"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/google/uuid"
)

// Effect is everything a single transition changes. The store applies the
// whole effect in one transaction so booking status and the derived task
// queue can never diverge.
type Effect struct {
	Status     models.BookingStatus
	StartDate  *time.Time
	EndDate    *time.Time
	TotalPrice *float64

	// CompleteTask marks the open task of this type done.
	CompleteTask models.TaskType
	// CreateTask enqueues a new task for the staff pool.
	CreateTask *models.Task
	// RemoveOpenTasks drops any not-yet-done tasks (cancellation).
	RemoveOpenTasks bool
}

// Store persists bookings and their derived tasks.
type Store interface {
	Load(ctx context.Context, id uint) (*models.Booking, error)
	// ApplyTransition re-reads the booking inside a transaction, verifies its
	// status still equals expect, then applies eff. A stale expect fails with
	// ErrInvalidTransition, which is what makes duplicate clicks safe.
	ApplyTransition(ctx context.Context, id uint, expect models.BookingStatus, eff Effect) (*models.Booking, error)
	// CreateBooking persists a new booking together with its delivery task.
	CreateBooking(ctx context.Context, b *models.Booking, t *models.Task) error
}

// PriceFunc re-prices a booking for a new rental window. The controller calls
// it only after the actor has been authorized, so a forbidden caller never
// triggers a vehicle lookup on its behalf.
type PriceFunc func(b *models.Booking) (float64, error)

// Controller governs every booking status change. Handlers never write
// booking status or tasks directly.
type Controller struct {
	store Store
}

func NewController(store Store) *Controller {
	return &Controller{store: store}
}

// Create opens a new booking in upcoming status and schedules its delivery
// task in the same transaction.
func (c *Controller) Create(ctx context.Context, actor Actor, b *models.Booking) error {
	if !b.StartDate.Before(b.EndDate) {
		return ErrInvalidDates
	}
	if b.TotalPrice < 0 {
		return ErrInvalidDates
	}

	b.CustomerID = actor.ID
	b.Status = models.BookingStatusUpcoming
	b.Reference = newReference()

	task := &models.Task{
		Type:    models.TaskTypeDelivery,
		Status:  models.TaskStatusPending,
		Address: b.DeliveryAddress,
	}
	return c.store.CreateBooking(ctx, b, task)
}

// Cancel is the customer-facing cancellation, legal only from upcoming and
// only for the booking's owner.
func (c *Controller) Cancel(ctx context.Context, actor Actor, id uint) (*models.Booking, error) {
	return c.transition(ctx, actor, id, TriggerCancel, nil)
}

// OverrideCancel lets an owner or admin cancel from any non-terminal state.
func (c *Controller) OverrideCancel(ctx context.Context, actor Actor, id uint) (*models.Booking, error) {
	return c.transition(ctx, actor, id, TriggerOverrideCancel, nil)
}

// Modify changes the rental window of an upcoming booking and re-prices it
// through the supplied PriceFunc.
func (c *Controller) Modify(ctx context.Context, actor Actor, id uint, start, end time.Time, price PriceFunc) (*models.Booking, error) {
	if !start.Before(end) {
		return nil, ErrInvalidDates
	}
	return c.transition(ctx, actor, id, TriggerModify, func(eff *Effect, b *models.Booking) error {
		total, err := price(b)
		if err != nil {
			return err
		}
		eff.StartDate = &start
		eff.EndDate = &end
		eff.TotalPrice = &total
		return nil
	})
}

// ConfirmHandover moves upcoming to active: the delivery task is closed and
// the matching pickup task is scheduled atomically.
func (c *Controller) ConfirmHandover(ctx context.Context, actor Actor, id uint) (*models.Booking, error) {
	return c.transition(ctx, actor, id, TriggerHandover, nil)
}

// ConfirmReturn moves active to completed and closes the pickup task.
func (c *Controller) ConfirmReturn(ctx context.Context, actor Actor, id uint) (*models.Booking, error) {
	return c.transition(ctx, actor, id, TriggerReturn, nil)
}

// Rebook constructs a fresh upcoming booking for the same vehicle from a
// completed or cancelled record. The original is never touched.
func (c *Controller) Rebook(ctx context.Context, actor Actor, id uint, start, end time.Time, price PriceFunc) (*models.Booking, error) {
	original, err := c.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != original.CustomerID {
		return nil, ErrForbidden
	}
	if !original.Status.Terminal() {
		return nil, ErrInvalidTransition
	}
	if !start.Before(end) {
		return nil, ErrInvalidDates
	}

	total, err := price(original)
	if err != nil {
		return nil, err
	}

	rebooked := &models.Booking{
		CustomerID:      original.CustomerID,
		VehicleID:       original.VehicleID,
		ShopID:          original.ShopID,
		StartDate:       start,
		EndDate:         end,
		DeliveryAddress: original.DeliveryAddress,
		Status:          models.BookingStatusUpcoming,
		TotalPrice:      total,
		Reference:       newReference(),
	}
	task := &models.Task{
		Type:    models.TaskTypeDelivery,
		Status:  models.TaskStatusPending,
		Address: rebooked.DeliveryAddress,
	}
	if err := c.store.CreateBooking(ctx, rebooked, task); err != nil {
		return nil, err
	}
	return rebooked, nil
}

func (c *Controller) transition(ctx context.Context, actor Actor, id uint, trig Trigger, mutate func(*Effect, *models.Booking) error) (*models.Booking, error) {
	b, err := c.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeTrigger(trig, actor, b); err != nil {
		return nil, err
	}

	to, err := Next(b.Status, trig)
	if err != nil {
		return nil, err
	}

	eff := effectFor(trig, to, b)
	if mutate != nil {
		if err := mutate(&eff, b); err != nil {
			return nil, err
		}
	}

	return c.store.ApplyTransition(ctx, id, b.Status, eff)
}

func effectFor(trig Trigger, to models.BookingStatus, b *models.Booking) Effect {
	eff := Effect{Status: to}
	switch trig {
	case TriggerCancel, TriggerOverrideCancel:
		eff.RemoveOpenTasks = true
	case TriggerHandover:
		eff.CompleteTask = models.TaskTypeDelivery
		eff.CreateTask = &models.Task{
			Type:    models.TaskTypePickup,
			Status:  models.TaskStatusPending,
			Address: b.DeliveryAddress,
		}
	case TriggerReturn:
		eff.CompleteTask = models.TaskTypePickup
	}
	return eff
}

func newReference() string {
	return "BK-" + uuid.NewString()[:8]
}
