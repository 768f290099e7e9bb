package lifecycle

import (
	"context"
	"errors"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"gorm.io/gorm"
)

// GormStore is the database-backed booking store. Transitions run inside a
// single transaction covering the booking row and its tasks.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Shop").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *GormStore) ApplyTransition(ctx context.Context, id uint, expect models.BookingStatus, eff Effect) (*models.Booking, error) {
	var booking models.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// The status may have moved since the caller looked at it (double
		// click, stale tab). Reject rather than double-apply.
		if booking.Status != expect {
			return ErrInvalidTransition
		}

		booking.Status = eff.Status
		if eff.StartDate != nil {
			booking.StartDate = *eff.StartDate
		}
		if eff.EndDate != nil {
			booking.EndDate = *eff.EndDate
		}
		if eff.TotalPrice != nil {
			booking.TotalPrice = *eff.TotalPrice
		}
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		if eff.CompleteTask != "" {
			if err := tx.Model(&models.Task{}).
				Where("booking_id = ? AND type = ? AND status <> ?",
					id, eff.CompleteTask, models.TaskStatusDone).
				Update("status", models.TaskStatusDone).Error; err != nil {
				return err
			}
		}

		if eff.CreateTask != nil {
			task := *eff.CreateTask
			task.BookingID = id
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
		}

		if eff.RemoveOpenTasks {
			if err := tx.Where("booking_id = ? AND status <> ?",
				id, models.TaskStatusDone).
				Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, b *models.Booking, t *models.Task) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		t.BookingID = b.ID
		return tx.Create(t).Error
	})
}
