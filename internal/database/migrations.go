package database

import (
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Vehicle{},
		&models.Booking{},
		&models.Task{},
	)
	if err != nil {
		return err
	}

	// Update users table
	if db.Migrator().HasTable(&models.User{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS phone_number text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS role text DEFAULT 'customer'",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE users " + column).Error; err != nil {
				return err
			}
		}

		// Update constraint
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
		db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('customer', 'owner', 'staff', 'admin'))`)
	}

	// Bookings predating the status column get a sane default
	if db.Migrator().HasTable(&models.Booking{}) {
		if err := db.Exec(`ALTER TABLE bookings ADD COLUMN IF NOT EXISTS delivery_address text DEFAULT ''`).Error; err != nil {
			return err
		}
		if err := db.Exec(`UPDATE bookings SET status = 'upcoming' WHERE status IS NULL OR status = ''`).Error; err != nil {
			return err
		}

		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('upcoming', 'active', 'completed', 'cancelled'))`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_dates_check CHECK (start_date < end_date)`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_price_check CHECK (total_price >= 0)`)
	}

	// Tasks are a derived projection; one open task of each type per booking
	if db.Migrator().HasTable(&models.Task{}) {
		db.Exec(`ALTER TABLE tasks DROP CONSTRAINT IF EXISTS tasks_status_check`)
		db.Exec(`ALTER TABLE tasks ADD CONSTRAINT tasks_status_check CHECK (status IN ('pending', 'in_progress', 'done'))`)
		db.Exec(`ALTER TABLE tasks DROP CONSTRAINT IF EXISTS tasks_type_check`)
		db.Exec(`ALTER TABLE tasks ADD CONSTRAINT tasks_type_check CHECK (type IN ('delivery', 'pickup'))`)
	}

	return nil
}
