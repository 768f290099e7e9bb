package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Terminal reports whether s permits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	gorm.Model
	Reference  string  `json:"reference" gorm:"uniqueIndex;not null"`
	CustomerID uint    `json:"customerId" gorm:"not null"`
	Customer   User    `json:"customer"`
	VehicleID  uint    `json:"vehicleId" gorm:"not null"`
	Vehicle    Vehicle `json:"vehicle"`
	ShopID     uint    `json:"shopId" gorm:"not null"`
	Shop       Shop    `json:"shop"`

	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`
	// DeliveryAddress is where staff hand the vehicle over and pick it back
	// up. Derived tasks copy it.
	DeliveryAddress string `json:"deliveryAddress"`

	Status     BookingStatus `json:"status" gorm:"not null;default:'upcoming'"`
	TotalPrice float64       `json:"totalPrice" gorm:"not null"`
}
