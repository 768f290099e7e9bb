package models

import (
	"gorm.io/gorm"
)

type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"
)

type Vehicle struct {
	gorm.Model
	ShopID      uint        `json:"shopId" gorm:"not null"`
	Shop        Shop        `json:"shop"`
	Name        string      `json:"name" gorm:"not null"`
	Type        VehicleType `json:"type" gorm:"not null"`
	PricePerDay float64     `json:"pricePerDay" gorm:"not null"`
	ImageURL    string      `json:"imageUrl"`
	Available   bool        `json:"available" gorm:"default:true"`
}
