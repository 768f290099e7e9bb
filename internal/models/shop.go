package models

import (
	"gorm.io/gorm"
)

type Shop struct {
	gorm.Model
	OwnerID uint    `json:"ownerId" gorm:"not null"`
	Owner   User    `json:"owner"`
	Name    string  `json:"name" gorm:"not null"`
	Address string  `json:"address" gorm:"not null"`
	Phone   string  `json:"phone"`
	Rating  float64 `json:"rating" gorm:"default:0"`
}
