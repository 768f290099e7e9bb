package handlers

import (
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAdminOverview returns platform-wide counts for the admin dashboard
func GetAdminOverview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userCount, shopCount, vehicleCount int64
		db.Model(&models.User{}).Count(&userCount)
		db.Model(&models.Shop{}).Count(&shopCount)
		db.Model(&models.Vehicle{}).Count(&vehicleCount)

		statusCounts := map[string]int64{}
		for _, status := range []models.BookingStatus{
			models.BookingStatusUpcoming,
			models.BookingStatusActive,
			models.BookingStatusCompleted,
			models.BookingStatusCancelled,
		} {
			var n int64
			db.Model(&models.Booking{}).Where("status = ?", status).Count(&n)
			statusCounts[string(status)] = n
		}

		c.JSON(200, gin.H{
			"users":    userCount,
			"shops":    shopCount,
			"vehicles": vehicleCount,
			"bookings": statusCounts,
		})
	}
}

// GetAllUsers lists every account
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.User{})
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}

		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(200, users)
	}
}

// GetAllBookings lists every booking, optionally filtered by status
func GetAllBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Booking{}).
			Preload("Vehicle").
			Preload("Customer").
			Preload("Shop")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var bookings []models.Booking
		if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// GetOwnerBookings lists bookings placed against the owner's shop
func GetOwnerBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var shop models.Shop
		if err := db.Where("owner_id = ?", userId).First(&shop).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shop not found"})
			return
		}

		query := db.Where("shop_id = ?", shop.ID).
			Preload("Vehicle").
			Preload("Customer")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var bookings []models.Booking
		if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}
