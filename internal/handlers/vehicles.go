package handlers

import (
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetVehicles lists vehicles, optionally filtered by type and availability
func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Vehicle{})

		if vehicleType := c.Query("type"); vehicleType != "" {
			query = query.Where("type = ?", vehicleType)
		}
		if c.Query("available") == "true" {
			query = query.Where("available = ?", true)
		}

		var vehicles []models.Vehicle
		if err := query.Preload("Shop").Find(&vehicles).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		c.JSON(200, vehicles)
	}
}

// GetVehicle retrieves a single vehicle with its shop
func GetVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleId := c.Param("id")

		var vehicle models.Vehicle
		if err := db.Preload("Shop").First(&vehicle, vehicleId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		c.JSON(200, vehicle)
	}
}

// CreateVehicle adds a vehicle to the owner's shop. Accepts multipart form
// data so an image can be uploaded in the same request.
func CreateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var shop models.Shop
		if err := db.Where("owner_id = ?", userId).First(&shop).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shop not found"})
			return
		}

		var input struct {
			Name        string  `form:"name" binding:"required"`
			Type        string  `form:"type" binding:"required,oneof=car bike"`
			PricePerDay float64 `form:"pricePerDay" binding:"required,gt=0"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		vehicle := models.Vehicle{
			ShopID:      shop.ID,
			Name:        input.Name,
			Type:        models.VehicleType(input.Type),
			PricePerDay: input.PricePerDay,
			Available:   true,
		}

		if file, err := c.FormFile("image"); err == nil {
			imageURL, err := services.UploadImage(file, "vehicles")
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to upload image: " + err.Error()})
				return
			}
			vehicle.ImageURL = imageURL
		}

		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create vehicle"})
			return
		}

		c.JSON(201, vehicle)
	}
}

// UpdateVehicle changes price or availability of an owned vehicle
func UpdateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		vehicleId := c.Param("id")

		var vehicle models.Vehicle
		if err := db.Preload("Shop").First(&vehicle, vehicleId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		if vehicle.Shop.OwnerID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Name        *string  `json:"name"`
			PricePerDay *float64 `json:"pricePerDay"`
			Available   *bool    `json:"available"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Name != nil {
			vehicle.Name = *input.Name
		}
		if input.PricePerDay != nil {
			if *input.PricePerDay <= 0 {
				c.JSON(400, gin.H{"error": "Price must be positive"})
				return
			}
			vehicle.PricePerDay = *input.PricePerDay
		}
		if input.Available != nil {
			vehicle.Available = *input.Available
		}

		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update vehicle"})
			return
		}

		c.JSON(200, vehicle)
	}
}
