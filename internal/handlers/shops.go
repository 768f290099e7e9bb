package handlers

import (
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetShops lists all rental shops
func GetShops(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shops []models.Shop
		if err := db.Find(&shops).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch shops"})
			return
		}

		c.JSON(200, shops)
	}
}

// GetShop retrieves one shop with its vehicles
func GetShop(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId := c.Param("id")

		var shop models.Shop
		if err := db.First(&shop, shopId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shop not found"})
			return
		}

		var vehicles []models.Vehicle
		if err := db.Where("shop_id = ?", shop.ID).Find(&vehicles).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		c.JSON(200, gin.H{
			"shop":     shop,
			"vehicles": vehicles,
		})
	}
}

// GetShopVehicles lists the vehicles of one shop
func GetShopVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId := c.Param("id")

		var shop models.Shop
		if err := db.First(&shop, shopId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shop not found"})
			return
		}

		var vehicles []models.Vehicle
		if err := db.Where("shop_id = ?", shop.ID).Find(&vehicles).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		c.JSON(200, vehicles)
	}
}

// GetOwnerShop returns the shop belonging to the authenticated owner
func GetOwnerShop(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var shop models.Shop
		if err := db.Where("owner_id = ?", userId).First(&shop).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shop not found"})
			return
		}

		c.JSON(200, shop)
	}
}

// CreateShop registers the owner's shop. One shop per owner.
func CreateShop(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Name    string `json:"name" binding:"required"`
			Address string `json:"address" binding:"required"`
			Phone   string `json:"phone"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.Shop{}).Where("owner_id = ?", userId).Count(&count).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create shop"})
			return
		}
		if count > 0 {
			c.JSON(409, gin.H{"error": "Owner already has a shop"})
			return
		}

		shop := models.Shop{
			OwnerID: userId,
			Name:    input.Name,
			Address: input.Address,
			Phone:   input.Phone,
		}

		if err := db.Create(&shop).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create shop"})
			return
		}

		c.JSON(201, shop)
	}
}
