package handlers

import (
	"time"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/access"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/lifecycle"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/services"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookingInput struct {
	VehicleID       uint   `json:"vehicleId" binding:"required"`
	StartDate       string `json:"startDate" binding:"required"`
	EndDate         string `json:"endDate" binding:"required"`
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
}

type ModifyBookingInput struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type RebookInput struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// QuoteBooking prices a rental window without creating anything
func QuoteBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleId := c.Query("vehicleId")
		start, err1 := time.Parse(time.RFC3339, c.Query("startDate"))
		end, err2 := time.Parse(time.RFC3339, c.Query("endDate"))
		if vehicleId == "" || err1 != nil || err2 != nil {
			c.JSON(400, gin.H{"error": "vehicleId, startDate and endDate are required"})
			return
		}
		if !start.Before(end) {
			c.JSON(400, gin.H{"error": "Start date must be before end date"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		c.JSON(200, utils.CalculateRentalPrice(vehicle.PricePerDay, start, end))
	}
}

// CreateBooking opens a new booking for the authenticated customer. The
// delivery task for staff is scheduled in the same transaction.
func CreateBooking(db *gorm.DB, ctrl *lifecycle.Controller, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		start, err := time.Parse(time.RFC3339, input.StartDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid start date"})
			return
		}
		end, err := time.Parse(time.RFC3339, input.EndDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid end date"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, input.VehicleID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}
		if !vehicle.Available {
			c.JSON(409, gin.H{"error": "Vehicle is not available"})
			return
		}

		quote := utils.CalculateRentalPrice(vehicle.PricePerDay, start, end)

		booking := models.Booking{
			VehicleID:       vehicle.ID,
			ShopID:          vehicle.ShopID,
			StartDate:       start,
			EndDate:         end,
			DeliveryAddress: input.DeliveryAddress,
			TotalPrice:      quote.TotalPrice,
		}

		if err := ctrl.Create(c.Request.Context(), actorFrom(c), &booking); err != nil {
			bookingError(c, err)
			return
		}

		notifyBookingUpdate(c, hub, &booking, "booking_created")
		c.JSON(201, booking)
	}
}

// GetMyBookings lists the authenticated customer's bookings
func GetMyBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Where("customer_id = ?", userId).
			Preload("Vehicle").
			Preload("Shop").
			Order("start_date DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// GetBooking retrieves one booking. Customers only see their own; staff,
// owners and admins see everything.
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		ident := access.IdentityFrom(c)

		var booking models.Booking
		if err := db.Preload("Vehicle").
			Preload("Shop").
			Preload("Customer").
			First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if ident.Role == models.RoleCustomer && booking.CustomerID != ident.ID {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		c.JSON(200, gin.H{
			"id":              booking.ID,
			"reference":       booking.Reference,
			"status":          booking.Status,
			"startDate":       booking.StartDate,
			"endDate":         booking.EndDate,
			"deliveryAddress": booking.DeliveryAddress,
			"totalPrice":      booking.TotalPrice,
			"vehicle":         booking.Vehicle,
			"shop":            booking.Shop,
			"customerName":    booking.Customer.Name,
			"customerPhone":   booking.Customer.PhoneNumber,
		})
	}
}

// priceForWindow re-quotes a booking's vehicle for a new rental window. The
// controller only invokes it once the caller has passed its ownership check,
// so nothing is fetched on behalf of a forbidden caller.
func priceForWindow(db *gorm.DB, start, end time.Time) lifecycle.PriceFunc {
	return func(b *models.Booking) (float64, error) {
		var vehicle models.Vehicle
		if err := db.First(&vehicle, b.VehicleID).Error; err != nil {
			return 0, err
		}
		return utils.CalculateRentalPrice(vehicle.PricePerDay, start, end).TotalPrice, nil
	}
}

// ModifyBooking changes the rental window of an upcoming booking and
// re-prices it
func ModifyBooking(db *gorm.DB, ctrl *lifecycle.Controller, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bookingID(c)
		if !ok {
			return
		}

		var input ModifyBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		start, err := time.Parse(time.RFC3339, input.StartDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid start date"})
			return
		}
		end, err := time.Parse(time.RFC3339, input.EndDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid end date"})
			return
		}

		booking, err := ctrl.Modify(c.Request.Context(), actorFrom(c), id, start, end, priceForWindow(db, start, end))
		if err != nil {
			bookingError(c, err)
			return
		}

		notifyBookingUpdate(c, hub, booking, "booking_modified")
		c.JSON(200, booking)
	}
}

// CancelBooking cancels an upcoming booking on behalf of its owner
func CancelBooking(ctrl *lifecycle.Controller, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bookingID(c)
		if !ok {
			return
		}

		booking, err := ctrl.Cancel(c.Request.Context(), actorFrom(c), id)
		if err != nil {
			bookingError(c, err)
			return
		}

		notifyBookingUpdate(c, hub, booking, "booking_cancelled")
		c.JSON(200, booking)
	}
}

// OverrideCancelBooking lets admins cancel any non-terminal booking, and
// owners cancel non-terminal bookings placed at their own shop
func OverrideCancelBooking(db *gorm.DB, ctrl *lifecycle.Controller, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bookingID(c)
		if !ok {
			return
		}

		actor := actorFrom(c)
		if actor.Role == models.RoleOwner {
			var shop models.Shop
			if err := db.Where("owner_id = ?", actor.ID).First(&shop).Error; err != nil {
				c.JSON(404, gin.H{"error": "Shop not found"})
				return
			}
			actor.ShopID = shop.ID
		}

		booking, err := ctrl.OverrideCancel(c.Request.Context(), actor, id)
		if err != nil {
			bookingError(c, err)
			return
		}

		notifyBookingUpdate(c, hub, booking, "booking_cancelled")
		c.JSON(200, booking)
	}
}

// RebookBooking creates a fresh booking from a completed or cancelled one.
// The original record is never modified.
func RebookBooking(db *gorm.DB, ctrl *lifecycle.Controller, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bookingID(c)
		if !ok {
			return
		}

		var input RebookInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		start, err := time.Parse(time.RFC3339, input.StartDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid start date"})
			return
		}
		end, err := time.Parse(time.RFC3339, input.EndDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid end date"})
			return
		}

		booking, err := ctrl.Rebook(c.Request.Context(), actorFrom(c), id, start, end, priceForWindow(db, start, end))
		if err != nil {
			bookingError(c, err)
			return
		}

		notifyBookingUpdate(c, hub, booking, "booking_created")
		c.JSON(201, booking)
	}
}
