package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/access"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/lifecycle"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/services"
	"github.com/gin-gonic/gin"
)

func actorFrom(c *gin.Context) lifecycle.Actor {
	ident := access.IdentityFrom(c)
	if ident == nil {
		return lifecycle.Actor{}
	}
	return lifecycle.Actor{ID: ident.ID, Role: ident.Role}
}

func bookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid booking ID"})
		return 0, false
	}
	return uint(id), true
}

// bookingError maps lifecycle errors to HTTP responses. InvalidTransition is
// a stale-state condition, not a fault; it is surfaced, never retried.
func bookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		c.JSON(404, gin.H{"error": "Booking not found"})
	case errors.Is(err, lifecycle.ErrForbidden):
		c.JSON(403, gin.H{"error": "Unauthorized"})
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		c.JSON(409, gin.H{"error": "Booking is no longer in a state that allows this action"})
	case errors.Is(err, lifecycle.ErrInvalidDates):
		c.JSON(400, gin.H{"error": "Start date must be before end date"})
	default:
		c.JSON(500, gin.H{"error": "Failed to update booking"})
	}
}

// notifyBookingUpdate fans the new state out to the cache, the pub/sub
// channel and connected dashboards. Fan-out is best effort; the transition
// itself has already committed.
func notifyBookingUpdate(c *gin.Context, hub *services.Hub, booking *models.Booking, eventType string) {
	ctx := c.Request.Context()

	if err := services.CacheBookingStatus(ctx, booking.ID, string(booking.Status)); err != nil {
		log.Printf("Failed to cache booking status: %v", err)
	}
	if err := services.PublishBookingUpdate(ctx, booking.ID, string(booking.Status), map[string]interface{}{
		"reference": booking.Reference,
		"event":     eventType,
	}); err != nil {
		log.Printf("Failed to publish booking update: %v", err)
	}

	if hub != nil {
		hub.NotifyBookingUpdate(booking.CustomerID, services.BookingEvent{
			Type:      eventType,
			BookingID: booking.ID,
			Reference: booking.Reference,
			Status:    string(booking.Status),
		})
	}
}
