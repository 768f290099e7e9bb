package handlers

import (
	"strconv"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/lifecycle"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetTasks lists the staff pool's open delivery and pickup work. Tasks are
// visible to the whole staff role; nobody owns one individually.
func GetTasks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Task{}).
			Preload("Booking").
			Preload("Booking.Vehicle").
			Preload("Booking.Customer")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		} else {
			query = query.Where("status <> ?", models.TaskStatusDone)
		}
		if taskType := c.Query("type"); taskType != "" {
			query = query.Where("type = ?", taskType)
		}

		var tasks []models.Task
		if err := query.Order("created_at").Find(&tasks).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch tasks"})
			return
		}

		c.JSON(200, tasks)
	}
}

// StartTask marks a pending task as in progress. This is a staff-facing
// presentation aid only; the booking itself does not change state.
func StartTask(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskId := c.Param("id")

		var task models.Task
		if err := db.First(&task, taskId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Task not found"})
			return
		}

		if task.Status != models.TaskStatusPending {
			c.JSON(409, gin.H{"error": "Task is not pending"})
			return
		}

		task.Status = models.TaskStatusInProgress
		if err := db.Save(&task).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update task"})
			return
		}

		if hub != nil {
			hub.NotifyTaskUpdate(services.TaskEvent{
				Type:      "task_started",
				TaskID:    task.ID,
				TaskType:  string(task.Type),
				BookingID: task.BookingID,
				Status:    string(task.Status),
			})
		}

		c.JSON(200, task)
	}
}

// CompleteTask is the only state-changing action staff have. It routes
// through the lifecycle controller so the booking and the task queue move
// together: delivery done means handover confirmed, pickup done means return
// confirmed.
func CompleteTask(db *gorm.DB, ctrl *lifecycle.Controller, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid task ID"})
			return
		}

		var task models.Task
		if err := db.First(&task, uint(taskId)).Error; err != nil {
			c.JSON(404, gin.H{"error": "Task not found"})
			return
		}

		if task.Status == models.TaskStatusDone {
			c.JSON(409, gin.H{"error": "Task is already done"})
			return
		}

		var booking *models.Booking
		switch task.Type {
		case models.TaskTypeDelivery:
			booking, err = ctrl.ConfirmHandover(c.Request.Context(), actorFrom(c), task.BookingID)
		case models.TaskTypePickup:
			booking, err = ctrl.ConfirmReturn(c.Request.Context(), actorFrom(c), task.BookingID)
		default:
			c.JSON(500, gin.H{"error": "Unknown task type"})
			return
		}
		if err != nil {
			bookingError(c, err)
			return
		}

		notifyBookingUpdate(c, hub, booking, "booking_"+string(booking.Status))
		if hub != nil {
			hub.NotifyTaskUpdate(services.TaskEvent{
				Type:      "task_done",
				TaskID:    task.ID,
				TaskType:  string(task.Type),
				BookingID: task.BookingID,
				Status:    string(models.TaskStatusDone),
			})
		}

		c.JSON(200, gin.H{
			"task":    gin.H{"id": task.ID, "status": models.TaskStatusDone},
			"booking": booking,
		})
	}
}
