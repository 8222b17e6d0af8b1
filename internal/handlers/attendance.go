package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rollcall-dev/rollcall/db"
	"github.com/rollcall-dev/rollcall/internal/models"
	"github.com/rollcall-dev/rollcall/internal/services"
	"github.com/rollcall-dev/rollcall/internal/types"
	"github.com/rollcall-dev/rollcall/internal/utils"
)

type CreateAttendanceRequest struct {
	EventID uuid.UUID               `json:"event_id" binding:"required"`
	Status  models.AttendanceStatus `json:"status" binding:"required,oneof=attending not_attending maybe"`
	Comment string                  `json:"comment"`
}

// UpdateAttendanceRequest uses pointers so omitted fields stay untouched.
type UpdateAttendanceRequest struct {
	Status  *models.AttendanceStatus `json:"status" binding:"omitempty,oneof=attending not_attending maybe"`
	Comment *string                  `json:"comment"`
}

type AttendanceResponse struct {
	ID        uuid.UUID               `json:"id"`
	EventID   uuid.UUID               `json:"event_id"`
	UserID    uuid.UUID               `json:"user_id"`
	Status    models.AttendanceStatus `json:"status"`
	Comment   string                  `json:"comment"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	User      *types.UserResponse     `json:"user,omitempty"`
	Event     *EventResponse          `json:"event,omitempty"`
}

func newAttendanceResponse(attendance models.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:        attendance.ID,
		EventID:   attendance.EventID,
		UserID:    attendance.UserID,
		Status:    attendance.Status,
		Comment:   attendance.Comment,
		CreatedAt: attendance.CreatedAt,
		UpdatedAt: attendance.UpdatedAt,
	}
}

func newAttendanceWithUser(attendance models.Attendance) AttendanceResponse {
	response := newAttendanceResponse(attendance)
	user := newUserResponse(attendance.User)
	response.User = &user
	return response
}

func newAttendanceWithEvent(attendance models.Attendance) AttendanceResponse {
	response := newAttendanceResponse(attendance)
	event := newEventResponse(attendance.Event)
	response.Event = &event
	return response
}

func ListEventAttendances(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("event_id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	attendances, err := services.ListEventAttendances(db.DB, eventID)

	if err != nil {
		log.Printf("Failed to list attendances: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attendances"})
		return
	}

	response := make([]AttendanceResponse, 0, len(attendances))

	for _, attendance := range attendances {
		response = append(response, newAttendanceWithUser(attendance))
	}

	ctx.JSON(http.StatusOK, response)
}

func ListMyAttendances(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	attendances, err := services.ListUserAttendances(db.DB, userID)

	if err != nil {
		log.Printf("Failed to list attendances: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attendances"})
		return
	}

	response := make([]AttendanceResponse, 0, len(attendances))

	for _, attendance := range attendances {
		response = append(response, newAttendanceWithEvent(attendance))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateAttendance(ctx *gin.Context) {
	var req CreateAttendanceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, err := services.GetEvent(db.DB, req.EventID)

	if err != nil {
		log.Printf("Failed to retrieve event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}

	if event == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	attendance, err := services.CreateAttendance(db.DB, services.AttendanceInput{
		EventID: req.EventID,
		Status:  req.Status,
		Comment: req.Comment,
	}, userID)

	if err != nil {
		if errors.Is(err, services.ErrAttendanceExists) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Attendance already exists for this event"})
			return
		}
		log.Printf("Failed to create attendance: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create attendance"})
		return
	}

	ctx.JSON(http.StatusCreated, newAttendanceWithEvent(*attendance))
}

func UpdateAttendance(ctx *gin.Context) {
	attendanceID, err := uuid.Parse(ctx.Param("attendance_id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attendance ID"})
		return
	}

	var req UpdateAttendanceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	attendance, err := services.GetAttendance(db.DB, attendanceID)

	if err != nil {
		log.Printf("Failed to retrieve attendance: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attendance"})
		return
	}

	if attendance == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Attendance not found"})
		return
	}

	if attendance.UserID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
		return
	}

	updated, err := services.UpdateAttendance(db.DB, attendanceID, services.AttendanceUpdate{
		Status:  req.Status,
		Comment: req.Comment,
	})

	if err != nil || updated == nil {
		log.Printf("Failed to update attendance: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update attendance"})
		return
	}

	ctx.JSON(http.StatusOK, newAttendanceWithEvent(*updated))
}
