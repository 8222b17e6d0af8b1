package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rollcall-dev/rollcall/db"
	"github.com/rollcall-dev/rollcall/internal/models"
	"github.com/rollcall-dev/rollcall/internal/services"
	"github.com/rollcall-dev/rollcall/internal/types"
	"github.com/rollcall-dev/rollcall/internal/utils"
)

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date" binding:"required"`
}

// UpdateEventRequest uses pointers so omitted fields stay untouched.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"event_date"`
}

type EventResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	EventDate   time.Time          `json:"event_date"`
	CreatorID   uuid.UUID          `json:"creator_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Creator     types.UserResponse `json:"creator"`
}

type EventDetailResponse struct {
	EventResponse
	Attendances []AttendanceResponse `json:"attendances"`
}

func newUserResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func newEventResponse(event models.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		EventDate:   event.EventDate,
		CreatorID:   event.CreatorID,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
		Creator:     newUserResponse(event.Creator),
	}
}

func ListEvents(ctx *gin.Context) {
	skip, err := strconv.Atoi(ctx.DefaultQuery("skip", "0"))

	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	if err != nil || limit <= 0 {
		limit = 100
	}

	events, err := services.ListEvents(db.DB, skip, limit)

	if err != nil {
		log.Printf("Failed to list events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	response := make([]EventResponse, 0, len(events))

	for _, event := range events {
		response = append(response, newEventResponse(event))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("event_id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	event, err := services.GetEvent(db.DB, eventID)

	if err != nil {
		log.Printf("Failed to retrieve event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}

	if event == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	attendances := make([]AttendanceResponse, 0, len(event.Attendances))

	for _, attendance := range event.Attendances {
		attendances = append(attendances, newAttendanceWithUser(attendance))
	}

	ctx.JSON(http.StatusOK, EventDetailResponse{
		EventResponse: newEventResponse(*event),
		Attendances:   attendances,
	})
}

func CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, err := services.CreateEvent(db.DB, services.EventInput{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
	}, userID)

	if err != nil {
		log.Printf("Failed to create event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	ctx.JSON(http.StatusCreated, newEventResponse(*event))
}

func UpdateEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("event_id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req UpdateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, err := services.GetEvent(db.DB, eventID)

	if err != nil {
		log.Printf("Failed to retrieve event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}

	if event == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if event.CreatorID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
		return
	}

	updated, err := services.UpdateEvent(db.DB, eventID, services.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
	})

	if err != nil || updated == nil {
		log.Printf("Failed to update event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	ctx.JSON(http.StatusOK, newEventResponse(*updated))
}

func DeleteEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("event_id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, err := services.GetEvent(db.DB, eventID)

	if err != nil {
		log.Printf("Failed to retrieve event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}

	if event == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if event.CreatorID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions"})
		return
	}

	if err := services.DeleteEvent(db.DB, eventID); err != nil {
		log.Printf("Failed to delete event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
