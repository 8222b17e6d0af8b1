package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rollcall-dev/rollcall/internal/models"
	"gorm.io/gorm"
)

type EventInput struct {
	Title       string
	Description string
	EventDate   time.Time
}

// EventUpdate carries a partial update: nil fields are left untouched.
type EventUpdate struct {
	Title       *string
	Description *string
	EventDate   *time.Time
}

// ListEvents pages through events in creation order, each with its creator.
func ListEvents(db *gorm.DB, skip, limit int) ([]models.Event, error) {
	var events []models.Event

	err := db.Preload("Creator").
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&events).Error

	if err != nil {
		return nil, err
	}

	return events, nil
}

// GetEvent returns the event with its creator and attendances (each carrying
// the attending user), or (nil, nil) when absent.
func GetEvent(db *gorm.DB, id uuid.UUID) (*models.Event, error) {
	var event models.Event

	err := db.Preload("Creator").
		Preload("Attendances").
		Preload("Attendances.User").
		Where("id = ?", id).
		First(&event).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &event, nil
}

func CreateEvent(db *gorm.DB, input EventInput, creatorID uuid.UUID) (*models.Event, error) {
	event := models.Event{
		Title:       input.Title,
		Description: input.Description,
		EventDate:   input.EventDate,
		CreatorID:   creatorID,
	}

	if err := db.Create(&event).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Creator").First(&event, "id = ?", event.ID).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

// UpdateEvent applies only the fields present in update and returns the
// refreshed event, or (nil, nil) when absent. Ownership is the caller's
// responsibility.
func UpdateEvent(db *gorm.DB, id uuid.UUID, update EventUpdate) (*models.Event, error) {
	var event models.Event

	if err := db.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if update.Title != nil {
		updates["title"] = *update.Title
	}

	if update.Description != nil {
		updates["description"] = *update.Description
	}

	if update.EventDate != nil {
		updates["event_date"] = *update.EventDate
	}

	if len(updates) > 0 {
		if err := db.Model(&event).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Preload("Creator").First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

// DeleteEvent removes the event and its attendances in one transaction so no
// orphaned attendance rows survive.
func DeleteEvent(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Event{}).Error
	})
}
