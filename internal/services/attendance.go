package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rollcall-dev/rollcall/internal/models"
	"gorm.io/gorm"
)

// ErrAttendanceExists signals the one-record-per-(user,event) invariant.
var ErrAttendanceExists = errors.New("attendance already exists for this event")

type AttendanceInput struct {
	EventID uuid.UUID
	Status  models.AttendanceStatus
	Comment string
}

// AttendanceUpdate carries a partial update: nil fields are left untouched.
type AttendanceUpdate struct {
	Status  *models.AttendanceStatus
	Comment *string
}

// ListEventAttendances returns an event's attendances, each with its user.
func ListEventAttendances(db *gorm.DB, eventID uuid.UUID) ([]models.Attendance, error) {
	var attendances []models.Attendance

	err := db.Preload("User").
		Where("event_id = ?", eventID).
		Find(&attendances).Error

	if err != nil {
		return nil, err
	}

	return attendances, nil
}

// ListUserAttendances returns a user's attendances, each with its event and
// the event's creator.
func ListUserAttendances(db *gorm.DB, userID uuid.UUID) ([]models.Attendance, error) {
	var attendances []models.Attendance

	err := db.Preload("Event").
		Preload("Event.Creator").
		Where("user_id = ?", userID).
		Find(&attendances).Error

	if err != nil {
		return nil, err
	}

	return attendances, nil
}

// GetAttendance returns (nil, nil) when absent.
func GetAttendance(db *gorm.DB, id uuid.UUID) (*models.Attendance, error) {
	var attendance models.Attendance

	if err := db.Where("id = ?", id).First(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &attendance, nil
}

// GetUserEventAttendance returns the record for a (user, event) pair, or
// (nil, nil) when the user has not responded to the event.
func GetUserEventAttendance(db *gorm.DB, userID, eventID uuid.UUID) (*models.Attendance, error) {
	var attendance models.Attendance

	err := db.Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&attendance).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &attendance, nil
}

// CreateAttendance enforces the per-(user,event) uniqueness invariant. The
// check-then-insert is not atomic, so the schema's unique index catches
// concurrent duplicates; both paths report ErrAttendanceExists.
func CreateAttendance(db *gorm.DB, input AttendanceInput, userID uuid.UUID) (*models.Attendance, error) {
	existing, err := GetUserEventAttendance(db, userID, input.EventID)

	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, ErrAttendanceExists
	}

	attendance := models.Attendance{
		EventID: input.EventID,
		UserID:  userID,
		Status:  input.Status,
		Comment: input.Comment,
	}

	if err := db.Create(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAttendanceExists
		}
		return nil, err
	}

	return reloadAttendance(db, attendance.ID)
}

// UpdateAttendance applies only the fields present in update and returns the
// refreshed record, or (nil, nil) when absent. Ownership is the caller's
// responsibility.
func UpdateAttendance(db *gorm.DB, id uuid.UUID, update AttendanceUpdate) (*models.Attendance, error) {
	attendance, err := GetAttendance(db, id)

	if err != nil || attendance == nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if update.Status != nil {
		updates["status"] = *update.Status
	}

	if update.Comment != nil {
		updates["comment"] = *update.Comment
	}

	if len(updates) > 0 {
		if err := db.Model(attendance).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return reloadAttendance(db, id)
}

func reloadAttendance(db *gorm.DB, id uuid.UUID) (*models.Attendance, error) {
	var attendance models.Attendance

	err := db.Preload("Event").
		Preload("Event.Creator").
		Where("id = ?", id).
		First(&attendance).Error

	if err != nil {
		return nil, err
	}

	return &attendance, nil
}
