package models

import "github.com/google/uuid"

type AttendanceStatus string

const (
	StatusAttending    AttendanceStatus = "attending"
	StatusNotAttending AttendanceStatus = "not_attending"
	StatusMaybe        AttendanceStatus = "maybe"
)

type Attendance struct {
	BaseModel

	// One record per (user, event); the unique index backs up the
	// check-then-insert done in the service layer.
	EventID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_user_event"`
	UserID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_user_event"`
	Status  AttendanceStatus `gorm:"type:varchar(16);not null"`
	Comment string

	// Relationships
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
