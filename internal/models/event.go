package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	BaseModel

	Title       string `gorm:"not null"`
	Description string
	EventDate   time.Time `gorm:"not null"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index"`

	// Relationships
	Creator     User         `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Attendances []Attendance `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
