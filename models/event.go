package models

import (
	"time"
)

type Event struct {
	ID              uint               `json:"id" gorm:"primaryKey;autoIncrement"`
	RinkID          uint               `json:"rink_id" gorm:"not null;index"`
	Rink            Rink               `json:"-" gorm:"foreignKey:RinkID;constraint:OnDelete:CASCADE"`
	CreatedBy       uint               `json:"created_by" gorm:"not null"`
	Creator         User               `json:"-" gorm:"foreignKey:CreatedBy"`
	Title           string             `json:"title" gorm:"not null"`
	Description     string             `json:"description" gorm:"type:text"`
	EventDate       time.Time          `json:"event_date" gorm:"type:date;not null"`
	EventTime       *string            `json:"event_time" gorm:"type:varchar(8)"` // "18:30"
	MaxParticipants *int               `json:"max_participants"`
	Status          string             `json:"status" gorm:"type:varchar(20);not null;default:'active'"` // active, cancelled
	Participants    []EventParticipant `json:"-" gorm:"foreignKey:EventID"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
