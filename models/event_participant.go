package models

import (
	"time"
)

const (
	ParticipantConfirmed = "confirmed"
)

// EventParticipant is the join table between events and users. A user is
// either confirmed or absent; leaving deletes the row and re-joining
// re-runs the eligibility check and upserts it back.
type EventParticipant struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	EventID   uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_event_participants_event_user"`
	Event     Event     `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_event_participants_event_user"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null;default:'confirmed'"`
	CreatedAt time.Time `json:"created_at"`
}
