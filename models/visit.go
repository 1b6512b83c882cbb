package models

import (
	"time"
)

// Visit is one user's presence record for one rink on one calendar day.
// The composite unique index makes creation idempotent: repeated check-ins
// on the same day resolve to the same row.
type Visit struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_visits_user_rink_date"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RinkID    uint      `json:"rink_id" gorm:"not null;uniqueIndex:idx_visits_user_rink_date"`
	Rink      Rink      `json:"-" gorm:"foreignKey:RinkID;constraint:OnDelete:CASCADE"`
	VisitDate time.Time `json:"visit_date" gorm:"type:date;not null;uniqueIndex:idx_visits_user_rink_date"`
	Checkins  []Checkin `json:"-" gorm:"foreignKey:VisitID"`
	CreatedAt time.Time `json:"created_at"`
}
