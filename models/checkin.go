package models

import (
	"time"
)

// Checkin is a single verified presence event. Rows are written only after
// the cooldown and geofence checks pass and are never updated afterwards.
// UserID and RinkID are denormalized from the owning visit so the cooldown
// and abuse queries don't need a join.
type Checkin struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	VisitID   uint      `json:"visit_id" gorm:"not null;index"`
	Visit     Visit     `json:"-" gorm:"foreignKey:VisitID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_checkins_user_rink_time"`
	RinkID    uint      `json:"rink_id" gorm:"not null;index:idx_checkins_user_rink_time"`
	Latitude  float64   `json:"latitude" gorm:"not null;type:decimal(10,8)"`
	Longitude float64   `json:"longitude" gorm:"not null;type:decimal(11,8)"`
	Distance  float64   `json:"distance" gorm:"not null"` // meters to the rink, rounded to 2 decimals
	IPAddress string    `json:"-" gorm:"type:varchar(45);index:idx_checkins_ip_time"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_checkins_user_rink_time;index:idx_checkins_ip_time"`
}
