package models

import (
	"time"
)

// SuspiciousActivity is an append-only log of abuse signals. It is written
// by the check-in path but never read by it: entries exist for manual
// review, not for blocking users.
type SuspiciousActivity struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       *uint     `json:"user_id"` // nullable, the signal may fire for anonymous traffic
	IPAddress    string    `json:"ip_address" gorm:"type:varchar(45);not null;index:idx_suspicious_ip_time"`
	ActivityType string    `json:"activity_type" gorm:"type:varchar(50);not null"`
	Details      string    `json:"details" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_suspicious_ip_time"`
}
