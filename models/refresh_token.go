package models

import (
	"time"
)

type RefreshToken struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt      time.Time `json:"created_at"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Token          string    `json:"token" gorm:"not null;uniqueIndex"`
	ExpirationDate time.Time `json:"expiry" gorm:"not null"`
}
