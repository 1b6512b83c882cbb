package models

import (
	"time"

	"github.com/lib/pq"
)

type Rink struct {
	ID                   uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                 string         `json:"name" gorm:"not null"`
	Description          string         `json:"description" gorm:"type:text"`
	Address              string         `json:"address"`
	District             string         `json:"district" gorm:"index"`
	Latitude             *float64       `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude            *float64       `json:"longitude" gorm:"type:decimal(11,8)"`
	IsPaid               bool           `json:"is_paid" gorm:"default:false"`
	HasEquipmentRental   bool           `json:"has_equipment_rental" gorm:"default:false"`
	HasLockerRoom        bool           `json:"has_locker_room" gorm:"default:false"`
	HasCafe              bool           `json:"has_cafe" gorm:"default:false"`
	HasWifi              bool           `json:"has_wifi" gorm:"default:false"`
	HasAtm               bool           `json:"has_atm" gorm:"default:false"`
	HasMedpoint          bool           `json:"has_medpoint" gorm:"default:false"`
	IsDisabledAccessible bool           `json:"is_disabled_accessible" gorm:"default:false"`
	Features             pq.StringArray `json:"features" gorm:"type:text[]"` // ["hockey", "music", "night_skating"]
	Website              string         `json:"website"`
	Phone                string         `json:"phone"`
	PhotoURL             string         `json:"photo_url"`
	Visits               []Visit        `json:"-" gorm:"foreignKey:RinkID"`
	Events               []Event        `json:"-" gorm:"foreignKey:RinkID"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// HasCoordinates reports whether the rink has a recorded position. Rows
// imported from the open dataset sometimes come without one, and such rinks
// cannot be checked into.
func (r *Rink) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
