package models

import (
	"time"
)

// Valid values for Review.IceCondition and Review.CrowdLevel.
var (
	IceConditions = []string{"excellent", "good", "fair", "poor"}
	CrowdLevels   = []string{"low", "medium", "high"}
)

// Review is tied to a visit, not directly to a rink: a user may review a
// rink once per verified visit. The unique index on VisitID is the storage
// backstop for that rule.
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	VisitID      uint      `json:"visit_id" gorm:"not null;uniqueIndex"`
	Visit        Visit     `json:"-" gorm:"foreignKey:VisitID;constraint:OnDelete:CASCADE"`
	Text         string    `json:"text" gorm:"type:text;not null"`
	Rating       int       `json:"rating" gorm:"not null;check:rating between 1 and 5"`
	IceCondition *string   `json:"ice_condition" gorm:"type:varchar(20)"`
	CrowdLevel   *string   `json:"crowd_level" gorm:"type:varchar(20)"`
	PhotoURL     string    `json:"photo_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
