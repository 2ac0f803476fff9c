package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is the single post-resolution satisfaction record the submitter
// may attach to their complaint. The unique index on ComplaintID enforces
// at-most-once in the database, not with a read-then-write check.
type Feedback struct {
	ID          string `gorm:"primaryKey" json:"id"`
	ComplaintID string `gorm:"uniqueIndex;not null" json:"complaintId"`

	IsFullySolved      bool   `json:"isFullySolved"`
	SatisfactionRating int    `gorm:"not null" json:"satisfactionRating"`
	Comment            string `gorm:"type:text" json:"comment,omitempty"`
	WouldRecommend     *bool  `json:"wouldRecommend,omitempty"`

	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submittedAt"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID is not
// set yet.
func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
