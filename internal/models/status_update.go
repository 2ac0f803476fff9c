package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusUpdate is one immutable audit record in a complaint's history.
// Rows are append-only: written exclusively by the transition engine in the
// same transaction as the status change, never updated or deleted.
type StatusUpdate struct {
	ID          string `gorm:"primaryKey" json:"id"`
	ComplaintID string `gorm:"not null;index" json:"complaintId"`

	OldStatus Status `gorm:"type:text;not null" json:"oldStatus"`
	NewStatus Status `gorm:"type:text;not null" json:"newStatus"`

	// Note is the free-text work-progress message entered by the staff
	// member performing the transition.
	Note      string `gorm:"type:text" json:"note"`
	NextSteps string `gorm:"type:text" json:"nextSteps,omitempty"`

	// ExpectedCompletion is set only on transitions into IN_PROGRESS;
	// clients derive the days-remaining countdown from the latest one.
	ExpectedCompletion *time.Time `json:"expectedCompletion,omitempty"`

	ActorID   string    `gorm:"not null" json:"actorId"`
	ActorRole Role      `gorm:"type:text;not null" json:"actorRole"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID is not
// set yet.
func (u *StatusUpdate) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
