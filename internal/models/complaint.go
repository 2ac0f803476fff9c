package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint is a ticket filed by exactly one student. Its Status changes only
// through the transition engine; every change is mirrored by a StatusUpdate
// row, and the current Status always equals the NewStatus of the most recent
// one (or NEW when no history exists yet).
type Complaint struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"userId"`

	Title         string `gorm:"not null" json:"title"`
	Description   string `gorm:"type:text;not null" json:"description"`
	Category      string `gorm:"not null;index" json:"category"`
	Subcategory   string `gorm:"not null" json:"subcategory"`
	Location      string `gorm:"not null" json:"location"`
	ContactNumber string `gorm:"not null" json:"contactNumber"`

	Status   Status   `gorm:"type:text;not null;index" json:"status"`
	Priority Priority `gorm:"type:text;not null" json:"priority"`

	// ExpectedCompletion is only live while the complaint is IN_PROGRESS; it
	// is cleared when the complaint leaves that state.
	ExpectedCompletion *time.Time `json:"expectedCompletion,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID is not
// set yet.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// ComplaintEdit carries the student-editable content fields. Status,
// priority and ownership are never touched through an edit.
type ComplaintEdit struct {
	Title         string
	Description   string
	Category      string
	Subcategory   string
	Location      string
	ContactNumber string
}
