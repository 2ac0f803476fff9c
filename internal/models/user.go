package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq" // pq.StringArray for text[] columns
	"gorm.io/gorm"
)

// User is a registered portal account: a student filing complaints or a
// staff member (warden, faculty, admin) triaging them.
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Role     Role   `gorm:"type:text;not null" json:"role"`

	// NotifyChannels lists the delivery channels the user opted into
	// ("email", "push"). Carried on the notification intent; delivery itself
	// is an external concern.
	NotifyChannels pq.StringArray `gorm:"type:text[]" json:"notifyChannels"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID is not
// set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
