// Package storage owns the portal's mutable shared state: complaint records,
// the append-only status history ledger, feedback rows and user accounts.
// Only the lifecycle services write through it; presentation code never
// touches the database directly.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campuscare/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error

	// Complaint record store
	CreateComplaint(c *models.Complaint) error
	GetComplaint(id string) (*models.Complaint, error)
	ListComplaintsByUser(userID string, status models.Status) ([]models.Complaint, error)
	ListComplaintsByCategories(categories []string, status models.Status) ([]models.Complaint, error)
	ListComplaints(status models.Status) ([]models.Complaint, error)
	UpdateComplaintFields(id string, edit models.ComplaintEdit) (*models.Complaint, error)
	UpdateComplaintPriority(id string, p models.Priority) (*models.Complaint, error)
	DeleteComplaint(id string) error
	ApplyTransition(id string, observed models.Status, entry *models.StatusUpdate) (*models.Complaint, error)

	// Status history ledger (append happens inside ApplyTransition)
	ListStatusHistory(complaintID string) ([]models.StatusUpdate, error)
	CountStatusHistory(complaintID string) (int64, error)

	// Feedback
	CreateFeedback(fb *models.Feedback) error
	GetFeedback(complaintID string) (*models.Feedback, error)
	HasFeedback(complaintID string) (bool, error)
}

// Service implements Storage over PostgreSQL via GORM, with Redis as a
// side cache for the feedback-exists badge. Redis may be nil (admin CLI,
// tests); every cache access degrades to the database.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
	Log   *zap.Logger
}

// NewService Constructor
func NewService(db *gorm.DB, rdb *redis.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
		Log:   log,
	}
}

const feedbackBadgeTTL = 12 * time.Hour

func feedbackBadgeKey(complaintID string) string {
	return "feedback:exists:" + complaintID
}

// ---- Users ----

func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
		return err
	}
	return nil
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// ---- Complaint record store ----

// CreateComplaint inserts a new complaint. The status is forced to NEW here
// regardless of what the caller put on the struct.
func (s *Service) CreateComplaint(c *models.Complaint) error {
	c.Status = models.StatusNew
	c.ExpectedCompletion = nil
	return s.DB.Create(c).Error
}

func (s *Service) GetComplaint(id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: complaint %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) ListComplaintsByUser(userID string, status models.Status) ([]models.Complaint, error) {
	q := s.DB.Where("user_id = ?", userID)
	return listComplaints(q, status)
}

func (s *Service) ListComplaintsByCategories(categories []string, status models.Status) ([]models.Complaint, error) {
	q := s.DB.Where("category IN ?", categories)
	return listComplaints(q, status)
}

func (s *Service) ListComplaints(status models.Status) ([]models.Complaint, error) {
	return listComplaints(s.DB, status)
}

func listComplaints(q *gorm.DB, status models.Status) ([]models.Complaint, error) {
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.Complaint
	if err := q.Order("created_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateComplaintFields rewrites the student-editable content fields. The
// update is guarded against terminal statuses at the database level so a
// concurrent resolution cannot be overwritten by an edit.
func (s *Service) UpdateComplaintFields(id string, edit models.ComplaintEdit) (*models.Complaint, error) {
	res := s.DB.Model(&models.Complaint{}).
		Where("id = ? AND status NOT IN ?", id, []models.Status{models.StatusResolved, models.StatusRejected}).
		Updates(map[string]interface{}{
			"title":          edit.Title,
			"description":    edit.Description,
			"category":       edit.Category,
			"subcategory":    edit.Subcategory,
			"location":       edit.Location,
			"contact_number": edit.ContactNumber,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the complaint is gone or it reached a terminal status.
		if _, err := s.GetComplaint(id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: cannot edit a resolved or rejected complaint", models.ErrInvalidState)
	}
	return s.GetComplaint(id)
}

// UpdateComplaintPriority changes the priority of a non-terminal complaint.
// Priority changes are not lifecycle transitions and leave no ledger entry.
func (s *Service) UpdateComplaintPriority(id string, p models.Priority) (*models.Complaint, error) {
	res := s.DB.Model(&models.Complaint{}).
		Where("id = ? AND status NOT IN ?", id, []models.Status{models.StatusResolved, models.StatusRejected}).
		Update("priority", p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetComplaint(id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: cannot change priority of a resolved or rejected complaint", models.ErrInvalidState)
	}
	return s.GetComplaint(id)
}

// DeleteComplaint removes a complaint that nobody has acted on yet: status
// must still be NEW and the history ledger empty. Anything else fails with
// models.ErrInvalidState; once a transition happened the record is permanent.
func (s *Service) DeleteComplaint(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var c models.Complaint
		err := tx.First(&c, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: complaint %s", models.ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		if c.Status != models.StatusNew {
			return fmt.Errorf("%w: only NEW complaints can be deleted", models.ErrInvalidState)
		}
		var entries int64
		if err := tx.Model(&models.StatusUpdate{}).Where("complaint_id = ?", id).Count(&entries).Error; err != nil {
			return err
		}
		if entries > 0 {
			return fmt.Errorf("%w: complaint already has status history", models.ErrInvalidState)
		}
		return tx.Delete(&models.Complaint{}, "id = ?", id).Error
	})
}

// ApplyTransition commits one lifecycle transition: the status change and the
// ledger append land in a single database transaction, so readers observe
// both or neither. The UPDATE is guarded by the status the engine observed;
// a concurrent writer that got there first makes the guard miss and the
// loser fails with models.ErrConflict (hard-fail policy, no silent retry).
func (s *Service) ApplyTransition(id string, observed models.Status, entry *models.StatusUpdate) (*models.Complaint, error) {
	var updated *models.Complaint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Complaint{}).
			Where("id = ? AND status = ?", id, observed).
			Updates(map[string]interface{}{
				"status":              entry.NewStatus,
				"expected_completion": entry.ExpectedCompletion,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&models.Complaint{}).Where("id = ?", id).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return fmt.Errorf("%w: complaint %s", models.ErrNotFound, id)
			}
			return fmt.Errorf("%w: complaint %s changed concurrently", models.ErrConflict, id)
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	updated, err = s.GetComplaint(id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ---- Status history ledger ----

// ListStatusHistory returns the complaint's audit trail oldest first. The
// ledger exposes no update or delete.
func (s *Service) ListStatusHistory(complaintID string) ([]models.StatusUpdate, error) {
	var history []models.StatusUpdate
	err := s.DB.Where("complaint_id = ?", complaintID).Order("created_at asc").Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Service) CountStatusHistory(complaintID string) (int64, error) {
	var n int64
	err := s.DB.Model(&models.StatusUpdate{}).Where("complaint_id = ?", complaintID).Count(&n).Error
	return n, err
}

// ---- Feedback ----

// CreateFeedback inserts the satisfaction record. The unique index on
// complaint_id turns a duplicate submission into models.ErrConflict without
// any read-then-write window.
func (s *Service) CreateFeedback(fb *models.Feedback) error {
	if err := s.DB.Create(fb).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: feedback already submitted for complaint %s", models.ErrConflict, fb.ComplaintID)
		}
		return err
	}
	s.cacheFeedbackBadge(fb.ComplaintID)
	return nil
}

func (s *Service) GetFeedback(complaintID string) (*models.Feedback, error) {
	var fb models.Feedback
	err := s.DB.First(&fb, "complaint_id = ?", complaintID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no feedback for complaint %s", models.ErrNotFound, complaintID)
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// HasFeedback answers the list-view badge: does feedback exist, without the
// content. Served from Redis when possible since lists hit it per row.
func (s *Service) HasFeedback(complaintID string) (bool, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(s.Ctx, feedbackBadgeKey(complaintID)).Result()
		if err == nil {
			return val == "1", nil
		}
		if !errors.Is(err, redis.Nil) {
			s.Log.Warn("feedback badge cache read failed", zap.String("complaint_id", complaintID), zap.Error(err))
		}
	}

	var n int64
	if err := s.DB.Model(&models.Feedback{}).Where("complaint_id = ?", complaintID).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		s.cacheFeedbackBadge(complaintID)
	}
	return n > 0, nil
}

func (s *Service) cacheFeedbackBadge(complaintID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Set(s.Ctx, feedbackBadgeKey(complaintID), "1", feedbackBadgeTTL).Err(); err != nil {
		s.Log.Warn("feedback badge cache write failed", zap.String("complaint_id", complaintID), zap.Error(err))
	}
}
