package complaint

import (
	"fmt"

	"campuscare/backend/internal/config"
	"campuscare/backend/internal/models"
	"campuscare/backend/internal/storage"

	"go.uber.org/zap"
)

// FeedbackService accepts exactly one satisfaction record per resolved
// complaint from its original submitter and exposes it read-only to staff.
type FeedbackService struct {
	Store        storage.Storage
	Jurisdiction *config.Jurisdiction
	Log          *zap.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(s storage.Storage, j *config.Jurisdiction, log *zap.Logger) *FeedbackService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeedbackService{Store: s, Jurisdiction: j, Log: log}
}

// FeedbackRequest carries one feedback submission.
type FeedbackRequest struct {
	IsFullySolved      bool
	SatisfactionRating int
	Comment            string
	WouldRecommend     *bool
}

// Submit records the submitter's one-time feedback. It fails with
// models.ErrValidation on an out-of-range rating, models.ErrInvalidState
// unless the complaint is RESOLVED, models.ErrForbidden unless the actor is
// the original submitter, and models.ErrConflict on a duplicate (enforced by
// the unique index, so a concurrent double-submit cannot slip through).
// Feedback is never updated or deleted afterwards.
func (s *FeedbackService) Submit(actor models.Actor, complaintID string, req FeedbackRequest) (*models.Feedback, error) {
	if req.SatisfactionRating < config.MinSatisfactionRating || req.SatisfactionRating > config.MaxSatisfactionRating {
		return nil, fmt.Errorf("%w: satisfaction rating must be between %d and %d",
			models.ErrValidation, config.MinSatisfactionRating, config.MaxSatisfactionRating)
	}

	c, err := s.Store.GetComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if c.Status != models.StatusResolved {
		return nil, fmt.Errorf("%w: complaint %s is not resolved", models.ErrInvalidState, complaintID)
	}
	if c.UserID != actor.UserID {
		return nil, fmt.Errorf("%w: only the original submitter may leave feedback", models.ErrForbidden)
	}

	fb := &models.Feedback{
		ComplaintID:        complaintID,
		IsFullySolved:      req.IsFullySolved,
		SatisfactionRating: req.SatisfactionRating,
		Comment:            req.Comment,
		WouldRecommend:     req.WouldRecommend,
	}
	if err := s.Store.CreateFeedback(fb); err != nil {
		return nil, err
	}
	s.Log.Info("feedback submitted",
		zap.String("complaint_id", complaintID),
		zap.Int("rating", req.SatisfactionRating),
		zap.Bool("fully_solved", req.IsFullySolved),
	)
	return fb, nil
}

// Get returns the feedback content, readable by the submitter and by staff
// with jurisdiction over the complaint's category.
func (s *FeedbackService) Get(actor models.Actor, complaintID string) (*models.Feedback, error) {
	c, err := s.Store.GetComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if !CanReadFeedback(actor.Role, c.UserID == actor.UserID, s.Jurisdiction.Covers(actor.Role, c.Category)) {
		return nil, fmt.Errorf("%w: no access to feedback for complaint %s", models.ErrForbidden, complaintID)
	}
	return s.Store.GetFeedback(complaintID)
}

// Exists answers the list-view badge: whether feedback was submitted,
// without the content. Same read authorization as Get.
func (s *FeedbackService) Exists(actor models.Actor, complaintID string) (bool, error) {
	c, err := s.Store.GetComplaint(complaintID)
	if err != nil {
		return false, err
	}
	if !CanReadFeedback(actor.Role, c.UserID == actor.UserID, s.Jurisdiction.Covers(actor.Role, c.Category)) {
		return false, fmt.Errorf("%w: no access to complaint %s", models.ErrForbidden, complaintID)
	}
	return s.Store.HasFeedback(complaintID)
}
