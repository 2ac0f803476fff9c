package complaint

import (
	"fmt"
	"strings"
	"time"

	"campuscare/backend/internal/config"
	"campuscare/backend/internal/models"
	"campuscare/backend/internal/notify"
	"campuscare/backend/internal/storage"

	"go.uber.org/zap"
)

// Service is the transition engine and the complaint-facing operations
// around it. It is, together with the feedback service, the only writer of
// the record store and the ledger.
type Service struct {
	Store        storage.Storage
	Jurisdiction *config.Jurisdiction
	Notifier     notify.Notifier
	Log          *zap.Logger
}

// NewService creates a new complaint service. The notifier may be nil when
// no delivery collaborator is wired (admin CLI, tests).
func NewService(s storage.Storage, j *config.Jurisdiction, n notify.Notifier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: s, Jurisdiction: j, Notifier: n, Log: log}
}

// SubmitRequest carries the fields of a new or edited complaint.
type SubmitRequest struct {
	Title         string
	Description   string
	Category      string
	Subcategory   string
	Location      string
	ContactNumber string
	Priority      models.Priority
}

func (r *SubmitRequest) validate(j *config.Jurisdiction) error {
	var missing []string
	for field, v := range map[string]string{
		"title":         r.Title,
		"description":   r.Description,
		"category":      r.Category,
		"subcategory":   r.Subcategory,
		"location":      r.Location,
		"contactNumber": r.ContactNumber,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", models.ErrValidation, strings.Join(missing, ", "))
	}
	if !j.ValidCategory(r.Category) {
		return fmt.Errorf("%w: unknown category %q", models.ErrValidation, r.Category)
	}
	return nil
}

// Submit files a new complaint for the acting student. The status is NEW no
// matter what; priority defaults to MEDIUM when not given.
func (s *Service) Submit(actor models.Actor, req SubmitRequest) (*models.Complaint, error) {
	if err := req.validate(s.Jurisdiction); err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	c := &models.Complaint{
		UserID:        actor.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
		Priority:      priority,
	}
	if err := s.Store.CreateComplaint(c); err != nil {
		return nil, err
	}
	s.Log.Info("complaint submitted",
		zap.String("complaint_id", c.ID),
		zap.String("user_id", actor.UserID),
		zap.String("category", c.Category),
	)
	return c, nil
}

// Get returns a single complaint, re-checking read authorization: students
// see their own, staff their jurisdiction.
func (s *Service) Get(actor models.Actor, complaintID string) (*models.Complaint, error) {
	c, err := s.Store.GetComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if !CanView(actor.Role, c.UserID == actor.UserID, s.Jurisdiction.Covers(actor.Role, c.Category)) {
		return nil, fmt.Errorf("%w: no access to complaint %s", models.ErrForbidden, complaintID)
	}
	return c, nil
}

// List returns the complaints visible to the actor, newest first, optionally
// filtered by status. The scope mirrors the read policy: own complaints for
// students, jurisdiction categories for wardens and faculty, everything for
// admins.
func (s *Service) List(actor models.Actor, status models.Status) ([]models.Complaint, error) {
	switch actor.Role {
	case models.RoleStudent:
		return s.Store.ListComplaintsByUser(actor.UserID, status)
	case models.RoleWarden, models.RoleFaculty:
		return s.Store.ListComplaintsByCategories(s.Jurisdiction.CategoriesFor(actor.Role), status)
	case models.RoleAdmin:
		return s.Store.ListComplaints(status)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrForbidden, actor.Role)
	}
}

// History returns the complaint's audit trail oldest first, under the same
// read authorization as Get.
func (s *Service) History(actor models.Actor, complaintID string) ([]models.StatusUpdate, error) {
	if _, err := s.Get(actor, complaintID); err != nil {
		return nil, err
	}
	return s.Store.ListStatusHistory(complaintID)
}

// Edit rewrites the content fields of a complaint the actor owns (or is
// admin for), as long as it has not reached a terminal status.
func (s *Service) Edit(actor models.Actor, complaintID string, req SubmitRequest) (*models.Complaint, error) {
	c, err := s.Store.GetComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	isOwner := c.UserID == actor.UserID
	if actor.Role != models.RoleAdmin && !(actor.Role == models.RoleStudent && isOwner) {
		return nil, fmt.Errorf("%w: cannot edit complaint %s", models.ErrForbidden, complaintID)
	}
	if !CanEditContent(actor.Role, isOwner, c.Status) {
		return nil, fmt.Errorf("%w: cannot edit a resolved or rejected complaint", models.ErrInvalidState)
	}
	if err := req.validate(s.Jurisdiction); err != nil {
		return nil, err
	}
	return s.Store.UpdateComplaintFields(complaintID, models.ComplaintEdit{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
	})
}

// ChangePriority re-prioritizes a non-terminal complaint. Staff only; not a
// lifecycle transition, so no ledger entry is written.
func (s *Service) ChangePriority(actor models.Actor, complaintID string, p models.Priority) (*models.Complaint, error) {
	c, err := s.Store.GetComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if !CanChangePriority(actor.Role, s.Jurisdiction.Covers(actor.Role, c.Category)) {
		return nil, fmt.Errorf("%w: cannot change priority of complaint %s", models.ErrForbidden, complaintID)
	}
	return s.Store.UpdateComplaintPriority(complaintID, p)
}

// Delete removes a complaint nobody has acted on yet. The owner (or an
// admin) may delete only while the status is NEW and the ledger is empty;
// the record store enforces that atomically.
func (s *Service) Delete(actor models.Actor, complaintID string) error {
	c, err := s.Store.GetComplaint(complaintID)
	if err != nil {
		return err
	}
	if !CanDelete(actor.Role, c.UserID == actor.UserID) {
		return fmt.Errorf("%w: cannot delete complaint %s", models.ErrForbidden, complaintID)
	}
	if err := s.Store.DeleteComplaint(complaintID); err != nil {
		return err
	}
	s.Log.Info("complaint deleted",
		zap.String("complaint_id", complaintID),
		zap.String("actor_id", actor.UserID),
	)
	return nil
}

// TransitionRequest carries one requested status change.
type TransitionRequest struct {
	Status    models.Status
	Note      string
	NextSteps string

	// ExpectedCompletion is only meaningful when moving to IN_PROGRESS; for
	// any other target it is dropped rather than rejected.
	ExpectedCompletion *time.Time

	// NotifyStudent asks for a notification intent after the commit.
	NotifyStudent bool
}

// RequestTransition drives the state machine. Order of checks: existence,
// taxonomy edge, authorization. The store update and the ledger append then
// commit as one transaction; a concurrent writer that committed first turns
// this call into models.ErrConflict. The notification intent, if requested,
// is emitted after the commit and its failure is only logged.
func (s *Service) RequestTransition(actor models.Actor, complaintID string, req TransitionRequest) (*models.Complaint, *models.StatusUpdate, error) {
	c, err := s.Store.GetComplaint(complaintID)
	if err != nil {
		return nil, nil, err
	}

	if !EdgeExists(c.Status, req.Status) {
		return nil, nil, fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, c.Status, req.Status)
	}

	inJurisdiction := s.Jurisdiction.Covers(actor.Role, c.Category)
	if !CanTransition(actor.Role, inJurisdiction, c.Status, req.Status) {
		return nil, nil, fmt.Errorf("%w: role %s may not move complaint %s to %s", models.ErrForbidden, actor.Role, complaintID, req.Status)
	}

	expected := req.ExpectedCompletion
	if req.Status != models.StatusInProgress {
		expected = nil
	}

	entry := &models.StatusUpdate{
		ComplaintID:        complaintID,
		OldStatus:          c.Status,
		NewStatus:          req.Status,
		Note:               req.Note,
		NextSteps:          req.NextSteps,
		ExpectedCompletion: expected,
		ActorID:            actor.UserID,
		ActorRole:          actor.Role,
	}

	updated, err := s.Store.ApplyTransition(complaintID, c.Status, entry)
	if err != nil {
		return nil, nil, err
	}

	s.Log.Info("complaint transitioned",
		zap.String("complaint_id", complaintID),
		zap.String("old_status", string(entry.OldStatus)),
		zap.String("new_status", string(entry.NewStatus)),
		zap.String("actor_id", actor.UserID),
		zap.String("actor_role", string(actor.Role)),
	)

	if req.NotifyStudent {
		s.emitNotification(updated, entry)
	}
	return updated, entry, nil
}

// emitNotification builds and publishes the intent. Fire-and-forget: the
// transition is already committed, so failures are logged and swallowed.
func (s *Service) emitNotification(c *models.Complaint, entry *models.StatusUpdate) {
	if s.Notifier == nil {
		return
	}
	intent := notify.Intent{
		UserID:      c.UserID,
		ComplaintID: c.ID,
		NewStatus:   entry.NewStatus,
		Note:        entry.Note,
	}
	if submitter, err := s.Store.GetUserByID(c.UserID); err == nil {
		intent.Channels = submitter.NotifyChannels
	}
	if err := s.Notifier.StatusChanged(intent); err != nil {
		s.Log.Warn("notification intent failed",
			zap.String("complaint_id", c.ID),
			zap.Error(err),
		)
	}
}
