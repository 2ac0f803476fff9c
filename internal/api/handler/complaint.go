package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campuscare/backend/internal/complaint"
	"campuscare/backend/internal/models"
)

type complaintRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	Location      string `json:"location"`
	ContactNumber string `json:"contactNumber"`
	Priority      string `json:"priority"`
}

func (r *complaintRequest) toSubmit() (complaint.SubmitRequest, bool) {
	priority := models.Priority("")
	if r.Priority != "" {
		parsed, ok := models.ParsePriority(r.Priority)
		if !ok {
			return complaint.SubmitRequest{}, false
		}
		priority = parsed
	}
	return complaint.SubmitRequest{
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		Location:      r.Location,
		ContactNumber: r.ContactNumber,
		Priority:      priority,
	}, true
}

// CreateComplaint files a new complaint for the acting student.
func (h *Handler) CreateComplaint(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "only students file complaints", "kind": "forbidden"})
		return
	}

	var req complaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	submit, ok := req.toSubmit()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown priority " + req.Priority, "kind": "validation"})
		return
	}

	created, err := h.Complaints.Submit(actor, submit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListComplaints returns the actor-visible complaints, optionally filtered
// with ?status=.
func (h *Handler) ListComplaints(c *gin.Context) {
	status := models.Status("")
	if raw := c.Query("status"); raw != "" {
		parsed, ok := models.ParseStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + raw, "kind": "validation"})
			return
		}
		status = parsed
	}

	list, err := h.Complaints.List(actorFrom(c), status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListResolvedComplaints is the convenience listing behind the feedback tab.
func (h *Handler) ListResolvedComplaints(c *gin.Context) {
	list, err := h.Complaints.List(actorFrom(c), models.StatusResolved)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetComplaint returns one complaint.
func (h *Handler) GetComplaint(c *gin.Context) {
	out, err := h.Complaints.Get(actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetStatusHistory returns the audit trail oldest first; clients derive the
// days-remaining countdown from the latest expectedCompletion in it.
func (h *Handler) GetStatusHistory(c *gin.Context) {
	history, err := h.Complaints.History(actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// UpdateComplaint rewrites the content fields of an owned, non-terminal
// complaint.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	var req complaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	submit, ok := req.toSubmit()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown priority " + req.Priority, "kind": "validation"})
		return
	}

	updated, err := h.Complaints.Edit(actorFrom(c), c.Param("id"), submit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteComplaint removes a complaint nobody has acted on yet.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	if err := h.Complaints.Delete(actorFrom(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "complaint deleted successfully"})
}

type updateStatusRequest struct {
	Status                 string `json:"status"`
	Note                   string `json:"note"`
	NextSteps              string `json:"nextSteps"`
	ExpectedCompletionDate string `json:"expectedCompletionDate"`
	NotifyStudent          bool   `json:"notifyStudent"`
}

// UpdateStatus drives one lifecycle transition through the engine.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	// An unknown target status is not a valid edge of the lifecycle graph;
	// the engine rejects it, so the raw value passes through untouched.
	requested, ok := models.ParseStatus(req.Status)
	if !ok {
		requested = models.Status(req.Status)
	}

	var expected *time.Time
	if req.ExpectedCompletionDate != "" {
		if t, err := time.Parse("2006-01-02", req.ExpectedCompletionDate); err == nil {
			expected = &t
		} else {
			h.Log.Warn("ignoring malformed expected completion date",
				zap.String("value", req.ExpectedCompletionDate))
		}
	}

	updated, entry, err := h.Complaints.RequestTransition(actorFrom(c), c.Param("id"), complaint.TransitionRequest{
		Status:             requested,
		Note:               req.Note,
		NextSteps:          req.NextSteps,
		ExpectedCompletion: expected,
		NotifyStudent:      req.NotifyStudent,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaint": updated, "statusUpdate": entry})
}

type updatePriorityRequest struct {
	Priority string `json:"priority"`
}

// UpdatePriority re-prioritizes a complaint. Staff only; not a transition.
func (h *Handler) UpdatePriority(c *gin.Context) {
	var req updatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	priority, ok := models.ParsePriority(req.Priority)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown priority " + req.Priority, "kind": "validation"})
		return
	}

	updated, err := h.Complaints.ChangePriority(actorFrom(c), c.Param("id"), priority)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
