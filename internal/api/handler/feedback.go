package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuscare/backend/internal/complaint"
)

type feedbackRequest struct {
	IsFullySolved      bool   `json:"isFullySolved"`
	SatisfactionRating int    `json:"satisfactionRating"`
	Comment            string `json:"comment"`
	WouldRecommend     *bool  `json:"wouldRecommend"`
}

// SubmitFeedback records the submitter's one-time feedback on a resolved
// complaint.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	fb, err := h.Feedback.Submit(actorFrom(c), c.Param("id"), complaint.FeedbackRequest{
		IsFullySolved:      req.IsFullySolved,
		SatisfactionRating: req.SatisfactionRating,
		Comment:            req.Comment,
		WouldRecommend:     req.WouldRecommend,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// GetFeedback returns the feedback content for the submitter or staff with
// jurisdiction.
func (h *Handler) GetFeedback(c *gin.Context) {
	fb, err := h.Feedback.Get(actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

// FeedbackStatus answers the list-view badge with a bare exists flag.
func (h *Handler) FeedbackStatus(c *gin.Context) {
	exists, err := h.Feedback.Exists(actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedbackProvided": exists})
}
