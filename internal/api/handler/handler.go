// Package handler wires the complaint lifecycle services to the REST
// surface. It translates HTTP framing to core calls and core error kinds
// back to status codes; no business rule lives here.
package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campuscare/backend/internal/complaint"
	"campuscare/backend/internal/notify"
	"campuscare/backend/internal/storage"
)

type Handler struct {
	Store      storage.Storage
	Complaints *complaint.Service
	Feedback   *complaint.FeedbackService

	// Notifier backs the live-updates websocket; nil disables the endpoint.
	Notifier *notify.RedisNotifier

	Log       *zap.Logger
	jwtSecret []byte
}

func NewHandler(store storage.Storage, complaints *complaint.Service, feedback *complaint.FeedbackService, notifier *notify.RedisNotifier, jwtSecret []byte, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Store:      store,
		Complaints: complaints,
		Feedback:   feedback,
		Notifier:   notifier,
		Log:        log,
		jwtSecret:  jwtSecret,
	}
}

// RegisterRoutes mounts every endpoint on the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)

	authed := r.Group("", h.AuthRequired())
	{
		authed.GET("/api/auth/me", h.Me)

		authed.POST("/api/complaints", h.CreateComplaint)
		authed.GET("/api/complaints", h.ListComplaints)
		authed.GET("/api/complaints/resolved", h.ListResolvedComplaints)
		authed.GET("/api/complaints/:id", h.GetComplaint)
		authed.GET("/api/complaints/:id/history", h.GetStatusHistory)
		authed.PUT("/api/complaints/:id", h.UpdateComplaint)
		authed.DELETE("/api/complaints/:id", h.DeleteComplaint)
		authed.PUT("/api/complaints/:id/update-status", h.UpdateStatus)
		authed.PUT("/api/complaints/:id/priority", h.UpdatePriority)

		authed.POST("/api/feedback/complaint/:id", h.SubmitFeedback)
		authed.GET("/api/feedback/complaint/:id", h.GetFeedback)
		authed.GET("/api/feedback/complaint/:id/status", h.FeedbackStatus)

		authed.GET("/ws/updates", h.ServeUpdates)
	}
}
