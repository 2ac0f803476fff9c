package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"campuscare/backend/internal/api/handler"
	"campuscare/backend/internal/complaint"
	"campuscare/backend/internal/config"
	"campuscare/backend/internal/models"
	"campuscare/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires the full stack against an in-memory SQLite database,
// with no redis and no notifier.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Complaint{}, &models.StatusUpdate{}, &models.Feedback{}))

	store := storage.NewService(db, nil, nil)
	jurisdiction := config.LoadJurisdiction()
	complaints := complaint.NewService(store, jurisdiction, nil, nil)
	feedback := complaint.NewFeedbackService(store, jurisdiction, nil)

	r := gin.New()
	h := handler.NewHandler(store, complaints, feedback, nil, []byte("test-secret"), nil)
	h.RegisterRoutes(r)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// signup registers a user with the given role and returns a login token.
func signup(t *testing.T, r *gin.Engine, email, role string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Test " + role, "email": email, "password": "secret123", "role": role,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func fileComplaint(t *testing.T, r *gin.Engine, token, category string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/complaints", token, gin.H{
		"title": "Broken fan", "description": "ceiling fan rattles all night",
		"category": category, "subcategory": "Electrical",
		"location": "Block A / 113", "contactNumber": "555-0101",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["id"].(string)
}

// TestAuthRequired verifies the protected surface rejects anonymous calls.
func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/api/complaints", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestEndToEndLifecycle walks the full happy path: a student files a hostel
// complaint, the warden works and resolves it, the student leaves feedback,
// and out-of-jurisdiction faculty is kept out of the feedback.
func TestEndToEndLifecycle(t *testing.T) {
	r := newTestRouter(t)
	student := signup(t, r, "student@uni.edu", "STUDENT")
	wardenTok := signup(t, r, "warden@uni.edu", "WARDEN")
	facultyTok := signup(t, r, "faculty@uni.edu", "FACULTY")

	id := fileComplaint(t, r, student, "Hostel")

	// Warden starts work with an expected completion date.
	w := doJSON(r, http.MethodPut, "/api/complaints/"+id+"/update-status", wardenTok, gin.H{
		"status": "IN_PROGRESS", "note": "electrician booked",
		"nextSteps": "replace bearing", "expectedCompletionDate": "2026-09-15",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	updated := body["complaint"].(map[string]any)
	assert.Equal(t, "IN_PROGRESS", updated["status"])
	assert.Contains(t, updated["expectedCompletion"], "2026-09-15")

	w = doJSON(r, http.MethodGet, "/api/complaints/"+id+"/history", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "NEW", history[0]["oldStatus"])
	assert.Equal(t, "IN_PROGRESS", history[0]["newStatus"])

	// Warden resolves.
	w = doJSON(r, http.MethodPut, "/api/complaints/"+id+"/update-status", wardenTok, gin.H{
		"status": "RESOLVED", "note": "fan replaced",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/complaints/"+id+"/history", student, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 2)

	// Resolution clears the live expected completion date.
	w = doJSON(r, http.MethodGet, "/api/complaints/"+id, student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, hasDate := decode(t, w)["expectedCompletion"]
	assert.False(t, hasDate)

	// Student leaves feedback once.
	w = doJSON(r, http.MethodPost, "/api/feedback/complaint/"+id, student, gin.H{
		"isFullySolved": true, "satisfactionRating": 5, "comment": "quick fix",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Faculty has no jurisdiction over Hostel.
	w = doJSON(r, http.MethodGet, "/api/feedback/complaint/"+id, facultyTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Warden reads the content, the badge reports it exists.
	w = doJSON(r, http.MethodGet, "/api/feedback/complaint/"+id, wardenTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), decode(t, w)["satisfactionRating"])

	w = doJSON(r, http.MethodGet, "/api/feedback/complaint/"+id+"/status", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["feedbackProvided"])

	// Second submission is a conflict, not an overwrite.
	w = doJSON(r, http.MethodPost, "/api/feedback/complaint/"+id, student, gin.H{
		"isFullySolved": false, "satisfactionRating": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode(t, w)["kind"])
}

// TestStudentCannotDriveTransitions verifies the forbidden outcome when the
// owning student tries to move their own complaint.
func TestStudentCannotDriveTransitions(t *testing.T) {
	r := newTestRouter(t)
	student := signup(t, r, "student@uni.edu", "STUDENT")
	id := fileComplaint(t, r, student, "Hostel")

	w := doJSON(r, http.MethodPut, "/api/complaints/"+id+"/update-status", student, gin.H{
		"status": "IN_PROGRESS",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decode(t, w)["kind"])
}

// TestUnknownTargetStatus verifies that a status outside the taxonomy (the
// UI's aspirational "ESCALATED") reports an invalid transition.
func TestUnknownTargetStatus(t *testing.T) {
	r := newTestRouter(t)
	student := signup(t, r, "student@uni.edu", "STUDENT")
	wardenTok := signup(t, r, "warden@uni.edu", "WARDEN")
	id := fileComplaint(t, r, student, "Mess")

	w := doJSON(r, http.MethodPut, "/api/complaints/"+id+"/update-status", wardenTok, gin.H{
		"status": "ESCALATED",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_transition", decode(t, w)["kind"])
}

// TestDeleteRules verifies delete works only before any transition.
func TestDeleteRules(t *testing.T) {
	r := newTestRouter(t)
	student := signup(t, r, "student@uni.edu", "STUDENT")
	wardenTok := signup(t, r, "warden@uni.edu", "WARDEN")

	fresh := fileComplaint(t, r, student, "Hostel")
	w := doJSON(r, http.MethodDelete, "/api/complaints/"+fresh, student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/complaints/"+fresh, student, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	touched := fileComplaint(t, r, student, "Hostel")
	w = doJSON(r, http.MethodPut, "/api/complaints/"+touched+"/update-status", wardenTok, gin.H{
		"status": "IN_PROGRESS", "note": "on it",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/complaints/"+touched, student, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_state", decode(t, w)["kind"])
}

// TestReadIsolationBetweenStudents verifies a student cannot read another
// student's complaint.
func TestReadIsolationBetweenStudents(t *testing.T) {
	r := newTestRouter(t)
	alice := signup(t, r, "alice@uni.edu", "STUDENT")
	mallory := signup(t, r, "mallory@uni.edu", "STUDENT")
	id := fileComplaint(t, r, alice, "Hostel")

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/complaints/%s", id), mallory, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// And the listing stays scoped to the caller.
	w = doJSON(r, http.MethodGet, "/api/complaints", mallory, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}

// TestFeedbackBeforeResolution verifies feedback on an IN_PROGRESS
// complaint reports the invalid-state outcome.
func TestFeedbackBeforeResolution(t *testing.T) {
	r := newTestRouter(t)
	student := signup(t, r, "student@uni.edu", "STUDENT")
	wardenTok := signup(t, r, "warden@uni.edu", "WARDEN")
	id := fileComplaint(t, r, student, "Hostel")

	w := doJSON(r, http.MethodPut, "/api/complaints/"+id+"/update-status", wardenTok, gin.H{
		"status": "IN_PROGRESS",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/feedback/complaint/"+id, student, gin.H{
		"isFullySolved": true, "satisfactionRating": 4,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_state", decode(t, w)["kind"])
}

// TestStudentEditWindow verifies a student can edit while NEW or
// IN_PROGRESS but not after resolution.
func TestStudentEditWindow(t *testing.T) {
	r := newTestRouter(t)
	student := signup(t, r, "student@uni.edu", "STUDENT")
	wardenTok := signup(t, r, "warden@uni.edu", "WARDEN")
	id := fileComplaint(t, r, student, "Hostel")

	edit := gin.H{
		"title": "Broken fan (sparks now)", "description": "it sparks",
		"category": "Hostel", "subcategory": "Electrical",
		"location": "Block A / 113", "contactNumber": "555-0101",
	}
	w := doJSON(r, http.MethodPut, "/api/complaints/"+id, student, edit)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Broken fan (sparks now)", decode(t, w)["title"])

	for _, status := range []string{"IN_PROGRESS", "RESOLVED"} {
		w = doJSON(r, http.MethodPut, "/api/complaints/"+id+"/update-status", wardenTok, gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(r, http.MethodPut, "/api/complaints/"+id, student, edit)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_state", decode(t, w)["kind"])
}

// TestPriorityEndpoint verifies staff re-prioritization and the student
// denial.
func TestPriorityEndpoint(t *testing.T) {
	r := newTestRouter(t)
	student := signup(t, r, "student@uni.edu", "STUDENT")
	wardenTok := signup(t, r, "warden@uni.edu", "WARDEN")
	id := fileComplaint(t, r, student, "Mess")

	w := doJSON(r, http.MethodPut, "/api/complaints/"+id+"/priority", wardenTok, gin.H{"priority": "HIGH"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "HIGH", decode(t, w)["priority"])

	w = doJSON(r, http.MethodPut, "/api/complaints/"+id+"/priority", student, gin.H{"priority": "LOW"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
