package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacyestates/internal/config"
	"legacyestates/internal/lead"
	"legacyestates/internal/services"
)

type stubSender struct {
	sent      []string
	verifyErr error
}

func (s *stubSender) SendOneTimeCode(ctx context.Context, phoneNumber string) error {
	s.sent = append(s.sent, phoneNumber)
	return nil
}

func (s *stubSender) VerifyOneTimeCode(ctx context.Context, phoneNumber, code string) error {
	return s.verifyErr
}

type stubStore struct {
	inserted []lead.Submission
}

func (s *stubStore) InsertContactSubmission(ctx context.Context, rec lead.Submission) error {
	s.inserted = append(s.inserted, rec)
	return nil
}

func newInquiryTestRouter(t *testing.T) (*gin.Engine, *lead.Registry, *stubSender, *stubStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	require.NoError(t, err)

	sender := &stubSender{}
	store := &stubStore{}
	registry := lead.NewRegistry(sender, store)
	h := NewInquiryHandler(registry, services.NewOTPService(cfg))

	r := gin.New()
	r.POST("/sessions", h.StartSession)
	r.GET("/sessions/:id", h.GetSession)
	r.PATCH("/sessions/:id/fields", h.UpdateField)
	r.POST("/sessions/:id/validate", h.Validate)
	r.POST("/sessions/:id/verify-phone", h.RequestVerification)
	r.POST("/sessions/:id/submit-code", h.SubmitCode)
	r.POST("/sessions/:id/submit", h.Submit)
	return r, registry, sender, store
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func startSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["session_id"])
	return resp["session_id"]
}

func setField(t *testing.T, r *gin.Engine, id, field, value string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"field": field, "value": value})
	w := doJSON(r, http.MethodPatch, "/sessions/"+id+"/fields", string(body))
	require.Equal(t, http.StatusOK, w.Code)
}

func fillValidInquiry(t *testing.T, r *gin.Engine, id string) {
	t.Helper()
	setField(t, r, id, "name", "Rahul Shah")
	setField(t, r, id, "email", "rahul@example.com")
	setField(t, r, id, "phone", "9876543210")
	setField(t, r, id, "message", "Looking for a 2BHK in Andheri")
}

func TestInquiry_UnknownSession(t *testing.T) {
	r, _, _, _ := newInquiryTestRouter(t)
	w := doJSON(r, http.MethodGet, "/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInquiry_ValidateReportsFieldErrors(t *testing.T) {
	r, _, _, _ := newInquiryTestRouter(t)
	id := startSession(t, r)
	setField(t, r, id, "phone", "12345")

	w := doJSON(r, http.MethodPost, "/sessions/"+id+"/validate", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Valid  bool              `json:"valid"`
		Errors map[string]string `json:"validation_errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Errors, "phone")
	assert.Contains(t, resp.Errors, "name")
}

func TestInquiry_FullFlow(t *testing.T) {
	r, _, sender, _ := newInquiryTestRouter(t)
	id := startSession(t, r)
	fillValidInquiry(t, r, id)

	// Submitting before verification is refused.
	w := doJSON(r, http.MethodPost, "/sessions/"+id+"/submit", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/sessions/"+id+"/verify-phone", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"+919876543210"}, sender.sent)

	// A second request inside the cooldown window is rate limited.
	w = doJSON(r, http.MethodPost, "/sessions/"+id+"/verify-phone", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var rl struct {
		RetryAfterSeconds int `json:"retry_after_seconds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rl))
	assert.Greater(t, rl.RetryAfterSeconds, 0)

	// Malformed code never reaches the verifier.
	w = doJSON(r, http.MethodPost, "/sessions/"+id+"/submit-code", `{"code":"12a456"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/sessions/"+id+"/submit-code", `{"code":"123456"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// The submit-before-verify attempt above started the submit cooldown,
	// so the gated submit right after verification is rate limited first.
	w = doJSON(r, http.MethodPost, "/sessions/"+id+"/submit", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestInquiry_SubmitInsertsAndClosesSession(t *testing.T) {
	r, registry, _, store := newInquiryTestRouter(t)
	id := startSession(t, r)
	fillValidInquiry(t, r, id)

	// Verify without a prior failed submit so no cooldown interferes.
	w := doJSON(r, http.MethodPost, "/sessions/"+id+"/verify-phone", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/sessions/"+id+"/submit-code", `{"code":"123456"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/sessions/"+id+"/submit", "")
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, "Rahul Shah", store.inserted[0].Name)
	assert.True(t, store.inserted[0].PhoneVerified)

	// The session is gone once the inquiry landed.
	assert.Equal(t, 0, registry.Len())
	w = doJSON(r, http.MethodGet, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInquiry_ValidationBlocksVerification(t *testing.T) {
	r, _, sender, _ := newInquiryTestRouter(t)
	id := startSession(t, r)
	setField(t, r, id, "phone", "12345")

	w := doJSON(r, http.MethodPost, "/sessions/"+id+"/verify-phone", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, sender.sent)

	var resp struct {
		Errors map[string]string `json:"validation_errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "phone")
}
