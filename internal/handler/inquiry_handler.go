package handler

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"legacyestates/internal/lead"
	"legacyestates/internal/metrics"
	"legacyestates/internal/services"
	apperrors "legacyestates/pkg/errors"
)

// InquiryHandler exposes the lead-capture form flow over HTTP. Each visitor
// holds a session id; every other route operates on that session's form
// controller and challenge flow.
type InquiryHandler struct {
	registry   *lead.Registry
	otpService *services.OTPService
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(registry *lead.Registry, otpService *services.OTPService) *InquiryHandler {
	return &InquiryHandler{registry: registry, otpService: otpService}
}

// StartSession opens a fresh inquiry form session
func (h *InquiryHandler) StartSession(c *gin.Context) {
	metrics.RecordLeadSessionStarted()
	h.registry.Sweep()

	s := h.registry.Create()
	metrics.SetActiveLeadSessions(h.registry.Len())
	c.JSON(http.StatusCreated, gin.H{"session_id": s.ID})
}

// GetSession returns a snapshot of the form state for re-rendering
func (h *InquiryHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	v := s.Form.Values()
	c.JSON(http.StatusOK, gin.H{
		"values": gin.H{
			"name":         v.Name,
			"email":        v.Email,
			"phone":        v.Phone,
			"propertyType": string(v.PropertyType),
			"budget":       string(v.Budget),
			"location":     v.Location,
			"message":      v.Message,
		},
		"validation_errors": s.Form.ValidationErrors(),
		"phone_verified":    s.Form.PhoneVerified(),
		"challenge_open":    s.Form.ChallengeOpen(),
		"challenge_state":   s.Challenge.State().String(),
	})
}

// UpdateFieldRequest is the body for a single field update
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdateField sanitizes and stores one field value
func (h *InquiryHandler) UpdateField(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.Form.UpdateField(req.Field, req.Value)
	c.JSON(http.StatusOK, gin.H{"field": req.Field})
}

// Validate runs all field rules and returns the error map
func (h *InquiryHandler) Validate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	errs := s.Form.Validate()
	c.JSON(http.StatusOK, gin.H{
		"valid":             len(errs) == 0,
		"validation_errors": errs,
	})
}

// RequestVerification asks for a one-time code to be sent to the form's
// phone number.
func (h *InquiryHandler) RequestVerification(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.Form.RequestPhoneVerification(c.Request.Context()); err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent", "challenge_state": s.Challenge.State().String()})
}

// SubmitCodeRequest is the body for the code submission
type SubmitCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// SubmitCode verifies the submitted one-time code
func (h *InquiryHandler) SubmitCode(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req SubmitCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.Challenge.SubmitCode(c.Request.Context(), req.Code); err != nil {
		respondLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Phone number verified", "phone_verified": true})
}

// CancelVerification abandons the in-flight challenge without verifying
func (h *InquiryHandler) CancelVerification(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	s.Challenge.Cancel()
	// A cancelled flow is terminal; hand the session a fresh one so the
	// visitor can verify later.
	h.registry.ResetChallenge(s.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Verification cancelled"})
}

// Submit runs the gated submission and, on success, closes the session
func (h *InquiryHandler) Submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.Form.Submit(c.Request.Context()); err != nil {
		respondLeadError(c, err)
		return
	}

	h.registry.Remove(s.ID)
	metrics.SetActiveLeadSessions(h.registry.Len())
	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your inquiry! We'll get back to you soon."})
}

// CheckVerification reports whether a phone number holds a verified challenge
func (h *InquiryHandler) CheckVerification(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter is required"})
		return
	}

	normalized, verified := h.otpService.CheckVerification(phone)
	c.JSON(http.StatusOK, gin.H{"phone_number": normalized, "verified": verified})
}

func (h *InquiryHandler) session(c *gin.Context) (*lead.Session, bool) {
	s, ok := h.registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "inquiry session not found or expired"})
		return nil, false
	}
	return s, true
}

// respondLeadError maps the core's typed failures onto HTTP responses,
// preserving the failure kind for the client.
func respondLeadError(c *gin.Context, err error) {
	var rle *lead.RateLimitedError
	if errors.As(err, &rle) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":               "rate_limited",
			"code":                apperrors.ErrCodeRateLimited,
			"retry_after_seconds": int(math.Ceil(rle.RetryAfter.Seconds())),
		})
		return
	}

	var ve *lead.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "validation_failed",
			"code":              apperrors.ErrCodeValidation,
			"validation_errors": ve.Fields,
		})
		return
	}

	if errors.Is(err, lead.ErrNotVerified) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "not_verified",
			"code":    apperrors.ErrCodeForbidden,
			"message": "Please verify your phone number before submitting",
		})
		return
	}

	if errors.Is(err, lead.ErrInvalidCodeLength) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_code",
			"code":    apperrors.ErrCodeValidation,
			"message": lead.ErrInvalidCodeLength.Error(),
		})
		return
	}

	var se *lead.StateError
	if errors.As(err, &se) {
		c.JSON(http.StatusConflict, gin.H{"error": "invalid_state", "message": se.Error()})
		return
	}

	var ee *lead.ExternalError
	if errors.As(err, &ee) {
		// A collaborator that classified its own failure keeps that
		// classification; anything else is a gateway-level failure.
		var se2 *services.ServiceError
		if errors.As(ee.Err, &se2) {
			respondServiceError(c, se2)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "external_error", "message": ee.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "code": apperrors.ErrCodeInternalError})
}
