package services

import (
	"context"
	"log"
	"strings"

	"legacyestates/internal/config"
	"legacyestates/internal/metrics"
	"legacyestates/internal/util"
)

// OTPService issues and verifies one-time codes for phone numbers. It is
// the auth collaborator behind the inquiry form's verification gate.
type OTPService struct {
	smsService *SMSService
	config     *config.Config
}

// NewOTPService creates a new OTP service
func NewOTPService(cfg *config.Config) *OTPService {
	return &OTPService{
		smsService: NewSMSService(&cfg.SMS),
		config:     cfg,
	}
}

// SendOneTimeCode creates a fresh challenge for the phone number and
// dispatches the code via SMS. A new call supersedes any outstanding
// unconfirmed challenge for the same number.
func (s *OTPService) SendOneTimeCode(ctx context.Context, phoneNumber string) error {
	phone := strings.TrimSpace(phoneNumber)
	log.Printf("[OTP] Send request: phone=%s", phone)

	if phone == "" {
		log.Printf("[OTP] Send failed: no phone number provided")
		return NewBadRequestError("phone number must be provided")
	}

	util.CleanupExpiredSessions()

	code, normalized, err := util.CreateOTPSession(phone)
	if err != nil {
		log.Printf("[OTP] Send failed: session creation error: %v", err)
		return NewRateLimitedError(err.Error())
	}

	if err := s.smsService.SendOTP(phone, code); err != nil {
		log.Printf("[OTP] Send failed: SMS error for %s: %v", phone, err)
		util.ClearOTPSession(phone)
		return NewInternalError("failed to send verification SMS", err)
	}

	if !s.smsService.IsEnabled() {
		log.Printf("[OTP] DEV MODE - OTP for phone %s: %s (valid for %d minutes)", normalized, code, util.OTPValidityMinutes)
	}

	metrics.RecordOTPGenerated("sms")
	log.Printf("[OTP] Send successful: phone=%s", normalized)
	return nil
}

// VerifyOneTimeCode confirms a submitted code against the challenge most
// recently issued for the phone number.
func (s *OTPService) VerifyOneTimeCode(ctx context.Context, phoneNumber, code string) error {
	phone := strings.TrimSpace(phoneNumber)
	log.Printf("[OTP] Verify request: phone=%s", phone)

	if phone == "" {
		log.Printf("[OTP] Verify failed: no phone number provided")
		return NewBadRequestError("phone number must be provided")
	}

	util.CleanupExpiredSessions()

	if err := util.VerifyOTPSession(phone, code); err != nil {
		log.Printf("[OTP] Verify failed for phone=%s: %v", phone, err)
		metrics.RecordOTPVerified(false)
		return NewBadRequestError(err.Error())
	}

	metrics.RecordOTPVerified(true)
	log.Printf("[OTP] Verify successful: phone=%s", util.NormalizePhone(phone))
	return nil
}

// CheckVerification reports whether a phone number holds a verified session
func (s *OTPService) CheckVerification(phoneNumber string) (string, bool) {
	normalized := util.NormalizePhone(phoneNumber)
	verified := util.IsVerified(phoneNumber)
	log.Printf("[OTP] Check result: phone=%s, verified=%v", normalized, verified)
	return normalized, verified
}
