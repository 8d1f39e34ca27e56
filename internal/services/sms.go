package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"legacyestates/internal/config"
)

// SMSService handles sending SMS messages
type SMSService struct {
	cfg    *config.SMSConfig
	client *http.Client
}

// NewSMSService creates a new SMS service
func NewSMSService(cfg *config.SMSConfig) *SMSService {
	return &SMSService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendOTP sends a one-time code via SMS
func (s *SMSService) SendOTP(phoneNumber, otpCode string) error {
	if !s.cfg.Enabled {
		// In development mode, just log
		fmt.Printf("[SMS] OTP would be sent to %s: %s\n", phoneNumber, otpCode)
		return nil
	}

	message := fmt.Sprintf("Your Legacy Estates verification code is: %s. Valid for %d minutes.", otpCode, 10)

	switch strings.ToLower(s.cfg.Provider) {
	case "twilio":
		return s.sendViaTwilio(phoneNumber, message)
	case "console", "dev", "development":
		fmt.Printf("[SMS] OTP would be sent to %s: %s\n", phoneNumber, otpCode)
		return nil
	default:
		return fmt.Errorf("unsupported SMS provider: %s", s.cfg.Provider)
	}
}

// sendViaTwilio sends SMS via the Twilio REST API
func (s *SMSService) sendViaTwilio(phoneNumber, message string) error {
	if s.cfg.TwilioSID == "" || s.cfg.TwilioAuth == "" || s.cfg.TwilioFrom == "" {
		return fmt.Errorf("Twilio not properly configured")
	}

	// Twilio requires E.164; numbers without a prefix are Indian mobiles.
	normalizedPhone := phoneNumber
	if !strings.HasPrefix(normalizedPhone, "+") {
		normalizedPhone = "+91" + normalizedPhone
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.cfg.TwilioSID)

	form := url.Values{}
	form.Set("From", s.cfg.TwilioFrom)
	form.Set("To", normalizedPhone)
	form.Set("Body", message)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(s.cfg.TwilioSID, s.cfg.TwilioAuth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errorResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResp)
		return fmt.Errorf("Twilio API error (status %d): %v", resp.StatusCode, errorResp)
	}

	return nil
}

// IsEnabled returns whether SMS service is enabled
func (s *SMSService) IsEnabled() bool {
	return s.cfg.Enabled
}
