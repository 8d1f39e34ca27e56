package util

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	OTPValidityMinutes      = 10
	OTPLength               = 6
	MaxVerificationAttempts = 3
	SendWindowMinutes       = 1
	MaxSendsPerWindow       = 5 // Maximum OTP dispatches allowed per window
)

// OTPSession tracks one outstanding verification challenge for a phone number
type OTPSession struct {
	Code        string
	PhoneNumber string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Attempts    int
	Verified    bool
}

var (
	otpStorage     = make(map[string]*OTPSession)
	sendTimestamps = make(map[string][]time.Time)
	mu             sync.RWMutex

	// Swappable for tests.
	timeNow = time.Now
)

var digitsRe = regexp.MustCompile(`\d+`)

// GenerateOTP generates a random 6-digit OTP
func GenerateOTP() (string, error) {
	bytes := make([]byte, OTPLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 0; i < OTPLength; i++ {
		fmt.Fprintf(&sb, "%d", bytes[i]%10)
	}
	return sb.String(), nil
}

// NormalizePhone reduces a phone number to its digits so that formatting
// variants ("+91 98765 43210", "9876543210") map to the same session key.
func NormalizePhone(phone string) string {
	return strings.Join(digitsRe.FindAllString(phone, -1), "")
}

// checkSendThrottle enforces the per-number dispatch cap. Caller holds mu.
func checkSendThrottle(normalized string) error {
	now := timeNow()
	windowStart := now.Add(-SendWindowMinutes * time.Minute)

	var recent []time.Time
	for _, ts := range sendTimestamps[normalized] {
		if ts.After(windowStart) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= MaxSendsPerWindow {
		wait := recent[0].Add(SendWindowMinutes * time.Minute).Sub(now)
		return fmt.Errorf("too many OTP requests: maximum %d per minute, please wait %v", MaxSendsPerWindow, wait.Round(time.Second))
	}

	sendTimestamps[normalized] = append(recent, now)
	return nil
}

// CreateOTPSession issues a fresh challenge for a phone number, superseding
// any prior unconfirmed challenge for that number.
func CreateOTPSession(phone string) (code string, normalized string, err error) {
	normalized = NormalizePhone(phone)
	if normalized == "" {
		return "", "", fmt.Errorf("phone number must contain digits")
	}

	mu.Lock()
	defer mu.Unlock()

	if err := checkSendThrottle(normalized); err != nil {
		return "", "", err
	}

	code, err = GenerateOTP()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := timeNow()
	otpStorage[normalized] = &OTPSession{
		Code:        code,
		PhoneNumber: normalized,
		CreatedAt:   now,
		ExpiresAt:   now.Add(OTPValidityMinutes * time.Minute),
	}

	return code, normalized, nil
}

// VerifyOTPSession verifies a submitted code against the outstanding
// challenge for the phone number.
func VerifyOTPSession(phone, code string) error {
	normalized := NormalizePhone(phone)

	mu.Lock()
	defer mu.Unlock()

	session, exists := otpStorage[normalized]
	if !exists {
		return fmt.Errorf("no verification code found for this number, please request a new one")
	}

	if session.Verified {
		return fmt.Errorf("this phone number has already been verified")
	}

	if timeNow().After(session.ExpiresAt) {
		delete(otpStorage, normalized)
		return fmt.Errorf("verification code has expired, please request a new one")
	}

	session.Attempts++

	if session.Code != code {
		remaining := MaxVerificationAttempts - session.Attempts
		if remaining > 0 {
			return fmt.Errorf("incorrect code, %d attempt(s) remaining", remaining)
		}
		delete(otpStorage, normalized)
		return fmt.Errorf("incorrect code, maximum attempts exceeded, please request a new one")
	}

	session.Verified = true
	return nil
}

// IsVerified reports whether the phone number has a verified session
func IsVerified(phone string) bool {
	normalized := NormalizePhone(phone)

	mu.RLock()
	defer mu.RUnlock()

	session, exists := otpStorage[normalized]
	return exists && session.Verified
}

// ClearOTPSession drops any session for the phone number
func ClearOTPSession(phone string) {
	normalized := NormalizePhone(phone)

	mu.Lock()
	defer mu.Unlock()

	delete(otpStorage, normalized)
}

// CleanupExpiredSessions removes expired challenges and stale throttle entries
func CleanupExpiredSessions() {
	mu.Lock()
	defer mu.Unlock()

	now := timeNow()
	windowStart := now.Add(-SendWindowMinutes * time.Minute)

	for key, session := range otpStorage {
		if now.After(session.ExpiresAt) {
			delete(otpStorage, key)
		}
	}

	for key, timestamps := range sendTimestamps {
		var recent []time.Time
		for _, ts := range timestamps {
			if ts.After(windowStart) {
				recent = append(recent, ts)
			}
		}
		if len(recent) == 0 {
			delete(sendTimestamps, key)
		} else {
			sendTimestamps[key] = recent
		}
	}
}
