package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetOTPState clears the package-level stores and pins the clock.
// Returns an advance function for expiry tests.
func resetOTPState(t *testing.T) func(time.Duration) {
	t.Helper()

	mu.Lock()
	otpStorage = make(map[string]*OTPSession)
	sendTimestamps = make(map[string][]time.Time)
	mu.Unlock()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return current }
	t.Cleanup(func() { timeNow = time.Now })

	return func(d time.Duration) { current = current.Add(d) }
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Len(t, code, OTPLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "OTP must be digits only, got %q", code)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "919876543210", NormalizePhone("+91 98765 43210"))
	assert.Equal(t, "9876543210", NormalizePhone("98765-43210"))
	assert.Equal(t, "9876543210", NormalizePhone("9876543210"))
	assert.Equal(t, "", NormalizePhone("no digits here"))
}

func TestCreateAndVerifyOTPSession(t *testing.T) {
	resetOTPState(t)

	code, normalized, err := CreateOTPSession("+91 98765 43210")
	require.NoError(t, err)
	assert.Equal(t, "919876543210", normalized)

	// Formatting variants resolve to the same session.
	require.NoError(t, VerifyOTPSession("+919876543210", code))
	assert.True(t, IsVerified("919876543210"))
}

func TestCreateOTPSession_RejectsDigitlessInput(t *testing.T) {
	resetOTPState(t)

	_, _, err := CreateOTPSession("not a number")
	assert.Error(t, err)
}

func TestVerifyOTPSession_AttemptCap(t *testing.T) {
	resetOTPState(t)

	code, _, err := CreateOTPSession("9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < MaxVerificationAttempts; i++ {
		assert.Error(t, VerifyOTPSession("9876543210", wrong))
	}

	// Session was dropped after the cap; even the right code fails now.
	err = VerifyOTPSession("9876543210", code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no verification code found")
}

func TestVerifyOTPSession_Expiry(t *testing.T) {
	advance := resetOTPState(t)

	code, _, err := CreateOTPSession("9876543210")
	require.NoError(t, err)

	advance(OTPValidityMinutes*time.Minute + time.Second)

	err = VerifyOTPSession("9876543210", code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestVerifyOTPSession_AlreadyVerified(t *testing.T) {
	resetOTPState(t)

	code, _, err := CreateOTPSession("9876543210")
	require.NoError(t, err)
	require.NoError(t, VerifyOTPSession("9876543210", code))

	err = VerifyOTPSession("9876543210", code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been verified")
}

func TestCreateOTPSession_SendThrottle(t *testing.T) {
	advance := resetOTPState(t)

	for i := 0; i < MaxSendsPerWindow; i++ {
		_, _, err := CreateOTPSession("9876543210")
		require.NoError(t, err)
	}

	_, _, err := CreateOTPSession("9876543210")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many OTP requests")

	// Another number is unaffected.
	_, _, err = CreateOTPSession("9123456789")
	assert.NoError(t, err)

	// The window slides.
	advance(SendWindowMinutes*time.Minute + time.Second)
	_, _, err = CreateOTPSession("9876543210")
	assert.NoError(t, err)
}

func TestClearOTPSession(t *testing.T) {
	resetOTPState(t)

	code, _, err := CreateOTPSession("9876543210")
	require.NoError(t, err)

	ClearOTPSession("9876543210")

	err = VerifyOTPSession("9876543210", code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no verification code found")
}

func TestCleanupExpiredSessions(t *testing.T) {
	advance := resetOTPState(t)

	_, _, err := CreateOTPSession("9876543210")
	require.NoError(t, err)

	advance(OTPValidityMinutes*time.Minute + time.Second)
	_, _, err = CreateOTPSession("9123456789")
	require.NoError(t, err)

	CleanupExpiredSessions()

	mu.RLock()
	_, staleExists := otpStorage["9876543210"]
	_, freshExists := otpStorage["9123456789"]
	_, staleThrottle := sendTimestamps["9876543210"]
	mu.RUnlock()

	assert.False(t, staleExists)
	assert.True(t, freshExists)
	assert.False(t, staleThrottle, "stale throttle entries are dropped too")
}
