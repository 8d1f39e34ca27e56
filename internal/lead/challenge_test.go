package lead

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	succeeded int
	cancelled int
}

func (l *recordingListener) OnVerificationSucceeded() { l.succeeded++ }
func (l *recordingListener) OnVerificationCancelled() { l.cancelled++ }

func TestChallengeFlow_SendThenVerify(t *testing.T) {
	sender := &fakeSender{}
	listener := &recordingListener{}
	f := NewChallengeFlow(sender, listener)

	require.Equal(t, StateIdle, f.State())

	require.NoError(t, f.SendCode(context.Background(), "+919876543210"))
	assert.Equal(t, StateCodeSent, f.State())
	assert.Equal(t, "+919876543210", f.PhoneNumber())

	require.NoError(t, f.SubmitCode(context.Background(), "123456"))
	assert.Equal(t, StateVerified, f.State())
	assert.Equal(t, 1, listener.succeeded)
	assert.Equal(t, []string{"123456"}, sender.verifyCalls)
}

func TestChallengeFlow_CodeLengthCheckedBeforeNetwork(t *testing.T) {
	sender := &fakeSender{}
	f := NewChallengeFlow(sender, &recordingListener{})
	require.NoError(t, f.SendCode(context.Background(), "+919876543210"))

	for _, code := range []string{"12a456", "12345", "1234567", "", "12 456"} {
		err := f.SubmitCode(context.Background(), code)
		assert.ErrorIs(t, err, ErrInvalidCodeLength, "code %q", code)
	}

	assert.Empty(t, sender.verifyCalls, "malformed codes must not reach the verifier")
	assert.Equal(t, StateCodeSent, f.State(), "a malformed code is not a failed attempt")
}

func TestChallengeFlow_SubmitBeforeSend(t *testing.T) {
	f := NewChallengeFlow(&fakeSender{}, &recordingListener{})

	err := f.SubmitCode(context.Background(), "123456")

	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StateIdle, se.State)
}

func TestChallengeFlow_WrongCodeMovesToFailed(t *testing.T) {
	sender := &fakeSender{verifyErr: errors.New("invalid OTP code")}
	listener := &recordingListener{}
	f := NewChallengeFlow(sender, listener)
	require.NoError(t, f.SendCode(context.Background(), "+919876543210"))

	err := f.SubmitCode(context.Background(), "000000")

	var ee *ExternalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, StateFailed, f.State())
	assert.Equal(t, "invalid OTP code", f.LastError())
	assert.Zero(t, listener.succeeded)

	// A resend from Failed restarts the exchange.
	sender.verifyErr = nil
	require.NoError(t, f.SendCode(context.Background(), "+919876543210"))
	assert.Equal(t, StateCodeSent, f.State())
	assert.Empty(t, f.LastError())
	require.NoError(t, f.SubmitCode(context.Background(), "654321"))
	assert.Equal(t, StateVerified, f.State())
}

func TestChallengeFlow_ResendSupersedes(t *testing.T) {
	sender := &fakeSender{}
	f := NewChallengeFlow(sender, &recordingListener{})

	require.NoError(t, f.SendCode(context.Background(), "+919876543210"))
	require.NoError(t, f.SendCode(context.Background(), "+919123456789"))

	assert.Equal(t, StateCodeSent, f.State())
	assert.Equal(t, "+919123456789", f.PhoneNumber())
	assert.Len(t, sender.sendCalls, 2)
}

func TestChallengeFlow_SendFailureKeepsState(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("twilio: 500")}
	f := NewChallengeFlow(sender, &recordingListener{})

	err := f.SendCode(context.Background(), "+919876543210")

	var ee *ExternalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, StateIdle, f.State())
	assert.Empty(t, f.PhoneNumber())
}

func TestChallengeFlow_Cancel(t *testing.T) {
	sender := &fakeSender{}
	listener := &recordingListener{}
	f := NewChallengeFlow(sender, listener)
	require.NoError(t, f.SendCode(context.Background(), "+919876543210"))

	f.Cancel()

	assert.Equal(t, StateCancelled, f.State())
	assert.Equal(t, 1, listener.cancelled)
	assert.Zero(t, listener.succeeded)

	// Cancelled is terminal.
	var se *StateError
	require.ErrorAs(t, f.SendCode(context.Background(), "+919876543210"), &se)
	require.ErrorAs(t, f.SubmitCode(context.Background(), "123456"), &se)

	// Cancelling again is a no-op.
	f.Cancel()
	assert.Equal(t, 1, listener.cancelled)
}

func TestChallengeFlow_VerifiedIsTerminal(t *testing.T) {
	sender := &fakeSender{}
	listener := &recordingListener{}
	f := NewChallengeFlow(sender, listener)
	require.NoError(t, f.SendCode(context.Background(), "+919876543210"))
	require.NoError(t, f.SubmitCode(context.Background(), "123456"))

	var se *StateError
	require.ErrorAs(t, f.SendCode(context.Background(), "+919876543210"), &se)

	f.Cancel()
	assert.Equal(t, StateVerified, f.State())
	assert.Zero(t, listener.cancelled)
}
