package lead

import (
	"context"
	"regexp"
	"sync"
)

// ChallengeState is the OTP flow's position in its state machine
type ChallengeState int

const (
	StateIdle ChallengeState = iota
	StateCodeSent
	StateVerified
	StateFailed
	StateCancelled
)

func (s ChallengeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCodeSent:
		return "code_sent"
	case StateVerified:
		return "verified"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// terminal reports whether no further transitions are possible
func (s ChallengeState) terminal() bool {
	return s == StateVerified || s == StateCancelled
}

// VerificationListener receives the flow's terminal outcome. The form
// controller implements it.
type VerificationListener interface {
	OnVerificationSucceeded()
	OnVerificationCancelled()
}

var codeRe = regexp.MustCompile(`^\d{6}$`)

// ChallengeFlow mediates the two-round-trip code exchange (send, then
// verify) for a single phone number, keeping that dance out of the larger
// form's validation concerns. A new SendCode always supersedes any prior
// unconfirmed challenge for the number.
type ChallengeFlow struct {
	mu sync.Mutex

	state       ChallengeState
	phoneNumber string
	lastError   string

	sender   CodeSender
	listener VerificationListener
}

// NewChallengeFlow creates an idle flow reporting outcomes to listener
func NewChallengeFlow(sender CodeSender, listener VerificationListener) *ChallengeFlow {
	return &ChallengeFlow{
		state:    StateIdle,
		sender:   sender,
		listener: listener,
	}
}

// SendCode dispatches a one-time code to phoneNumber. Valid from Idle,
// Failed, or CodeSent (a resend supersedes the outstanding challenge); on
// collaborator failure the flow stays in its current state.
func (f *ChallengeFlow) SendCode(ctx context.Context, phoneNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.terminal() {
		return &StateError{Op: "send code", State: f.state}
	}

	if err := f.sender.SendOneTimeCode(ctx, phoneNumber); err != nil {
		return &ExternalError{Op: "send verification code", Message: err.Error(), Err: err}
	}

	f.phoneNumber = phoneNumber
	f.state = StateCodeSent
	f.lastError = ""
	return nil
}

// SubmitCode verifies a submitted code against the outstanding challenge.
// The six-digit precondition is enforced before any network call. On
// acceptance the flow reaches Verified and notifies the listener; on
// rejection it moves to Failed, from which SendCode permits a resend.
func (f *ChallengeFlow) SubmitCode(ctx context.Context, code string) error {
	f.mu.Lock()

	if !codeRe.MatchString(code) {
		f.mu.Unlock()
		return ErrInvalidCodeLength
	}

	if f.state != StateCodeSent {
		state := f.state
		f.mu.Unlock()
		return &StateError{Op: "submit code", State: state}
	}

	if err := f.sender.VerifyOneTimeCode(ctx, f.phoneNumber, code); err != nil {
		f.state = StateFailed
		f.lastError = err.Error()
		f.mu.Unlock()
		return &ExternalError{Op: "verify code", Message: err.Error(), Err: err}
	}

	f.state = StateVerified
	f.lastError = ""
	listener := f.listener
	// Notify outside the lock: the listener takes the form's own mutex.
	f.mu.Unlock()
	if listener != nil {
		listener.OnVerificationSucceeded()
	}
	return nil
}

// Cancel abandons the flow from any non-terminal state without marking the
// phone verified. Calling it in a terminal state is a no-op.
func (f *ChallengeFlow) Cancel() {
	f.mu.Lock()

	if f.state.terminal() {
		f.mu.Unlock()
		return
	}

	f.state = StateCancelled
	listener := f.listener
	f.mu.Unlock()
	if listener != nil {
		listener.OnVerificationCancelled()
	}
}

// State returns the flow's current state
func (f *ChallengeFlow) State() ChallengeState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// PhoneNumber returns the number the outstanding challenge was issued for
func (f *ChallengeFlow) PhoneNumber() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phoneNumber
}

// LastError returns the provider message from the most recent rejection
func (f *ChallengeFlow) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastError
}
