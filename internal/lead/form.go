package lead

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cooldowns between repeated actions on one form
const (
	OTPSendCooldown = 60 * time.Second
	SubmitCooldown  = 30 * time.Second
)

// CodeSender is the auth/OTP collaborator: it dispatches a one-time code
// over SMS and later confirms a submitted code for the same number.
type CodeSender interface {
	SendOneTimeCode(ctx context.Context, phoneNumber string) error
	VerifyOneTimeCode(ctx context.Context, phoneNumber, code string) error
}

// Submission is the record handed to the data store on a successful submit
type Submission struct {
	Name          string
	Email         string
	Phone         string
	Message       string
	PhoneVerified bool
}

// SubmissionStore is the data-store collaborator: it appends one
// submission row per successful submit.
type SubmissionStore interface {
	InsertContactSubmission(ctx context.Context, rec Submission) error
}

// FormController owns one visitor's inquiry form: field values, per-field
// validation errors, the phone-verified gate, and the action cooldowns.
// One controller exists per form session; a mutex serializes access so the
// HTTP rendition of the single-threaded flow stays safe under concurrent
// requests for the same session.
type FormController struct {
	mu sync.Mutex

	values        FormValues
	fieldErrors   map[string]string
	phoneVerified bool
	challengeOpen bool

	lastOTPRequest    time.Time // zero means never requested
	lastSubmitAttempt time.Time // zero means never attempted

	sender CodeSender
	store  SubmissionStore
	now    func() time.Time
}

// NewFormController creates an empty form bound to its two collaborators
func NewFormController(sender CodeSender, store SubmissionStore) *FormController {
	return &FormController{
		fieldErrors: make(map[string]string),
		sender:      sender,
		store:       store,
		now:         time.Now,
	}
}

// UpdateField sanitizes rawValue, stores it in the named field, and clears
// any existing validation error for that field. Unknown field names are
// ignored. No I/O happens here.
func (c *FormController) UpdateField(field, rawValue string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value := Sanitize(rawValue)
	switch field {
	case FieldName:
		c.values.Name = value
	case FieldEmail:
		c.values.Email = value
	case FieldPhone:
		c.values.Phone = value
	case FieldPropertyType:
		c.values.PropertyType = PropertyType(value)
	case FieldBudget:
		c.values.Budget = Budget(value)
	case FieldLocation:
		c.values.Location = value
	case FieldMessage:
		c.values.Message = value
	default:
		return
	}
	delete(c.fieldErrors, field)
}

// Validate applies all field rules, records the resulting error map on the
// controller, and returns a copy. An empty map means the form is valid.
func (c *FormController) Validate() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *FormController) validateLocked() map[string]string {
	errs := validate(c.values)
	c.fieldErrors = errs
	return copyErrors(errs)
}

// RequestPhoneVerification checks the send cooldown and the field rules,
// then asks the auth collaborator to dispatch a one-time code to the
// country-prefixed phone number. The attempt timestamp is recorded as soon
// as the cooldown gate passes so that a repeat call within the window is
// rate limited regardless of how this one turns out.
func (c *FormController) RequestPhoneVerification(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.lastOTPRequest.IsZero() {
		if elapsed := now.Sub(c.lastOTPRequest); elapsed < OTPSendCooldown {
			return &RateLimitedError{RetryAfter: OTPSendCooldown - elapsed}
		}
	}
	c.lastOTPRequest = now

	if errs := c.validateLocked(); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	phone := NormalizePhoneForDispatch(c.values.Phone)
	if err := c.sender.SendOneTimeCode(ctx, phone); err != nil {
		return wrapExternal("send verification code", err)
	}

	c.challengeOpen = true
	return nil
}

// OnVerificationSucceeded marks the phone as verified and dismisses the
// challenge state. Safe to call more than once.
func (c *FormController) OnVerificationSucceeded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phoneVerified = true
	c.challengeOpen = false
}

// OnVerificationCancelled dismisses the challenge state without marking
// the phone verified.
func (c *FormController) OnVerificationCancelled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.challengeOpen = false
}

// Submit runs the precondition chain (cooldown, validation, verified gate),
// assembles the persisted record, and asks the data store to insert it. On
// insert success the form resets to its initial empty state; on any failure
// the typed error is returned and already-typed values stay put.
func (c *FormController) Submit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.lastSubmitAttempt.IsZero() {
		if elapsed := now.Sub(c.lastSubmitAttempt); elapsed < SubmitCooldown {
			return &RateLimitedError{RetryAfter: SubmitCooldown - elapsed}
		}
	}
	c.lastSubmitAttempt = now

	if errs := c.validateLocked(); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if !c.phoneVerified {
		return ErrNotVerified
	}

	rec := Submission{
		Name:          strings.TrimSpace(c.values.Name),
		Email:         strings.ToLower(strings.TrimSpace(c.values.Email)),
		Phone:         NormalizePhoneForDispatch(c.values.Phone),
		Message:       c.buildMessage(),
		PhoneVerified: true,
	}

	if err := c.store.InsertContactSubmission(ctx, rec); err != nil {
		return wrapExternal("save inquiry", err)
	}

	// Reset only after the store confirmed the insert.
	c.values = FormValues{}
	c.fieldErrors = make(map[string]string)
	c.phoneVerified = false
	c.challengeOpen = false
	return nil
}

// buildMessage flattens the four message segments into the single persisted
// field, always including every segment.
func (c *FormController) buildMessage() string {
	return fmt.Sprintf(
		"Property Type: %s\nBudget: %s\nPreferred Location: %s\nMessage: %s",
		orNotSpecified(string(c.values.PropertyType)),
		orNotSpecified(string(c.values.Budget)),
		orNotSpecified(strings.TrimSpace(c.values.Location)),
		orNotSpecified(strings.TrimSpace(c.values.Message)),
	)
}

// Values returns a snapshot of the current field values
func (c *FormController) Values() FormValues {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// ValidationErrors returns a copy of the last computed error map
func (c *FormController) ValidationErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyErrors(c.fieldErrors)
}

// PhoneVerified reports whether the verified gate is open
func (c *FormController) PhoneVerified() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phoneVerified
}

// ChallengeOpen reports whether the OTP challenge UI state is showing
func (c *FormController) ChallengeOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.challengeOpen
}

func copyErrors(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
