package lead

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionTTL is how long an idle form session is kept before the sweep
// drops it. Matches the lifetime of one page visit with generous slack.
const SessionTTL = 30 * time.Minute

// Session binds one visitor's form controller to its challenge flow
type Session struct {
	ID        string
	Form      *FormController
	Challenge *ChallengeFlow

	lastSeen time.Time
}

// Registry is the server-side home for per-visit form sessions: an
// in-memory map from session id to controller, swept on a TTL.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	sender CodeSender
	store  SubmissionStore
	now    func() time.Time
}

// NewRegistry creates an empty session registry over the two collaborators
func NewRegistry(sender CodeSender, store SubmissionStore) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		sender:   sender,
		store:    store,
		now:      time.Now,
	}
}

// flowSender routes the form controller's send action through the
// session's challenge flow so the flow's state machine tracks the exchange
// while the real collaborator does the work.
type flowSender struct {
	flow *ChallengeFlow
}

func (fs *flowSender) SendOneTimeCode(ctx context.Context, phoneNumber string) error {
	return fs.flow.SendCode(ctx, phoneNumber)
}

func (fs *flowSender) VerifyOneTimeCode(ctx context.Context, phoneNumber, code string) error {
	return fs.flow.SubmitCode(ctx, code)
}

// Create starts a fresh form session and returns it
func (r *Registry) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	form := NewFormController(nil, r.store)
	flow := NewChallengeFlow(r.sender, form)
	form.sender = &flowSender{flow: flow}

	s := &Session{
		ID:        uuid.NewString(),
		Form:      form,
		Challenge: flow,
		lastSeen:  r.now(),
	}
	r.sessions[s.ID] = s
	return s
}

// ResetChallenge replaces a terminal challenge flow with a fresh one so a
// visitor who cancelled can verify again.
func (r *Registry) ResetChallenge(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	flow := NewChallengeFlow(r.sender, s.Form)
	s.Form.sender = &flowSender{flow: flow}
	s.Challenge = flow
	s.lastSeen = r.now()
	return s, true
}

// Get looks up a session by id, refreshing its idle timer
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if ok {
		s.lastSeen = r.now()
	}
	return s, ok
}

// Remove drops a session, e.g. after a successful submission
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Sweep removes sessions idle past the TTL and reports how many were dropped
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-SessionTTL)
	dropped := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
