package lead

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(sender *fakeSender, store *fakeStore) (*Registry, *testClock) {
	r := NewRegistry(sender, store)
	clock := newTestClock()
	r.now = clock.Now
	return r, clock
}

func TestRegistry_CreateAndGet(t *testing.T) {
	r, _ := newTestRegistry(&fakeSender{}, &fakeStore{})

	s := r.Create()
	require.NotEmpty(t, s.ID)
	require.NotNil(t, s.Form)
	require.NotNil(t, s.Challenge)

	got, ok := r.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = r.Get("no-such-session")
	assert.False(t, ok)
}

func TestRegistry_Remove(t *testing.T) {
	r, _ := newTestRegistry(&fakeSender{}, &fakeStore{})
	s := r.Create()
	require.Equal(t, 1, r.Len())

	r.Remove(s.ID)
	assert.Equal(t, 0, r.Len())
	_, ok := r.Get(s.ID)
	assert.False(t, ok)
}

func TestRegistry_SweepDropsIdleSessions(t *testing.T) {
	r, clock := newTestRegistry(&fakeSender{}, &fakeStore{})
	stale := r.Create()
	clock.Advance(SessionTTL + time.Minute)
	fresh := r.Create()

	dropped := r.Sweep()

	assert.Equal(t, 1, dropped)
	_, ok := r.Get(stale.ID)
	assert.False(t, ok)
	_, ok = r.Get(fresh.ID)
	assert.True(t, ok)
}

func TestRegistry_GetRefreshesIdleTimer(t *testing.T) {
	r, clock := newTestRegistry(&fakeSender{}, &fakeStore{})
	s := r.Create()

	clock.Advance(SessionTTL - time.Minute)
	_, ok := r.Get(s.ID)
	require.True(t, ok)

	clock.Advance(SessionTTL - time.Minute)
	assert.Equal(t, 0, r.Sweep(), "a recently touched session survives the sweep")
}

// The registry wires the form's send action through the session's challenge
// flow, so one verification request drives both the state machine and the
// real dispatcher.
func TestRegistry_SessionWiring(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	r, _ := newTestRegistry(sender, store)

	s := r.Create()
	fillValidForm(s.Form)
	s.Form.now = newTestClock().Now

	require.NoError(t, s.Form.RequestPhoneVerification(context.Background()))
	assert.Equal(t, StateCodeSent, s.Challenge.State())
	assert.Equal(t, []string{"+919876543210"}, sender.sendCalls)

	require.NoError(t, s.Challenge.SubmitCode(context.Background(), "123456"))
	assert.True(t, s.Form.PhoneVerified(), "the flow's success callback opens the form's gate")

	require.NoError(t, s.Form.Submit(context.Background()))
	require.Len(t, store.inserted, 1)
	assert.True(t, store.inserted[0].PhoneVerified)
}

func TestRegistry_ResetChallengeAfterCancel(t *testing.T) {
	sender := &fakeSender{}
	r, _ := newTestRegistry(sender, &fakeStore{})

	s := r.Create()
	fillValidForm(s.Form)
	require.NoError(t, s.Form.RequestPhoneVerification(context.Background()))
	s.Challenge.Cancel()
	require.Equal(t, StateCancelled, s.Challenge.State())

	reset, ok := r.ResetChallenge(s.ID)
	require.True(t, ok)
	assert.Equal(t, StateIdle, reset.Challenge.State())
	assert.Same(t, s.Form, reset.Form, "field values survive a challenge reset")

	_, ok = r.ResetChallenge("no-such-session")
	assert.False(t, ok)
}
