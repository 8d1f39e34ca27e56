package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmissionHooks(t *testing.T) {
	sub := &ContactSubmission{Name: "Rahul Shah"}

	require.NoError(t, sub.BeforeCreate(nil))
	assert.Equal(t, "new", sub.Status)
	assert.False(t, sub.CreatedAt.IsZero())
	assert.Nil(t, sub.UpdatedAt)

	require.NoError(t, sub.BeforeUpdate(nil))
	require.NotNil(t, sub.UpdatedAt)

	// An explicit status is left alone.
	read := &ContactSubmission{Status: "read"}
	require.NoError(t, read.BeforeCreate(nil))
	assert.Equal(t, "read", read.Status)
}

func TestTestimonialHooks_RatingClamp(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 5},
		{6, 5},
		{-1, 5},
		{3, 3},
		{1, 1},
		{5, 5},
	}
	for _, tc := range cases {
		tm := &Testimonial{Rating: tc.in}
		require.NoError(t, tm.BeforeCreate(nil))
		assert.Equal(t, tc.want, tm.Rating, "rating %d", tc.in)
	}
}

func TestUserHooks(t *testing.T) {
	u := &User{Username: "priya"}
	require.NoError(t, u.BeforeCreate(nil))
	assert.False(t, u.CreatedAt.IsZero())
	assert.False(t, u.UpdatedAt.IsZero())
}
