package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacyestates/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       7,
		Username: "priya",
		IsActive: true,
		IsAdmin:  false,
		IsStaff:  true,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "priya", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.False(t, claims.IsAdmin)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestRequireAdminAndStaff(t *testing.T) {
	staff := testUser()
	assert.Error(t, RequireAdmin(staff))
	assert.NoError(t, RequireStaff(staff))

	admin := testUser()
	admin.IsAdmin = true
	assert.NoError(t, RequireAdmin(admin))
	assert.NoError(t, RequireStaff(admin), "admins count as staff")

	visitor := testUser()
	visitor.IsStaff = false
	assert.Error(t, RequireStaff(visitor))
}
