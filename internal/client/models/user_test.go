package models

import (
	"testing"

	"github.com/k4jlpg/inventory/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("staff")
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, r)

	_, err = ParseRole("owner")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestSession_Valid(t *testing.T) {
	u := User{ID: "1", Username: "admin", Role: RoleAdmin}
	assert.True(t, Session{AccessToken: "t", User: u}.Valid())
	assert.False(t, Session{User: u}.Valid())
	assert.False(t, Session{AccessToken: "t", User: User{ID: "1", Username: "admin"}}.Valid())
	assert.False(t, Session{}.Valid())
}

func TestUserPatch_Validate(t *testing.T) {
	empty := ""
	bad := Role("root")
	ok := RoleStaff
	assert.ErrorIs(t, UserPatch{Secret: &empty}.Validate(), common.ErrValidation)
	assert.ErrorIs(t, UserPatch{Role: &bad}.Validate(), common.ErrValidation)
	assert.NoError(t, UserPatch{Role: &ok}.Validate())
	assert.True(t, UserPatch{}.IsEmpty())
}
