package services

import (
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestAdminSeedAndLogin(t *testing.T) {
	s := NewAdminService(newTestStore(t))
	ctx := context.Background()

	created, err := s.Seed(ctx, "root", "secret")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = s.Seed(ctx, "root", "other")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := s.Login(ctx, "root", "secret")
	require.NoError(t, err)
	assert.Equal(t, "root", admin.Adminname)

	_, err = s.Login(ctx, "root", "other")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "ghost", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Seed(ctx, "", "x")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListAdminsOmitsPassword(t *testing.T) {
	s := NewAdminService(newTestStore(t))
	ctx := context.Background()
	for _, name := range []string{"b", "a"} {
		_, err := s.Seed(ctx, name, "pw")
		require.NoError(t, err)
	}

	admins, err := s.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "a", admins[0].Adminname)

	body, err := json.Marshal(admins)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "adminpass")
	assert.NotContains(t, string(body), "$2a$")
}
