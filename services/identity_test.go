package services

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/models"
	"storefront/notify"
	"testing"
)

func registerAlice(t *testing.T, s *IdentityService) *models.User {
	t.Helper()
	user, err := s.Register(context.Background(), RegisterInput{Username: "alice", Password: "pw1", Email: "a@x.com"})
	require.NoError(t, err)
	return user
}

func TestRegisterStoresUserWithDefaults(t *testing.T) {
	s := NewIdentityService(newTestStore(t), &recordingNotifier{})

	user := registerAlice(t, s)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "", user.Img)
	assert.NotEqual(t, "pw1", user.Password)
}

func TestRegisterDuplicateEmailFails(t *testing.T) {
	store := newTestStore(t)
	s := NewIdentityService(store, &recordingNotifier{})
	ctx := context.Background()
	registerAlice(t, s)

	_, err := s.Register(ctx, RegisterInput{Username: "alice2", Password: "pw2", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = store.Users().FindByUsernameOrEmail(ctx, "alice2")
	assert.Error(t, err)
}

func TestRegisterRequiresFields(t *testing.T) {
	s := NewIdentityService(newTestStore(t), &recordingNotifier{})
	ctx := context.Background()

	for _, in := range []RegisterInput{
		{Password: "pw", Email: "a@x.com"},
		{Username: "alice", Email: "a@x.com"},
		{Username: "alice", Password: "pw"},
	} {
		_, err := s.Register(ctx, in)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	s := NewIdentityService(newTestStore(t), &recordingNotifier{})
	ctx := context.Background()
	alice := registerAlice(t, s)

	user, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	user, err = s.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	_, err = s.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfileMissing(t *testing.T) {
	s := NewIdentityService(newTestStore(t), &recordingNotifier{})

	_, err := s.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileOverwritesAndClears(t *testing.T) {
	s := NewIdentityService(newTestStore(t), &recordingNotifier{})
	ctx := context.Background()
	alice, err := s.Register(ctx, RegisterInput{Username: "alice", Password: "pw1", Email: "a@x.com", Phone: "123", Address: "street"})
	require.NoError(t, err)

	updated, err := s.UpdateProfile(ctx, alice.ID, ProfileInput{Username: "alice2", Email: "b@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "b@x.com", updated.Email)
	assert.Equal(t, "", updated.Phone)
	assert.Equal(t, "", updated.Address)

	stored, err := s.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Phone)

	_, err = s.UpdateProfile(ctx, "missing", ProfileInput{Username: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	s := NewIdentityService(newTestStore(t), &recordingNotifier{})
	ctx := context.Background()
	alice := registerAlice(t, s)
	_, err := s.Register(ctx, RegisterInput{Username: "bob", Password: "pw", Email: "b@x.com"})
	require.NoError(t, err)

	_, err = s.UpdateProfile(ctx, alice.ID, ProfileInput{Username: "alice", Email: "b@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestChangePassword(t *testing.T) {
	s := NewIdentityService(newTestStore(t), &recordingNotifier{})
	ctx := context.Background()
	alice := registerAlice(t, s)

	assert.ErrorIs(t, s.ChangePassword(ctx, alice.ID, "wrong", "pw2"), ErrInvalidCredentials)
	assert.ErrorIs(t, s.ChangePassword(ctx, "missing", "pw1", "pw2"), ErrNotFound)
	assert.ErrorIs(t, s.ChangePassword(ctx, alice.ID, "pw1", ""), ErrValidation)

	require.NoError(t, s.ChangePassword(ctx, alice.ID, "pw1", "pw2"))
	_, err := s.Login(ctx, "alice", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "alice", "pw2")
	assert.NoError(t, err)
}

func TestDeleteAccountWrongPasswordKeepsEverything(t *testing.T) {
	store := newTestStore(t)
	s := NewIdentityService(store, &recordingNotifier{})
	cart := NewCartService(store)
	ctx := context.Background()
	alice := registerAlice(t, s)
	_, err := cart.AddOrIncrement(ctx, CartItemInput{UserID: alice.ID, ProductID: "p1", ProductName: "Shoe", Price: "10", Quantity: 1})
	require.NoError(t, err)

	err = s.DeleteAccount(ctx, alice.ID, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.GetProfile(ctx, alice.ID)
	assert.NoError(t, err)
	items, err := cart.ListCart(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDeleteAccountRemovesUserAndCart(t *testing.T) {
	store := newTestStore(t)
	s := NewIdentityService(store, &recordingNotifier{})
	cart := NewCartService(store)
	ctx := context.Background()
	alice := registerAlice(t, s)
	bob, err := s.Register(ctx, RegisterInput{Username: "bob", Password: "pw", Email: "b@x.com"})
	require.NoError(t, err)

	for _, p := range []string{"p1", "p2"} {
		_, err := cart.AddOrIncrement(ctx, CartItemInput{UserID: alice.ID, ProductID: p, ProductName: "Shoe", Price: "10"})
		require.NoError(t, err)
	}
	_, err = cart.AddOrIncrement(ctx, CartItemInput{UserID: bob.ID, ProductID: "p1", ProductName: "Shoe", Price: "10"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccount(ctx, alice.ID, "pw1"))

	_, err = s.GetProfile(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	items, err := cart.ListCart(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	items, err = cart.ListCart(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.ErrorIs(t, s.DeleteAccount(ctx, alice.ID, "pw1"), ErrNotFound)
}

func TestForgotPassword(t *testing.T) {
	n := &recordingNotifier{}
	s := NewIdentityService(newTestStore(t), n)
	ctx := context.Background()
	alice := registerAlice(t, s)

	require.NoError(t, s.ForgotPassword(ctx, "a@x.com"))
	require.Len(t, n.events, 1)
	assert.Equal(t, alice.ID, n.events[0].UserID)
	assert.Equal(t, "a@x.com", n.events[0].Email)

	assert.ErrorIs(t, s.ForgotPassword(ctx, "nobody@x.com"), ErrNotFound)
}

func TestForgotPasswordSurfacesDispatchFailure(t *testing.T) {
	n := &recordingNotifier{err: errors.New("broker down")}
	s := NewIdentityService(newTestStore(t), n)
	registerAlice(t, s)

	err := s.ForgotPassword(context.Background(), "a@x.com")
	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "dispatch password reset", se.Op)
}

func TestForgotPasswordFailsWithoutTransport(t *testing.T) {
	s := NewIdentityService(newTestStore(t), notify.Unconfigured{})
	registerAlice(t, s)

	err := s.ForgotPassword(context.Background(), "a@x.com")
	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, notify.ErrNotConfigured)
}
