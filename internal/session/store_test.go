package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillboard/internal/auth"
)

func TestStore_LifecycleTransitions(t *testing.T) {
	store := NewStore()

	sess := store.Create()
	require.NotEmpty(t, sess.ID)
	assert.False(t, sess.Authenticated)

	store.Login(sess.ID, auth.Result{
		Email:       "teacher@college.edu",
		Role:        auth.RoleTeacher,
		DisplayName: "Teacher User",
	})

	got := store.Get(sess.ID)
	require.NotNil(t, got)
	assert.True(t, got.Authenticated)
	assert.Equal(t, auth.RoleTeacher, got.Role)
	assert.Equal(t, "Teacher User", got.DisplayName)

	store.Logout(sess.ID)
	got = store.Get(sess.ID)
	require.NotNil(t, got)
	assert.False(t, got.Authenticated)
	assert.Empty(t, got.Email)
	assert.Empty(t, got.Role)
	assert.Empty(t, got.DisplayName)
}

func TestStore_UnknownID(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Get("nope"))

	// No-ops rather than panics.
	store.Login("nope", auth.Result{})
	store.Logout("nope")
	assert.Equal(t, 0, store.Count())
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	store := NewStore()
	a := store.Create()
	b := store.Create()
	require.NotEqual(t, a.ID, b.ID)

	store.Login(a.ID, auth.Result{Email: "admin@college.edu", Role: auth.RoleAdmin})
	assert.False(t, store.Get(b.ID).Authenticated)
	assert.Equal(t, 2, store.Count())
}
