package store

import (
	"context"
	"strings"
	"testing"

	"lms-portal/internal/models"
	"lms-portal/internal/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *UserStore {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := NewUserStore(db)
	s.cost = bcrypt.MinCost
	return s
}

func TestRegisterThenAuthenticate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Register(ctx, "alice", "wonderland")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.True(t, created.IsActive)
	require.NotEqual(t, "wonderland", created.PasswordHash)

	user, err := s.Authenticate(ctx, "alice", "wonderland")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, created.ID, user.ID)
}

func TestRegister_DuplicateKeepsOriginalHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Register(ctx, "alice", "first-password")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "second-password")
	require.ErrorIs(t, err, ErrDuplicateUsername)

	stored, err := s.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.PasswordHash, stored.PasswordHash)

	_, err = s.Authenticate(ctx, "alice", "first-password")
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, "alice", "second-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_UsernameIsExactMatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	_, err = s.Register(ctx, "Alice", "pw")
	require.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "", "pw")
	require.ErrorIs(t, err, ErrMissingCredentials)
	_, err = s.Register(ctx, "bob", "")
	require.ErrorIs(t, err, ErrMissingCredentials)

	_, err = s.Register(ctx, "bob", strings.Repeat("x", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAuthenticate_UniformFailures(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "wonderland")
	require.NoError(t, err)

	_, wrongPassword := s.Authenticate(ctx, "alice", "looking-glass")
	_, unknownUser := s.Authenticate(ctx, "mallory", "wonderland")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "wonderland")
	require.NoError(t, err)
	require.NoError(t, s.SetActive(ctx, "alice", false))

	_, err = s.Authenticate(ctx, "alice", "wonderland")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, s.SetActive(ctx, "alice", true))
	_, err = s.Authenticate(ctx, "alice", "wonderland")
	require.NoError(t, err)
}

func TestSetActive_UnknownUser(t *testing.T) {
	s := newTestStore(t)
	require.ErrorIs(t, s.SetActive(context.Background(), "ghost", false), ErrUserNotFound)
}

func TestFindByID_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrUserNotFound)
}
