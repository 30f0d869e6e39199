package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdsmanager/mcp-sds-library/pkg/cache"
	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
)

type fakeIdentity struct {
	profile *sdsapi.UserProfile
	err     error
	calls   int
}

func (f *fakeIdentity) CurrentUser(_ context.Context, _ string) (*sdsapi.UserProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func newTestManager(id *fakeIdentity) (*Manager, *cache.MemoryStore) {
	store := cache.NewMemoryStore(time.Hour)
	return NewManager(store, id, "https://portal.example.com"), store
}

func TestCreateThenValidate_NotAuthenticated(t *testing.T) {
	m, _ := newTestManager(&fakeIdentity{})
	ctx := context.Background()

	handle, err := m.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	sess, state, err := m.Validate(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, NotAuthenticated, state)
	assert.False(t, sess.LoggedIn)
	assert.False(t, sess.LoginError)
}

func TestValidate_UnknownHandleExpired(t *testing.T) {
	m, _ := newTestManager(&fakeIdentity{})

	sess, state, err := m.Validate(context.Background(), "no-such-handle")
	require.NoError(t, err)
	assert.Equal(t, Expired, state)
	assert.Nil(t, sess)
}

func TestCompleteLogin_Success(t *testing.T) {
	id := &fakeIdentity{profile: &sdsapi.UserProfile{
		ID:        12,
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Language:  "en",
		Country:   "GB",
		Customer:  map[string]any{"name": "Analytical Engines"},
	}}
	m, _ := newTestManager(id)
	ctx := context.Background()

	handle, err := m.Create(ctx)
	require.NoError(t, err)

	sess, err := m.CompleteLogin(ctx, handle, "valid-key")
	require.NoError(t, err)
	assert.True(t, sess.LoggedIn)

	got, state, err := m.Validate(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, Valid, state)
	assert.Equal(t, "valid-key", got.APIKey)
	assert.Equal(t, 12, got.ID)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "Ada Lovelace", got.FullName())
	assert.Equal(t, map[string]any{"name": "Analytical Engines"}, got.Customer)
}

func TestCompleteLogin_RejectedKeepsRecord(t *testing.T) {
	id := &fakeIdentity{err: &sdsapi.APIError{
		StatusCode:   400,
		ErrorCode:    "NOT_EXISTED_API_KEY",
		ErrorMessage: "API key does not exist",
	}}
	m, _ := newTestManager(id)
	ctx := context.Background()

	handle, err := m.Create(ctx)
	require.NoError(t, err)

	sess, err := m.CompleteLogin(ctx, handle, "bad-key")
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn)
	assert.True(t, sess.LoginError)

	got, state, err := m.Validate(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, NotAuthenticated, state)
	assert.True(t, got.LoginError)
	assert.Equal(t, "API key does not exist", got.ErrorMessage)
	assert.Empty(t, got.APIKey)
}

func TestCompleteLogin_TransportFailureLeavesRecord(t *testing.T) {
	id := &fakeIdentity{err: errors.New("calling backend: connection refused")}
	m, _ := newTestManager(id)
	ctx := context.Background()

	handle, err := m.Create(ctx)
	require.NoError(t, err)

	_, err = m.CompleteLogin(ctx, handle, "any-key")
	require.Error(t, err)

	got, state, err := m.Validate(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, NotAuthenticated, state)
	assert.False(t, got.LoginError)
}

func TestInvalidate_RewritesWithoutDeleting(t *testing.T) {
	id := &fakeIdentity{profile: &sdsapi.UserProfile{ID: 1, Email: "a@b.c"}}
	m, _ := newTestManager(id)
	ctx := context.Background()

	handle, err := m.Create(ctx)
	require.NoError(t, err)
	_, err = m.CompleteLogin(ctx, handle, "key")
	require.NoError(t, err)

	require.NoError(t, m.Invalidate(ctx, handle, "API key does not exist"))

	got, state, err := m.Validate(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, NotAuthenticated, state)
	assert.True(t, got.LoginError)
	assert.Equal(t, "API key does not exist", got.ErrorMessage)
	assert.Empty(t, got.APIKey)
}

func TestInvalidate_MissingRecordIsNoop(t *testing.T) {
	m, store := newTestManager(&fakeIdentity{})
	ctx := context.Background()

	require.NoError(t, m.Invalidate(ctx, "gone", "anything"))

	_, err := store.Get(ctx, Key("gone"))
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestLoginURL(t *testing.T) {
	m, _ := newTestManager(&fakeIdentity{})
	assert.Equal(t,
		"https://portal.example.com/login?session_id=abc",
		m.LoginURL("abc"))
}
