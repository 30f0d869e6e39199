// Package session manages the credential lifecycle behind session handles.
// A handle is an opaque UUID the agent threads through every tool call; the
// record behind it lives in the cache under a fixed key prefix and expires
// with the cache TTL. Records are rewritten on state changes, never deleted,
// so an invalidated handle can still explain why login failed.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/sdsmanager/mcp-sds-library/pkg/cache"
	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
)

// keyPrefix namespaces session records in the shared cache.
const keyPrefix = "sds_mcp:"

// State is the outcome of validating a session handle.
type State int

const (
	// Valid means the record exists and the user is logged in.
	Valid State = iota
	// Expired means the cache has no record for the handle.
	Expired
	// NotAuthenticated means the record exists but login never completed,
	// or a previous login attempt was rejected.
	NotAuthenticated
)

// Session is the cached record behind a handle. Profile fields are
// denormalized from the identity check so status lookups need no backend
// call.
type Session struct {
	LoggedIn     bool   `json:"logged_in"`
	LoginError   bool   `json:"login_error,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	APIKey       string `json:"api_key,omitempty"`

	ID          int            `json:"id,omitempty"`
	Email       string         `json:"email,omitempty"`
	FirstName   string         `json:"first_name,omitempty"`
	LastName    string         `json:"last_name,omitempty"`
	Language    string         `json:"language,omitempty"`
	Country     string         `json:"country,omitempty"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Customer    map[string]any `json:"customer,omitempty"`
}

// FullName joins the profile name fields for display.
func (s *Session) FullName() string {
	return s.FirstName + " " + s.LastName
}

// identity is the subset of the backend client the manager needs.
type identity interface {
	CurrentUser(ctx context.Context, apiKey string) (*sdsapi.UserProfile, error)
}

// Manager owns session records in the cache.
type Manager struct {
	store    cache.Store
	identity identity
	domain   string
}

// NewManager creates a session manager. domain is the portal base URL used
// for login links.
func NewManager(store cache.Store, identity identity, domain string) *Manager {
	return &Manager{store: store, identity: identity, domain: domain}
}

// Key returns the cache key for a handle.
func Key(handle string) string {
	return keyPrefix + handle
}

// LoginURL returns the portal login link for a handle.
func (m *Manager) LoginURL(handle string) string {
	return fmt.Sprintf("%s/login?session_id=%s", m.domain, handle)
}

// Create generates a fresh handle and writes an unauthenticated record.
func (m *Manager) Create(ctx context.Context) (string, error) {
	handle := uuid.NewString()
	if err := m.put(ctx, handle, &Session{}); err != nil {
		return "", err
	}
	return handle, nil
}

// Get returns the record behind a handle, or cache.ErrNotFound when the
// session has expired.
func (m *Manager) Get(ctx context.Context, handle string) (*Session, error) {
	data, err := m.store.Get(ctx, Key(handle))
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return &sess, nil
}

// CompleteLogin runs the identity check and persists the outcome under the
// same handle. A rejected credential writes an error record so a later
// status check can explain the failure; only transport failures return an
// error without touching the record.
func (m *Manager) CompleteLogin(ctx context.Context, handle, apiKey string) (*Session, error) {
	profile, err := m.identity.CurrentUser(ctx, apiKey)
	if err != nil {
		var apiErr *sdsapi.APIError
		if errors.As(err, &apiErr) {
			rejected := &Session{
				LoginError:   true,
				ErrorMessage: rejectionMessage(apiErr),
			}
			if putErr := m.put(ctx, handle, rejected); putErr != nil {
				return nil, putErr
			}
			return rejected, nil
		}
		return nil, err
	}

	sess := &Session{
		LoggedIn:    true,
		APIKey:      apiKey,
		ID:          profile.ID,
		Email:       profile.Email,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Language:    profile.Language,
		Country:     profile.Country,
		PhoneNumber: profile.PhoneNumber,
		Customer:    profile.Customer,
	}
	if err := m.put(ctx, handle, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Validate resolves a handle to its record and state. A valid session has
// its TTL refreshed so active conversations do not expire mid-flow.
func (m *Manager) Validate(ctx context.Context, handle string) (*Session, State, error) {
	sess, err := m.Get(ctx, handle)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, Expired, nil
		}
		return nil, Expired, err
	}
	if !sess.LoggedIn {
		return sess, NotAuthenticated, nil
	}
	if err := m.put(ctx, handle, sess); err != nil {
		return nil, Expired, err
	}
	return sess, Valid, nil
}

// Invalidate flips an existing record to the unauthenticated error shape.
// The key is rewritten, never deleted, so the handle stays addressable. A
// missing record is left missing.
func (m *Manager) Invalidate(ctx context.Context, handle, message string) error {
	if _, err := m.Get(ctx, handle); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil
		}
		return err
	}
	return m.put(ctx, handle, &Session{
		LoginError:   true,
		ErrorMessage: message,
	})
}

func (m *Manager) put(ctx context.Context, handle string, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	return m.store.Set(ctx, Key(handle), data)
}

func rejectionMessage(apiErr *sdsapi.APIError) string {
	if apiErr.ErrorMessage != "" {
		return apiErr.ErrorMessage
	}
	return "login rejected with status " + strconv.Itoa(apiErr.StatusCode)
}
