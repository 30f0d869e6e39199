// Package auth provides the session and identity toolkit: MCP overview,
// login URL generation, authentication status, permissions, and usage
// limits.
package auth

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sdsmanager/mcp-sds-library/pkg/envelope"
	"github.com/sdsmanager/mcp-sds-library/pkg/registry"
	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
	"github.com/sdsmanager/mcp-sds-library/pkg/session"
)

var loginInstructions = []string{
	"1. Click or copy the login_url link to access the login form",
	"2. Type your API key in the input field and click 'Login' to login",
	"3. After user confirm finished login, call check_auth_status with session_handle",
}

// api is the backend surface this toolkit calls.
type api interface {
	Permissions(ctx context.Context, apiKey string) ([]string, error)
	LocationPermissions(ctx context.Context, apiKey, locationID string) ([]string, error)
	Limits(ctx context.Context, apiKey string) (map[string]any, error)
}

// Toolkit implements the authentication toolkit.
type Toolkit struct {
	name       string
	sessions   *session.Manager
	api        api
	classifier *envelope.Classifier
	logger     *slog.Logger
}

// New creates the auth toolkit.
func New(name string, sessions *session.Manager, backend api, classifier *envelope.Classifier, logger *slog.Logger) *Toolkit {
	if logger == nil {
		logger = slog.Default()
	}
	return &Toolkit{
		name:       name,
		sessions:   sessions,
		api:        backend,
		classifier: classifier,
		logger:     logger,
	}
}

// Kind returns the toolkit kind.
func (*Toolkit) Kind() string {
	return "auth"
}

// Name returns the toolkit instance name.
func (t *Toolkit) Name() string {
	return t.name
}

// Tools returns the list of tool names provided by this toolkit.
func (*Toolkit) Tools() []string {
	return []string{
		"get_mcp_overview",
		"get_login_url",
		"check_auth_status",
		"get_permissions",
		"get_limits",
	}
}

// Close releases resources.
func (*Toolkit) Close() error {
	return nil
}

// RegisterTools registers all auth tools with the MCP server.
func (t *Toolkit) RegisterTools(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_mcp_overview",
		Description: overviewToolDescription,
	}, t.handleOverview)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_login_url",
		Description: loginURLDescription,
	}, t.handleLoginURL)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_auth_status",
		Description: authStatusDescription,
	}, t.handleAuthStatus)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_permissions",
		Description: permissionsDescription,
	}, t.handlePermissions)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_limits",
		Description: limitsDescription,
	}, t.handleLimits)
}

// validate short-circuits expired or unauthenticated sessions into their
// error envelopes. A nil envelope means the session is usable.
func (t *Toolkit) validate(ctx context.Context, handle string) (*session.Session, *envelope.Envelope) {
	sess, state, err := t.sessions.Validate(ctx, handle)
	if err != nil {
		env := envelope.ServerError(handle, 0, err.Error())
		return nil, &env
	}
	switch state {
	case session.Expired:
		env := envelope.SessionExpired(handle)
		return nil, &env
	case session.NotAuthenticated:
		env := envelope.AuthenticationError(handle, sess.ErrorMessage)
		return nil, &env
	}
	return sess, nil
}

type overviewInput struct{}

func (t *Toolkit) handleOverview(_ context.Context, _ *mcp.CallToolRequest, _ overviewInput) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: mcpOverview}},
	}, nil, nil
}

type loginURLInput struct {
	SessionHandle string `json:"session_handle,omitempty"`
}

func (t *Toolkit) handleLoginURL(ctx context.Context, _ *mcp.CallToolRequest, input loginURLInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	if handle != "" {
		sess, err := t.sessions.Get(ctx, handle)
		if err == nil {
			if sess.LoggedIn {
				return envelope.Success(handle, envelope.CodeSessionReused, map[string]any{
					"session_handle": handle,
					"message":        "Session reused. You are already logged in.",
				}, "Show message to user and call check_auth_status with session_handle").Result()
			}
			return envelope.Success(handle, envelope.CodeSessionReused, map[string]any{
				"session_handle": handle,
				"message":        "Login URL re-generated! Please login with your API key.",
				"login_url":      t.sessions.LoginURL(handle),
			}, loginInstructions...).Result()
		}
	}

	newHandle, err := t.sessions.Create(ctx)
	if err != nil {
		return envelope.ServerError(handle, 0, err.Error()).Result()
	}
	return envelope.Success(newHandle, envelope.CodeSessionCreated, map[string]any{
		"session_handle": newHandle,
		"message":        "Login URL generated! Please login with your API key.",
		"login_url":      t.sessions.LoginURL(newHandle),
	}, loginInstructions...).Result()
}

type authStatusInput struct {
	SessionHandle string `json:"session_handle"`
}

func (t *Toolkit) handleAuthStatus(ctx context.Context, _ *mcp.CallToolRequest, input authStatusInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, state, err := t.sessions.Validate(ctx, handle)
	if err != nil {
		return envelope.ServerError(handle, 0, err.Error()).Result()
	}

	switch state {
	case session.Expired:
		return envelope.SessionExpired(handle).Result()

	case session.Valid:
		return envelope.Success(handle, envelope.CodeOK, map[string]any{
			"session_handle": handle,
			"user": map[string]any{
				"id":           sess.ID,
				"email":        sess.Email,
				"name":         sess.FullName(),
				"language":     sess.Language,
				"country":      sess.Country,
				"phone_number": sess.PhoneNumber,
				"customer":     sess.Customer,
			},
		},
			"Authorization successful. Show welcome message and user information to the user",
			"Call tool get_permissions, get_limits to show them to the user",
			"Ask user to choose where to start setup",
		).Result()
	}

	if sess.LoginError {
		return envelope.Error(handle, envelope.CodeAuthorizationError,
			map[string]any{"error_message": sess.ErrorMessage},
			"Authorization error. Please login again using get_login_url tool with new session ID.",
		).Result()
	}
	return envelope.NotAuthenticated(handle).Result()
}

type permissionsInput struct {
	SessionHandle string `json:"session_handle"`
	LocationID    string `json:"location_id,omitempty"`
}

func (t *Toolkit) handlePermissions(ctx context.Context, _ *mcp.CallToolRequest, input permissionsInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	var (
		keys []string
		err  error
	)
	if input.LocationID != "" {
		keys, err = t.api.LocationPermissions(ctx, sess.APIKey, input.LocationID)
	} else {
		keys, err = t.api.Permissions(ctx, sess.APIKey)
	}
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	described := make(map[string]string, len(keys))
	for _, key := range keys {
		if input.LocationID != "" {
			described[key] = locationPermissionMapping[key]
		} else {
			described[key] = generalPermissionMapping[key]
		}
	}

	return envelope.Success(handle, envelope.CodeOK, map[string]any{
		"session_handle": handle,
		"permissions":    described,
	},
		"Show permissions to the user",
		"Recommend some next actions based on the permissions",
	).Result()
}

type limitsInput struct {
	SessionHandle string `json:"session_handle"`
}

func (t *Toolkit) handleLimits(ctx context.Context, _ *mcp.CallToolRequest, input limitsInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	limits, err := t.api.Limits(ctx, sess.APIKey)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	data := map[string]any{"session_handle": handle}
	for k, v := range limits {
		data[k] = v
	}
	return envelope.Success(handle, envelope.CodeOK, data,
		"Show limits to the user",
		"Recommend user to contact organization administrator if they are out of limits",
		"Recommend search_sds tool for user to search if they still not reach the limits",
	).Result()
}

var _ registry.Toolkit = (*Toolkit)(nil)

var _ api = (*sdsapi.Client)(nil)
