package envelope

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
)

// codeInvalidKey means the stored credential no longer exists upstream. The
// session is invalidated so the next call prompts a fresh login.
const codeInvalidKey = "NOT_EXISTED_API_KEY"

// authorizationCodes are upstream rejections where the credential itself is
// real but lacks access. The session stays intact.
var authorizationCodes = map[string]bool{
	"AUTHENTICATION_AUTH_IS_NOT_ACTIVE_BAD_REQUEST":    true,
	"API_KEY_NOT_ACTIVE":                               true,
	"SUBSCRIPTION_ACCESS_MCP_CHAT_AGENT_NOT_PERMISSION": true,
	"CUSTOMER_SUBSCRIPTION_DOES_NOT_EXIST":             true,
}

// invalidator is the session manager hook the classifier needs.
type invalidator interface {
	Invalidate(ctx context.Context, handle, message string) error
}

// Classifier maps backend call failures into error envelopes. Each envelope
// carries the remediation instruction for its class; classification by
// upstream error code wins over the raw HTTP status.
type Classifier struct {
	sessions invalidator
	logger   *slog.Logger
}

// NewClassifier creates a classifier. logger may be nil.
func NewClassifier(sessions invalidator, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{sessions: sessions, logger: logger}
}

// Classify converts an error from a backend call into the envelope the tool
// should return. Transport failures become CONNECTION_ERROR; everything else
// is keyed off the upstream error code first and the HTTP status second.
func (c *Classifier) Classify(ctx context.Context, handle string, err error) Envelope {
	var apiErr *sdsapi.APIError
	if !errors.As(err, &apiErr) {
		return ConnectionError(handle, err.Error())
	}

	if apiErr.ErrorCode == "" {
		if !json.Valid([]byte(apiErr.Body)) {
			return ServerError(handle, apiErr.StatusCode, apiErr.Body)
		}
		return APIErrorEnvelope(handle, apiErr.StatusCode, apiErr.Body)
	}

	data := map[string]any{
		"status_code":   apiErr.StatusCode,
		"error_code":    apiErr.ErrorCode,
		"error_message": apiErr.ErrorMessage,
	}

	switch {
	case apiErr.ErrorCode == codeInvalidKey:
		if invErr := c.sessions.Invalidate(ctx, handle, apiErr.ErrorMessage); invErr != nil {
			c.logger.Warn("invalidating session after key rejection",
				"session_handle", handle, "error", invErr)
		}
		return Error(handle, CodeAPIKeyInvalid, data,
			"Invalid API key. Please login again using get_login_url tool with new session ID.")

	case authorizationCodes[apiErr.ErrorCode]:
		return Error(handle, CodeAuthorizationError, data,
			"Notify user about the error in human-friendly way",
			"Ask user to contact organization administrator for support.")

	default:
		return APIErrorEnvelope(handle, apiErr.StatusCode, apiErr.ErrorMessage)
	}
}
