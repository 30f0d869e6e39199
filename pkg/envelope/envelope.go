// Package envelope defines the response contract every tool returns: a JSON
// envelope with a status, a machine code, optional data, and instruction
// lines telling the calling agent what to do next. The classifier in this
// package maps backend failures into that contract.
package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Code identifies the outcome of a tool call.
type Code string

const (
	CodeOK             Code = "OK"
	CodeSessionCreated Code = "SESSION_CREATED"
	CodeSessionReused  Code = "SESSION_REUSED"

	CodeSessionExpired      Code = "SESSION_EXPIRED"
	CodeNotAuthenticated    Code = "NOT_AUTHENTICATED"
	CodeAuthenticationError Code = "AUTHENTICATION_ERROR"
	CodeAPIKeyInvalid       Code = "API_KEY_INVALID"
	CodeAuthorizationError  Code = "AUTHORIZATION_ERROR"
	CodeConnectionError     Code = "CONNECTION_ERROR"
	CodeServerError         Code = "SERVER_ERROR"
	CodeAPIError            Code = "API_ERROR"

	CodeNeedConfirmation          Code = "NEED_CONFIRMATION"
	CodeMissingRequiredParameters Code = "MISSING_REQUIRED_PARAMETERS"

	CodeUploadSessionExpired   Code = "UPLOAD_SESSION_EXPIRED"
	CodeUploadError            Code = "UPLOAD_ERROR"
	CodeUploadValidationError  Code = "UPLOAD_VALIDATION_ERROR"
	CodeUploadProcessError     Code = "UPLOAD_PROCESS_ERROR"
	CodeUploadFinished         Code = "UPLOAD_FINISHED"
	CodeUploadExtracting       Code = "UPLOAD_EXTRACTING"
	CodeUploadProcessing       Code = "UPLOAD_PROCESSING"
	CodeUploadProcessed        Code = "UPLOAD_PROCESSED"
	CodeStepNotFound           Code = "STEP_NOT_FOUND"
)

// Envelope is the wire shape of every tool response.
type Envelope struct {
	Status      string         `json:"status"`
	Code        Code           `json:"code"`
	Data        map[string]any `json:"data,omitempty"`
	Instruction []string       `json:"instruction,omitempty"`
	TraceID     string         `json:"trace_id"`
}

// Success builds a success envelope.
func Success(handle string, code Code, data map[string]any, instruction ...string) Envelope {
	return Envelope{
		Status:      "success",
		Code:        code,
		Data:        data,
		Instruction: instruction,
		TraceID:     handle,
	}
}

// Error builds an error envelope.
func Error(handle string, code Code, data map[string]any, instruction ...string) Envelope {
	return Envelope{
		Status:      "error",
		Code:        code,
		Data:        data,
		Instruction: instruction,
		TraceID:     handle,
	}
}

// Result converts the envelope to a CallToolResult. The envelope JSON is the
// sole text content; error envelopes set IsError so the agent sees the
// failure without the protocol treating it as a tool crash.
func (e Envelope) Result() (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf(`{"error": %q}`, err.Error())},
			},
			IsError: true,
		}, nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
		IsError: e.Status == "error",
	}, nil, nil
}

// SessionExpired is returned when the cache no longer holds the handle.
func SessionExpired(handle string) Envelope {
	return Error(handle, CodeSessionExpired, nil,
		"Session expired. Please use the get_login_url tool with new session ID to create a new session.")
}

// NotAuthenticated is returned when a session exists but login never
// completed.
func NotAuthenticated(handle string) Envelope {
	return Error(handle, CodeNotAuthenticated, nil,
		"Not authenticated. Please use the get_login_url tool with new session ID to create a new session.")
}

// AuthenticationError is returned when a tool is called on a session whose
// login was rejected or revoked.
func AuthenticationError(handle, message string) Envelope {
	return Error(handle, CodeAuthenticationError,
		map[string]any{"error_message": message},
		"Authorization error. Please login again using get_login_url tool with new session ID.")
}

// ConnectionError wraps a transport failure.
func ConnectionError(handle, message string) Envelope {
	return Error(handle, CodeConnectionError,
		map[string]any{"error_message": message},
		"Failed to connect to service. Retry to call the tool again.")
}

// ServerError wraps a non-2xx response whose body could not be interpreted.
func ServerError(handle string, statusCode int, message string) Envelope {
	return Error(handle, CodeServerError,
		map[string]any{"status_code": statusCode, "error_message": message},
		"Notify user about the error in human-friendly way",
		"Ask user to contact organization administrator for support.")
}

// APIErrorEnvelope wraps a backend rejection that carries no recognized
// error code.
func APIErrorEnvelope(handle string, statusCode int, message string) Envelope {
	return Error(handle, CodeAPIError,
		map[string]any{"status_code": statusCode, "error_message": message},
		"Notify user about the error in human-friendly way",
		"Ask user to verify the input and try again.")
}
