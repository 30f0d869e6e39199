package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sdsmanager/mcp-sds-library/internal/server"
	"github.com/sdsmanager/mcp-sds-library/pkg/config"
)

const (
	fmtConnectFailed  = "Connect failed: %v"
	fmtCallToolFailed = "CallTool failed: %v"
)

func TestStartServer_UnknownTransport(t *testing.T) {
	err := startServer(context.Background(), nil, serverOptions{transport: "websocket"}, slog.Default())
	if err == nil {
		t.Fatal("expected error for unknown transport")
	}
	if !strings.Contains(err.Error(), "unknown transport") {
		t.Errorf("error = %q, want 'unknown transport'", err.Error())
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.BaseURL = "https://api.example.com"
	cfg.Portal.Domain = "https://portal.example.com"
	cfg.Server.Transport = "http"
	cfg.Server.Address = ":9090"

	srv, err := server.New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = srv.Close() }()

	t.Run("fills empty options from config", func(t *testing.T) {
		opts := serverOptions{}
		applyConfigDefaults(srv, &opts)
		if opts.transport != "http" {
			t.Errorf("transport = %q, want %q", opts.transport, "http")
		}
		if opts.address != ":9090" {
			t.Errorf("address = %q, want %q", opts.address, ":9090")
		}
	})

	t.Run("flags take precedence", func(t *testing.T) {
		opts := serverOptions{transport: "stdio", address: ":7070"}
		applyConfigDefaults(srv, &opts)
		if opts.transport != "stdio" {
			t.Errorf("transport = %q, want %q", opts.transport, "stdio")
		}
		if opts.address != ":7070" {
			t.Errorf("address = %q, want %q", opts.address, ":7070")
		}
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestStreamableHTTP_ToolCall exercises the wired server end to end over the
// Streamable HTTP transport: overview, login URL generation, and the
// not-authenticated gate on a session-bound tool.
func TestStreamableHTTP_ToolCall(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Backend.BaseURL = "https://api.example.com"
	cfg.Portal.Domain = "https://portal.example.com"

	srv, err := server.New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = srv.Close() }()

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return srv.MCP
	}, nil)
	httpServer := httptest.NewServer(handler)
	defer httpServer.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: httpServer.URL}, nil)
	if err != nil {
		t.Fatalf(fmtConnectFailed, err)
	}
	defer func() { _ = session.Close() }()

	t.Run("get_mcp_overview", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_mcp_overview"})
		if err != nil {
			t.Fatalf(fmtCallToolFailed, err)
		}
		tc, ok := result.Content[0].(*mcp.TextContent)
		if !ok {
			t.Fatalf("expected TextContent, got %T", result.Content[0])
		}
		if !strings.Contains(tc.Text, "SDS Manager") {
			t.Errorf("overview missing product name: %q", tc.Text)
		}
	})

	t.Run("get_login_url creates session", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_login_url"})
		if err != nil {
			t.Fatalf(fmtCallToolFailed, err)
		}
		env := decodeEnvelope(t, result)
		if env["code"] != "SESSION_CREATED" {
			t.Errorf("code = %v, want SESSION_CREATED", env["code"])
		}
		data, _ := env["data"].(map[string]any)
		if data["session_handle"] == "" || data["session_handle"] == nil {
			t.Error("missing session_handle in data")
		}
		loginURL, _ := data["login_url"].(string)
		if !strings.HasPrefix(loginURL, "https://portal.example.com") {
			t.Errorf("login_url = %q, want portal domain prefix", loginURL)
		}
	})

	t.Run("session-bound tool rejects unknown handle", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "get_locations",
			Arguments: map[string]any{"session_handle": "nonexistent"},
		})
		if err != nil {
			t.Fatalf(fmtCallToolFailed, err)
		}
		if !result.IsError {
			t.Fatal("expected error result for unknown session")
		}
		env := decodeEnvelope(t, result)
		if env["code"] != "SESSION_EXPIRED" {
			t.Errorf("code = %v, want SESSION_EXPIRED", env["code"])
		}
	})
}

func decodeEnvelope(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty content")
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	var env map[string]any
	if err := json.Unmarshal([]byte(tc.Text), &env); err != nil {
		t.Fatalf("unmarshaling envelope: %v\n%s", err, tc.Text)
	}
	return env
}
