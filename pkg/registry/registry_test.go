package registry

import (
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const regTestAuth = "auth"

// mockToolkit is a simple mock for testing.
type mockToolkit struct {
	kind       string
	name       string
	tools      []string
	closeCalls int
}

func (m *mockToolkit) Kind() string                { return m.kind }
func (m *mockToolkit) Name() string                { return m.name }
func (m *mockToolkit) RegisterTools(_ *mcp.Server) {} //nolint:revive // unused-receiver: mock
func (m *mockToolkit) Tools() []string             { return m.tools }
func (m *mockToolkit) Close() error                { m.closeCalls++; return nil }

// mockToolkitWithCloseError is a toolkit that returns an error on Close.
type mockToolkitWithCloseError struct {
	mockToolkit
}

func (m *mockToolkitWithCloseError) Close() error { //nolint:revive // unused-receiver: mock
	return fmt.Errorf("close error")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	toolkit := &mockToolkit{kind: regTestAuth, name: "main"}

	if err := reg.Register(toolkit); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, ok := reg.Get(regTestAuth, "main")
	if !ok {
		t.Fatal("Get() returned false")
	}
	if got.Kind() != regTestAuth {
		t.Errorf("Kind() = %q, want %q", got.Kind(), regTestAuth)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	toolkit := &mockToolkit{kind: regTestAuth, name: "main"}

	_ = reg.Register(toolkit)
	err := reg.Register(toolkit)
	if err == nil {
		t.Error("Register() expected error for duplicate")
	}
}

func TestRegistry_GetNotFound(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Get("nonexistent", "name")
	if ok {
		t.Error("Get() returned true for nonexistent toolkit")
	}
}

func TestRegistry_AllAndAllTools(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(&mockToolkit{kind: regTestAuth, name: "main", tools: []string{"get_login_url", "check_auth_status"}})
	_ = reg.Register(&mockToolkit{kind: "library", name: "main", tools: []string{"search_sds"}})

	all := reg.All()
	if len(all) != 2 {
		t.Errorf("All() returned %d toolkits, want 2", len(all))
	}

	tools := reg.AllTools()
	if len(tools) != 3 {
		t.Errorf("AllTools() returned %d tools, want 3", len(tools))
	}
}

func TestRegistry_Close(t *testing.T) {
	reg := NewRegistry()
	toolkit := &mockToolkit{kind: regTestAuth, name: "main"}
	_ = reg.Register(toolkit)

	if err := reg.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if toolkit.closeCalls != 1 {
		t.Errorf("closeCalls = %d, want 1", toolkit.closeCalls)
	}
}

func TestRegistry_CloseWithError(t *testing.T) {
	reg := NewRegistry()
	toolkit := &mockToolkitWithCloseError{mockToolkit: mockToolkit{kind: regTestAuth, name: "main"}}
	_ = reg.Register(toolkit)

	err := reg.Close()
	if err == nil {
		t.Error("Close() expected error when toolkit fails")
	}
}

func TestRegistry_RegisterAllTools(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(&mockToolkit{kind: regTestAuth, name: "main", tools: []string{"get_login_url"}})
	_ = reg.Register(&mockToolkit{kind: "imports", name: "main", tools: []string{"upload_product_list_excel_file"}})

	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "1.0.0"}, nil)
	reg.RegisterAllTools(server) // Should not panic
}
