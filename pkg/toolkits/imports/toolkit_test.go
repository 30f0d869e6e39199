package imports

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sdsmanager/mcp-sds-library/pkg/cache"
	"github.com/sdsmanager/mcp-sds-library/pkg/envelope"
	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
	"github.com/sdsmanager/mcp-sds-library/pkg/session"
	"github.com/sdsmanager/mcp-sds-library/pkg/upload"
)

const testDomain = "https://portal.example.com"

type fakeAPI struct {
	status   map[string]any
	requests *sdsapi.Paginated
	matched  map[string]any
	lists    *sdsapi.Paginated
	summary  *sdsapi.Paginated
	err      error

	gotProductListID string
	gotSearch        string
}

func (f *fakeAPI) GetImportStatus(_ context.Context, _, productListID string) (map[string]any, error) {
	f.gotProductListID = productListID
	return f.status, f.err
}

func (f *fakeAPI) SDSRequests(_ context.Context, _, search, productListID string, _, _ int) (*sdsapi.Paginated, error) {
	f.gotSearch = search
	f.gotProductListID = productListID
	return f.requests, f.err
}

func (f *fakeAPI) MatchSDSRequest(_ context.Context, _, _, _ string, _ bool) (map[string]any, error) {
	return f.matched, f.err
}

func (f *fakeAPI) ProductLists(_ context.Context, _, search string, _, _ int) (*sdsapi.Paginated, error) {
	f.gotSearch = search
	return f.lists, f.err
}

func (f *fakeAPI) ProductListSummary(_ context.Context, _, productListID string, _, _ int) (*sdsapi.Paginated, error) {
	f.gotProductListID = productListID
	return f.summary, f.err
}

// fakeUploadBackend serves the upload flows; the PDF start path never calls
// it.
type fakeUploadBackend struct {
	extraction *sdsapi.ExtractionStatus
	imported   *sdsapi.ImportResult
	err        error
}

func (f *fakeUploadBackend) UploadSDSFromURL(_ context.Context, _, _, _, _ string) (*sdsapi.ExtractionStatus, error) {
	return f.extraction, f.err
}

func (f *fakeUploadBackend) GetExtractionStatus(_ context.Context, _, _ string) (*sdsapi.ExtractionStatus, error) {
	return f.extraction, f.err
}

func (f *fakeUploadBackend) UploadProductList(_ context.Context, _, _ string, _ io.Reader, _ string, _ bool) (*sdsapi.ImportResult, error) {
	return f.imported, f.err
}

func newTestToolkit(t *testing.T) (*Toolkit, *fakeAPI, cache.Store) {
	t.Helper()
	store := cache.NewMemoryStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(store, nil, testDomain)
	classifier := envelope.NewClassifier(sessions, logger)
	flows := upload.NewFlows(store, &fakeUploadBackend{}, classifier, testDomain, logger)
	fake := &fakeAPI{}
	return New("imports", sessions, fake, flows, classifier, logger), fake, store
}

func seedLoggedIn(t *testing.T, store cache.Store, handle string) {
	t.Helper()
	data, err := json.Marshal(&session.Session{LoggedIn: true, APIKey: "key"})
	if err != nil {
		t.Fatalf("marshaling session: %v", err)
	}
	if err := store.Set(context.Background(), session.Key(handle), data); err != nil {
		t.Fatalf("seeding session: %v", err)
	}
}

func decodeEnvelope(t *testing.T, result *mcp.CallToolResult) envelope.Envelope {
	t.Helper()
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	var env envelope.Envelope
	if err := json.Unmarshal([]byte(tc.Text), &env); err != nil {
		t.Fatalf("unmarshaling envelope: %v\n%s", err, tc.Text)
	}
	return env
}

func TestToolkit_Metadata(t *testing.T) {
	tk, _, _ := newTestToolkit(t)

	if tk.Kind() != "imports" {
		t.Errorf("Kind() = %q", tk.Kind())
	}
	if got := len(tk.Tools()); got != 11 {
		t.Errorf("len(Tools()) = %d, want 11", got)
	}
}

func TestHandleUploadPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("starts a pdf upload", func(t *testing.T) {
		tk, _, store := newTestToolkit(t)
		seedLoggedIn(t, store, "h1")

		result, _, err := tk.handleUploadPDF(ctx, nil, uploadPDFInput{
			SessionHandle: "h1",
			LocationID:    "3",
		})
		if err != nil {
			t.Fatalf("handleUploadPDF: %v", err)
		}
		env := decodeEnvelope(t, result)
		if env.Code != envelope.CodeOK {
			t.Fatalf("code = %q, want OK", env.Code)
		}
		requestID, _ := env.Data["request_id"].(string)
		if requestID == "" {
			t.Fatal("missing request_id")
		}
		uploadURL, _ := env.Data["upload_url"].(string)
		if !strings.Contains(uploadURL, "session_id=h1") ||
			!strings.Contains(uploadURL, "department_id=3") ||
			!strings.Contains(uploadURL, "request_id="+requestID) {
			t.Errorf("upload_url = %q", uploadURL)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		tk, _, _ := newTestToolkit(t)

		result, _, err := tk.handleUploadPDF(ctx, nil, uploadPDFInput{SessionHandle: "gone"})
		if err != nil {
			t.Fatalf("handleUploadPDF: %v", err)
		}
		env := decodeEnvelope(t, result)
		if env.Code != envelope.CodeSessionExpired {
			t.Errorf("code = %q, want %q", env.Code, envelope.CodeSessionExpired)
		}
	})
}

func TestHandleUploadList(t *testing.T) {
	ctx := context.Background()
	tk, _, store := newTestToolkit(t)
	seedLoggedIn(t, store, "h1")

	result, _, err := tk.handleUploadList(ctx, nil, uploadListInput{SessionHandle: "h1"})
	if err != nil {
		t.Fatalf("handleUploadList: %v", err)
	}
	env := decodeEnvelope(t, result)
	if env.Code != envelope.CodeOK {
		t.Fatalf("code = %q, want OK", env.Code)
	}
	uploadURL, _ := env.Data["upload_url"].(string)
	if !strings.Contains(uploadURL, "/uploadProductList?session_id=h1") {
		t.Errorf("upload_url = %q", uploadURL)
	}
}

func TestHandleCheckListStatus(t *testing.T) {
	ctx := context.Background()
	tk, fake, store := newTestToolkit(t)
	seedLoggedIn(t, store, "h1")
	fake.status = map[string]any{
		"progress":           80,
		"total_products":     50,
		"unmatched_products": 4,
	}

	result, _, err := tk.handleCheckListStatus(ctx, nil, checkListStatusInput{
		SessionHandle: "h1",
		ProductListID: "pl-1",
	})
	if err != nil {
		t.Fatalf("handleCheckListStatus: %v", err)
	}
	env := decodeEnvelope(t, result)
	if env.Code != envelope.CodeOK {
		t.Fatalf("code = %q, want OK", env.Code)
	}
	if fake.gotProductListID != "pl-1" {
		t.Errorf("product list id = %q", fake.gotProductListID)
	}
	if env.Data["progress"] != float64(80) {
		t.Errorf("progress = %v, want 80", env.Data["progress"])
	}
	if env.Data["unmatched_products"] != float64(4) {
		t.Errorf("unmatched_products = %v", env.Data["unmatched_products"])
	}
}

func TestHandleGetSDSRequest(t *testing.T) {
	ctx := context.Background()
	tk, fake, store := newTestToolkit(t)
	seedLoggedIn(t, store, "h1")
	next := "https://api.example.com/requests?page=2"
	fake.requests = &sdsapi.Paginated{
		Count: 12,
		Next:  &next,
		Results: []json.RawMessage{
			json.RawMessage(`{"id": 1, "product_name": "Acetone"}`),
		},
	}

	result, _, err := tk.handleGetSDSRequest(ctx, nil, getSDSRequestInput{
		SessionHandle: "h1",
		ProductListID: "pl-1",
		Search:        "acetone",
	})
	if err != nil {
		t.Fatalf("handleGetSDSRequest: %v", err)
	}
	env := decodeEnvelope(t, result)
	if env.Code != envelope.CodeOK {
		t.Fatalf("code = %q, want OK", env.Code)
	}
	if fake.gotSearch != "acetone" || fake.gotProductListID != "pl-1" {
		t.Errorf("search/list = %q/%q", fake.gotSearch, fake.gotProductListID)
	}
	if env.Data["count"] != float64(12) {
		t.Errorf("count = %v", env.Data["count"])
	}
	if env.Data["next_page"] != float64(2) {
		t.Errorf("next_page = %v, want 2", env.Data["next_page"])
	}
}

func TestHandleMatchSDSRequest(t *testing.T) {
	ctx := context.Background()
	tk, fake, store := newTestToolkit(t)
	seedLoggedIn(t, store, "h1")
	fake.matched = map[string]any{"id": 5, "status": "matched"}

	result, _, err := tk.handleMatchSDSRequest(ctx, nil, matchSDSRequestInput{
		SessionHandle: "h1",
		RequestID:     "r-5",
		SDSID:         "s-9",
	})
	if err != nil {
		t.Fatalf("handleMatchSDSRequest: %v", err)
	}
	env := decodeEnvelope(t, result)
	if env.Code != envelope.CodeOK {
		t.Fatalf("code = %q, want OK", env.Code)
	}
	if env.Data["status"] != "matched" {
		t.Errorf("status = %v", env.Data["status"])
	}
	if env.Data["session_handle"] != "h1" {
		t.Errorf("session_handle = %v", env.Data["session_handle"])
	}
}

func TestHandleListSummary(t *testing.T) {
	ctx := context.Background()
	tk, fake, store := newTestToolkit(t)
	seedLoggedIn(t, store, "h1")
	fake.summary = &sdsapi.Paginated{
		Count: 1,
		Results: []json.RawMessage{
			json.RawMessage(`{"product_name": "Acetone", "is_matched": true}`),
		},
	}

	result, _, err := tk.handleListSummary(ctx, nil, listSummaryInput{
		SessionHandle: "h1",
		ProductListID: "pl-1",
	})
	if err != nil {
		t.Fatalf("handleListSummary: %v", err)
	}
	env := decodeEnvelope(t, result)
	if env.Code != envelope.CodeOK {
		t.Fatalf("code = %q, want OK", env.Code)
	}
	if fake.gotProductListID != "pl-1" {
		t.Errorf("product list id = %q", fake.gotProductListID)
	}
}

func TestHandleGetUploadedList(t *testing.T) {
	ctx := context.Background()
	tk, fake, store := newTestToolkit(t)
	seedLoggedIn(t, store, "h1")
	fake.lists = &sdsapi.Paginated{Count: 0}

	result, _, err := tk.handleGetUploadedList(ctx, nil, getUploadedListInput{
		SessionHandle: "h1",
		SearchKeyword: "inventory",
	})
	if err != nil {
		t.Fatalf("handleGetUploadedList: %v", err)
	}
	env := decodeEnvelope(t, result)
	if env.Code != envelope.CodeOK {
		t.Fatalf("code = %q, want OK", env.Code)
	}
	if fake.gotSearch != "inventory" {
		t.Errorf("search = %q", fake.gotSearch)
	}
	if env.Data["count"] != float64(0) {
		t.Errorf("count = %v", env.Data["count"])
	}
}

func TestHandleCheckPDFStatus_UploadSessionExpired(t *testing.T) {
	ctx := context.Background()
	tk, _, store := newTestToolkit(t)
	seedLoggedIn(t, store, "h1")

	result, _, err := tk.handleCheckPDFStatus(ctx, nil, checkPDFStatusInput{
		SessionHandle: "h1",
		RequestID:     "unknown",
	})
	if err != nil {
		t.Fatalf("handleCheckPDFStatus: %v", err)
	}
	env := decodeEnvelope(t, result)
	if env.Code != envelope.CodeUploadSessionExpired {
		t.Errorf("code = %q, want %q", env.Code, envelope.CodeUploadSessionExpired)
	}
}
