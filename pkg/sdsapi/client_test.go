package sdsapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "key-123"

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestCurrentUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/", r.URL.Path)
		assert.Equal(t, testKey, r.Header.Get("X-MCP-API-KEY"))
		_, _ = w.Write([]byte(`{"id":7,"email":"a@b.c","first_name":"Ada","last_name":"Lovelace"}`))
	}))

	profile, err := client.CurrentUser(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, 7, profile.ID)
	assert.Equal(t, "a@b.c", profile.Email)
	assert.Equal(t, "Ada", profile.FirstName)
}

func TestAPIError_ParsedBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_code":"API_KEY_NOT_ACTIVE","error_message":"key is not active"}`))
	}))

	_, err := client.CurrentUser(context.Background(), testKey)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "API_KEY_NOT_ACTIVE", apiErr.ErrorCode)
	assert.Equal(t, "key is not active", apiErr.ErrorMessage)
}

func TestAPIError_UnparseableBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))

	_, err := client.Limits(context.Background(), testKey)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.ErrorCode)
	assert.Equal(t, "boom", apiErr.Body)
}

func TestTransportError_NotAPIError(t *testing.T) {
	client, err := New(Config{BaseURL: "http://127.0.0.1:1", CRUDTimeout: 200 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.CurrentUser(context.Background(), testKey)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestUploadSDSFromURL(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/location/42/uploadSDSFromUrl/", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"id":"req-1","sds_url":"https://pdf.example.com/x.pdf"}`, string(body))
		_, _ = w.Write([]byte(`{"request_id":"req-1","step":"queued","progress":0,"init_time":"now","email":"a@b.c"}`))
	}))

	status, err := client.UploadSDSFromURL(context.Background(), testKey, "42", "req-1", "https://pdf.example.com/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, 0, status.Progress)
	assert.Equal(t, "req-1", status.RequestID)
}

func TestGetExtractionStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/binder/getExtractionStatus/", r.URL.Path)
		assert.Equal(t, "req-9", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"request_id":"req-9","step":"extract","progress":55,"init_time":"t","email":"a@b.c"}`))
	}))

	status, err := client.GetExtractionStatus(context.Background(), testKey, "req-9")
	require.NoError(t, err)
	assert.Equal(t, 55, status.Progress)
}

func TestUploadProductList_Multipart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/substance/uploadProductList/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "true", r.FormValue("auto_match"))
		assert.Equal(t, `[{"PRODUCT_NAME":"Acetone"}]`, r.FormValue("extracted"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "products.xlsx", header.Filename)
		content, _ := io.ReadAll(file)
		assert.Equal(t, "file-bytes", string(content))

		_, _ = w.Write([]byte(`{"file_name":"products.xlsx","file_path":"/srv/uploads/p.xlsx","product_list_id":"pl-5"}`))
	}))

	result, err := client.UploadProductList(context.Background(), testKey, "products.xlsx",
		strings.NewReader("file-bytes"), `[{"PRODUCT_NAME":"Acetone"}]`, true)
	require.NoError(t, err)
	assert.Equal(t, "pl-5", result.ProductListID)
}

func TestSDSRequests_Query(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/substance/sdsRequests", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "acetone", q.Get("search"))
		assert.Equal(t, "pl-5", q.Get("wish_list_id"))
		assert.Equal(t, "2", q.Get("page"))
		_, _ = w.Write([]byte(`{"count":1,"results":[{"id":3}]}`))
	}))

	page, err := client.SDSRequests(context.Background(), testKey, "acetone", "pl-5", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	require.Len(t, page.Results, 1)
}

func TestSearchSDS_ScopeParams(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "in_used", q.Get("scope"))
		assert.Equal(t, "42", q.Get("department_id"))
		assert.Equal(t, "EU", q.Get("region"))
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	}))

	_, err := client.SearchSDS(context.Background(), testKey, SearchParams{
		Keyword:     "acetone",
		Page:        1,
		PageSize:    10,
		RegionCode:  "eu",
		InUsedScope: true,
		LocationID:  "42",
	})
	require.NoError(t, err)
}
