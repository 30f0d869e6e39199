// Package imports provides the bulk-import toolkit: SDS PDF uploads, Excel
// product-list imports, and SDS-request matching.
package imports

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sdsmanager/mcp-sds-library/pkg/envelope"
	"github.com/sdsmanager/mcp-sds-library/pkg/registry"
	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
	"github.com/sdsmanager/mcp-sds-library/pkg/session"
	"github.com/sdsmanager/mcp-sds-library/pkg/upload"
)

// api is the backend surface this toolkit calls directly. The upload flows
// carry their own backend handle.
type api interface {
	GetImportStatus(ctx context.Context, apiKey, productListID string) (map[string]any, error)
	SDSRequests(ctx context.Context, apiKey, search, productListID string, page, pageSize int) (*sdsapi.Paginated, error)
	MatchSDSRequest(ctx context.Context, apiKey, requestID, sdsID string, useSDSData bool) (map[string]any, error)
	ProductLists(ctx context.Context, apiKey, search string, page, pageSize int) (*sdsapi.Paginated, error)
	ProductListSummary(ctx context.Context, apiKey, productListID string, page, pageSize int) (*sdsapi.Paginated, error)
}

// Toolkit implements the imports toolkit.
type Toolkit struct {
	name       string
	sessions   *session.Manager
	api        api
	flows      *upload.Flows
	classifier *envelope.Classifier
	logger     *slog.Logger
}

// New creates the imports toolkit.
func New(name string, sessions *session.Manager, backend api, flows *upload.Flows, classifier *envelope.Classifier, logger *slog.Logger) *Toolkit {
	if logger == nil {
		logger = slog.Default()
	}
	return &Toolkit{
		name:       name,
		sessions:   sessions,
		api:        backend,
		flows:      flows,
		classifier: classifier,
		logger:     logger,
	}
}

func (*Toolkit) Kind() string { return "imports" }

func (t *Toolkit) Name() string { return t.name }

func (*Toolkit) Tools() []string {
	return []string{
		"add_sds_by_uploading_sds_pdf_file",
		"add_sds_by_url",
		"check_upload_sds_pdf_status",
		"upload_product_list_excel_file",
		"validate_upload_product_list_excel_data",
		"process_upload_product_list_excel_data",
		"check_upload_product_list_excel_data_status",
		"get_sds_request",
		"match_sds_request",
		"get_uploaded_product_list",
		"get_product_list_summary",
	}
}

func (*Toolkit) Close() error { return nil }

// RegisterTools registers all import tools with the MCP server.
func (t *Toolkit) RegisterTools(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{Name: "add_sds_by_uploading_sds_pdf_file", Description: uploadPDFDescription}, t.handleUploadPDF)
	mcp.AddTool(s, &mcp.Tool{Name: "add_sds_by_url", Description: addSDSByURLDescription}, t.handleAddSDSByURL)
	mcp.AddTool(s, &mcp.Tool{Name: "check_upload_sds_pdf_status", Description: checkPDFStatusDescription}, t.handleCheckPDFStatus)
	mcp.AddTool(s, &mcp.Tool{Name: "upload_product_list_excel_file", Description: uploadListDescription}, t.handleUploadList)
	mcp.AddTool(s, &mcp.Tool{Name: "validate_upload_product_list_excel_data", Description: validateListDescription}, t.handleValidateList)
	mcp.AddTool(s, &mcp.Tool{Name: "process_upload_product_list_excel_data", Description: processListDescription}, t.handleProcessList)
	mcp.AddTool(s, &mcp.Tool{Name: "check_upload_product_list_excel_data_status", Description: checkListStatusDescription}, t.handleCheckListStatus)
	mcp.AddTool(s, &mcp.Tool{Name: "get_sds_request", Description: getSDSRequestDescription}, t.handleGetSDSRequest)
	mcp.AddTool(s, &mcp.Tool{Name: "match_sds_request", Description: matchSDSRequestDescription}, t.handleMatchSDSRequest)
	mcp.AddTool(s, &mcp.Tool{Name: "get_uploaded_product_list", Description: getUploadedListDescription}, t.handleGetUploadedList)
	mcp.AddTool(s, &mcp.Tool{Name: "get_product_list_summary", Description: listSummaryDescription}, t.handleListSummary)
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

type uploadPDFInput struct {
	SessionHandle string `json:"session_handle"`
	LocationID    string `json:"location_id"`
}

func (t *Toolkit) handleUploadPDF(ctx context.Context, _ *mcp.CallToolRequest, input uploadPDFInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	if _, fail := t.validate(ctx, handle); fail != nil {
		return fail.Result()
	}
	return t.flows.StartPDF(ctx, handle, input.LocationID).Result()
}

type addSDSByURLInput struct {
	SessionHandle string `json:"session_handle"`
	URL           string `json:"url"`
	LocationID    string `json:"location_id"`
}

func (t *Toolkit) handleAddSDSByURL(ctx context.Context, _ *mcp.CallToolRequest, input addSDSByURLInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}
	return t.flows.StartPDFFromURL(ctx, handle, sess.APIKey, input.LocationID, input.URL).Result()
}

type checkPDFStatusInput struct {
	SessionHandle string `json:"session_handle"`
	RequestID     string `json:"request_id"`
}

func (t *Toolkit) handleCheckPDFStatus(ctx context.Context, _ *mcp.CallToolRequest, input checkPDFStatusInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}
	return t.flows.CheckPDF(ctx, handle, sess.APIKey, input.RequestID).Result()
}

type uploadListInput struct {
	SessionHandle string `json:"session_handle"`
}

func (t *Toolkit) handleUploadList(ctx context.Context, _ *mcp.CallToolRequest, input uploadListInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	if _, fail := t.validate(ctx, handle); fail != nil {
		return fail.Result()
	}
	return t.flows.StartList(ctx, handle).Result()
}

type validateListInput struct {
	SessionHandle string `json:"session_handle"`
	RequestID     string `json:"request_id"`
}

func (t *Toolkit) handleValidateList(ctx context.Context, _ *mcp.CallToolRequest, input validateListInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	if _, fail := t.validate(ctx, handle); fail != nil {
		return fail.Result()
	}
	return t.flows.ValidateList(ctx, handle, input.RequestID).Result()
}

type processListInput struct {
	SessionHandle    string            `json:"session_handle"`
	RequestID        string            `json:"request_id"`
	MappedData       map[string]string `json:"mapped_data"`
	AutoMatchProduct bool              `json:"auto_match_product"`
}

func (t *Toolkit) handleProcessList(ctx context.Context, _ *mcp.CallToolRequest, input processListInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}
	return t.flows.ProcessList(ctx, handle, sess.APIKey, input.RequestID, input.MappedData, input.AutoMatchProduct).Result()
}

type checkListStatusInput struct {
	SessionHandle string `json:"session_handle"`
	ProductListID string `json:"product_list_id"`
}

func (t *Toolkit) handleCheckListStatus(ctx context.Context, _ *mcp.CallToolRequest, input checkListStatusInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	status, err := t.api.GetImportStatus(ctx, sess.APIKey, input.ProductListID)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	data := map[string]any{
		"session_handle": handle,
		"progress":       status["progress"],
	}
	for k, v := range status {
		data[k] = v
	}
	return envelope.Success(handle, envelope.CodeOK, data,
		"Show information for current progress in data",
		"If progress is not finished, call check_upload_product_list_excel_data_status tool with product_list_id again.",
		"If progress is finished and there are unmatched products, suggest user to list them by calling get_sds_request tool with product_list_id from data.",
	).Result()
}

type getSDSRequestInput struct {
	SessionHandle string `json:"session_handle"`
	Search        string `json:"search,omitempty"`
	ProductListID string `json:"product_list_id,omitempty"`
	Page          int    `json:"page,omitempty"`
	PageSize      int    `json:"page_size,omitempty"`
}

func (t *Toolkit) handleGetSDSRequest(ctx context.Context, _ *mcp.CallToolRequest, input getSDSRequestInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	page, pageSize := pageDefaults(input.Page, input.PageSize)
	result, err := t.api.SDSRequests(ctx, sess.APIKey, input.Search, input.ProductListID, page, pageSize)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, paginatedData(handle, result, page),
		"Display results in table",
		"If no results are found, suggest user to upload_product_list_excel_file tool for uploading another product list, get_uploaded_product_list or get_product_list_summary tool for getting summary of the product list",
		"If have results, suggest user these next actions: search_sds tool for finding SDS on global database, match_sds_request tool for matching SDS to the product request",
	).Result()
}

type matchSDSRequestInput struct {
	SessionHandle string `json:"session_handle"`
	RequestID     string `json:"request_id"`
	SDSID         string `json:"sds_id"`
	UseSDSData    bool   `json:"use_sds_data"`
}

func (t *Toolkit) handleMatchSDSRequest(ctx context.Context, _ *mcp.CallToolRequest, input matchSDSRequestInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	matched, err := t.api.MatchSDSRequest(ctx, sess.APIKey, input.RequestID, input.SDSID, input.UseSDSData)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	data := map[string]any{"session_handle": handle}
	for k, v := range matched {
		data[k] = v
	}
	return envelope.Success(handle, envelope.CodeOK, data,
		"Show information",
		"Recommend these next actions: get_sds_request (For continue matching SDS to the product request), show_customer_product_detail (For showing the product information), copy_sds_to_another_location (For copying the SDS to another location), archive_sds (For archiving the SDS)",
	).Result()
}

type getUploadedListInput struct {
	SessionHandle string `json:"session_handle"`
	SearchKeyword string `json:"search_keyword,omitempty"`
	Page          int    `json:"page,omitempty"`
	PageSize      int    `json:"page_size,omitempty"`
}

func (t *Toolkit) handleGetUploadedList(ctx context.Context, _ *mcp.CallToolRequest, input getUploadedListInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	page, pageSize := pageDefaults(input.Page, input.PageSize)
	result, err := t.api.ProductLists(ctx, sess.APIKey, input.SearchKeyword, page, pageSize)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, paginatedData(handle, result, page),
		"Show list of all product lists imported from the Excel files",
		"Recommend user to manage product lists with these actions: get_product_list_summary, get_sds_request tools",
	).Result()
}

type listSummaryInput struct {
	SessionHandle string `json:"session_handle"`
	ProductListID string `json:"product_list_id"`
	Page          int    `json:"page,omitempty"`
	PageSize      int    `json:"page_size,omitempty"`
}

func (t *Toolkit) handleListSummary(ctx context.Context, _ *mcp.CallToolRequest, input listSummaryInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	page, pageSize := pageDefaults(input.Page, input.PageSize)
	result, err := t.api.ProductListSummary(ctx, sess.APIKey, input.ProductListID, page, pageSize)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, paginatedData(handle, result, page),
		"Show summary of the products/requests imported from the Excel file",
		"If have unmatched products/requests, suggest user to match them with the global database by calling match_sds_request with search_sds tool",
		"If have matched products/requests, suggest user to manage them with these actions: show_customer_product_detail, add_sds, move_sds, copy_sds_to_another_location, archive_sds tools",
	).Result()
}

// paginatedData converts a backend page to the wire data shape. next_page
// and previous_page are page numbers, not URLs.
func paginatedData(handle string, result *sdsapi.Paginated, page int) map[string]any {
	var nextPage, previousPage any
	if result.Next != nil {
		nextPage = page + 1
	}
	if result.Previous != nil {
		previousPage = page - 1
	}
	return map[string]any{
		"session_handle": handle,
		"results":        result.Results,
		"count":          result.Count,
		"next_page":      nextPage,
		"previous_page":  previousPage,
	}
}

func pageDefaults(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}

var _ registry.Toolkit = (*Toolkit)(nil)

var _ api = (*sdsapi.Client)(nil)
