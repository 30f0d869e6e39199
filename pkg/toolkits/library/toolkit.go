// Package library provides the SDS library toolkit: location hierarchy
// management, global-database search, customer inventory, and product
// lifecycle actions.
package library

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sdsmanager/mcp-sds-library/pkg/envelope"
	"github.com/sdsmanager/mcp-sds-library/pkg/registry"
	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
	"github.com/sdsmanager/mcp-sds-library/pkg/session"
)

const (
	productRecommendInstruction  = "Recommend user these next actions for the product (SDS assigned to a location): show_customer_product_detail, add_sds, move_sds, copy_sds_to_another_location, archive_sds"
	locationRecommendInstruction = "Recommend user these next actions for the location: add_location, add_sds, move_sds, copy_sds_to_another_location, archive_sds"
)

// api is the backend surface this toolkit calls.
type api interface {
	Locations(ctx context.Context, apiKey, name, id string) (json.RawMessage, error)
	AddLocation(ctx context.Context, apiKey, name, parentLocationID string) (map[string]any, error)
	SearchSDS(ctx context.Context, apiKey string, params sdsapi.SearchParams) (*sdsapi.Paginated, error)
	SDSDetail(ctx context.Context, apiKey, sdsID string) (map[string]any, error)
	CustomerProducts(ctx context.Context, apiKey string, params sdsapi.SearchParams) (*sdsapi.Paginated, error)
	ProductDetail(ctx context.Context, apiKey, productID string) (map[string]any, error)
	HazardousSubstances(ctx context.Context, apiKey, keyword string, page, pageSize int) (*sdsapi.Paginated, error)
	AddSubstance(ctx context.Context, apiKey, locationID, sdsID string) (map[string]any, error)
	MoveSubstance(ctx context.Context, apiKey, productID, locationID string) (map[string]any, error)
	CopySubstance(ctx context.Context, apiKey, productID, locationID string) (map[string]any, error)
	ArchiveSubstance(ctx context.Context, apiKey, productID string) (map[string]any, error)
	EditProductData(ctx context.Context, apiKey, productID string, fields map[string]any) (map[string]any, error)
}

// Toolkit implements the SDS library toolkit.
type Toolkit struct {
	name       string
	sessions   *session.Manager
	api        api
	classifier *envelope.Classifier
	logger     *slog.Logger
}

// New creates the library toolkit.
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

func (*Toolkit) Kind() string { return "library" }

func (t *Toolkit) Name() string { return t.name }

func (*Toolkit) Tools() []string {
	return []string{
		"get_locations",
		"add_location",
		"search_sds",
		"show_sds_detail",
		"get_customer_products",
		"show_customer_product_detail",
		"add_sds",
		"move_sds",
		"copy_sds_to_another_location",
		"archive_sds",
		"edit_product_data",
		"get_hazardous_sds_on_restricted_lists",
	}
}

func (*Toolkit) Close() error { return nil }

// RegisterTools registers all library tools with the MCP server.
func (t *Toolkit) RegisterTools(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{Name: "get_locations", Description: getLocationsDescription}, t.handleGetLocations)
	mcp.AddTool(s, &mcp.Tool{Name: "add_location", Description: addLocationDescription}, t.handleAddLocation)
	mcp.AddTool(s, &mcp.Tool{Name: "search_sds", Description: searchSDSDescription}, t.handleSearchSDS)
	mcp.AddTool(s, &mcp.Tool{Name: "show_sds_detail", Description: showSDSDetailDescription}, t.handleShowSDSDetail)
	mcp.AddTool(s, &mcp.Tool{Name: "get_customer_products", Description: getCustomerProductsDescription}, t.handleGetCustomerProducts)
	mcp.AddTool(s, &mcp.Tool{Name: "show_customer_product_detail", Description: showProductDetailDescription}, t.handleShowProductDetail)
	mcp.AddTool(s, &mcp.Tool{Name: "add_sds", Description: addSDSDescription}, t.handleAddSDS)
	mcp.AddTool(s, &mcp.Tool{Name: "move_sds", Description: moveSDSDescription}, t.handleMoveSDS)
	mcp.AddTool(s, &mcp.Tool{Name: "copy_sds_to_another_location", Description: copySDSDescription}, t.handleCopySDS)
	mcp.AddTool(s, &mcp.Tool{Name: "archive_sds", Description: archiveSDSDescription}, t.handleArchiveSDS)
	mcp.AddTool(s, &mcp.Tool{Name: "edit_product_data", Description: editProductDataDescription}, t.handleEditProductData)
	mcp.AddTool(s, &mcp.Tool{Name: "get_hazardous_sds_on_restricted_lists", Description: hazardousDescription}, t.handleHazardous)
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

// merged prepends session_handle to a backend response map.
func merged(handle string, payload map[string]any) map[string]any {
	data := map[string]any{"session_handle": handle}
	for k, v := range payload {
		data[k] = v
	}
	return data
}

type getLocationsInput struct {
	SessionHandle string `json:"session_handle"`
	LocationName  string `json:"location_name,omitempty"`
	LocationID    string `json:"location_id,omitempty"`
}

func (t *Toolkit) handleGetLocations(ctx context.Context, _ *mcp.CallToolRequest, input getLocationsInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	tree, err := t.api.Locations(ctx, sess.APIKey, input.LocationName, input.LocationID)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, map[string]any{"locations": tree},
		"Show locations tree",
		"If no locations are found, recommend user to add a new location",
		"If have locations, "+locationRecommendInstruction,
	).Result()
}

type addLocationInput struct {
	SessionHandle    string `json:"session_handle"`
	Name             string `json:"name"`
	ParentLocationID string `json:"parent_location_id,omitempty"`
}

func (t *Toolkit) handleAddLocation(ctx context.Context, _ *mcp.CallToolRequest, input addLocationInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	created, err := t.api.AddLocation(ctx, sess.APIKey, input.Name, input.ParentLocationID)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, merged(handle, created),
		"Show information",
		locationRecommendInstruction,
	).Result()
}

type searchSDSInput struct {
	SessionHandle string `json:"session_handle"`
	Keyword       string `json:"keyword"`
	Scope         string `json:"scope,omitempty"`
	Page          int    `json:"page,omitempty"`
	PageSize      int    `json:"page_size,omitempty"`
	LanguageCode  string `json:"language_code,omitempty"`
	RegionCode    string `json:"region_code,omitempty"`
	LocationID    string `json:"location_id,omitempty"`
}

func (t *Toolkit) handleSearchSDS(ctx context.Context, _ *mcp.CallToolRequest, input searchSDSInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	page, pageSize := pageDefaults(input.Page, input.PageSize)
	result, err := t.api.SearchSDS(ctx, sess.APIKey, sdsapi.SearchParams{
		Keyword:      input.Keyword,
		Page:         page,
		PageSize:     pageSize,
		LanguageCode: input.LanguageCode,
		RegionCode:   input.RegionCode,
		InUsedScope:  input.Scope == "in_used",
		LocationID:   input.LocationID,
	})
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	data := paginatedData(handle, result, page)
	data["page"] = page
	data["page_size"] = pageSize
	return envelope.Success(handle, envelope.CodeOK, data,
		"Display results in table",
		"If user find the SDS they want, recommend user these next actions: show_sds_detail, add_sds, match_sds_request (If user want to match the SDS to a SDS request)",
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

type showSDSDetailInput struct {
	SessionHandle string `json:"session_handle"`
	SDSID         string `json:"sds_id"`
}

func (t *Toolkit) handleShowSDSDetail(ctx context.Context, _ *mcp.CallToolRequest, input showSDSDetailInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	detail, err := t.api.SDSDetail(ctx, sess.APIKey, input.SDSID)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, detail,
		"Recommend user these next actions: add_sds, match_sds_request (If user want to match the SDS to a SDS request), search_sds (If user want to search for another SDS)",
	).Result()
}

type getCustomerProductsInput struct {
	SessionHandle string `json:"session_handle"`
	Keyword       string `json:"keyword,omitempty"`
	Page          int    `json:"page,omitempty"`
	PageSize      int    `json:"page_size,omitempty"`
	LanguageCode  string `json:"language_code,omitempty"`
	RegionCode    string `json:"region_code,omitempty"`
	LocationID    string `json:"location_id,omitempty"`
}

func (t *Toolkit) handleGetCustomerProducts(ctx context.Context, _ *mcp.CallToolRequest, input getCustomerProductsInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	page, pageSize := pageDefaults(input.Page, input.PageSize)
	result, err := t.api.CustomerProducts(ctx, sess.APIKey, sdsapi.SearchParams{
		Keyword:      input.Keyword,
		Page:         page,
		PageSize:     pageSize,
		LanguageCode: input.LanguageCode,
		RegionCode:   input.RegionCode,
		LocationID:   input.LocationID,
	})
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, paginatedData(handle, result, page),
		"show results to the user",
		"If no results are found, recommend user to search_sds tool for finding SDS on global database",
		"If have results, recommend user these next actions: show_customer_product_detail, move_sds, copy_sds, archive_sds",
	).Result()
}

type showProductDetailInput struct {
	SessionHandle string `json:"session_handle"`
	ProductID     string `json:"product_id"`
}

func (t *Toolkit) handleShowProductDetail(ctx context.Context, _ *mcp.CallToolRequest, input showProductDetailInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	detail, err := t.api.ProductDetail(ctx, sess.APIKey, input.ProductID)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, merged(handle, detail),
		"show information to the user",
		productRecommendInstruction,
	).Result()
}

type addSDSInput struct {
	SessionHandle string `json:"session_handle"`
	SDSID         string `json:"sds_id"`
	LocationID    string `json:"location_id"`
	DefaultRun    *bool  `json:"default_run,omitempty"`
}

func (t *Toolkit) handleAddSDS(ctx context.Context, _ *mcp.CallToolRequest, input addSDSInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	if defaultRun(input.DefaultRun) {
		return envelope.Success(handle, envelope.CodeNeedConfirmation, nil,
			"Ask user to confirm adding SDS (get detail via show_sds_detail tool) to location info (get detail via get_locations tool)",
			"If user confirmed correct, call this tool again with default_run=False",
		).Result()
	}

	created, err := t.api.AddSubstance(ctx, sess.APIKey, input.LocationID, input.SDSID)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, merged(handle, created),
		"Show information",
		productRecommendInstruction,
	).Result()
}

// defaultRun treats an omitted flag as true, so destructive actions always
// confirm unless explicitly released.
func defaultRun(flag *bool) bool {
	return flag == nil || *flag
}

type moveSDSInput struct {
	SessionHandle string `json:"session_handle"`
	ProductID     string `json:"product_id"`
	LocationID    string `json:"location_id"`
	DefaultRun    *bool  `json:"default_run,omitempty"`
}

func (t *Toolkit) handleMoveSDS(ctx context.Context, _ *mcp.CallToolRequest, input moveSDSInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	if defaultRun(input.DefaultRun) {
		return envelope.Success(handle, envelope.CodeNeedConfirmation, nil,
			"Ask user to confirm moving product (get detail via show_customer_product_detail tool) to location info (get detail via get_locations tool)",
			"If user confirmed correct, call this tool again with default_run=False",
		).Result()
	}

	moved, err := t.api.MoveSubstance(ctx, sess.APIKey, input.ProductID, input.LocationID)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, merged(handle, moved),
		"Show information",
		productRecommendInstruction,
	).Result()
}

type copySDSInput struct {
	SessionHandle string `json:"session_handle"`
	ProductID     string `json:"product_id"`
	LocationID    string `json:"location_id"`
	DefaultRun    *bool  `json:"default_run,omitempty"`
}

func (t *Toolkit) handleCopySDS(ctx context.Context, _ *mcp.CallToolRequest, input copySDSInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	if defaultRun(input.DefaultRun) {
		return envelope.Success(handle, envelope.CodeNeedConfirmation, nil,
			"Ask user to confirm copying product (get detail via show_customer_product_detail tool) to location info (get detail via get_locations tool)",
			"If user confirmed correct, call this tool again with default_run=False",
		).Result()
	}

	copied, err := t.api.CopySubstance(ctx, sess.APIKey, input.ProductID, input.LocationID)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, merged(handle, copied),
		"Show information",
		productRecommendInstruction,
	).Result()
}

type archiveSDSInput struct {
	SessionHandle string `json:"session_handle"`
	ProductID     string `json:"product_id"`
	DefaultRun    *bool  `json:"default_run,omitempty"`
}

func (t *Toolkit) handleArchiveSDS(ctx context.Context, _ *mcp.CallToolRequest, input archiveSDSInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	if defaultRun(input.DefaultRun) {
		return envelope.Success(handle, envelope.CodeNeedConfirmation, nil,
			"Ask user to confirm archiving product (get detail via show_customer_product_detail tool)",
			"If user confirmed correct, call this tool again with default_run=False",
		).Result()
	}

	archived, err := t.api.ArchiveSubstance(ctx, sess.APIKey, input.ProductID)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, merged(handle, archived),
		"Show information",
		productRecommendInstruction,
	).Result()
}

type editProductDataInput struct {
	SessionHandle        string  `json:"session_handle"`
	ProductID            string  `json:"product_id"`
	SDSPDFProductName    *string `json:"sds_pdf_product_name,omitempty"`
	ChemicalNameSynonyms *string `json:"chemical_name_synonyms,omitempty"`
	ExternalSystemID     *string `json:"external_system_id,omitempty"`
}

func (t *Toolkit) handleEditProductData(ctx context.Context, _ *mcp.CallToolRequest, input editProductDataInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	// An explicit empty string clears a field, so absence must be
	// distinguished from "".
	fields := map[string]any{}
	if input.SDSPDFProductName != nil {
		fields["sds_pdf_product_name"] = *input.SDSPDFProductName
	}
	if input.ChemicalNameSynonyms != nil {
		fields["chemical_name_synonyms"] = *input.ChemicalNameSynonyms
	}
	if input.ExternalSystemID != nil {
		fields["external_system_id"] = *input.ExternalSystemID
	}
	if len(fields) == 0 {
		return envelope.Error(handle, envelope.CodeMissingRequiredParameters, nil,
			"At least one field must be provided for update",
		).Result()
	}

	if _, err := t.api.EditProductData(ctx, sess.APIKey, input.ProductID, fields); err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	return envelope.Success(handle, envelope.CodeOK, nil,
		"Immediately call tool `show_customer_product_detail` with the same "+
			"`session_handle="+handle+"` and `product_id="+input.ProductID+"` to verify the update. "+
			"Compare the returned record against the submitted payload to confirm: "+
			"`sds_pdf_product_name` matches the new value (and is removed if empty string was sent). "+
			"`chemical_name_synonyms` matches the new value (and is removed if empty string was sent). "+
			"`external_system_id` matches the new value (and is removed if empty string was sent). "+
			"If the values match, tell the user: 'Update verified in customer library.' "+
			"If any mismatch is found, report which fields differ and suggest retrying the edit.",
	).Result()
}

type hazardousInput struct {
	SessionHandle string `json:"session_handle"`
	Keyword       string `json:"keyword,omitempty"`
	Page          int    `json:"page,omitempty"`
	PageSize      int    `json:"page_size,omitempty"`
}

func (t *Toolkit) handleHazardous(ctx context.Context, _ *mcp.CallToolRequest, input hazardousInput) (*mcp.CallToolResult, any, error) {
	handle := input.SessionHandle
	sess, fail := t.validate(ctx, handle)
	if fail != nil {
		return fail.Result()
	}

	page, pageSize := pageDefaults(input.Page, input.PageSize)
	result, err := t.api.HazardousSubstances(ctx, sess.APIKey, input.Keyword, page, pageSize)
	if err != nil {
		return t.classifier.Classify(ctx, handle, err).Result()
	}

	substances := make([]map[string]any, 0, len(result.Results))
	for _, raw := range result.Results {
		var substance map[string]any
		if err := json.Unmarshal(raw, &substance); err != nil {
			t.logger.Warn("skipping unreadable hazardous substance record", "error", err)
			continue
		}
		substances = append(substances, projectHazardous(substance))
	}

	return envelope.Success(handle, envelope.CodeOK, map[string]any{
		"session_handle": handle,
		"results":        substances,
		"page":           page,
		"page_size":      pageSize,
	},
		"Display detailed information on restricted ingredients/components in results",
		"Highlight which specific regulations each ingredient violates",
		"If no results are found, recommend user to search_sds tool for finding SDS on global database",
		"If have results, recommend user these next actions: show_customer_product_detail, move_sds, copy_sds, archive_sds",
	).Result()
}

// projectHazardous flattens a substance record to the hazardous-list row,
// lifting components and regulations out of the nested sds_info.
func projectHazardous(substance map[string]any) map[string]any {
	components := []any{}
	regulations := []any{}
	if sdsInfo, ok := substance["sds_info"].(map[string]any); ok {
		if chems, ok := sdsInfo["sds_chemical"].([]any); ok {
			components = chems
		}
		if regs, ok := sdsInfo["regulations"].([]any); ok {
			regulations = regs
		}
	}
	return map[string]any{
		"product_name":        substance["product_name"],
		"product_code":        substance["product_code"],
		"supplier_name":       substance["supplier_name"],
		"revision_date":       substance["revision_date"],
		"location":            substance["location"],
		"components":          components,
		"matched_regulations": regulations,
	}
}

var _ registry.Toolkit = (*Toolkit)(nil)

var _ api = (*sdsapi.Client)(nil)
