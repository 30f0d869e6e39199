package sdsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// CurrentUser resolves the profile behind a credential. It backs the identity
// check during login.
func (c *Client) CurrentUser(ctx context.Context, apiKey string) (*UserProfile, error) {
	var profile UserProfile
	if err := c.get(ctx, "/user/", apiKey, c.crudTimeout, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Permissions returns the general permission keys granted to the user.
func (c *Client) Permissions(ctx context.Context, apiKey string) ([]string, error) {
	var keys []string
	if err := c.get(ctx, "/user/permissions/", apiKey, c.timeout, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// LocationPermissions returns the permission keys for a specific location.
func (c *Client) LocationPermissions(ctx context.Context, apiKey, locationID string) ([]string, error) {
	var keys []string
	path := fmt.Sprintf("/location/%s/permissions/", url.PathEscape(locationID))
	if err := c.get(ctx, path, apiKey, c.timeout, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// Limits returns the usage limits for the user's subscription.
func (c *Client) Limits(ctx context.Context, apiKey string) (map[string]any, error) {
	var limits map[string]any
	if err := c.get(ctx, "/user/limits/", apiKey, c.timeout, &limits); err != nil {
		return nil, err
	}
	return limits, nil
}

// Locations returns the location tree, optionally filtered by name or id.
func (c *Client) Locations(ctx context.Context, apiKey, name, id string) (json.RawMessage, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if id != "" {
		q.Set("id", id)
	}
	path := "/location/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var tree json.RawMessage
	if err := c.get(ctx, path, apiKey, c.crudTimeout, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// AddLocation creates a location. A nil parent creates a root location.
func (c *Client) AddLocation(ctx context.Context, apiKey, name, parentLocationID string) (map[string]any, error) {
	body := map[string]any{"name": name}
	if parentLocationID != "" {
		body["parent_department_id"] = parentLocationID
	} else {
		body["parent_department_id"] = nil
	}

	var created map[string]any
	if err := c.post(ctx, "/location/", apiKey, body, c.crudTimeout, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// SearchParams filter a global-database or library search.
type SearchParams struct {
	Keyword      string
	Page         int
	PageSize     int
	LanguageCode string
	RegionCode   string
	InUsedScope  bool
	LocationID   string
}

func (p SearchParams) query() url.Values {
	q := url.Values{}
	q.Set("search", p.Keyword)
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	if p.LanguageCode != "" {
		q.Set("language_code", p.LanguageCode)
	}
	if p.RegionCode != "" {
		q.Set("region", strings.ToUpper(p.RegionCode))
	}
	if p.InUsedScope {
		q.Set("scope", "in_used")
		if p.LocationID != "" {
			q.Set("department_id", p.LocationID)
		}
	}
	return q
}

// SearchSDS searches the global SDS database (or the customer library with
// the in_used scope).
func (c *Client) SearchSDS(ctx context.Context, apiKey string, params SearchParams) (*Paginated, error) {
	var page Paginated
	if err := c.get(ctx, "/pdfs/?"+params.query().Encode(), apiKey, c.crudTimeout, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SDSDetail returns the full record for one global-database SDS.
func (c *Client) SDSDetail(ctx context.Context, apiKey, sdsID string) (map[string]any, error) {
	var detail map[string]any
	path := fmt.Sprintf("/pdfs/%s/", url.PathEscape(sdsID))
	if err := c.get(ctx, path, apiKey, c.crudTimeout, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// CustomerProducts lists SDSs assigned to the customer's locations.
func (c *Client) CustomerProducts(ctx context.Context, apiKey string, params SearchParams) (*Paginated, error) {
	q := params.query()
	q.Del("scope")
	if params.LocationID != "" {
		q.Set("department_id", params.LocationID)
	}

	var page Paginated
	if err := c.get(ctx, "/substance/?"+q.Encode(), apiKey, c.crudTimeout, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ProductDetail returns one customer product.
func (c *Client) ProductDetail(ctx context.Context, apiKey, productID string) (map[string]any, error) {
	var detail map[string]any
	path := fmt.Sprintf("/substance/%s/", url.PathEscape(productID))
	if err := c.get(ctx, path, apiKey, c.crudTimeout, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// HazardousSubstances lists hazardous products with ingredients on
// restricted lists.
func (c *Client) HazardousSubstances(ctx context.Context, apiKey, keyword string, page, pageSize int) (*Paginated, error) {
	q := url.Values{}
	q.Set("hazardous", "true")
	q.Set("search", keyword)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var result Paginated
	if err := c.get(ctx, "/substance/?"+q.Encode(), apiKey, c.crudTimeout, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddSubstance assigns a global-database SDS to a location.
func (c *Client) AddSubstance(ctx context.Context, apiKey, locationID, sdsID string) (map[string]any, error) {
	var created map[string]any
	path := fmt.Sprintf("/location/%s/addSDS/", url.PathEscape(locationID))
	if err := c.post(ctx, path, apiKey, map[string]any{"sds_id": sdsID}, c.crudTimeout, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// MoveSubstance moves a product to another location.
func (c *Client) MoveSubstance(ctx context.Context, apiKey, productID, locationID string) (map[string]any, error) {
	return c.substanceAction(ctx, apiKey, productID, "move", map[string]any{"department_id": locationID})
}

// CopySubstance copies a product to another location.
func (c *Client) CopySubstance(ctx context.Context, apiKey, productID, locationID string) (map[string]any, error) {
	return c.substanceAction(ctx, apiKey, productID, "copy", map[string]any{"department_id": locationID})
}

// ArchiveSubstance archives a product.
func (c *Client) ArchiveSubstance(ctx context.Context, apiKey, productID string) (map[string]any, error) {
	return c.substanceAction(ctx, apiKey, productID, "archive", nil)
}

func (c *Client) substanceAction(ctx context.Context, apiKey, productID, action string, body any) (map[string]any, error) {
	var result map[string]any
	path := fmt.Sprintf("/substance/%s/%s/", url.PathEscape(productID), action)
	if err := c.post(ctx, path, apiKey, body, c.crudTimeout, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// EditProductData updates product fields.
func (c *Client) EditProductData(ctx context.Context, apiKey, productID string, fields map[string]any) (map[string]any, error) {
	var updated map[string]any
	path := fmt.Sprintf("/substance/%s/updateSDS/", url.PathEscape(productID))
	if err := c.patch(ctx, path, apiKey, fields, c.crudTimeout, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// UploadSDSFromURL asks the backend to fetch and ingest an SDS PDF by URL.
// The request id scopes the extraction job for later status polls.
func (c *Client) UploadSDSFromURL(ctx context.Context, apiKey, locationID, requestID, sdsURL string) (*ExtractionStatus, error) {
	body := map[string]any{"id": requestID, "sds_url": sdsURL}
	path := fmt.Sprintf("/location/%s/uploadSDSFromUrl/", url.PathEscape(locationID))

	var status ExtractionStatus
	if err := c.post(ctx, path, apiKey, body, c.timeout, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetExtractionStatus polls the extraction job for an uploaded SDS PDF.
func (c *Client) GetExtractionStatus(ctx context.Context, apiKey, requestID string) (*ExtractionStatus, error) {
	var status ExtractionStatus
	path := "/binder/getExtractionStatus/?id=" + url.QueryEscape(requestID)
	if err := c.get(ctx, path, apiKey, c.timeout, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// UploadProductList submits the product-list file together with the
// serialized extracted rows and the auto-match flag.
func (c *Client) UploadProductList(ctx context.Context, apiKey, fileName string, file io.Reader, extracted string, autoMatch bool) (*ImportResult, error) {
	fields := map[string]string{
		"extracted":  extracted,
		"auto_match": strconv.FormatBool(autoMatch),
	}

	var result ImportResult
	if err := c.postMultipart(ctx, "/substance/uploadProductList/", apiKey, fileName, file, fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetImportStatus polls the product-list import job.
func (c *Client) GetImportStatus(ctx context.Context, apiKey, productListID string) (map[string]any, error) {
	var status map[string]any
	path := "/binder/getImportProductListStatus/?id=" + url.QueryEscape(productListID)
	if err := c.get(ctx, path, apiKey, c.timeout, &status); err != nil {
		return nil, err
	}
	return status, nil
}

// SDSRequests lists unmatched import rows, optionally filtered by search
// term or import job.
func (c *Client) SDSRequests(ctx context.Context, apiKey, search, productListID string, page, pageSize int) (*Paginated, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	if search != "" {
		q.Set("search", search)
	}
	if productListID != "" {
		q.Set("wish_list_id", productListID)
	}

	var result Paginated
	if err := c.get(ctx, "/substance/sdsRequests?"+q.Encode(), apiKey, c.timeout, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MatchSDSRequest links an unmatched import row to a global-database SDS.
func (c *Client) MatchSDSRequest(ctx context.Context, apiKey, requestID, sdsID string, useSDSData bool) (map[string]any, error) {
	body := map[string]any{"sds_id": sdsID, "use_sds_data": useSDSData}
	path := fmt.Sprintf("/substance/%s/matchSdsRequest/", url.PathEscape(requestID))

	var result map[string]any
	if err := c.post(ctx, path, apiKey, body, c.crudTimeout, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ProductLists lists the import jobs created from uploaded spreadsheets.
func (c *Client) ProductLists(ctx context.Context, apiKey, search string, page, pageSize int) (*Paginated, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	if search != "" {
		q.Set("search", search)
	}

	var result Paginated
	if err := c.get(ctx, "/binder/importProductList/?"+q.Encode(), apiKey, c.timeout, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ProductListSummary returns the match/unmatch summary for one import job.
func (c *Client) ProductListSummary(ctx context.Context, apiKey, productListID string, page, pageSize int) (*Paginated, error) {
	q := url.Values{}
	q.Set("wish_list_id", productListID)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var summary Paginated
	if err := c.get(ctx, "/binder/importProductListSummary/?"+q.Encode(), apiKey, c.timeout, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
