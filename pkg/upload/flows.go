package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sdsmanager/mcp-sds-library/pkg/envelope"
	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
)

// pdfStepInstructions walk the user through the browser-side PDF upload.
var pdfStepInstructions = []string{
	"1. Click or copy the upload_url link to access the upload form",
	"2. Select your PDF file using the file input and click 'Upload SDS File' to upload",
	"3. After the file is uploaded, call check_upload_sds_pdf_status tool with request_id to check the status of the upload process",
}

// listStepInstructions walk the user through the browser-side Excel upload.
var listStepInstructions = []string{
	"1. Click or copy the upload_url link to access the upload form",
	"2. Select your excel file using the file input and click 'Upload Product List' to upload",
	"3. After the file is uploaded, call validate_upload_product_list_excel_data tool with request_id to continue the upload process",
}

// backend is the subset of the API client the flows call.
type backend interface {
	UploadSDSFromURL(ctx context.Context, apiKey, locationID, requestID, sdsURL string) (*sdsapi.ExtractionStatus, error)
	GetExtractionStatus(ctx context.Context, apiKey, requestID string) (*sdsapi.ExtractionStatus, error)
	UploadProductList(ctx context.Context, apiKey, fileName string, file io.Reader, extracted string, autoMatch bool) (*sdsapi.ImportResult, error)
}

// classifier turns backend call failures into error envelopes.
type classifier interface {
	Classify(ctx context.Context, handle string, err error) envelope.Envelope
}

// store is the cache surface the flows need.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Flows owns both upload state machines.
type Flows struct {
	store      store
	backend    backend
	classifier classifier
	domain     string
	logger     *slog.Logger

	// newRequestID is swapped in tests for deterministic ids.
	newRequestID func() string
}

// NewFlows wires the upload flows. domain is the portal base URL the upload
// forms live on.
func NewFlows(st store, be backend, cl classifier, domain string, logger *slog.Logger) *Flows {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flows{
		store:        st,
		backend:      be,
		classifier:   cl,
		domain:       domain,
		logger:       logger,
		newRequestID: newUUID,
	}
}

// PDFUploadURL returns the browser upload form link for a PDF upload.
func (f *Flows) PDFUploadURL(handle, locationID, requestID string) string {
	return fmt.Sprintf("%s/upload?session_id=%s&department_id=%s&request_id=%s",
		f.domain, handle, locationID, requestID)
}

// ListUploadURL returns the browser upload form link for a product list.
func (f *Flows) ListUploadURL(handle, requestID string) string {
	return fmt.Sprintf("%s/uploadProductList?session_id=%s&request_id=%s",
		f.domain, handle, requestID)
}

// storeErr logs a cache write failure and converts it to a server error
// envelope so the tool never panics on infrastructure trouble.
func (f *Flows) storeErr(handle string, err error) envelope.Envelope {
	f.logger.Error("writing upload record", "session_handle", handle, "error", err)
	return envelope.ServerError(handle, 0, err.Error())
}

func newUUID() string {
	return uuid.NewString()
}

// marshalRaw snapshots a backend payload for the cache record. An
// unmarshalable payload is dropped rather than failing the flow.
func marshalRaw(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// mergeData copies the JSON fields of payload on top of base, overwriting
// base keys on collision.
func mergeData(base map[string]any, payload any) map[string]any {
	if payload == nil {
		return base
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return base
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return base
	}
	for k, v := range fields {
		base[k] = v
	}
	return base
}
