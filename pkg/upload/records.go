// Package upload drives the two cache-backed upload flows: single SDS PDF
// uploads and bulk product-list Excel imports. Each flow keeps its state in
// a cache record keyed by session handle and request id; the browser-side
// upload form advances the record out-of-band, and the tools here observe
// and progress it. Anomalous states reset the record to inited rather than
// attempting repair.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
)

// PDFStatus is the state of a single-PDF upload.
type PDFStatus string

const (
	PDFInited     PDFStatus = "inited"
	PDFUploaded   PDFStatus = "uploaded"
	PDFExtracting PDFStatus = "extracting"
	PDFFinished   PDFStatus = "finished"
	PDFError      PDFStatus = "error"
)

// PDFRecord is the cached state of a single-PDF upload.
type PDFRecord struct {
	SessionID    string          `json:"session_id"`
	RequestID    string          `json:"request_id"`
	LocationID   string          `json:"location_id,omitempty"`
	Status       PDFStatus       `json:"status"`
	Progress     int             `json:"progress,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// ListStatus is the state of a product-list import.
type ListStatus string

const (
	ListInited     ListStatus = "inited"
	ListUploaded   ListStatus = "uploaded"
	ListValidated  ListStatus = "validated"
	ListProcessing ListStatus = "processing"
	ListProcessed  ListStatus = "processed"
	ListExtracting ListStatus = "extracting"
	ListFinished   ListStatus = "finished"
	ListError      ListStatus = "error"
)

// ListRecord is the cached state of a product-list import. The upload form
// fills in the file fields when it lands the spreadsheet on disk.
type ListRecord struct {
	SessionID    string     `json:"session_id"`
	RequestID    string     `json:"request_id"`
	Status       ListStatus `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`

	FileName         string   `json:"file_name,omitempty"`
	FilePath         string   `json:"file_path,omitempty"`
	TotalRow         int      `json:"total_row,omitempty"`
	ExtractedColumns []string `json:"extracted_columns,omitempty"`

	MappedData         map[string]string `json:"mapped_data,omitempty"`
	ExtractedData      string            `json:"extracted_data,omitempty"`
	ExtractedRowsCount string            `json:"extracted_rows_count,omitempty"`

	UploadedFileName string `json:"uploaded_file_name,omitempty"`
	UploadedFilePath string `json:"uploaded_file_path,omitempty"`
	ProductListID    string `json:"product_list_id,omitempty"`
}

// PDFKey returns the cache key for a PDF upload record.
func PDFKey(handle, requestID string) string {
	return fmt.Sprintf("upload_sds_pdf:%s:%s", handle, requestID)
}

// ListKey returns the cache key for a product-list import record.
func ListKey(handle, requestID string) string {
	return fmt.Sprintf("upload_product_list:%s:%s", handle, requestID)
}

func getRecord[T any](ctx context.Context, st store, key string) (*T, error) {
	data, err := st.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding upload record: %w", err)
	}
	return &rec, nil
}

func putRecord(ctx context.Context, st store, key string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding upload record: %w", err)
	}
	return st.Set(ctx, key, data)
}
