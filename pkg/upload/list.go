package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sdsmanager/mcp-sds-library/pkg/cache"
	"github.com/sdsmanager/mcp-sds-library/pkg/envelope"
	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
)

const mappingInstruction = "Auto map columns name in extracted_columns to a dictionary. The dictionary must have keys: product_name, supplier_of_sds. The dictionary can optionally have: location, location_id, product_code, cas_no, vendor_email, amount, amount_unit, link_to_sds, sku, external_system_id. Example: {'product_name': 'PRODUCT NAME', 'supplier_of_sds': 'SUPPLIER OF SDS', 'location': 'LOCATION', 'location_id': 'DEPARTMENT ID', 'product_code': 'PRODUCT CODE', 'cas_no': 'CAS NUMBER', 'vendor_email': 'VENDOR EMAIL', 'amount': 'AMOUNT VALUE', 'amount_unit': 'AMOUNT UNIT', 'link_to_sds': 'EXTERNAL SYSTEM URL', 'sku': 'SKU', 'external_system_id': 'EXTERNAL SYSTEM ID'}. If not found required key or exist column name not able to match, ask user to choose key that match with column name in extracted_columns."

// StartList creates a product-list import record and hands back the browser
// upload URL.
func (f *Flows) StartList(ctx context.Context, handle string) envelope.Envelope {
	requestID := f.newRequestID()
	rec := &ListRecord{
		SessionID: handle,
		RequestID: requestID,
		Status:    ListInited,
	}
	if err := putRecord(ctx, f.store, ListKey(handle, requestID), rec); err != nil {
		return f.storeErr(handle, err)
	}

	return envelope.Success(handle, envelope.CodeOK, map[string]any{
		"session_handle": handle,
		"request_id":     requestID,
		"upload_url":     f.ListUploadURL(handle, requestID),
	}, listStepInstructions...)
}

// ValidateList checks the uploaded spreadsheet's metadata and returns the
// extracted column headers for the caller to map onto the import schema.
// Later statuses short-circuit idempotently to the next step instead of
// re-validating.
func (f *Flows) ValidateList(ctx context.Context, handle, requestID string) envelope.Envelope {
	key := ListKey(handle, requestID)
	rec, err := getRecord[ListRecord](ctx, f.store, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return envelope.Error(handle, envelope.CodeUploadSessionExpired, nil,
				"Upload session expired. Please use the upload_product_list_excel_file tool to create a new upload session.")
		}
		return f.storeErr(handle, err)
	}

	switch {
	case rec.Status == ListProcessing && len(rec.MappedData) > 0:
		return envelope.Success(handle, envelope.CodeUploadProcessing, map[string]any{
			"session_handle": handle,
			"request_id":     requestID,
		}, "Already validated, call process_upload_product_list_excel_data tool with mapped_data as empty")

	case rec.Status == ListProcessed:
		return envelope.Success(handle, envelope.CodeUploadProcessed, map[string]any{
			"session_handle": handle,
			"request_id":     requestID,
		}, "Already processed, call process_upload_product_list_excel_data tool to continue")

	case rec.Status == ListExtracting && rec.ProductListID != "":
		return envelope.Success(handle, envelope.CodeUploadExtracting, map[string]any{
			"session_handle":  handle,
			"request_id":      requestID,
			"product_list_id": rec.ProductListID,
		}, "Already extracting, call check_upload_product_list_excel_data_status tool with product_list_id to continue")
	}

	if rec.Status != ListUploaded && rec.Status != ListValidated {
		message := "Upload not completed. Please try again."
		if rec.Status == ListError {
			message = fmt.Sprintf("Upload error: %s. Please try again.", rec.ErrorMessage)
		}
		return f.resetList(ctx, handle, requestID, message)
	}

	if rec.FilePath == "" || rec.FileName == "" {
		return f.resetList(ctx, handle, requestID, "Error when accessing file. Please try again.")
	}
	if rec.TotalRow == 0 {
		return f.resetList(ctx, handle, requestID, "Not found any data from uploaded file. Please try again.")
	}
	if len(rec.ExtractedColumns) == 0 {
		return f.resetList(ctx, handle, requestID, "Unable to extract columns from uploaded file. Please try again.")
	}

	rec.Status = ListValidated
	if err := putRecord(ctx, f.store, key, rec); err != nil {
		return f.storeErr(handle, err)
	}

	return envelope.Success(handle, envelope.CodeOK, map[string]any{
		"session_handle":    handle,
		"request_id":        requestID,
		"extracted_columns": rec.ExtractedColumns,
	},
		mappingInstruction,
		"Ask user to confirm mapped data whether it is correct.",
		"If user confirmed correct, call and pass the mapped data to process_upload_product_list_excel_data tool")
}

// ProcessList projects the spreadsheet rows through the confirmed column
// mapping and submits the file plus projected rows to the backend import
// endpoint. A record already processed resubmits without re-reading the
// file; the local temp file is deleted exactly once, after the backend
// accepts the submission.
func (f *Flows) ProcessList(ctx context.Context, handle, apiKey, requestID string, mappedData map[string]string, autoMatch bool) envelope.Envelope {
	key := ListKey(handle, requestID)
	rec, err := getRecord[ListRecord](ctx, f.store, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return envelope.Error(handle, envelope.CodeUploadSessionExpired, nil,
				"Upload session expired. Please use the upload_product_list_excel_file tool to create a new upload session.")
		}
		return f.storeErr(handle, err)
	}

	if rec.FilePath == "" || rec.FileName == "" || rec.TotalRow == 0 {
		return envelope.Error(handle, envelope.CodeUploadValidationError,
			map[string]any{"error_message": "Validation error"},
			"Call validate_upload_product_list_excel_data tool again")
	}

	if len(mappedData) == 0 {
		mappedData = rec.MappedData
	}

	switch {
	case rec.Status == ListProcessed && rec.ExtractedData != "":
		// resubmit with the rows projected on the earlier attempt

	case rec.Status == ListExtracting:
		if rec.ProductListID != "" {
			return envelope.Success(handle, envelope.CodeUploadExtracting, map[string]any{
				"session_handle":  handle,
				"request_id":      requestID,
				"product_list_id": rec.ProductListID,
			}, "Already extracting, call check_upload_product_list_excel_data_status tool with product_list_id to continue")
		}
		// no import id recorded, resubmit below

	case (rec.Status != ListValidated && rec.Status != ListProcessing) || len(mappedData) == 0:
		return envelope.Error(handle, envelope.CodeUploadValidationError,
			map[string]any{"error_message": "Not validated"},
			"Call validate_upload_product_list_excel_data tool again")

	default:
		rec.MappedData = mappedData
		rec.Status = ListProcessing
		if err := putRecord(ctx, f.store, key, rec); err != nil {
			return f.storeErr(handle, err)
		}

		rows, err := extractRows(rec.FilePath, mappedData)
		if err != nil {
			return f.processFailure(ctx, handle, requestID,
				fmt.Sprintf("Error when processing file: %s. Please try again.", err))
		}
		rec.ExtractedRowsCount = fmt.Sprintf("%d/%d", len(rows), rec.TotalRow-1)
		if err := putRecord(ctx, f.store, key, rec); err != nil {
			return f.storeErr(handle, err)
		}

		serialized, err := json.Marshal(rows)
		if err != nil {
			return f.processFailure(ctx, handle, requestID,
				fmt.Sprintf("Error extracting file: %s. Please try again.", err))
		}
		rec.ExtractedData = string(serialized)
		rec.Status = ListProcessed
		if err := putRecord(ctx, f.store, key, rec); err != nil {
			return f.storeErr(handle, err)
		}
	}

	file, err := os.Open(rec.FilePath)
	if err != nil {
		return f.processFailure(ctx, handle, requestID,
			fmt.Sprintf("Error extracting file: %s. Please try again.", err))
	}
	defer func() { _ = file.Close() }()

	result, err := f.backend.UploadProductList(ctx, apiKey, rec.FileName, file, rec.ExtractedData, autoMatch)
	if err != nil {
		var apiErr *sdsapi.APIError
		if errors.As(err, &apiErr) {
			return f.classifier.Classify(ctx, handle, err)
		}
		return f.processFailure(ctx, handle, requestID,
			fmt.Sprintf("Error extracting file: %s. Please try again.", err))
	}

	if err := os.Remove(rec.FilePath); err != nil {
		f.logger.Warn("removing submitted product list file",
			"path", rec.FilePath, "error", err)
	}

	rec.UploadedFileName = result.FileName
	rec.UploadedFilePath = result.FilePath
	rec.ProductListID = result.ProductListID
	rec.Status = ListExtracting
	if err := putRecord(ctx, f.store, key, rec); err != nil {
		return f.storeErr(handle, err)
	}

	return envelope.Success(handle, envelope.CodeOK, map[string]any{
		"session_handle":  handle,
		"request_id":      requestID,
		"product_list_id": result.ProductListID,
	},
		"Show information for uploaded data",
		"Call check_upload_product_list_excel_data_status with product_list_id for checking status of the upload process")
}

// resetList writes a fresh inited record and returns the retry envelope with
// a new upload URL for the same request id.
func (f *Flows) resetList(ctx context.Context, handle, requestID, message string) envelope.Envelope {
	reset := &ListRecord{
		SessionID: handle,
		RequestID: requestID,
		Status:    ListInited,
	}
	if err := putRecord(ctx, f.store, ListKey(handle, requestID), reset); err != nil {
		return f.storeErr(handle, err)
	}
	return envelope.Error(handle, envelope.CodeUploadError, map[string]any{
		"error_message": message,
		"upload_url":    f.ListUploadURL(handle, requestID),
	}, listStepInstructions...)
}

// processFailure resets the record and reports a processing error with a
// fresh upload URL.
func (f *Flows) processFailure(ctx context.Context, handle, requestID, message string) envelope.Envelope {
	reset := &ListRecord{
		SessionID: handle,
		RequestID: requestID,
		Status:    ListInited,
	}
	if err := putRecord(ctx, f.store, ListKey(handle, requestID), reset); err != nil {
		return f.storeErr(handle, err)
	}
	return envelope.Error(handle, envelope.CodeUploadProcessError, map[string]any{
		"error_message": message,
		"upload_url":    f.ListUploadURL(handle, requestID),
	}, listStepInstructions...)
}
