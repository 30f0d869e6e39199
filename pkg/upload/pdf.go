package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/sdsmanager/mcp-sds-library/pkg/cache"
	"github.com/sdsmanager/mcp-sds-library/pkg/envelope"
)

// StartPDF creates a PDF upload record and hands back the browser upload
// URL. The upload form moves the record to uploaded out-of-band.
func (f *Flows) StartPDF(ctx context.Context, handle, locationID string) envelope.Envelope {
	requestID := f.newRequestID()
	rec := &PDFRecord{
		SessionID:  handle,
		RequestID:  requestID,
		LocationID: locationID,
		Status:     PDFInited,
	}
	if err := putRecord(ctx, f.store, PDFKey(handle, requestID), rec); err != nil {
		return f.storeErr(handle, err)
	}

	return envelope.Success(handle, envelope.CodeOK, map[string]any{
		"session_handle": handle,
		"request_id":     requestID,
		"upload_url":     f.PDFUploadURL(handle, locationID, requestID),
	}, pdfStepInstructions...)
}

// StartPDFFromURL submits a remote PDF URL to the backend for ingestion into
// a location. The record skips straight to uploaded on acceptance.
func (f *Flows) StartPDFFromURL(ctx context.Context, handle, apiKey, locationID, sdsURL string) envelope.Envelope {
	requestID := f.newRequestID()
	key := PDFKey(handle, requestID)
	rec := &PDFRecord{
		SessionID:  handle,
		RequestID:  requestID,
		LocationID: locationID,
		Status:     PDFInited,
	}
	if err := putRecord(ctx, f.store, key, rec); err != nil {
		return f.storeErr(handle, err)
	}

	status, err := f.backend.UploadSDSFromURL(ctx, apiKey, locationID, requestID, sdsURL)
	if err != nil {
		return f.classifier.Classify(ctx, handle, err)
	}

	rec.Status = PDFUploaded
	rec.Data = marshalRaw(status)
	if err := putRecord(ctx, f.store, key, rec); err != nil {
		return f.storeErr(handle, err)
	}

	data := mergeData(map[string]any{
		"session_handle": handle,
		"request_id":     requestID,
		"progress":       status.Progress,
	}, status)
	return envelope.Success(handle, envelope.CodeOK, data,
		"call check_upload_sds_pdf_status tool with request_id")
}

// CheckPDF polls a PDF upload. Finished uploads answer from the cache
// without a backend call; records stuck before the browser upload completed
// are reset to inited with a fresh upload URL.
func (f *Flows) CheckPDF(ctx context.Context, handle, apiKey, requestID string) envelope.Envelope {
	key := PDFKey(handle, requestID)
	rec, err := getRecord[PDFRecord](ctx, f.store, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return envelope.Error(handle, envelope.CodeUploadSessionExpired, nil,
				"Upload session expired. Please use the add_sds_by_uploading_sds_pdf_file or add_sds_by_url tool to create a new upload session.")
		}
		return f.storeErr(handle, err)
	}

	switch rec.Status {
	case PDFFinished:
		data := map[string]any{
			"session_handle": handle,
			"request_id":     requestID,
			"progress":       rec.Progress,
		}
		if len(rec.Data) > 0 {
			data = mergeData(data, rec.Data)
		}
		return envelope.Success(handle, envelope.CodeUploadFinished, data,
			"Upload finished. Show information for current progress in data",
			"Recommend user these next actions: show_customer_product_detail, add_sds_by_uploading_sds_pdf_file or add_sds_by_url (If user want to upload another SDS), copy_sds_to_another_location, archive_sds")

	case PDFUploaded, PDFExtracting:
		// fall through to the backend poll below

	default:
		if rec.LocationID == "" {
			return envelope.Error(handle, envelope.CodeUploadError,
				map[string]any{"error_message": "Not found location"},
				"Not found location. Ask user to follow the step in add_sds_by_uploading_sds_pdf_file or add_sds_by_url tool.")
		}

		message := "Upload not completed. Please try again."
		if rec.Status == PDFError {
			message = fmt.Sprintf("Upload error: %s. Please try again.", rec.ErrorMessage)
		}

		reset := &PDFRecord{
			SessionID:  handle,
			RequestID:  requestID,
			LocationID: rec.LocationID,
			Status:     PDFInited,
		}
		if err := putRecord(ctx, f.store, key, reset); err != nil {
			return f.storeErr(handle, err)
		}

		return envelope.Error(handle, envelope.CodeUploadError, map[string]any{
			"error_message": message,
			"upload_url":    f.PDFUploadURL(handle, rec.LocationID, requestID),
		}, pdfStepInstructions...)
	}

	status, err := f.backend.GetExtractionStatus(ctx, apiKey, requestID)
	if err != nil {
		return f.classifier.Classify(ctx, handle, err)
	}

	// Progress 100 is the sole completion signal.
	rec.Status = PDFExtracting
	if status.Progress >= 100 {
		rec.Status = PDFFinished
	}
	rec.Progress = status.Progress
	rec.Data = marshalRaw(status)
	if err := putRecord(ctx, f.store, key, rec); err != nil {
		return f.storeErr(handle, err)
	}

	data := mergeData(map[string]any{
		"session_handle": handle,
		"request_id":     requestID,
		"progress":       status.Progress,
	}, status)
	return envelope.Success(handle, envelope.CodeUploadExtracting, data,
		"Show information for current progress in data",
		"If progress is not 100, call check_upload_sds_pdf_status tool with request_id again",
		"If progress is 100, recommend user these next actions: show_customer_product_detail, add_sds_by_uploading_sds_pdf_file or add_sds_by_url (If user want to upload another SDS), copy_sds_to_another_location, archive_sds")
}
