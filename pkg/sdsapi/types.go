package sdsapi

import "encoding/json"

// UserProfile is the identity endpoint response.
type UserProfile struct {
	ID          int            `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Language    string         `json:"language"`
	Country     string         `json:"country"`
	PhoneNumber string         `json:"phone_number"`
	Customer    map[string]any `json:"customer"`
}

// ExtractionStatus is the payload returned by the extraction-status endpoint
// and by uploadSDSFromUrl. Progress is an integer 0-100; 100 is the sole
// completion signal.
type ExtractionStatus struct {
	Email               string          `json:"email"`
	RequestID           string          `json:"request_id"`
	Step                string          `json:"step"`
	Progress            int             `json:"progress"`
	FileInfo            json.RawMessage `json:"file_info,omitempty"`
	CompressionFileInfo json.RawMessage `json:"compression_file_info,omitempty"`
	InitTime            string          `json:"init_time"`
	BookletInfo         json.RawMessage `json:"booklet_info,omitempty"`
}

// ImportResult is the response to a product-list submission.
type ImportResult struct {
	FileName      string `json:"file_name"`
	FilePath      string `json:"file_path"`
	ProductListID string `json:"product_list_id"`
}

// Paginated is the common list response shape.
type Paginated struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}
