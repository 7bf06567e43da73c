package dto

import (
	"encoding/json"
	"time"
)

// DocumentResponse represents a stored document.
type DocumentResponse struct {
	ID         uint            `json:"id"`
	Filename   string          `json:"filename"`
	FileType   string          `json:"file_type"`
	Content    string          `json:"content,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	UploadDate time.Time       `json:"upload_date"`
}

// DeleteDocumentResponse confirms a document deletion.
type DeleteDocumentResponse struct {
	Message string `json:"message"`
}
