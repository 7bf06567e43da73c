package service

import "errors"

var (
	// ErrDocumentNotFound is returned when a referenced document does not exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrUnsupportedFileType is returned for uploads with a disallowed extension.
	ErrUnsupportedFileType = errors.New("file type not allowed")
	// ErrFileTooLarge is returned for uploads exceeding the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)
