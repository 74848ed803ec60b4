package constants

// Common error messages
const (
	ErrInvalidJSON        = "invalid json or missing fields"
	ErrMissingRecordID    = "missing record id"
	ErrRecordNotFound     = "record not found"
	ErrDB                 = "DB error"
	ErrInvalidRequestBody = "Invalid request body"
	ErrMethodNotAllowed   = "Method Not Allowed"
	ErrNoFilesUploaded    = "No files uploaded"
	ErrUnsupportedFile    = "unsupported file type"
)

// Content types
const (
	ContentTypeJSON = "application/json"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
	DateFormatISO  = "2006-01-02T15:04:05"
)

// NBSP shows up in headers exported from some spreadsheet tools.
const NBSP = " "
