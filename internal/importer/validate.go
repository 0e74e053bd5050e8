// Package importer turns uploaded CV files into resume documents that seed
// the wizard: upload validation, text extraction and LLM-based structuring.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the upload size ceiling.
const MaxUploadBytes = 10 << 20 // 10MB

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UnsupportedFileTypeError indicates a file type outside pdf/doc/docx.
type UnsupportedFileTypeError struct {
	ContentType string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (accepted: pdf, doc, docx)", e.ContentType)
}

// FileTooLargeError indicates an upload over the size ceiling.
type FileTooLargeError struct {
	SizeBytes int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: %d bytes (limit %d)", e.SizeBytes, MaxUploadBytes)
}

// ValidateUpload checks the declared type and size of an upload before any
// bytes are processed. The content type is normalized from the filename when
// the client sent a generic one.
func ValidateUpload(filename, contentType string, sizeBytes int64) (string, error) {
	if sizeBytes > MaxUploadBytes {
		return "", &FileTooLargeError{SizeBytes: sizeBytes}
	}

	normalized := normalizeContentType(contentType, filename)
	switch normalized {
	case mimePDF, mimeDOC, mimeDOCX:
		return normalized, nil
	default:
		return "", &UnsupportedFileTypeError{ContentType: contentType}
	}
}

// normalizeContentType resolves generic or missing MIME types from the file
// extension. Browsers commonly send application/octet-stream for .doc files.
func normalizeContentType(contentType, filename string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if clean != "" && clean != "application/octet-stream" && clean != "application/zip" {
		return clean
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return mimePDF
	case ".doc":
		return mimeDOC
	case ".docx":
		return mimeDOCX
	default:
		return clean
	}
}
