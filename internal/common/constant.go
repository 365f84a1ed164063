// Package common contains shared constants and sentinel errors used across
// ScholarHub client components.
package common

import (
	"path/filepath"
	"strings"
)

const (
	AppName        = "ScholarHub"
	AppDescription = "Academic document repository"
)

// Keys under which the session is persisted in local storage.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// DefaultPageSize is the number of rows listed per page.
const DefaultPageSize = 10

// MaxFileSize is the largest document accepted for upload (10 MB).
const MaxFileSize int64 = 10 * 1024 * 1024

// AllowedFileTypes lists the document extensions accepted for upload.
var AllowedFileTypes = []string{".pdf", ".doc", ".docx"}

// IsAllowedFileType reports whether name has one of AllowedFileTypes
// as its extension. The comparison ignores case.
func IsAllowedFileType(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedFileTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ValidateUpload checks a file against MaxFileSize and AllowedFileTypes.
func ValidateUpload(name string, size int64) error {
	if !IsAllowedFileType(name) {
		return ErrFileTypeNotAllowed
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}
