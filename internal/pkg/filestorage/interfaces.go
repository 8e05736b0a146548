package filestorage

import (
	"mime/multipart"
)

// PhotoStorage defines the interface for ticket photo storage operations
type PhotoStorage interface {
	// SavePhoto validates and saves an uploaded photo, returning the stored path
	SavePhoto(fileHeader *multipart.FileHeader) (string, error)

	// DeletePhoto removes a stored photo. Missing files are not an error.
	DeletePhoto(filePath string) error

	// GetFullPath returns the full filesystem path for a stored photo path
	GetFullPath(filePath string) string
}
