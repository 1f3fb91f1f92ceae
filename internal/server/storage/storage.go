// Package storage handles the object-store side of attachments: deriving
// keys, uploading decoded file payloads, and deleting objects.
package storage

import "context"

// FilePayload is one decoded multipart file: raw bytes plus the metadata
// needed to store and name the object.
type FilePayload struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadResult reports where an uploaded object ended up.
type UploadResult struct {
	URL string
	Key string
}

// ObjectStore is the narrow blob-store capability handed to orchestrators.
type ObjectStore interface {
	Upload(ctx context.Context, file FilePayload) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}
