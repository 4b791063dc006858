package storage

import (
	"context"
	"io"
)

// ImageStorage defines the contract for an image storage provider. The rest
// of the application treats the returned reference as an opaque string.
type ImageStorage interface {
	// UploadImage uploads image from reader and returns its storage reference.
	// folder is an optional logical folder in storage (e.g. "avatars").
	UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// DeleteImage deletes an image from storage using its reference.
	DeleteImage(ctx context.Context, ref string) error
}
