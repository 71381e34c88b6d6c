package storage

import (
	"context"
	"errors"
	"mime/multipart"
)

var (
	ErrEmptyFile    = errors.New("empty file")
	ErrFileTooLarge = errors.New("file exceeds the allowed size")
)

type UploadParams struct {
	Bucket string
	File   *multipart.FileHeader
	Folder string

	// MaxSizeBytes is enforced per call; zero means no cap.
	MaxSizeBytes int64
}

type UploadResult struct {
	URL  string
	Path string
}

// Store is the blob storage capability the intake flows depend on.
type Store interface {
	Upload(ctx context.Context, p UploadParams) (*UploadResult, error)

	// UploadBytes stores server-generated content, such as QR code PNGs.
	UploadBytes(ctx context.Context, bucket, folder, filename string, data []byte) (*UploadResult, error)
}
