package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore saves media under baseDir/bucket/... and serves it from
// baseURL. Simple: save file -> return URL + object key.
type LocalStore struct {
	baseDir string
	baseURL string
}

func NewLocalStore(baseDir, baseURL string) *LocalStore {
	return &LocalStore{baseDir: baseDir, baseURL: baseURL}
}

func (s *LocalStore) Upload(ctx context.Context, p UploadParams) (*UploadResult, error) {
	if p.Bucket == "" {
		return nil, fmt.Errorf("bucket is required for uploads")
	}
	if p.File == nil || p.File.Size == 0 {
		return nil, ErrEmptyFile
	}
	if p.MaxSizeBytes > 0 && p.File.Size > p.MaxSizeBytes {
		return nil, fmt.Errorf(
			"%w: %s is larger than %dMB",
			ErrFileTooLarge, p.File.Filename, p.MaxSizeBytes/(1024*1024),
		)
	}

	src, err := p.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	folder := strings.Trim(p.Folder, "/")
	ext := strings.ToLower(filepath.Ext(p.File.Filename))
	objectKey := path.Join(folder, uuid.New().String()+ext)

	absDir := filepath.Join(s.baseDir, p.Bucket, filepath.FromSlash(folder))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	absPath := filepath.Join(s.baseDir, p.Bucket, filepath.FromSlash(objectKey))
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:  s.baseURL + "/" + p.Bucket + "/" + objectKey,
		Path: objectKey,
	}, nil
}

func (s *LocalStore) UploadBytes(ctx context.Context, bucket, folder, filename string, data []byte) (*UploadResult, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket is required for uploads")
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	folder = strings.Trim(folder, "/")
	objectKey := path.Join(folder, filename)

	absDir := filepath.Join(s.baseDir, bucket, filepath.FromSlash(folder))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	absPath := filepath.Join(s.baseDir, bucket, filepath.FromSlash(objectKey))
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:  s.baseURL + "/" + bucket + "/" + objectKey,
		Path: objectKey,
	}, nil
}
