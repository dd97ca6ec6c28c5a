package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Buckets for uploaded media.
const (
	PhotoBucket     = "images"
	SignatureBucket = "signatures"
)

const signaturePrefix = "data:image/png;base64,"

// ErrBadSignature is returned when a signature payload is not a PNG data URL.
var ErrBadSignature = errors.New("signature payload must be a base64 PNG data URL")

// Uploader is the storage surface the media service needs.
type Uploader interface {
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

// Service stores order photos and signature images and hands back public
// URLs.
type Service struct {
	store Uploader
}

// NewService constructs the media Service.
func NewService(store Uploader) *Service {
	return &Service{store: store}
}

// UploadPhoto stores a photo under a generated key and returns its public
// URL. The original file name only contributes its extension.
func (s *Service) UploadPhoto(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := uuid.NewString() + ext

	url, err := s.store.Upload(ctx, PhotoBucket, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	return url, nil
}

// UploadSignature decodes a base64 PNG data URL captured by the signature
// pad and stores it under the order's folder.
func (s *Service) UploadSignature(ctx context.Context, orderID int64, dataURL string) (string, error) {
	if !strings.HasPrefix(dataURL, signaturePrefix) {
		return "", ErrBadSignature
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, signaturePrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadSignature, err)
	}

	key := fmt.Sprintf("order-%d/signature-%d.png", orderID, time.Now().Unix())
	url, err := s.store.Upload(ctx, SignatureBucket, key, "image/png", bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("upload signature: %w", err)
	}
	return url, nil
}

// Delete removes an object by bucket and key.
func (s *Service) Delete(ctx context.Context, bucket, key string) error {
	if bucket != PhotoBucket && bucket != SignatureBucket {
		return fmt.Errorf("unknown bucket %q", bucket)
	}
	if err := s.store.Delete(ctx, bucket, key); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}
