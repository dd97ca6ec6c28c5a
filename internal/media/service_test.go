package media

import (
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	bucket      string
	key         string
	contentType string
	body        []byte
	deleted     []string
}

func (f *fakeStore) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error) {
	f.bucket = bucket
	f.key = key
	f.contentType = contentType
	f.body, _ = io.ReadAll(body)
	return "https://cdn.example.com/" + bucket + "/" + key, nil
}

func (f *fakeStore) Delete(ctx context.Context, bucket, key string) error {
	f.deleted = append(f.deleted, bucket+"/"+key)
	return nil
}

func TestUploadPhotoGeneratesKey(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	url, err := svc.UploadPhoto(context.Background(), "before.JPG", "image/jpeg", strings.NewReader("fake-bytes"))
	require.NoError(t, err)

	assert.Equal(t, PhotoBucket, store.bucket)
	assert.True(t, strings.HasSuffix(store.key, ".jpg"))
	assert.NotEqual(t, "before.jpg", store.key)
	assert.Equal(t, "https://cdn.example.com/images/"+store.key, url)
}

func TestUploadSignatureDecodesDataURL(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	url, err := svc.UploadSignature(context.Background(), 42, dataURL)
	require.NoError(t, err)

	assert.Equal(t, SignatureBucket, store.bucket)
	assert.True(t, strings.HasPrefix(store.key, "order-42/signature-"))
	assert.True(t, strings.HasSuffix(store.key, ".png"))
	assert.Equal(t, "image/png", store.contentType)
	assert.Equal(t, png, store.body)
	assert.Contains(t, url, "signatures/order-42/")
}

func TestUploadSignatureRejectsBadPayload(t *testing.T) {
	svc := NewService(&fakeStore{})
	ctx := context.Background()

	_, err := svc.UploadSignature(ctx, 1, "not a data url")
	assert.ErrorIs(t, err, ErrBadSignature)

	_, err = svc.UploadSignature(ctx, 1, "data:image/png;base64,!!!not-base64!!!")
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestDeleteRejectsUnknownBucket(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	ctx := context.Background()

	require.Error(t, svc.Delete(ctx, "secrets", "x.png"))
	require.NoError(t, svc.Delete(ctx, PhotoBucket, "x.png"))
	assert.Equal(t, []string{"images/x.png"}, store.deleted)
}
