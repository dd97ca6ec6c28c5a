// Package blob wraps the hosted object storage HTTP API. The application
// treats storage as an opaque producer of publicly addressable URLs.
package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client uploads and deletes objects in a storage bucket.
type Client struct {
	baseURL    string
	publicURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a storage client. baseURL points at the storage API,
// publicURL at the CDN prefix objects are served from.
func NewClient(baseURL, publicURL, apiKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		publicURL: strings.TrimRight(publicURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Upload stores the object under bucket/key and returns its public URL.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error) {
	endpoint := fmt.Sprintf("%s/object/%s/%s", c.baseURL, url.PathEscape(bucket), key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("blob: upload %s/%s: %w", bucket, key, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("blob: upload %s/%s: status %d", bucket, key, resp.StatusCode)
	}

	return c.PublicURL(bucket, key), nil
}

// Delete removes the object stored under bucket/key.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	endpoint := fmt.Sprintf("%s/object/%s/%s", c.baseURL, url.PathEscape(bucket), key)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("blob: delete %s/%s: %w", bucket, key, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("blob: delete %s/%s: status %d", bucket, key, resp.StatusCode)
	}

	return nil
}

// PublicURL returns the CDN address for an object without touching the API.
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicURL, bucket, key)
}
