package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadReturnsPublicURL(t *testing.T) {
	var gotPath, gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "https://cdn.example.com/storage", "secret")
	url, err := client.Upload(context.Background(), "images", "abc/photo.png", "image/png", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if url != "https://cdn.example.com/storage/images/abc/photo.png" {
		t.Fatalf("unexpected public url %q", url)
	}
	if gotPath != "/object/images/abc/photo.png" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if gotBody != "payload" || gotType != "image/png" {
		t.Fatalf("unexpected body %q type %q", gotBody, gotType)
	}
}

func TestUploadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, "")
	if _, err := client.Upload(context.Background(), "images", "k", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestDeleteToleratesMissingObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE got %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, "")
	if err := client.Delete(context.Background(), "signatures", "order-1/sig.png"); err != nil {
		t.Fatalf("Delete returned error for missing object: %v", err)
	}
}
