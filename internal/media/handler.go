package media

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velora-studio/velora/internal/platform/httpx"
)

// Photo uploads are bounded; the studio's camera shots stay well below this.
const maxPhotoSize = 10 << 20

// Handler serves photo and signature uploads.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the media Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers media routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/photos", h.UploadPhoto)
	r.Post("/orders/{orderID}/signature", h.UploadSignature)
	r.Delete("/{bucket}/*", h.Delete)
}

// UploadPhoto accepts a multipart form with a "file" part and returns the
// stored object's public URL.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "missing file part")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.service.UploadPhoto(r.Context(), header.Filename, contentType, file)
	if err != nil {
		h.logger.Error("upload photo", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Storage Error", "photo upload failed")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"url": url})
}

type signatureRequest struct {
	Data string `json:"data"`
}

// UploadSignature accepts the signature pad's PNG data URL and stores it
// under the order's folder.
func (h *Handler) UploadSignature(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order ID")
		return
	}

	var req signatureRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	url, err := h.service.UploadSignature(r.Context(), orderID, req.Data)
	if err != nil {
		if errors.Is(err, ErrBadSignature) {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		h.logger.Error("upload signature", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Storage Error", "signature upload failed")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"url": url})
}

// Delete removes a stored object by bucket and key.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	key := chi.URLParam(r, "*")
	if key == "" {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "missing object key")
		return
	}

	if err := h.service.Delete(r.Context(), bucket, key); err != nil {
		h.logger.Error("delete media", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Storage Error", "delete failed")
		return
	}
	httpx.NoContent(w)
}
