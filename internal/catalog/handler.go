package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velora-studio/velora/internal/platform/httpx"
)

// Handler serves the catalog API.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the catalog Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Load)

	r.Route("/services", func(r chi.Router) {
		r.Post("/", h.CreateService)
		r.Get("/{id}", h.GetService)
		r.Patch("/{id}", h.UpdateService)
		r.Delete("/{id}", h.DeleteService)
	})
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Patch("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
}

// Load returns both sellable lists in one response. A category that failed
// to load is reported in the errors object alongside the surviving data.
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Load(r.Context())
	if err != nil {
		h.logger.Error("load catalog", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	resp := map[string]any{
		"services": cat.Services,
		"products": cat.Products,
	}
	catErrs := map[string]string{}
	if cat.ServiceErr != nil {
		h.logger.Error("load services", slog.Any("error", cat.ServiceErr))
		catErrs["services"] = "failed to load services"
	}
	if cat.ProductErr != nil {
		h.logger.Error("load products", slog.Any("error", cat.ProductErr))
		catErrs["products"] = "failed to load products"
	}
	if len(catErrs) > 0 {
		resp["errors"] = catErrs
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	item, err := h.service.CreateService(r.Context(), req)
	if err != nil {
		h.logger.Error("create service", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ID")
		return
	}

	item, err := h.service.GetService(r.Context(), id)
	if err != nil {
		h.respondLookupErr(w, err, "get service")
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ID")
		return
	}

	var req UpdateServiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	item, err := h.service.UpdateService(r.Context(), id, req)
	if err != nil {
		h.respondLookupErr(w, err, "update service")
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ID")
		return
	}

	if err := h.service.DeleteService(r.Context(), id); err != nil {
		h.respondLookupErr(w, err, "delete service")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	item, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		h.logger.Error("create product", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ID")
		return
	}

	item, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		h.respondLookupErr(w, err, "get product")
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ID")
		return
	}

	var req UpdateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	item, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		h.respondLookupErr(w, err, "update product")
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ID")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		h.respondLookupErr(w, err, "delete product")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) respondLookupErr(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "catalog entry not found")
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
