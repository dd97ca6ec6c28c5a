package orders

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/velora-studio/velora/internal/platform/httpx"
	"github.com/velora-studio/velora/internal/shared"
)

// Handler serves the order editor and order list API.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the orders Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers order routes. Each editor action is a POST so the
// draft survives stateless requests; totals come back recomputed on every
// response.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/customer/{customerID}", h.ListByCustomer)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)

	r.Route("/drafts", func(r chi.Router) {
		r.Post("/", h.CreateDraft)
		r.Get("/{draftID}", h.GetDraft)
		r.Patch("/{draftID}", h.UpdateHeader)
		r.Delete("/{draftID}", h.DeleteDraft)
		r.Post("/{draftID}/submit", h.Submit)

		r.Post("/{draftID}/services", h.AddServiceLine)
		r.Delete("/{draftID}/services/{index}", h.RemoveServiceLine)
		r.Post("/{draftID}/services/{index}/select", h.SelectService)
		r.Post("/{draftID}/services/{index}/discount", h.SetServiceDiscount)

		r.Post("/{draftID}/products", h.AddProductLine)
		r.Delete("/{draftID}/products/{index}", h.RemoveProductLine)
		r.Post("/{draftID}/products/{index}/select", h.SelectProduct)
		r.Post("/{draftID}/products/{index}/discount", h.SetProductDiscount)
		r.Post("/{draftID}/products/{index}/quantity", h.SetQuantity)
	})
}

func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.CreateDraft(r.Context())
	if err != nil {
		h.logger.Error("create draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, view)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetDraft(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.respondDraftErr(w, err, "get draft")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	var req UpdateDraftHeaderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	view, err := h.service.UpdateHeader(r.Context(), chi.URLParam(r, "draftID"), req)
	if err != nil {
		h.respondDraftErr(w, err, "update draft header")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDraft(r.Context(), chi.URLParam(r, "draftID")); err != nil {
		h.logger.Error("delete draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) AddServiceLine(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.AddServiceLine(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.respondDraftErr(w, err, "add service line")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) AddProductLine(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.AddProductLine(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.respondDraftErr(w, err, "add product line")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) RemoveServiceLine(w http.ResponseWriter, r *http.Request) {
	i, err := lineIndex(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid line index")
		return
	}
	view, err := h.service.RemoveServiceLine(r.Context(), chi.URLParam(r, "draftID"), i)
	if err != nil {
		h.respondDraftErr(w, err, "remove service line")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) RemoveProductLine(w http.ResponseWriter, r *http.Request) {
	i, err := lineIndex(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid line index")
		return
	}
	view, err := h.service.RemoveProductLine(r.Context(), chi.URLParam(r, "draftID"), i)
	if err != nil {
		h.respondDraftErr(w, err, "remove product line")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) SelectService(w http.ResponseWriter, r *http.Request) {
	i, err := lineIndex(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid line index")
		return
	}
	var req SelectItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	view, err := h.service.SelectService(r.Context(), chi.URLParam(r, "draftID"), i, req.Name)
	if err != nil {
		h.respondDraftErr(w, err, "select service")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	i, err := lineIndex(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid line index")
		return
	}
	var req SelectItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	view, err := h.service.SelectProduct(r.Context(), chi.URLParam(r, "draftID"), i, req.Name)
	if err != nil {
		h.respondDraftErr(w, err, "select product")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) SetServiceDiscount(w http.ResponseWriter, r *http.Request) {
	i, err := lineIndex(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid line index")
		return
	}
	var req SetDiscountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	view, err := h.service.SetServiceDiscount(r.Context(), chi.URLParam(r, "draftID"), i, req.Value)
	if err != nil {
		h.respondDraftErr(w, err, "set service discount")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) SetProductDiscount(w http.ResponseWriter, r *http.Request) {
	i, err := lineIndex(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid line index")
		return
	}
	var req SetDiscountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	view, err := h.service.SetProductDiscount(r.Context(), chi.URLParam(r, "draftID"), i, req.Value)
	if err != nil {
		h.respondDraftErr(w, err, "set product discount")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	i, err := lineIndex(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid line index")
		return
	}
	var req SetQuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	view, err := h.service.SetQuantity(r.Context(), chi.URLParam(r, "draftID"), i, req.Value)
	if err != nil {
		h.respondDraftErr(w, err, "set quantity")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// Submit persists the draft as an order. On failure the draft is left
// untouched so the operator can retry.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitDraftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	order, err := h.service.Submit(r.Context(), chi.URLParam(r, "draftID"), req)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "draft not found")
			return
		}
		h.logger.Error("submit order", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Submission Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListOrdersRequest{Limit: 50}
	q := r.URL.Query()
	if s := q.Get("status"); s != "" {
		req.Status = &s
	}
	if s := q.Get("from"); s != "" {
		req.From = &s
	}
	if s := q.Get("to"); s != "" {
		req.To = &s
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		req.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		req.Offset = v
	}
	// The page math below divides by the limit, so normalize it here, not
	// just inside the service.
	if req.Limit <= 0 || req.Limit > 1000 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	orders, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	page := req.Offset/req.Limit + 1
	httpx.JSON(w, http.StatusOK, map[string]any{
		"orders":     orders,
		"pagination": shared.NewPagination(page, req.Limit, total),
	})
}

// ListByCustomer returns a customer's order history.
func (h *Handler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid customer ID")
		return
	}

	history, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Error("customer order history", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if history == nil {
		history = []Order{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": history})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ID")
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
			return
		}
		h.logger.Error("get order", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ID")
		return
	}

	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
			return
		}
		h.logger.Error("update order status", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
			return
		}
		h.logger.Error("delete order", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) respondDraftErr(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, ErrDraftNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "draft not found")
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
}

func lineIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}
