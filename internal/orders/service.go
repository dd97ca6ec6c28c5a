package orders

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/velora-studio/velora/internal/catalog"
)

// CatalogLoader supplies the sellable catalog for line selection.
type CatalogLoader interface {
	Load(ctx context.Context) (catalog.Catalog, error)
}

// Service drives the order editor and persistence workflow.
type Service struct {
	repo     Repository
	drafts   *DraftStore
	catalog  CatalogLoader
	validate *validator.Validate
}

// NewService constructs the orders Service.
func NewService(repo Repository, drafts *DraftStore, cat CatalogLoader) *Service {
	return &Service{
		repo:     repo,
		drafts:   drafts,
		catalog:  cat,
		validate: validator.New(),
	}
}

// DraftView is a draft plus its recomputed totals, fixed to 2 dp for
// display. Totals are derived on every read, never stored on the draft.
type DraftView struct {
	Draft
	ServiceTotals []string `json:"service_totals"`
	ProductTotals []string `json:"product_totals"`
	Total         string   `json:"total"`
}

// View decorates a draft with its current totals.
func View(d Draft) DraftView {
	v := DraftView{
		Draft:         d,
		ServiceTotals: make([]string, len(d.Services)),
		ProductTotals: make([]string, len(d.Products)),
	}
	for i, l := range d.Services {
		v.ServiceTotals[i] = ServiceLineTotal(l.UnitPrice, l.Discount).StringFixed(2)
	}
	for i, l := range d.Products {
		v.ProductTotals[i] = ProductLineTotal(l.UnitPrice, l.Quantity, l.Discount).StringFixed(2)
	}
	v.Total = OrderTotal(d.Services, d.Products).StringFixed(2)
	return v
}

// CreateDraft starts a new empty order draft.
func (s *Service) CreateDraft(ctx context.Context) (DraftView, error) {
	draft, err := s.drafts.Create(ctx)
	if err != nil {
		return DraftView{}, err
	}
	return View(draft), nil
}

// GetDraft loads a draft with its current totals.
func (s *Service) GetDraft(ctx context.Context, id string) (DraftView, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return DraftView{}, err
	}
	return View(draft), nil
}

// DeleteDraft abandons a draft.
func (s *Service) DeleteDraft(ctx context.Context, id string) error {
	return s.drafts.Delete(ctx, id)
}

// UpdateHeader applies header fields (contact, payment, remark, photos)
// to a draft.
func (s *Service) UpdateHeader(ctx context.Context, id string, req UpdateDraftHeaderRequest) (DraftView, error) {
	if err := s.validate.Struct(req); err != nil {
		return DraftView{}, fmt.Errorf("validate draft header: %w", err)
	}
	return s.mutate(ctx, id, func(d Draft) Draft {
		if req.CustomerID != nil {
			d.CustomerID = req.CustomerID
		}
		if req.FirstName != nil {
			d.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			d.LastName = *req.LastName
		}
		if req.Phone != nil {
			d.Phone = *req.Phone
		}
		if req.Email != nil {
			d.Email = req.Email
		}
		if req.PaymentMethod != nil {
			d.PaymentMethod = *req.PaymentMethod
		}
		if req.Remark != nil {
			d.Remark = *req.Remark
		}
		if req.Photos != nil {
			d.Photos = req.Photos
		}
		return d
	})
}

// AddServiceLine appends an empty service line to the draft.
func (s *Service) AddServiceLine(ctx context.Context, id string) (DraftView, error) {
	return s.mutate(ctx, id, Draft.AddServiceLine)
}

// AddProductLine appends an empty product line to the draft.
func (s *Service) AddProductLine(ctx context.Context, id string) (DraftView, error) {
	return s.mutate(ctx, id, Draft.AddProductLine)
}

// RemoveServiceLine drops a service line by index.
func (s *Service) RemoveServiceLine(ctx context.Context, id string, i int) (DraftView, error) {
	return s.mutate(ctx, id, func(d Draft) Draft { return d.RemoveServiceLine(i) })
}

// RemoveProductLine drops a product line by index.
func (s *Service) RemoveProductLine(ctx context.Context, id string, i int) (DraftView, error) {
	return s.mutate(ctx, id, func(d Draft) Draft { return d.RemoveProductLine(i) })
}

// SelectService resolves a service by name and copies its current price
// onto the line.
func (s *Service) SelectService(ctx context.Context, id string, i int, name string) (DraftView, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return DraftView{}, fmt.Errorf("load catalog: %w", err)
	}
	return s.mutate(ctx, id, func(d Draft) Draft { return d.SelectService(i, name, cat) })
}

// SelectProduct resolves a product by name and copies its current price
// onto the line.
func (s *Service) SelectProduct(ctx context.Context, id string, i int, name string) (DraftView, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return DraftView{}, fmt.Errorf("load catalog: %w", err)
	}
	return s.mutate(ctx, id, func(d Draft) Draft { return d.SelectProduct(i, name, cat) })
}

// SetServiceDiscount stores a raw discount value on a service line.
func (s *Service) SetServiceDiscount(ctx context.Context, id string, i int, v float64) (DraftView, error) {
	return s.mutate(ctx, id, func(d Draft) Draft { return d.SetServiceDiscount(i, v) })
}

// SetProductDiscount stores a raw discount value on a product line.
func (s *Service) SetProductDiscount(ctx context.Context, id string, i int, v float64) (DraftView, error) {
	return s.mutate(ctx, id, func(d Draft) Draft { return d.SetProductDiscount(i, v) })
}

// SetQuantity stores a raw quantity value on a product line.
func (s *Service) SetQuantity(ctx context.Context, id string, i int, v int) (DraftView, error) {
	return s.mutate(ctx, id, func(d Draft) Draft { return d.SetQuantity(i, v) })
}

// Submit turns a draft into a persisted order. Out-of-range inputs are
// clamped here rather than rejected: discount into [0,100], quantity up to
// at least 1. The header and every child row are written in one
// transaction; the draft is cleared only after the write commits, so a
// failed submission leaves the editor state intact for retry.
func (s *Service) Submit(ctx context.Context, id string, req SubmitDraftRequest) (*Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate submit: %w", err)
	}

	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	services := clampLines(draft.SelectedServices())
	products := clampLines(draft.SelectedProducts())

	order := &Order{
		CustomerID:    draft.CustomerID,
		FirstName:     draft.FirstName,
		LastName:      draft.LastName,
		Phone:         draft.Phone,
		Email:         draft.Email,
		PaymentMethod: req.PaymentMethod,
		Status:        StatusPending,
		Remark:        draft.Remark,
		Photos:        draft.Photos,
		Total:         OrderTotal(services, products).StringFixed(2),
	}
	if order.Photos == nil {
		order.Photos = []string{}
	}
	for _, l := range services {
		order.Services = append(order.Services, ServiceLine{
			ServiceID: l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			LineTotal: ServiceLineTotal(l.UnitPrice, l.Discount).StringFixed(2),
		})
	}
	for _, l := range products {
		order.Products = append(order.Products, ProductLine{
			ProductID: l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Discount:  l.Discount,
			LineTotal: ProductLineTotal(l.UnitPrice, l.Quantity, l.Discount).StringFixed(2),
		})
	}

	orderID, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	// The order is durable from here; a failed cleanup only leaves the
	// draft to expire via TTL.
	_ = s.drafts.Delete(ctx, id)

	return s.repo.Get(ctx, orderID)
}

// Get returns an order with its child lines.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// List returns a filtered page of orders.
func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, 0, fmt.Errorf("validate list: %w", err)
	}
	if req.Limit <= 0 || req.Limit > 1000 {
		req.Limit = 50
	}
	return s.repo.List(ctx, req)
}

// ListByCustomer returns a customer's order history.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// UpdateStatus changes an order's status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("validate status: %w", err)
	}
	return s.repo.UpdateStatus(ctx, id, req.Status)
}

// Delete removes an order and its child lines.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) mutate(ctx context.Context, id string, fn func(Draft) Draft) (DraftView, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return DraftView{}, err
	}
	draft = fn(draft)
	if err := s.drafts.Save(ctx, draft); err != nil {
		return DraftView{}, err
	}
	return View(draft), nil
}

// clampLines normalizes operator input at the commit boundary: discounts
// land in [0,100] and product quantities are at least 1. Edits in flight
// keep the raw values.
func clampLines(lines []DraftLine) []DraftLine {
	out := make([]DraftLine, len(lines))
	for i, l := range lines {
		if l.Discount < 0 {
			l.Discount = 0
		}
		if l.Discount > 100 {
			l.Discount = 100
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		out[i] = l
	}
	return out
}
