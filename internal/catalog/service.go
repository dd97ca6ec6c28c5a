package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Service wraps catalog maintenance rules.
type Service struct {
	repo     Repository
	loader   *Loader
	validate *validator.Validate
}

// NewService constructs the catalog Service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		loader:   NewLoader(repo),
		validate: validator.New(),
	}
}

// Load returns the full sellable catalog for the order editor.
func (s *Service) Load(ctx context.Context) (Catalog, error) {
	return s.loader.Load(ctx)
}

// CreateService adds a sellable treatment.
func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*ServiceItem, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate service: %w", err)
	}

	id, err := s.repo.CreateService(ctx, ServiceItem{Name: req.Name, Price: req.Price})
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return s.repo.GetService(ctx, id)
}

// UpdateService applies partial changes to a treatment. Price changes never
// touch existing orders; lines snapshot their price when selected.
func (s *Service) UpdateService(ctx context.Context, id int64, req UpdateServiceRequest) (*ServiceItem, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate service: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateService(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update service: %w", err)
		}
	}
	return s.repo.GetService(ctx, id)
}

// DeleteService removes a treatment from the catalog.
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	return s.repo.DeleteService(ctx, id)
}

// GetService returns one treatment by ID.
func (s *Service) GetService(ctx context.Context, id int64) (*ServiceItem, error) {
	return s.repo.GetService(ctx, id)
}

// CreateProduct adds a retail product.
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductItem, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate product: %w", err)
	}

	id, err := s.repo.CreateProduct(ctx, ProductItem{Name: req.Name, Price: req.Price, Stock: req.Stock})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.repo.GetProduct(ctx, id)
}

// UpdateProduct applies partial changes to a retail product.
func (s *Service) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*ProductItem, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate product: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
	}
	return s.repo.GetProduct(ctx, id)
}

// DeleteProduct removes a retail product from the catalog.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

// GetProduct returns one retail product by ID.
func (s *Service) GetProduct(ctx context.Context, id int64) (*ProductItem, error) {
	return s.repo.GetProduct(ctx, id)
}
