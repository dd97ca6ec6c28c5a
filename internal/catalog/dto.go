package catalog

// CreateServiceRequest carries fields for a new catalog service.
type CreateServiceRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Price float64 `json:"price" validate:"gte=0"`
}

// UpdateServiceRequest carries optional service updates.
type UpdateServiceRequest struct {
	Name  *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// CreateProductRequest carries fields for a new catalog product.
type CreateProductRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Price float64 `json:"price" validate:"gte=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest carries optional product updates.
type UpdateProductRequest struct {
	Name  *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
}
