package catalog

import "time"

// ServiceItem is a sellable treatment with its current price.
type ServiceItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductItem is a sellable retail product. Stock is informational only;
// the order editor never enforces it.
type ProductItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Catalog carries both sellable lists for the order editor. A failed fetch
// leaves the corresponding slice empty and the error recorded; the categories
// load and fail independently.
type Catalog struct {
	Services []ServiceItem `json:"services"`
	Products []ProductItem `json:"products"`

	ServiceErr error `json:"-"`
	ProductErr error `json:"-"`
}

// FindService resolves a service by display name. The boolean is false when
// the name does not match any loaded entry.
func (c Catalog) FindService(name string) (ServiceItem, bool) {
	for _, s := range c.Services {
		if s.Name == name {
			return s, true
		}
	}
	return ServiceItem{}, false
}

// FindProduct resolves a product by display name.
func (c Catalog) FindProduct(name string) (ProductItem, bool) {
	for _, p := range c.Products {
		if p.Name == name {
			return p, true
		}
	}
	return ProductItem{}, false
}
