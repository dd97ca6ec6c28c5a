package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Loader fetches both sellable categories for the order editor.
type Loader struct {
	repo Repository
}

// NewLoader constructs a Loader over the catalog repository.
func NewLoader(repo Repository) *Loader {
	return &Loader{repo: repo}
}

// Load fetches services and products concurrently. The categories fail
// independently: an error on one side is recorded on the returned Catalog
// while the other side's data is kept, so the editor can still sell from
// whichever list loaded. Load itself only errors on context cancellation.
func (l *Loader) Load(ctx context.Context) (Catalog, error) {
	var cat Catalog

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := l.repo.ListServices(gctx)
		if err != nil {
			cat.ServiceErr = err
			return nil
		}
		cat.Services = items
		return nil
	})
	g.Go(func() error {
		items, err := l.repo.ListProducts(gctx)
		if err != nil {
			cat.ProductErr = err
			return nil
		}
		cat.Products = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return Catalog{}, err
	}

	if cat.Services == nil {
		cat.Services = []ServiceItem{}
	}
	if cat.Products == nil {
		cat.Products = []ProductItem{}
	}
	return cat, ctx.Err()
}
