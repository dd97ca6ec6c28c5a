package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a catalog entry does not exist.
var ErrNotFound = errors.New("catalog entry not found")

// Repository provides access to the sellable services and products tables.
type Repository interface {
	ListServices(ctx context.Context) ([]ServiceItem, error)
	GetService(ctx context.Context, id int64) (*ServiceItem, error)
	CreateService(ctx context.Context, s ServiceItem) (int64, error)
	UpdateService(ctx context.Context, id int64, updates map[string]interface{}) error
	DeleteService(ctx context.Context, id int64) error

	ListProducts(ctx context.Context) ([]ProductItem, error)
	GetProduct(ctx context.Context, id int64) (*ProductItem, error)
	CreateProduct(ctx context.Context, p ProductItem) (int64, error)
	UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error
	DeleteProduct(ctx context.Context, id int64) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed catalog repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) ListServices(ctx context.Context) ([]ServiceItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, price, created_at, updated_at
		FROM services
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var items []ServiceItem
	for rows.Next() {
		var (
			s     ServiceItem
			price pgtype.Numeric
		)
		if err := rows.Scan(&s.ID, &s.Name, &price, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		if f, err := price.Float64Value(); err == nil {
			s.Price = f.Float64
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *pgRepository) GetService(ctx context.Context, id int64) (*ServiceItem, error) {
	var (
		s     ServiceItem
		price pgtype.Numeric
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, price, created_at, updated_at
		FROM services
		WHERE id = $1`, id).Scan(&s.ID, &s.Name, &price, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	if f, err := price.Float64Value(); err == nil {
		s.Price = f.Float64
	}
	return &s, nil
}

func (r *pgRepository) CreateService(ctx context.Context, s ServiceItem) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO services (name, price)
		VALUES ($1, $2)
		RETURNING id`, s.Name, s.Price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert service: %w", err)
	}
	return id, nil
}

func (r *pgRepository) UpdateService(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.applyUpdates(ctx, "services", id, updates)
}

func (r *pgRepository) DeleteService(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) ListProducts(ctx context.Context) ([]ProductItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []ProductItem
	for rows.Next() {
		var (
			p     ProductItem
			price pgtype.Numeric
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if f, err := price.Float64Value(); err == nil {
			p.Price = f.Float64
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *pgRepository) GetProduct(ctx context.Context, id int64) (*ProductItem, error) {
	var (
		p     ProductItem
		price pgtype.Numeric
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products
		WHERE id = $1`, id).Scan(&p.ID, &p.Name, &price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if f, err := price.Float64Value(); err == nil {
		p.Price = f.Float64
	}
	return &p, nil
}

func (r *pgRepository) CreateProduct(ctx context.Context, p ProductItem) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2, $3)
		RETURNING id`, p.Name, p.Price, p.Stock).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

func (r *pgRepository) UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.applyUpdates(ctx, "products", id, updates)
}

func (r *pgRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) applyUpdates(ctx context.Context, table string, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE " + table + " SET updated_at = now()"
	args := []interface{}{id}
	i := 2
	for col, val := range updates {
		query += fmt.Sprintf(", %s = $%d", col, i)
		args = append(args, val)
		i++
	}
	query += " WHERE id = $1"

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
