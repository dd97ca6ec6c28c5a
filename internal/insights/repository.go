package insights

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository aggregates dashboard numbers from the order and appointment
// tables.
type Repository interface {
	SalesTotal(ctx context.Context, from, to string) (float64, error)
	OrderStatusCounts(ctx context.Context, from, to string) (map[string]int, error)
	AppointmentStatusCounts(ctx context.Context, from, to string) (map[string]int, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed insights repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) SalesTotal(ctx context.Context, from, to string) (float64, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1::date AND created_at < $2::date + interval '1 day'`,
		from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sales total: %w", err)
	}

	f, err := total.Float64Value()
	if err != nil {
		return 0, fmt.Errorf("sales total value: %w", err)
	}
	return f.Float64, nil
}

func (r *pgRepository) OrderStatusCounts(ctx context.Context, from, to string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_status, count(*)
		FROM orders
		WHERE created_at >= $1::date AND created_at < $2::date + interval '1 day'
		GROUP BY order_status`, from, to)
	if err != nil {
		return nil, fmt.Errorf("order status counts: %w", err)
	}
	defer rows.Close()

	return collectCounts(rows)
}

func (r *pgRepository) AppointmentStatusCounts(ctx context.Context, from, to string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT app_status, count(*)
		FROM appointments
		WHERE app_date >= $1::date AND app_date <= $2::date
		GROUP BY app_status`, from, to)
	if err != nil {
		return nil, fmt.Errorf("appointment status counts: %w", err)
	}
	defer rows.Close()

	return collectCounts(rows)
}

func collectCounts(rows pgx.Rows) (map[string]int, error) {
	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
