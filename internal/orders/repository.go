package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velora-studio/velora/internal/platform/db"
)

// ErrNotFound is returned when an order does not exist.
var ErrNotFound = errors.New("order not found")

// Repository persists orders. Create and Delete span the header and all
// child rows in a single transaction.
type Repository interface {
	Create(ctx context.Context, o *Order) (int64, error)
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed order repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

// Create inserts the header and every child line atomically. The generated
// order ID comes back from the header insert itself; a failure anywhere
// rolls the whole order back, so no orphaned headers survive.
func (r *pgRepository) Create(ctx context.Context, o *Order) (int64, error) {
	var orderID int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (user_id, fname, lname, phone_no, email,
				payment_method, order_status, remark, photos, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING order_id`,
			o.CustomerID, o.FirstName, o.LastName, o.Phone, o.Email,
			o.PaymentMethod, o.Status, o.Remark, o.Photos, o.Total,
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, l := range o.Services {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_services (order_id, service_id, service_name,
					unit_price, discount, line_total)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				orderID, l.ServiceID, l.Name, l.UnitPrice, l.Discount, l.LineTotal)
			if err != nil {
				return fmt.Errorf("insert order service: %w", err)
			}
		}
		for _, l := range o.Products {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_products (order_id, product_id, product_name,
					unit_price, quantity, discount, line_total)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				orderID, l.ProductID, l.Name, l.UnitPrice, l.Quantity, l.Discount, l.LineTotal)
			if err != nil {
				return fmt.Errorf("insert order product: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *pgRepository) Get(ctx context.Context, id int64) (*Order, error) {
	o, err := r.scanHeader(ctx, r.pool.QueryRow(ctx, `
		SELECT order_id, user_id, fname, lname, phone_no, email,
			payment_method, order_status, remark, photos, total::text, created_at
		FROM orders
		WHERE order_id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *pgRepository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	i := 1
	if req.Status != nil {
		where += fmt.Sprintf(" AND order_status = $%d", i)
		args = append(args, *req.Status)
		i++
	}
	if req.From != nil {
		where += fmt.Sprintf(" AND created_at >= $%d::date", i)
		args = append(args, *req.From)
		i++
	}
	if req.To != nil {
		where += fmt.Sprintf(" AND created_at < $%d::date + interval '1 day'", i)
		args = append(args, *req.To)
		i++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `
		SELECT order_id, user_id, fname, lname, phone_no, email,
			payment_method, order_status, remark, photos, total::text, created_at
		FROM orders` + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders, err := collectHeaders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *pgRepository) ListByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, user_id, fname, lname, phone_no, email,
			payment_method, order_status, remark, photos, total::text, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	defer rows.Close()

	return collectHeaders(rows)
}

func (r *pgRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET order_status = $2 WHERE order_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the header and its children in one transaction.
func (r *pgRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_services WHERE order_id = $1`, id); err != nil {
			return fmt.Errorf("delete order services: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_products WHERE order_id = $1`, id); err != nil {
			return fmt.Errorf("delete order products: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *pgRepository) scanHeader(ctx context.Context, row pgx.Row) (*Order, error) {
	o, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *pgRepository) loadChildren(ctx context.Context, o *Order) error {
	srows, err := r.pool.Query(ctx, `
		SELECT id, order_id, service_id, service_name, unit_price, discount, line_total::text
		FROM order_services
		WHERE order_id = $1
		ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("load order services: %w", err)
	}
	defer srows.Close()

	for srows.Next() {
		var (
			l     ServiceLine
			price pgtype.Numeric
		)
		if err := srows.Scan(&l.ID, &l.OrderID, &l.ServiceID, &l.Name, &price, &l.Discount, &l.LineTotal); err != nil {
			return fmt.Errorf("scan order service: %w", err)
		}
		if f, err := price.Float64Value(); err == nil {
			l.UnitPrice = f.Float64
		}
		o.Services = append(o.Services, l)
	}
	if err := srows.Err(); err != nil {
		return err
	}

	prows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, discount, line_total::text
		FROM order_products
		WHERE order_id = $1
		ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("load order products: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var (
			l     ProductLine
			price pgtype.Numeric
		)
		if err := prows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Name, &price, &l.Quantity, &l.Discount, &l.LineTotal); err != nil {
			return fmt.Errorf("scan order product: %w", err)
		}
		if f, err := price.Float64Value(); err == nil {
			l.UnitPrice = f.Float64
		}
		o.Products = append(o.Products, l)
	}
	return prows.Err()
}

func collectHeaders(rows pgx.Rows) ([]Order, error) {
	var orders []Order
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func scanOrderRow(row pgx.Row) (*Order, error) {
	var (
		o          Order
		customerID pgtype.Int8
		email      pgtype.Text
	)
	err := row.Scan(&o.ID, &customerID, &o.FirstName, &o.LastName, &o.Phone, &email,
		&o.PaymentMethod, &o.Status, &o.Remark, &o.Photos, &o.Total, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		o.CustomerID = &customerID.Int64
	}
	if email.Valid {
		o.Email = &email.String
	}
	if o.Photos == nil {
		o.Photos = []string{}
	}
	return &o, nil
}
