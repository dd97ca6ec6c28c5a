package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when an appointment does not exist.
var ErrNotFound = errors.New("appointment not found")

// Repository persists appointments.
type Repository interface {
	Get(ctx context.Context, id int64) (*Appointment, error)
	List(ctx context.Context, req ListAppointmentsRequest) ([]Appointment, error)
	ListByDate(ctx context.Context, date string, status string) ([]Appointment, error)
	Create(ctx context.Context, a Appointment) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed appointment repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const appointmentColumns = `app_id, user_id, fname, lname, phone_no,
	to_char(app_date, 'YYYY-MM-DD'), to_char(app_time, 'HH24:MI'),
	remark, app_status, created_at`

func (r *pgRepository) Get(ctx context.Context, id int64) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE app_id = $1`, id)

	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (r *pgRepository) List(ctx context.Context, req ListAppointmentsRequest) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	args := []interface{}{}
	i := 1
	if req.From != nil {
		query += fmt.Sprintf(" AND app_date >= $%d::date", i)
		args = append(args, *req.From)
		i++
	}
	if req.To != nil {
		query += fmt.Sprintf(" AND app_date <= $%d::date", i)
		args = append(args, *req.To)
		i++
	}
	if req.Status != nil {
		query += fmt.Sprintf(" AND app_status = $%d", i)
		args = append(args, *req.Status)
		i++
	}
	query += " ORDER BY app_date, app_time"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *pgRepository) ListByDate(ctx context.Context, date string, status string) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE app_date = $1::date AND app_status = $2
		ORDER BY app_time`, date, status)
	if err != nil {
		return nil, fmt.Errorf("list appointments by date: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *pgRepository) Create(ctx context.Context, a Appointment) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (user_id, fname, lname, phone_no, app_date, app_time, remark, app_status)
		VALUES ($1, $2, $3, $4, $5::date, $6::time, $7, $8)
		RETURNING app_id`,
		a.CustomerID, a.FirstName, a.LastName, a.Phone, a.Date, a.Time, a.Remark, a.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert appointment: %w", err)
	}
	return id, nil
}

func (r *pgRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE appointments SET app_id = app_id"
	args := []interface{}{id}
	i := 2
	for col, val := range updates {
		switch col {
		case "app_date":
			query += fmt.Sprintf(", app_date = $%d::date", i)
		case "app_time":
			query += fmt.Sprintf(", app_time = $%d::time", i)
		default:
			query += fmt.Sprintf(", %s = $%d", col, i)
		}
		args = append(args, val)
		i++
	}
	query += " WHERE app_id = $1"

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE app_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var items []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var (
		a          Appointment
		customerID pgtype.Int8
	)
	err := row.Scan(&a.ID, &customerID, &a.FirstName, &a.LastName, &a.Phone,
		&a.Date, &a.Time, &a.Remark, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		a.CustomerID = &customerID.Int64
	}
	return &a, nil
}
