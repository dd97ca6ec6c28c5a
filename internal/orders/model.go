package orders

import "time"

// Order statuses.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Accepted payment methods.
const (
	PaymentCash   = "Cash"
	PaymentTNG    = "TNG"
	PaymentCredit = "Credit Card"
)

// Order is a persisted order header with its child lines.
type Order struct {
	ID            int64     `json:"order_id"`
	CustomerID    *int64    `json:"user_id,omitempty"`
	FirstName     string    `json:"fname"`
	LastName      string    `json:"lname"`
	Phone         string    `json:"phone_no"`
	Email         *string   `json:"email,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"order_status"`
	Remark        string    `json:"remark"`
	Photos        []string  `json:"photos"`
	Total         string    `json:"total"`
	CreatedAt     time.Time `json:"created_at"`

	Services []ServiceLine `json:"services"`
	Products []ProductLine `json:"products"`
}

// ServiceLine is a persisted per-order service row. UnitPrice and Discount
// are the values copied at submission time; LineTotal is denormalized and
// never recomputed on read.
type ServiceLine struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ServiceID int64   `json:"service_id"`
	Name      string  `json:"service_name"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"`
	LineTotal string  `json:"line_total"`
}

// ProductLine is a persisted per-order product row.
type ProductLine struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"product_name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Discount  float64 `json:"discount"`
	LineTotal string  `json:"line_total"`
}
