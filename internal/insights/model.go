package insights

import "time"

// Summary holds the dashboard numbers for one date range.
type Summary struct {
	From              string         `json:"from"`
	To                string         `json:"to"`
	TotalSales        string         `json:"total_sales"`
	TotalSalesDisplay string         `json:"total_sales_display"`
	OrderStatus       map[string]int `json:"order_status"`
	AppointmentStatus map[string]int `json:"appointment_status"`
	GeneratedAt       time.Time      `json:"generated_at"`
}
