package appointments

import "time"

// Appointment statuses.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment is a booked studio visit. Contact fields are mirrored from the
// customer record at booking time so the calendar renders without joins.
type Appointment struct {
	ID         int64     `json:"app_id"`
	CustomerID *int64    `json:"user_id,omitempty"`
	FirstName  string    `json:"fname"`
	LastName   string    `json:"lname"`
	Phone      string    `json:"phone_no"`
	Date       string    `json:"app_date"`
	Time       string    `json:"app_time"`
	Remark     string    `json:"remark"`
	Status     string    `json:"app_status"`
	CreatedAt  time.Time `json:"created_at"`
}
