package customers

import "time"

// Customer is a studio client reachable by phone.
type Customer struct {
	ID        int64     `json:"user_id"`
	FirstName string    `json:"fname"`
	LastName  string    `json:"lname"`
	Phone     string    `json:"phone_no"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
