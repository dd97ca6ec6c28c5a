package customers

// CreateCustomerRequest carries fields for a new customer record.
type CreateCustomerRequest struct {
	FirstName string  `json:"fname" validate:"required,max=100"`
	LastName  string  `json:"lname" validate:"max=100"`
	Phone     string  `json:"phone_no" validate:"required,max=20"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdateCustomerRequest carries optional field updates.
type UpdateCustomerRequest struct {
	FirstName *string `json:"fname,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lname,omitempty" validate:"omitempty,max=100"`
	Phone     *string `json:"phone_no,omitempty" validate:"omitempty,max=20"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

// ListCustomersRequest filters the customer directory.
type ListCustomersRequest struct {
	Search *string `json:"search,omitempty"`
	Limit  int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset int     `json:"offset" validate:"gte=0"`
}
