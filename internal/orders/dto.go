package orders

// UpdateDraftHeaderRequest carries the header fields of the order form.
// All fields are optional; only provided values are applied.
type UpdateDraftHeaderRequest struct {
	CustomerID    *int64   `json:"user_id,omitempty"`
	FirstName     *string  `json:"fname,omitempty" validate:"omitempty,max=100"`
	LastName      *string  `json:"lname,omitempty" validate:"omitempty,max=100"`
	Phone         *string  `json:"phone_no,omitempty" validate:"omitempty,max=30"`
	Email         *string  `json:"email,omitempty" validate:"omitempty,email"`
	PaymentMethod *string  `json:"payment_method,omitempty" validate:"omitempty,oneof=Cash TNG 'Credit Card'"`
	Remark        *string  `json:"remark,omitempty"`
	Photos        []string `json:"photos,omitempty" validate:"omitempty,dive,url"`
}

// SelectItemRequest names the catalog entry for a line. An empty name clears
// the selection.
type SelectItemRequest struct {
	Name string `json:"name"`
}

// SetDiscountRequest carries a raw discount input.
type SetDiscountRequest struct {
	Value float64 `json:"value"`
}

// SetQuantityRequest carries a raw quantity input.
type SetQuantityRequest struct {
	Value int `json:"value"`
}

// SubmitDraftRequest finalizes a draft into a persisted order.
type SubmitDraftRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=Cash TNG 'Credit Card'"`
}

// ListOrdersRequest filters the order list.
type ListOrdersRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=Pending Completed Cancelled"`
	From   *string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To     *string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit  int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset int     `json:"offset" validate:"gte=0"`
}

// UpdateStatusRequest changes an order's status.
type UpdateStatusRequest struct {
	Status string `json:"order_status" validate:"required,oneof=Pending Completed Cancelled"`
}
