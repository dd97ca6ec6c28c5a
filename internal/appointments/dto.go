package appointments

// CreateAppointmentRequest books a new visit.
type CreateAppointmentRequest struct {
	CustomerID *int64 `json:"user_id,omitempty"`
	FirstName  string `json:"fname" validate:"required,max=100"`
	LastName   string `json:"lname" validate:"omitempty,max=100"`
	Phone      string `json:"phone_no" validate:"required,max=30"`
	Date       string `json:"app_date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"app_time" validate:"required,datetime=15:04"`
	Remark     string `json:"remark"`
}

// UpdateAppointmentRequest reschedules or amends a visit. All fields are
// optional; status transitions also go through here.
type UpdateAppointmentRequest struct {
	FirstName *string `json:"fname,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lname,omitempty" validate:"omitempty,max=100"`
	Phone     *string `json:"phone_no,omitempty" validate:"omitempty,max=30"`
	Date      *string `json:"app_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time      *string `json:"app_time,omitempty" validate:"omitempty,datetime=15:04"`
	Remark    *string `json:"remark,omitempty"`
	Status    *string `json:"app_status,omitempty" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
}

// ScheduleReminderRequest selects the day for an on-demand reminder scan.
// An empty date means tomorrow.
type ScheduleReminderRequest struct {
	Date string `json:"date,omitempty"`
}

// ListAppointmentsRequest filters the calendar range.
type ListAppointmentsRequest struct {
	From   *string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To     *string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Status *string `json:"status" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
}
