package appointments

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Service wraps appointment scheduling rules.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs the appointments Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// Create books a new appointment. New bookings always start Scheduled.
func (s *Service) Create(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate appointment: %w", err)
	}

	id, err := s.repo.Create(ctx, Appointment{
		CustomerID: req.CustomerID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Date:       req.Date,
		Time:       req.Time,
		Remark:     req.Remark,
		Status:     StatusScheduled,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Update reschedules or amends an appointment.
func (s *Service) Update(ctx context.Context, id int64, req UpdateAppointmentRequest) (*Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate appointment: %w", err)
	}

	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["fname"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["lname"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone_no"] = *req.Phone
	}
	if req.Date != nil {
		updates["app_date"] = *req.Date
	}
	if req.Time != nil {
		updates["app_time"] = *req.Time
	}
	if req.Remark != nil {
		updates["remark"] = *req.Remark
	}
	if req.Status != nil {
		updates["app_status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update appointment: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Get returns one appointment.
func (s *Service) Get(ctx context.Context, id int64) (*Appointment, error) {
	return s.repo.Get(ctx, id)
}

// List returns appointments in a date range for the calendar view.
func (s *Service) List(ctx context.Context, req ListAppointmentsRequest) ([]Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate list: %w", err)
	}
	return s.repo.List(ctx, req)
}

// ScheduledOn returns the scheduled appointments for one day. The reminder
// job uses this to find tomorrow's visits.
func (s *Service) ScheduledOn(ctx context.Context, date string) ([]Appointment, error) {
	return s.repo.ListByDate(ctx, date, StatusScheduled)
}

// Delete removes an appointment.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
