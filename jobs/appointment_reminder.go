package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/velora-studio/velora/internal/appointments"
)

// AppointmentReminderJob finds the next day's scheduled appointments and
// emits a reminder log line per visit. Notification delivery (SMS/WhatsApp)
// hangs off these entries once a provider is chosen.
type AppointmentReminderJob struct {
	Appointments *appointments.Service
	Logger       *slog.Logger
	clock        func() time.Time
}

// NewAppointmentReminderJob wires dependencies for the reminder handler.
func NewAppointmentReminderJob(svc *appointments.Service, logger *slog.Logger) *AppointmentReminderJob {
	return &AppointmentReminderJob{
		Appointments: svc,
		Logger:       logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes appointment reminder tasks.
func (j *AppointmentReminderJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Appointments == nil {
		return errors.New("appointment reminder: handler not configured")
	}
	var payload AppointmentReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	date := payload.Date
	if date == "" {
		date = j.clock().AddDate(0, 0, 1).Format("2006-01-02")
	}

	logger := j.Logger.With(slog.String("date", date))
	logger.Info("starting appointment reminder scan")

	items, err := j.Appointments.ScheduledOn(ctx, date)
	if err != nil {
		logger.Error("load scheduled appointments", slog.Any("error", err))
		return err
	}

	for _, a := range items {
		logger.Info("appointment reminder due",
			slog.Int64("app_id", a.ID),
			slog.String("name", a.FirstName+" "+a.LastName),
			slog.String("phone", a.Phone),
			slog.String("time", a.Time),
		)
	}

	logger.Info("completed appointment reminder scan", slog.Int("appointments", len(items)))
	return nil
}
