package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAppointmentReminder scans tomorrow's scheduled appointments.
	TaskAppointmentReminder = "appointment:reminder"
	// TaskInsightsWarmup precomputes the default dashboard range.
	TaskInsightsWarmup = "insights:warmup"
)

// AppointmentReminderPayload selects the day to remind for. An empty Date
// means "tomorrow" at execution time.
type AppointmentReminderPayload struct {
	Date string `json:"date,omitempty"`
}

// NewAppointmentReminderTask constructs a reminder task.
func NewAppointmentReminderTask(payload AppointmentReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAppointmentReminder, data), nil
}

// InsightsWarmupPayload carries no options yet; the job always warms the
// default range.
type InsightsWarmupPayload struct{}

// NewInsightsWarmupTask constructs a warmup task.
func NewInsightsWarmupTask() (*asynq.Task, error) {
	data, err := json.Marshal(InsightsWarmupPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInsightsWarmup, data), nil
}
