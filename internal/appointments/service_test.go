package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	appts  map[int64]*Appointment
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{appts: make(map[int64]*Appointment), nextID: 1}
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockRepo) List(ctx context.Context, req ListAppointmentsRequest) ([]Appointment, error) {
	var out []Appointment
	for _, a := range m.appts {
		if req.From != nil && a.Date < *req.From {
			continue
		}
		if req.To != nil && a.Date > *req.To {
			continue
		}
		if req.Status != nil && a.Status != *req.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockRepo) ListByDate(ctx context.Context, date string, status string) ([]Appointment, error) {
	var out []Appointment
	for _, a := range m.appts {
		if a.Date == date && a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockRepo) Create(ctx context.Context, a Appointment) (int64, error) {
	a.ID = m.nextID
	m.appts[a.ID] = &a
	m.nextID++
	return a.ID, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	a, ok := m.appts[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["app_date"]; ok {
		a.Date = v.(string)
	}
	if v, ok := updates["app_time"]; ok {
		a.Time = v.(string)
	}
	if v, ok := updates["app_status"]; ok {
		a.Status = v.(string)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.appts[id]; !ok {
		return ErrNotFound
	}
	delete(m.appts, id)
	return nil
}

func TestCreateStartsScheduled(t *testing.T) {
	svc := NewService(newMockRepo())

	appt, err := svc.Create(context.Background(), CreateAppointmentRequest{
		FirstName: "Mei",
		Phone:     "0123456789",
		Date:      "2026-09-01",
		Time:      "14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, appt.Status)
	assert.Equal(t, "2026-09-01", appt.Date)
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), CreateAppointmentRequest{
		FirstName: "Mei",
		Phone:     "0123456789",
		Date:      "01/09/2026",
		Time:      "14:30",
	})
	require.Error(t, err)
}

func TestRescheduleAndComplete(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateAppointmentRequest{
		FirstName: "Mei", Phone: "012", Date: "2026-09-01", Time: "14:30",
	})
	require.NoError(t, err)

	date := "2026-09-03"
	tm := "10:00"
	updated, err := svc.Update(ctx, appt.ID, UpdateAppointmentRequest{Date: &date, Time: &tm})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-03", updated.Date)
	assert.Equal(t, "10:00", updated.Time)
	assert.Equal(t, StatusScheduled, updated.Status)

	done := StatusCompleted
	updated, err = svc.Update(ctx, appt.ID, UpdateAppointmentRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateAppointmentRequest{
		FirstName: "Mei", Phone: "012", Date: "2026-09-01", Time: "14:30",
	})
	require.NoError(t, err)

	bad := "Postponed"
	_, err = svc.Update(ctx, appt.ID, UpdateAppointmentRequest{Status: &bad})
	require.Error(t, err)
}

func TestListDateRange(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	for _, date := range []string{"2026-09-01", "2026-09-05", "2026-09-20"} {
		_, err := svc.Create(ctx, CreateAppointmentRequest{
			FirstName: "Mei", Phone: "012", Date: date, Time: "09:00",
		})
		require.NoError(t, err)
	}

	from, to := "2026-09-01", "2026-09-10"
	items, err := svc.List(ctx, ListAppointmentsRequest{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestScheduledOn(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateAppointmentRequest{
		FirstName: "Mei", Phone: "012", Date: "2026-09-01", Time: "09:00",
	})
	require.NoError(t, err)

	cancelled := StatusCancelled
	_, err = svc.Update(ctx, appt.ID, UpdateAppointmentRequest{Status: &cancelled})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateAppointmentRequest{
		FirstName: "Lin", Phone: "013", Date: "2026-09-01", Time: "11:00",
	})
	require.NoError(t, err)

	items, err := svc.ScheduledOn(ctx, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lin", items[0].FirstName)
}
