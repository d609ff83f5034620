package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

func newQueueFixture(t *testing.T) (*QueueService, *mockAppointmentRepo, *mockPatientRepo) {
	t.Helper()
	appts := &mockAppointmentRepo{}
	patients := &mockPatientRepo{}
	doctors := &mockDoctorRepo{}
	apptSvc := NewAppointmentService(appts, patients, doctors, &capturePublisher{}, testLogger())
	svc := NewQueueService(apptSvc, patients, nil, testLogger())
	return svc, appts, patients
}

func scheduledAppointment(t *testing.T, start time.Time) *entity.Appointment {
	t.Helper()
	dur, err := valueobject.NewAppointmentDuration(30)
	require.NoError(t, err)
	return &entity.Appointment{
		ID:        valueobject.NewAppointmentID(),
		PatientID: valueobject.NewPatientID(),
		DoctorID:  valueobject.NewDoctorID(),
		Type:      valueobject.TypeCheckUp,
		Status:    entity.StatusScheduled,
		StartTime: start,
		Duration:  dur,
	}
}

func TestCheckIn_RejectsAnotherPatientsAppointment(t *testing.T) {
	svc, appts, _ := newQueueFixture(t)

	a := scheduledAppointment(t, time.Now().Add(2*time.Hour))
	appts.On("GetByID", mock.Anything, a.ID).Return(a, nil)

	other := valueobject.NewPatientID()
	ticket, err := svc.CheckIn(context.Background(), a.ID, &other)

	require.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, ticket)
}

func TestCheckIn_OwnerPassesOwnershipGuard(t *testing.T) {
	svc, appts, _ := newQueueFixture(t)

	// Appointment is the caller's own but not today, so the flow gets past
	// the ownership guard and fails on the same-day rule instead.
	a := scheduledAppointment(t, time.Now().Add(48*time.Hour))
	appts.On("GetByID", mock.Anything, a.ID).Return(a, nil)

	_, err := svc.CheckIn(context.Background(), a.ID, &a.PatientID)

	require.ErrorIs(t, err, ErrNotCheckedInToday)
}
