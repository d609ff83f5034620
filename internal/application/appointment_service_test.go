package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/pkg/notify"
)

func newApptFixture(t *testing.T) (*AppointmentService, *mockAppointmentRepo, *mockPatientRepo, *mockDoctorRepo, *capturePublisher) {
	t.Helper()
	appts := &mockAppointmentRepo{}
	patients := &mockPatientRepo{}
	doctors := &mockDoctorRepo{}
	pub := &capturePublisher{}
	svc := NewAppointmentService(appts, patients, doctors, pub, testLogger())
	return svc, appts, patients, doctors, pub
}

func fixtureParties(t *testing.T) (*entity.Patient, *entity.Doctor) {
	t.Helper()
	phone, err := valueobject.NewPhoneNumber("91234567")
	require.NoError(t, err)
	email, err := valueobject.NewEmailAddress("jane@example.com")
	require.NoError(t, err)
	p := &entity.Patient{
		ID: valueobject.NewPatientID(), FirstName: "Jane", LastName: "Tan",
		Email: email, PhoneNumber: phone,
	}
	demail, err := valueobject.NewEmailAddress("ml.tan@careloop.local")
	require.NoError(t, err)
	d := &entity.Doctor{
		ID: valueobject.NewDoctorID(), FirstName: "Mei Ling", LastName: "Tan",
		Email: demail, Specialization: "General Practice", Active: true,
	}
	return p, d
}

func TestBook_DefaultDurationPerType(t *testing.T) {
	svc, appts, patients, doctors, pub := newApptFixture(t)
	p, d := fixtureParties(t)

	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	appts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Appointment")).Return(nil)
	patients.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	doctors.On("GetByID", mock.Anything, d.ID).Return(d, nil)

	a, err := svc.Book(context.Background(), BookAppointmentInput{
		PatientID: p.ID,
		DoctorID:  d.ID,
		Type:      valueobject.TypeFollowUp,
		StartTime: start,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusScheduled, a.Status)
	assert.Equal(t, 30, a.Duration.Minutes())
	assert.Equal(t, start.Add(30*time.Minute), a.EndTime())
	appts.AssertExpectations(t)

	// Confirmation goes out on both channels.
	require.Len(t, pub.jobs, 2)
	assert.Equal(t, notify.ChannelSMS, pub.jobs[0].Channel)
	assert.Equal(t, "+6591234567", pub.jobs[0].To)
	assert.Contains(t, pub.jobs[0].Body, "Dr Mei Ling Tan")
	assert.Equal(t, notify.ChannelEmail, pub.jobs[1].Channel)
	assert.Equal(t, "jane@example.com", pub.jobs[1].To)
}

func TestBook_ExplicitDurationValidated(t *testing.T) {
	svc, _, _, _, _ := newApptFixture(t)
	p, d := fixtureParties(t)

	_, err := svc.Book(context.Background(), BookAppointmentInput{
		PatientID:    p.ID,
		DoctorID:     d.ID,
		Type:         valueobject.TypeCheckUp,
		StartTime:    time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		DurationMins: 40,
	})
	var rerr *valueobject.RangeError
	require.ErrorAs(t, err, &rerr)
}

func TestBook_RejectsUnknownType(t *testing.T) {
	svc, _, _, _, _ := newApptFixture(t)
	p, d := fixtureParties(t)

	_, err := svc.Book(context.Background(), BookAppointmentInput{
		PatientID: p.ID,
		DoctorID:  d.ID,
		Type:      valueobject.AppointmentType("HOUSE_CALL"),
		StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrUnknownAppointmentType)
}

func TestBook_RejectsOutsideOperatingHours(t *testing.T) {
	svc, _, _, _, _ := newApptFixture(t)
	p, d := fixtureParties(t)

	// FIRST_CONSULT defaults to 90 minutes; starting at 17:30 overruns close.
	_, err := svc.Book(context.Background(), BookAppointmentInput{
		PatientID: p.ID,
		DoctorID:  d.ID,
		Type:      valueobject.TypeFirstConsult,
		StartTime: time.Date(2026, 9, 7, 17, 30, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestBook_DoubleBookingSurfacesConflict(t *testing.T) {
	svc, appts, _, _, _ := newApptFixture(t)
	p, d := fixtureParties(t)

	appts.On("Create", mock.Anything, mock.Anything).Return(repository.ErrConflict)

	_, err := svc.Book(context.Background(), BookAppointmentInput{
		PatientID: p.ID,
		DoctorID:  d.ID,
		Type:      valueobject.TypeCheckUp,
		StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestChangeStatus_HappyPath(t *testing.T) {
	svc, appts, _, _, _ := newApptFixture(t)
	id := valueobject.NewAppointmentID()

	a := &entity.Appointment{ID: id, Status: entity.StatusScheduled}
	appts.On("GetByID", mock.Anything, id).Return(a, nil)
	appts.On("UpdateStatus", mock.Anything, id, entity.StatusScheduled, entity.StatusInProgress).Return(nil)

	got, err := svc.ChangeStatus(context.Background(), id, entity.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, got.Status)
	appts.AssertExpectations(t)
}

func TestChangeStatus_RejectsIllegalTransition(t *testing.T) {
	svc, appts, _, _, _ := newApptFixture(t)
	id := valueobject.NewAppointmentID()

	a := &entity.Appointment{ID: id, Status: entity.StatusCompleted}
	appts.On("GetByID", mock.Anything, id).Return(a, nil)

	_, err := svc.ChangeStatus(context.Background(), id, entity.StatusInProgress)
	require.ErrorIs(t, err, entity.ErrInvalidStatusTransition)
	appts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatus_CancellationQueuesSMS(t *testing.T) {
	svc, appts, patients, doctors, pub := newApptFixture(t)
	p, d := fixtureParties(t)
	id := valueobject.NewAppointmentID()

	a := &entity.Appointment{
		ID: id, PatientID: p.ID, DoctorID: d.ID,
		Status:    entity.StatusScheduled,
		StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
	}
	appts.On("GetByID", mock.Anything, id).Return(a, nil)
	appts.On("UpdateStatus", mock.Anything, id, entity.StatusScheduled, entity.StatusCancelled).Return(nil)
	patients.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	doctors.On("GetByID", mock.Anything, d.ID).Return(d, nil)

	_, err := svc.ChangeStatus(context.Background(), id, entity.StatusCancelled)
	require.NoError(t, err)

	require.Len(t, pub.jobs, 1)
	assert.Equal(t, notify.ChannelSMS, pub.jobs[0].Channel)
	assert.Contains(t, pub.jobs[0].Body, "cancelled")
}

func TestChangeStatus_StaleGuardSurfacesConflict(t *testing.T) {
	svc, appts, _, _, _ := newApptFixture(t)
	id := valueobject.NewAppointmentID()

	a := &entity.Appointment{ID: id, Status: entity.StatusScheduled}
	appts.On("GetByID", mock.Anything, id).Return(a, nil)
	appts.On("UpdateStatus", mock.Anything, id, entity.StatusScheduled, entity.StatusInProgress).
		Return(repository.ErrConflict)

	_, err := svc.ChangeStatus(context.Background(), id, entity.StatusInProgress)
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestReschedule_OnlyScheduled(t *testing.T) {
	svc, appts, _, _, _ := newApptFixture(t)
	id := valueobject.NewAppointmentID()

	dur, err := valueobject.NewAppointmentDuration(30)
	require.NoError(t, err)
	a := &entity.Appointment{ID: id, Status: entity.StatusInProgress, Duration: dur}
	appts.On("GetByID", mock.Anything, id).Return(a, nil)

	_, err = svc.Reschedule(context.Background(), id, RescheduleInput{
		StartTime: time.Date(2026, 9, 8, 11, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrNotReschedulable)
}

func TestReschedule_MovesSlot(t *testing.T) {
	svc, appts, _, _, _ := newApptFixture(t)
	id := valueobject.NewAppointmentID()

	dur, err := valueobject.NewAppointmentDuration(30)
	require.NoError(t, err)
	a := &entity.Appointment{
		ID: id, Status: entity.StatusScheduled, Duration: dur,
		StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
	}
	appts.On("GetByID", mock.Anything, id).Return(a, nil)
	appts.On("Update", mock.Anything, a).Return(nil)

	newStart := time.Date(2026, 9, 8, 14, 0, 0, 0, time.UTC)
	got, err := svc.Reschedule(context.Background(), id, RescheduleInput{
		StartTime:    newStart,
		DurationMins: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, got.StartTime)
	assert.Equal(t, 60, got.Duration.Minutes())
	appts.AssertExpectations(t)
}

func TestSendReminder_QueuesSMS(t *testing.T) {
	svc, appts, patients, doctors, pub := newApptFixture(t)
	p, d := fixtureParties(t)
	id := valueobject.NewAppointmentID()

	a := &entity.Appointment{
		ID: id, PatientID: p.ID, DoctorID: d.ID,
		Status:    entity.StatusScheduled,
		StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
	}
	appts.On("GetByID", mock.Anything, id).Return(a, nil)
	patients.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	doctors.On("GetByID", mock.Anything, d.ID).Return(d, nil)

	require.NoError(t, svc.SendReminder(context.Background(), id))
	require.Len(t, pub.jobs, 1)
	assert.Contains(t, pub.jobs[0].Body, "Reminder")
}
