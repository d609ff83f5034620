package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/pkg/notify"
)

var (
	ErrOutsideOperatingHours  = errors.New("appointment does not fit clinic operating hours")
	ErrUnknownAppointmentType = errors.New("unknown appointment type")
	ErrNotReschedulable       = errors.New("only scheduled appointments can be rescheduled")
)

// Publisher is the notification queue contract (satisfied by the Rabbit
// publisher in pkg/helpers).
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AppointmentService owns the booking rules and the only status mutation
// path. Notifications are formatted here and handed to the queue; delivery
// is the worker's problem.
type AppointmentService struct {
	Appointments repository.AppointmentRepository
	Patients     repository.PatientRepository
	Doctors      repository.DoctorRepository
	Pub          Publisher
	Logger       *logrus.Logger
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	pub Publisher,
	logger *logrus.Logger,
) *AppointmentService {
	return &AppointmentService{
		Appointments: appointments,
		Patients:     patients,
		Doctors:      doctors,
		Pub:          pub,
		Logger:       logger,
	}
}

type BookAppointmentInput struct {
	PatientID    valueobject.PatientID
	DoctorID     valueobject.DoctorID
	Type         valueobject.AppointmentType
	StartTime    time.Time
	DurationMins int // 0 means use the per-type default
	Reason       string
}

// Book creates a SCHEDULED appointment. With no explicit duration the
// per-type default applies (FIRST_CONSULT 90, CHECK_UP/FOLLOW_UP 30).
func (s *AppointmentService) Book(ctx context.Context, in BookAppointmentInput) (*entity.Appointment, error) {
	if !in.Type.IsValid() {
		return nil, ErrUnknownAppointmentType
	}

	var dur valueobject.AppointmentDuration
	if in.DurationMins == 0 {
		dur = valueobject.DurationForType(in.Type)
	} else {
		var err error
		dur, err = valueobject.NewAppointmentDuration(in.DurationMins)
		if err != nil {
			return nil, err
		}
	}
	if !dur.FitsOperatingHours(in.StartTime) {
		return nil, ErrOutsideOperatingHours
	}

	a := &entity.Appointment{
		ID:        valueobject.NewAppointmentID(),
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Type:      in.Type,
		Status:    entity.StatusScheduled,
		StartTime: in.StartTime,
		Duration:  dur,
		Reason:    in.Reason,
	}
	if err := s.Appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"appointment_id": a.ID,
		"patient_id":     a.PatientID,
		"doctor_id":      a.DoctorID,
		"type":           a.Type,
	}).Info("appointment booked")

	s.notify(ctx, a, func(patientName, doctorName string) (string, string, string) {
		subject, body := notify.ConfirmationEmail(patientName, doctorName, a.StartTime, a.Duration.Format())
		return notify.ConfirmationSMS(patientName, doctorName, a.StartTime, a.Duration.Format()), subject, body
	})
	return a, nil
}

func (s *AppointmentService) GetByID(ctx context.Context, id valueobject.AppointmentID) (*entity.Appointment, error) {
	return s.Appointments.GetByID(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	return s.Appointments.List(ctx, f)
}

// ChangeStatus is the single path for status transitions: it re-reads the
// current status, consults the transition table, and only then issues a
// status-guarded update. A concurrent transition on the same row surfaces
// as repository.ErrConflict from the guard.
func (s *AppointmentService) ChangeStatus(ctx context.Context, id valueobject.AppointmentID, target entity.AppointmentStatus) (*entity.Appointment, error) {
	if !target.IsValid() {
		return nil, entity.ErrInvalidStatusTransition
	}
	a, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := a.Status
	if err := a.Transition(target); err != nil {
		return nil, err
	}
	if err := s.Appointments.UpdateStatus(ctx, id, from, target); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"appointment_id": id,
		"from":           from,
		"to":             target,
	}).Info("appointment status changed")

	if target == entity.StatusCancelled {
		s.notify(ctx, a, func(patientName, doctorName string) (string, string, string) {
			return notify.CancellationSMS(patientName, doctorName, a.StartTime), "", ""
		})
	}
	return a, nil
}

type RescheduleInput struct {
	StartTime    time.Time
	DurationMins int
	Reason       string
	Notes        string
}

// Reschedule rewrites slot attributes while the appointment is still
// SCHEDULED.
func (s *AppointmentService) Reschedule(ctx context.Context, id valueobject.AppointmentID, in RescheduleInput) (*entity.Appointment, error) {
	a, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != entity.StatusScheduled {
		return nil, ErrNotReschedulable
	}
	if !in.StartTime.IsZero() {
		a.StartTime = in.StartTime
	}
	if in.DurationMins != 0 {
		dur, err := valueobject.NewAppointmentDuration(in.DurationMins)
		if err != nil {
			return nil, err
		}
		a.Duration = dur
	}
	if in.Reason != "" {
		a.Reason = in.Reason
	}
	if in.Notes != "" {
		a.Notes = in.Notes
	}
	if !a.Duration.FitsOperatingHours(a.StartTime) {
		return nil, ErrOutsideOperatingHours
	}
	if err := s.Appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an appointment outright; the repository only honors this
// for the initial SCHEDULED state.
func (s *AppointmentService) Delete(ctx context.Context, id valueobject.AppointmentID) error {
	return s.Appointments.Delete(ctx, id)
}

// SendReminder queues a reminder SMS for an upcoming appointment.
func (s *AppointmentService) SendReminder(ctx context.Context, id valueobject.AppointmentID) error {
	a, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.notify(ctx, a, func(patientName, doctorName string) (string, string, string) {
		return notify.ReminderSMS(patientName, doctorName, a.StartTime), "", ""
	})
	return nil
}

// notify resolves the names involved, renders the message and enqueues it.
// Notification failures never fail the calling operation.
func (s *AppointmentService) notify(ctx context.Context, a *entity.Appointment, render func(patientName, doctorName string) (sms, emailSubject, emailBody string)) {
	if s.Pub == nil {
		return
	}
	p, err := s.Patients.GetByID(ctx, a.PatientID)
	if err != nil {
		s.Logger.WithError(err).WithField("patient_id", a.PatientID).Warn("notify: patient lookup failed")
		return
	}
	d, err := s.Doctors.GetByID(ctx, a.DoctorID)
	if err != nil {
		s.Logger.WithError(err).WithField("doctor_id", a.DoctorID).Warn("notify: doctor lookup failed")
		return
	}
	sms, subject, body := render(p.FirstName, d.FullName())
	if sms != "" && !p.PhoneNumber.IsZero() {
		job := notify.Job{Channel: notify.ChannelSMS, To: p.PhoneNumber.SMS(), Body: sms}
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).Warn("notify: sms publish failed")
		}
	}
	if subject != "" && !p.Email.IsZero() {
		job := notify.Job{Channel: notify.ChannelEmail, To: p.Email.String(), Subject: subject, Body: body}
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).Warn("notify: email publish failed")
		}
	}
}
