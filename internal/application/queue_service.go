package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

var (
	ErrNotCheckedInToday = errors.New("appointment is not scheduled for today")
	ErrQueueEmpty        = errors.New("queue is empty")
	ErrTicketNotFound    = errors.New("queue ticket not found")
)

// Queue state lives entirely in Redis: one list of ticket ids per doctor and
// one JSON record per ticket. Tickets expire at end of day on their own.
const ticketTTL = 14 * time.Hour

func doctorQueueKey(doctorID valueobject.DoctorID) string {
	return "queue:doctor:" + doctorID.String()
}

func ticketKey(id valueobject.QueueTicketID) string {
	return "queue:ticket:" + id.String()
}

type QueueService struct {
	Appointments *AppointmentService
	Patients     repository.PatientRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
}

func NewQueueService(appointments *AppointmentService, patients repository.PatientRepository, rdb *redis.Client, logger *logrus.Logger) *QueueService {
	return &QueueService{Appointments: appointments, Patients: patients, Redis: rdb, Logger: logger}
}

// CheckIn issues a queue ticket for a SCHEDULED appointment happening today
// and appends it to the doctor's queue. When forPatient is set the
// appointment must belong to that patient; staff check in on anyone's behalf
// by passing nil.
func (s *QueueService) CheckIn(ctx context.Context, appointmentID valueobject.AppointmentID, forPatient *valueobject.PatientID) (*entity.QueueTicket, error) {
	a, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if forPatient != nil && *forPatient != a.PatientID {
		return nil, ErrForbidden
	}
	if a.Status != entity.StatusScheduled {
		return nil, entity.ErrInvalidStatusTransition
	}
	now := time.Now()
	y1, m1, d1 := a.StartTime.Local().Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return nil, ErrNotCheckedInToday
	}
	p, err := s.Patients.GetByID(ctx, a.PatientID)
	if err != nil {
		return nil, err
	}

	t := &entity.QueueTicket{
		ID:            valueobject.NewQueueTicketID(),
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		DoctorID:      a.DoctorID,
		PatientName:   p.FullName(),
		CheckedInAt:   now,
	}
	b, _ := json.Marshal(t)

	pipe := s.Redis.Pipeline()
	pipe.Set(ctx, ticketKey(t.ID), b, ticketTTL)
	pipe.RPush(ctx, doctorQueueKey(a.DoctorID), t.ID.String())
	pipe.Expire(ctx, doctorQueueKey(a.DoctorID), ticketTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"ticket_id": t.ID, "doctor_id": a.DoctorID}).Info("patient checked in")
	return t, nil
}

// List returns the tickets waiting for a doctor, in order.
func (s *QueueService) List(ctx context.Context, doctorID valueobject.DoctorID) ([]*entity.QueueTicket, error) {
	ids, err := s.Redis.LRange(ctx, doctorQueueKey(doctorID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.QueueTicket, 0, len(ids))
	for _, id := range ids {
		tid, err := valueobject.ParseQueueTicketID(id)
		if err != nil {
			continue
		}
		t, err := s.getTicket(ctx, tid)
		if err != nil {
			continue // expired ticket still referenced by the list
		}
		out = append(out, t)
	}
	return out, nil
}

// CallNext pops the head of the doctor's queue and moves the appointment to
// IN_PROGRESS through the usual transition path.
func (s *QueueService) CallNext(ctx context.Context, doctorID valueobject.DoctorID) (*entity.QueueTicket, error) {
	for {
		id, err := s.Redis.LPop(ctx, doctorQueueKey(doctorID)).Result()
		if errors.Is(err, redis.Nil) {
			return nil, ErrQueueEmpty
		}
		if err != nil {
			return nil, err
		}
		tid, err := valueobject.ParseQueueTicketID(id)
		if err != nil {
			continue
		}
		t, err := s.getTicket(ctx, tid)
		if err != nil {
			continue // skip expired tickets
		}
		if _, err := s.Appointments.ChangeStatus(ctx, t.AppointmentID, entity.StatusInProgress); err != nil {
			// Appointment already moved on (e.g. cancelled); drop the
			// ticket and keep popping.
			s.Logger.WithError(err).WithField("ticket_id", t.ID).Warn("call next: stale ticket skipped")
			_ = s.Redis.Del(ctx, ticketKey(tid)).Err()
			continue
		}
		_ = s.Redis.Del(ctx, ticketKey(tid)).Err()
		return t, nil
	}
}

// Position reports a ticket's place in its doctor's queue, 1-based.
func (s *QueueService) Position(ctx context.Context, id valueobject.QueueTicketID) (*entity.QueueTicket, int, error) {
	t, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	pos, err := s.Redis.LPos(ctx, doctorQueueKey(t.DoctorID), id.String(), redis.LPosArgs{}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, 0, ErrTicketNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	return t, int(pos) + 1, nil
}

func (s *QueueService) getTicket(ctx context.Context, id valueobject.QueueTicketID) (*entity.QueueTicket, error) {
	raw, err := s.Redis.Get(ctx, ticketKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	var t entity.QueueTicket
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
