package application

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/pkg/notify"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id valueobject.AppointmentID) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	args := m.Called(ctx, f)
	if as := args.Get(0); as != nil {
		return as.([]*entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, a *entity.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id valueobject.AppointmentID, from, to entity.AppointmentStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id valueobject.AppointmentID) error {
	return m.Called(ctx, id).Error(0)
}

var _ repository.AppointmentRepository = (*mockAppointmentRepo)(nil)

type mockPatientRepo struct {
	mock.Mock
}

func (m *mockPatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id valueobject.PatientID) (*entity.Patient, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*entity.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatientRepo) GetByUserID(ctx context.Context, userID valueobject.UserID) (*entity.Patient, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*entity.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatientRepo) Update(ctx context.Context, p *entity.Patient) error {
	return m.Called(ctx, p).Error(0)
}

var _ repository.PatientRepository = (*mockPatientRepo)(nil)

type mockDoctorRepo struct {
	mock.Mock
}

func (m *mockDoctorRepo) Create(ctx context.Context, d *entity.Doctor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id valueobject.DoctorID) (*entity.Doctor, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*entity.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) GetByEmail(ctx context.Context, email valueobject.EmailAddress) (*entity.Doctor, error) {
	args := m.Called(ctx, email)
	if d := args.Get(0); d != nil {
		return d.(*entity.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) ListActive(ctx context.Context) ([]*entity.Doctor, error) {
	args := m.Called(ctx)
	if ds := args.Get(0); ds != nil {
		return ds.([]*entity.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) Update(ctx context.Context, d *entity.Doctor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDoctorRepo) Deactivate(ctx context.Context, id valueobject.DoctorID) error {
	return m.Called(ctx, id).Error(0)
}

var _ repository.DoctorRepository = (*mockDoctorRepo)(nil)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id valueobject.UserID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email valueobject.EmailAddress) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

// captureIndexer records patients pushed to the search index.
type captureIndexer struct {
	indexed []*entity.Patient
}

func (i *captureIndexer) Index(_ context.Context, p *entity.Patient) {
	i.indexed = append(i.indexed, p)
}

var _ PatientIndexer = (*captureIndexer)(nil)

// capturePublisher records published notification jobs in order.
type capturePublisher struct {
	jobs []notify.Job
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	if j, ok := body.(notify.Job); ok {
		p.jobs = append(p.jobs, j)
	}
	return nil
}

var _ Publisher = (*capturePublisher)(nil)
