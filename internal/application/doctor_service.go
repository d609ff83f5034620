package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

type DoctorService struct {
	Doctors repository.DoctorRepository
	Logger  *logrus.Logger
}

func NewDoctorService(doctors repository.DoctorRepository, logger *logrus.Logger) *DoctorService {
	return &DoctorService{Doctors: doctors, Logger: logger}
}

type CreateDoctorInput struct {
	FirstName      string
	LastName       string
	Email          string
	Specialization string
}

func (s *DoctorService) Create(ctx context.Context, in CreateDoctorInput) (*entity.Doctor, error) {
	email, err := valueobject.NewEmailAddress(in.Email)
	if err != nil {
		return nil, err
	}
	d := &entity.Doctor{
		ID:             valueobject.NewDoctorID(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          email,
		Specialization: in.Specialization,
		Active:         true,
	}
	if err := s.Doctors.Create(ctx, d); err != nil {
		return nil, err
	}
	s.Logger.WithField("doctor_id", d.ID).Info("doctor created")
	return d, nil
}

func (s *DoctorService) GetByID(ctx context.Context, id valueobject.DoctorID) (*entity.Doctor, error) {
	return s.Doctors.GetByID(ctx, id)
}

// GetByEmail resolves the doctor record behind a DOCTOR-role principal; the
// doctor row shares its email with the login account.
func (s *DoctorService) GetByEmail(ctx context.Context, email valueobject.EmailAddress) (*entity.Doctor, error) {
	return s.Doctors.GetByEmail(ctx, email)
}

func (s *DoctorService) ListActive(ctx context.Context) ([]*entity.Doctor, error) {
	return s.Doctors.ListActive(ctx)
}

type UpdateDoctorInput struct {
	FirstName      string
	LastName       string
	Email          string
	Specialization string
}

func (s *DoctorService) Update(ctx context.Context, id valueobject.DoctorID, in UpdateDoctorInput) (*entity.Doctor, error) {
	d, err := s.Doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != "" {
		d.FirstName = in.FirstName
	}
	if in.LastName != "" {
		d.LastName = in.LastName
	}
	if in.Specialization != "" {
		d.Specialization = in.Specialization
	}
	if in.Email != "" {
		email, err := valueobject.NewEmailAddress(in.Email)
		if err != nil {
			return nil, err
		}
		d.Email = email
	}
	if err := s.Doctors.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Deactivate retires a doctor. Appointments referencing the doctor keep
// their rows; the doctor just stops appearing in active listings.
func (s *DoctorService) Deactivate(ctx context.Context, id valueobject.DoctorID) error {
	if err := s.Doctors.Deactivate(ctx, id); err != nil {
		return err
	}
	s.Logger.WithField("doctor_id", id).Info("doctor deactivated")
	return nil
}
