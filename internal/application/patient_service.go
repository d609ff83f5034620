package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

// PatientService covers profile reads/edits and the staff-facing search,
// which is served from an Elasticsearch index kept in sync on every write.
type PatientService struct {
	Patients repository.PatientRepository
	Logger   *logrus.Logger
	ES       *elasticsearch.Client
	ESIndex  string
}

func NewPatientService(patients repository.PatientRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *PatientService {
	return &PatientService{Patients: patients, Logger: logger, ES: es, ESIndex: esIndex}
}

func (s *PatientService) GetByID(ctx context.Context, id valueobject.PatientID) (*entity.Patient, error) {
	return s.Patients.GetByID(ctx, id)
}

func (s *PatientService) GetByUserID(ctx context.Context, userID valueobject.UserID) (*entity.Patient, error) {
	return s.Patients.GetByUserID(ctx, userID)
}

type UpdatePatientInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// UpdateProfile applies non-empty fields; email and phone go through their
// value-object constructors so malformed input never reaches the store.
func (s *PatientService) UpdateProfile(ctx context.Context, id valueobject.PatientID, in UpdatePatientInput) (*entity.Patient, error) {
	p, err := s.Patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != "" {
		p.FirstName = in.FirstName
	}
	if in.LastName != "" {
		p.LastName = in.LastName
	}
	if in.Address != "" {
		p.Address = in.Address
	}
	if in.Email != "" {
		email, err := valueobject.NewEmailAddress(in.Email)
		if err != nil {
			return nil, err
		}
		p.Email = email
	}
	if in.Phone != "" {
		phone, err := valueobject.NewPhoneNumber(in.Phone)
		if err != nil {
			return nil, err
		}
		p.PhoneNumber = phone
	}
	if err := s.Patients.Update(ctx, p); err != nil {
		return nil, err
	}
	s.Index(ctx, p)
	return p, nil
}

// Index pushes the patient profile to Elasticsearch. Failures are logged,
// not surfaced; search lag is acceptable, a failed profile edit is not.
func (s *PatientService) Index(ctx context.Context, p *entity.Patient) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         p.ID.String(),
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"email":      p.Email.String(),
		"phone":      p.PhoneNumber.String(),
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID.String(), Body: strings.NewReader(string(b))}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("patient_id", p.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("patient_id", p.ID).Warn("es index response error")
	}
}

// Search runs a multi_match over name, email and phone.
func (s *PatientService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"last_name^2", "first_name", "email", "phone"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
