package application

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

var (
	ErrUploadExpired = errors.New("upload handle expired or unknown")
	ErrForbidden     = errors.New("forbidden")
)

// pendingTTL bounds the gap between requesting an upload handle and
// confirming the metadata. After expiry the handle is gone and any uploaded
// object is orphaned garbage the bucket lifecycle rule clears.
const pendingTTL = 15 * time.Minute

func pendingKey(token string) string { return "doc:pending:" + token }

// DocumentService implements the two-phase upload: phase one reserves a
// storage key and a signed PUT URL, phase two confirms the metadata record.
// Access rules are flat role predicates, not a policy engine.
type DocumentService struct {
	Documents repository.DocumentRepository
	Patients  repository.PatientRepository
	GCS       *storage.Client
	Bucket    string
	Redis     *redis.Client
	Logger    *logrus.Logger
}

func NewDocumentService(documents repository.DocumentRepository, patients repository.PatientRepository, gcs *storage.Client, bucket string, rdb *redis.Client, logger *logrus.Logger) *DocumentService {
	return &DocumentService{Documents: documents, Patients: patients, GCS: gcs, Bucket: bucket, Redis: rdb, Logger: logger}
}

type pendingUpload struct {
	PatientID  string `json:"patient_id"`
	UploadedBy string `json:"uploaded_by"`
	FileName   string `json:"file_name"`
	MIMEType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
	StorageKey string `json:"storage_key"`
}

type UploadHandle struct {
	Token     string    `json:"token"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InitUpload reserves an object key, signs a PUT URL for the client and
// records the pending handle in Redis with a TTL.
func (s *DocumentService) InitUpload(ctx context.Context, patientID valueobject.PatientID, uploadedBy valueobject.UserID, fileName, mimeType string, sizeBytes int64) (*UploadHandle, error) {
	if _, err := s.Patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	key := filepath.ToSlash(filepath.Join("documents", patientID.String(), uuid.NewString()+ext))

	url, err := s.GCS.Bucket(s.Bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      "PUT",
		Expires:     time.Now().Add(pendingTTL),
		ContentType: mimeType,
	})
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	rec := pendingUpload{
		PatientID:  patientID.String(),
		UploadedBy: uploadedBy.String(),
		FileName:   fileName,
		MIMEType:   mimeType,
		SizeBytes:  sizeBytes,
		StorageKey: key,
	}
	b, _ := json.Marshal(rec)
	if err := s.Redis.Set(ctx, pendingKey(token), b, pendingTTL).Err(); err != nil {
		return nil, err
	}
	return &UploadHandle{Token: token, UploadURL: url, ExpiresAt: time.Now().Add(pendingTTL)}, nil
}

type ConfirmUploadInput struct {
	Token         string
	Category      entity.DocumentCategory
	Shared        bool
	DoctorID      valueobject.DoctorID      // optional
	AppointmentID valueobject.AppointmentID // optional
}

// ConfirmUpload consumes the pending handle and writes the metadata record.
// A handle can only be confirmed once; the Redis GETDEL makes the consume
// atomic.
func (s *DocumentService) ConfirmUpload(ctx context.Context, in ConfirmUploadInput) (*entity.Document, error) {
	raw, err := s.Redis.GetDel(ctx, pendingKey(in.Token)).Bytes()
	if err != nil {
		return nil, ErrUploadExpired
	}
	var rec pendingUpload
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, ErrUploadExpired
	}
	patientID, err := valueobject.ParsePatientID(rec.PatientID)
	if err != nil {
		return nil, err
	}
	uploadedBy, err := valueobject.ParseUserID(rec.UploadedBy)
	if err != nil {
		return nil, err
	}

	category := in.Category
	if !category.IsValid() {
		category = entity.CategoryOther
	}
	d := &entity.Document{
		ID:            valueobject.NewDocumentID(),
		PatientID:     patientID,
		DoctorID:      in.DoctorID,
		AppointmentID: in.AppointmentID,
		UploadedBy:    uploadedBy,
		FileName:      rec.FileName,
		MIMEType:      rec.MIMEType,
		SizeBytes:     rec.SizeBytes,
		StorageKey:    rec.StorageKey,
		Category:      category,
		Shared:        in.Shared,
	}
	if err := s.Documents.Create(ctx, d); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"document_id": d.ID, "patient_id": d.PatientID}).Info("document confirmed")
	return d, nil
}

// CanAccess is the flat role predicate over documents: patients see their
// own shared documents, doctors what they uploaded or are assigned to,
// staff everything.
func CanAccess(p *Principal, ownPatientID valueobject.PatientID, doctorID valueobject.DoctorID, d *entity.Document) bool {
	switch p.Role {
	case entity.RoleStaff:
		return true
	case entity.RoleDoctor:
		return d.UploadedBy == p.UserID || (doctorID != "" && d.DoctorID == doctorID)
	case entity.RolePatient:
		return d.PatientID == ownPatientID && d.Shared
	}
	return false
}

func (s *DocumentService) GetByID(ctx context.Context, id valueobject.DocumentID) (*entity.Document, error) {
	return s.Documents.GetByID(ctx, id)
}

func (s *DocumentService) ListByPatient(ctx context.Context, patientID valueobject.PatientID) ([]*entity.Document, error) {
	return s.Documents.ListByPatient(ctx, patientID)
}

type UpdateDocumentInput struct {
	FileName string
	Category entity.DocumentCategory
	Shared   *bool
}

func (s *DocumentService) UpdateMeta(ctx context.Context, id valueobject.DocumentID, in UpdateDocumentInput) (*entity.Document, error) {
	d, err := s.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FileName != "" {
		d.FileName = in.FileName
	}
	if in.Category != "" {
		if !in.Category.IsValid() {
			return nil, errors.New("unknown document category")
		}
		d.Category = in.Category
	}
	if in.Shared != nil {
		d.Shared = *in.Shared
	}
	if err := s.Documents.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the metadata row first, then best-effort deletes the
// object; a dangling object is preferable to a row pointing at nothing.
func (s *DocumentService) Delete(ctx context.Context, id valueobject.DocumentID) error {
	d, err := s.Documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Documents.Delete(ctx, id); err != nil {
		return err
	}
	if s.GCS != nil && s.Bucket != "" {
		if err := s.GCS.Bucket(s.Bucket).Object(d.StorageKey).Delete(ctx); err != nil {
			s.Logger.WithError(err).WithField("storage_key", d.StorageKey).Warn("object delete failed")
		}
	}
	return nil
}
