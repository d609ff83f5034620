package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const sessionTTL = 24 * time.Hour

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// AuthService handles account registration, login and session lifecycle.
// Sessions live in Redis as hashes keyed by user id and carry the resolved
// principal (id, role, email, phone) that handlers read.
// PatientIndexer pushes patient profiles to the search index. Satisfied by
// PatientService; indexing failures never fail the caller.
type PatientIndexer interface {
	Index(ctx context.Context, p *entity.Patient)
}

type AuthService struct {
	Users    repository.UserRepository
	Patients repository.PatientRepository
	Indexer  PatientIndexer
	JWT      *helpers.JWTManager
	Redis    *redis.Client
	Logger   *logrus.Logger
}

func NewAuthService(users repository.UserRepository, patients repository.PatientRepository, indexer PatientIndexer, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Patients: patients, Indexer: indexer, JWT: jwt, Redis: rdb, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Principal is the resolved identity behind a request. Handlers flatten it
// into the wire shape themselves; the value objects here do not marshal.
type Principal struct {
	UserID      valueobject.UserID
	Role        entity.Role
	Email       valueobject.EmailAddress
	PhoneNumber string
}

type RegisterPatientInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	DateOfBirth time.Time
	Address     string
}

// RegisterPatient creates the user account and its owned patient record in
// one flow. Email/phone uniqueness is enforced by the store and surfaces as
// repository.ErrConflict.
func (s *AuthService) RegisterPatient(ctx context.Context, in RegisterPatientInput) (*entity.Patient, error) {
	email, err := valueobject.NewEmailAddress(in.Email)
	if err != nil {
		return nil, err
	}
	phone, err := valueobject.NewPhoneNumber(in.Phone)
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		ID:          valueobject.NewUserID(),
		Email:       email,
		Password:    hash,
		Role:        entity.RolePatient,
		PhoneNumber: phone,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	p := &entity.Patient{
		ID:          valueobject.NewPatientID(),
		UserID:      u.ID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       email,
		PhoneNumber: phone,
		DateOfBirth: in.DateOfBirth,
		Address:     in.Address,
	}
	if err := s.Patients.Create(ctx, p); err != nil {
		return nil, err
	}
	if s.Indexer != nil {
		s.Indexer.Index(ctx, p)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "patient_id": p.ID}).Info("patient registered")
	return p, nil
}

// Authenticate validates email/password and returns the account.
func (s *AuthService) Authenticate(ctx context.Context, rawEmail, password string) (*entity.User, error) {
	email, err := valueobject.NewEmailAddress(rawEmail)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records the session.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID.String(), sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID.String(), sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID.String())
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID.String(),
			"role":       string(u.Role),
			"email":      u.Email.String(),
			"phone":      u.PhoneNumber.String(),
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Principal, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &Principal{UserID: u.ID, Role: u.Role, Email: u.Email, PhoneNumber: u.PhoneNumber.Display()}, pair, nil
}

// Refresh rotates the session id and token pair after validating the refresh
// token against the current session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	uid, err := valueobject.ParseUserID(claims.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil || u == nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(claims.UserID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, ErrInvalidCredentials
		}
	}
	return s.IssueTokens(ctx, u)
}

// Logout drops the session record.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
}
