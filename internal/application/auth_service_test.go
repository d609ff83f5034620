package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/careloop/clinic-api/internal/domain/entity"
)

func TestRegisterPatient_CreatesAccountAndIndexes(t *testing.T) {
	users := &mockUserRepo{}
	patients := &mockPatientRepo{}
	indexer := &captureIndexer{}
	svc := NewAuthService(users, patients, indexer, nil, nil, testLogger())

	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	patients.On("Create", mock.Anything, mock.AnythingOfType("*entity.Patient")).Return(nil)

	p, err := svc.RegisterPatient(context.Background(), RegisterPatientInput{
		Email:       "jane@example.com",
		Password:    "password123",
		FirstName:   "Jane",
		LastName:    "Tan",
		Phone:       "9123 4567",
		DateOfBirth: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	u := users.Calls[0].Arguments.Get(1).(*entity.User)
	assert.Equal(t, entity.RolePatient, u.Role)
	assert.Equal(t, "jane@example.com", u.Email.String())

	// The new profile lands in the search index immediately, so
	// /patients/search finds patients who never edited their profile.
	require.Len(t, indexer.indexed, 1)
	assert.Equal(t, p.ID, indexer.indexed[0].ID)
	assert.Equal(t, "jane@example.com", indexer.indexed[0].Email.String())
}

func TestRegisterPatient_UserCreateFailureSkipsIndex(t *testing.T) {
	users := &mockUserRepo{}
	patients := &mockPatientRepo{}
	indexer := &captureIndexer{}
	svc := NewAuthService(users, patients, indexer, nil, nil, testLogger())

	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(assert.AnError)

	_, err := svc.RegisterPatient(context.Background(), RegisterPatientInput{
		Email:       "jane@example.com",
		Password:    "password123",
		FirstName:   "Jane",
		LastName:    "Tan",
		Phone:       "91234567",
		DateOfBirth: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)

	patients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, indexer.indexed)
}
