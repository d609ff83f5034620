package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careloop/clinic-api/internal/application"
	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

func TestPrincipalJSON_FlattensValueObjects(t *testing.T) {
	email, err := valueobject.NewEmailAddress("jane@example.com")
	require.NoError(t, err)
	phone, err := valueobject.NewPhoneNumber("91234567")
	require.NoError(t, err)

	pr := &application.Principal{
		UserID:      valueobject.NewUserID(),
		Role:        entity.RolePatient,
		Email:       email,
		PhoneNumber: phone.Display(),
	}

	b, err := json.Marshal(principalJSON(pr))
	require.NoError(t, err)

	body := string(b)
	assert.Contains(t, body, `"email":"jane@example.com"`)
	assert.Contains(t, body, `"phone_number":"+65 9123 4567"`)
	assert.Contains(t, body, `"role":"PATIENT"`)
	assert.Contains(t, body, `"user_id":"`+pr.UserID.String()+`"`)
	assert.NotContains(t, body, "{}")
}
