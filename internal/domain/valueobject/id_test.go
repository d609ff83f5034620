package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDs_HavePrefixAndParseBack(t *testing.T) {
	pid := NewPatientID()
	assert.True(t, strings.HasPrefix(pid.String(), "patient_"))
	parsed, err := ParsePatientID(pid.String())
	require.NoError(t, err)
	assert.Equal(t, pid, parsed)

	did := NewDoctorID()
	assert.True(t, strings.HasPrefix(did.String(), "doctor_"))
	_, err = ParseDoctorID(did.String())
	require.NoError(t, err)

	aid := NewAppointmentID()
	assert.True(t, strings.HasPrefix(aid.String(), "appt_"))
	_, err = ParseAppointmentID(aid.String())
	require.NoError(t, err)

	uid := NewUserID()
	assert.True(t, strings.HasPrefix(uid.String(), "user_"))
	_, err = ParseUserID(uid.String())
	require.NoError(t, err)

	docID := NewDocumentID()
	assert.True(t, strings.HasPrefix(docID.String(), "doc_"))
	_, err = ParseDocumentID(docID.String())
	require.NoError(t, err)

	qid := NewQueueTicketID()
	assert.True(t, strings.HasPrefix(qid.String(), "queue_"))
	_, err = ParseQueueTicketID(qid.String())
	require.NoError(t, err)
}

func TestNewIDs_AreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewPatientID().String()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestParseID_RejectsWrongPrefix(t *testing.T) {
	_, err := ParseDoctorID("patient_a1b2c3d4")
	require.Error(t, err)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "doctor id", ferr.Field)
	assert.Equal(t, "doctor_<alphanumeric>", ferr.Expected)
}

func TestParseID_RejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"patient",
		"patient_",
		"patient-a1b2c3d4",
		"Patient_a1b2c3d4",
		"patient_a1b2 c3d4",
	}
	for _, raw := range cases {
		_, err := ParsePatientID(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
