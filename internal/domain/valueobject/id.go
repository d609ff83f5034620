package valueobject

import (
	"crypto/rand"
	"regexp"
)

// Entity identifiers are prefixed strings (patient_x9k2m4ab). The types are
// advisory: the underlying representation stays a plain string, but anything
// typed as PatientID etc. has passed Parse at least once.

type (
	PatientID     string
	DoctorID      string
	AppointmentID string
	UserID        string
	DocumentID    string
	QueueTicketID string
)

func (id PatientID) String() string     { return string(id) }
func (id DoctorID) String() string      { return string(id) }
func (id AppointmentID) String() string { return string(id) }
func (id UserID) String() string        { return string(id) }
func (id DocumentID) String() string    { return string(id) }
func (id QueueTicketID) String() string { return string(id) }

const suffixLen = 8

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var idPattern = regexp.MustCompile(`^[a-z]+_[a-zA-Z0-9_]+$`)

func newSuffix() string {
	b := make([]byte, suffixLen)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand failure means the host is broken
	}
	for i := range b {
		b[i] = suffixAlphabet[int(b[i])%len(suffixAlphabet)]
	}
	return string(b)
}

func parseID(prefix, raw string) (string, error) {
	want := prefix + "_"
	if !idPattern.MatchString(raw) || len(raw) <= len(want) || raw[:len(want)] != want {
		return "", &FormatError{Field: prefix + " id", Value: raw, Expected: prefix + "_<alphanumeric>"}
	}
	return raw, nil
}

func NewPatientID() PatientID { return PatientID("patient_" + newSuffix()) }

func ParsePatientID(raw string) (PatientID, error) {
	s, err := parseID("patient", raw)
	return PatientID(s), err
}

func NewDoctorID() DoctorID { return DoctorID("doctor_" + newSuffix()) }

func ParseDoctorID(raw string) (DoctorID, error) {
	s, err := parseID("doctor", raw)
	return DoctorID(s), err
}

func NewAppointmentID() AppointmentID { return AppointmentID("appt_" + newSuffix()) }

func ParseAppointmentID(raw string) (AppointmentID, error) {
	s, err := parseID("appt", raw)
	return AppointmentID(s), err
}

func NewUserID() UserID { return UserID("user_" + newSuffix()) }

func ParseUserID(raw string) (UserID, error) {
	s, err := parseID("user", raw)
	return UserID(s), err
}

func NewDocumentID() DocumentID { return DocumentID("doc_" + newSuffix()) }

func ParseDocumentID(raw string) (DocumentID, error) {
	s, err := parseID("doc", raw)
	return DocumentID(s), err
}

func NewQueueTicketID() QueueTicketID { return QueueTicketID("queue_" + newSuffix()) }

func ParseQueueTicketID(raw string) (QueueTicketID, error) {
	s, err := parseID("queue", raw)
	return QueueTicketID(s), err
}
