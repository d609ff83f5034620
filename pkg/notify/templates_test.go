package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var slot = time.Date(2026, 9, 7, 14, 30, 0, 0, time.UTC) // Mon 7 Sep, 2:30pm

func TestConfirmationSMS(t *testing.T) {
	got := ConfirmationSMS("Jane", "Dr Mei Ling Tan", slot, "30m")

	assert.Contains(t, got, "Hi Jane")
	assert.Contains(t, got, "Dr Mei Ling Tan")
	assert.Contains(t, got, "Mon 7 Sep, 2:30pm")
	assert.Contains(t, got, "(30m)")
}

func TestCancellationSMS(t *testing.T) {
	got := CancellationSMS("Jane", "Dr Mei Ling Tan", slot)

	assert.Contains(t, got, "cancelled")
	assert.Contains(t, got, "Mon 7 Sep, 2:30pm")
}

func TestReminderSMS(t *testing.T) {
	got := ReminderSMS("Jane", "Dr Mei Ling Tan", slot)

	assert.Contains(t, got, "Reminder")
	assert.Contains(t, got, "arrive 10 minutes early")
}

func TestConfirmationEmail(t *testing.T) {
	subject, body := ConfirmationEmail("Jane", "Dr Mei Ling Tan", slot, "1h 30m")

	assert.Equal(t, "Appointment confirmed: Mon 7 Sep, 2:30pm", subject)
	assert.Contains(t, body, "Dear Jane")
	assert.Contains(t, body, "Duration: 1h 30m")
}
