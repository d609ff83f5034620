package notify

import (
	"fmt"
	"time"
)

// SMS bodies are plain text under 160 characters where possible. Times are
// rendered in clinic-local wall time; callers pass start already in the
// clinic's zone.

const smsTimeLayout = "Mon 2 Jan, 3:04pm"

// ConfirmationSMS is sent when an appointment is booked.
func ConfirmationSMS(patientName, doctorName string, start time.Time, duration string) string {
	return fmt.Sprintf("Hi %s, your appointment with %s is confirmed for %s (%s). Reply to this number to reschedule.",
		patientName, doctorName, start.Format(smsTimeLayout), duration)
}

// CancellationSMS is sent when an appointment is cancelled.
func CancellationSMS(patientName, doctorName string, start time.Time) string {
	return fmt.Sprintf("Hi %s, your appointment with %s on %s has been cancelled. Call the clinic to rebook.",
		patientName, doctorName, start.Format(smsTimeLayout))
}

// ReminderSMS is sent ahead of an upcoming appointment.
func ReminderSMS(patientName, doctorName string, start time.Time) string {
	return fmt.Sprintf("Reminder: %s, you have an appointment with %s at %s. Please arrive 10 minutes early.",
		patientName, doctorName, start.Format(smsTimeLayout))
}

// ConfirmationEmail returns subject and body for the booking email.
func ConfirmationEmail(patientName, doctorName string, start time.Time, duration string) (subject, body string) {
	subject = "Appointment confirmed: " + start.Format(smsTimeLayout)
	body = fmt.Sprintf("Dear %s,\n\nYour appointment with %s is confirmed.\n\nWhen: %s\nDuration: %s\n\nIf you need to change it, please contact the clinic.\n",
		patientName, doctorName, start.Format(smsTimeLayout), duration)
	return subject, body
}
