package notify

// Channel selects the delivery mechanism for a queued notification.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Job is the JSON payload put on the RabbitMQ notifications queue. Bodies are
// rendered before publishing; the worker only delivers. Subject is ignored
// for SMS.
type Job struct {
	Channel Channel `json:"channel"`
	To      string  `json:"to"` // E.164 number for SMS, address for email
	Subject string  `json:"subject,omitempty"`
	Body    string  `json:"body"`
}
