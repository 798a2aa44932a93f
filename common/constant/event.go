package constant

const (
	QueueStreamName = "ticketooz_queue_stream"
)

const (
	AllWildcard    = "events.>"
	TicketWildcard = "events.ticket.>"
	EmailWildcard  = "events.email.>"

	SubjectBookingCompleted = "events.ticket.booking_completed"
	SubjectSendEmail        = "events.email.send"
)
