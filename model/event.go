package model

// BookingCompletedEventMessage triggers ticket document generation and
// delivery for a freshly paid booking.
type BookingCompletedEventMessage struct {
	BookingID string `json:"booking_id"`
}

type SendEmailEventMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	// Attachment is the base64-encoded ticket PDF, empty for plain mail.
	Attachment         string `json:"attachment,omitempty"`
	AttachmentFilename string `json:"attachment_filename,omitempty"`
}
