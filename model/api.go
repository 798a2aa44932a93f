package model

type ErrorResponse struct {
	Error string `json:"error"`
	Data  any    `json:"data,omitempty"`
}

type VerifyTicketResponse struct {
	InvoiceNumber string                   `json:"invoice_number"`
	BookingID     string                   `json:"booking_id"`
	EventName     string                   `json:"event_name"`
	EventDate     string                   `json:"event_date"`
	EventTime     string                   `json:"event_time"`
	CustomerName  string                   `json:"customer_name"`
	Quantity      int                      `json:"quantity"`
	Breakdown     []CategoryBreakdownEntry `json:"breakdown"`
}
