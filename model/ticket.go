package model

// GeneralTicketSelection is a caller-supplied category pick made on the
// checkout page, used as a breakdown fallback when reconciliation has
// nothing better.
type GeneralTicketSelection struct {
	CategoryName string  `json:"category_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// TicketData is the composer input: the booking as the caller already
// knows it, plus fallback pricing figures used when reconciliation
// against the store fails. Prices here are client-supplied and only
// trusted as a last resort.
type TicketData struct {
	BookingID      string `validate:"required"`
	BookingDate    string `validate:"required"`
	Quantity       int
	TotalPrice     float64
	BasePrice      float64
	ConvenienceFee float64

	EventName      string
	EventDate      string
	EventTime      string
	VenueName      string
	Address        string
	IsRecurring    bool
	OccurrenceDate string
	OccurrenceTime string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Seats              []SeatRecord
	SelectedTickets    []GeneralTicketSelection
	CombinedBookingIDs []string
}

// Combined reports whether this document merges multiple bookings.
func (t TicketData) Combined() bool {
	return len(t.CombinedBookingIDs) > 0
}
