package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FlexInt tolerates string-typed quantities coming out of the seat JSONB.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		parsed, floatErr := strconv.ParseFloat(s, 64)
		if floatErr != nil {
			return err
		}
		n = int(parsed)
	}

	*f = FlexInt(n)
	return nil
}

// SeatRecord is a raw seat entry as stored in the booking's seat JSONB.
// Bookings written by older checkout flows carry the legacy field names,
// so every field has a fallback sibling. Normalize with Normalize before
// doing arithmetic on it.
type SeatRecord struct {
	SeatCategory   string   `json:"seat_category"`
	Category       string   `json:"category"`
	SeatNumber     string   `json:"seat_number"`
	Price          *float64 `json:"price"`
	BasePrice      *float64 `json:"base_price"`
	Quantity       *FlexInt `json:"quantity"`
	BookedQuantity *FlexInt `json:"booked_quantity"`
}

// Seat is the normalized seat value used by pricing and rendering.
type Seat struct {
	Category   string
	SeatNumber string
	UnitPrice  float64
	Quantity   int
}

// Normalize collapses the legacy field fallbacks into a Seat:
// category falls back to "General", quantity to the legacy booked
// quantity and then 1, unit price to the legacy base price and then 0.
func (r SeatRecord) Normalize() Seat {
	s := Seat{
		Category:   r.SeatCategory,
		SeatNumber: r.SeatNumber,
		Quantity:   1,
	}

	if s.Category == "" {
		s.Category = r.Category
	}
	if s.Category == "" {
		s.Category = "General"
	}

	if r.Quantity != nil && *r.Quantity > 0 {
		s.Quantity = int(*r.Quantity)
	} else if r.BookedQuantity != nil && *r.BookedQuantity > 0 {
		s.Quantity = int(*r.BookedQuantity)
	}

	if r.Price != nil {
		s.UnitPrice = *r.Price
	} else if r.BasePrice != nil {
		s.UnitPrice = *r.BasePrice
	}

	return s
}

// DecodeSeats parses the seat-array JSONB column. A null or empty
// column yields a nil slice, not an error.
func DecodeSeats(raw []byte) ([]SeatRecord, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var seats []SeatRecord
	if err := json.Unmarshal(raw, &seats); err != nil {
		return nil, err
	}

	return seats, nil
}

// Occurrence is one scheduled instance of a recurring event.
type Occurrence struct {
	Date string // "2006-01-02"
	Time string // "15:04"
}

// OccurrenceCategory is an occurrence-specific ticket category.
type OccurrenceCategory struct {
	ID        string
	Name      string
	BasePrice float64
}

type EventRecord struct {
	ID          string
	Name        string
	StartAt     time.Time
	VenueName   string
	VenueCity   string
	Address     string
	Category    string
	SubCategory string
	Language    string
	Duration    string
	Genres      []string
	Artists     []string
	IsRecurring bool
	// EventTime is the canonical time-of-day for recurring events, "15:04".
	EventTime string
}

type BookingRecord struct {
	ID                   string
	Quantity             int
	TotalPrice           float64
	ConvenienceFee       float64
	BookedAt             time.Time
	Seats                []SeatRecord
	OccurrenceID         string
	OccurrenceCategoryID string
	CustomerName         string
	CustomerEmail        string
	CustomerPhone        string
	Event                EventRecord
	Occurrence           *Occurrence
}
