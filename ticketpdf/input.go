package ticketpdf

import (
	"time"

	"ticketooz/model"
	"ticketooz/pricing"
)

// DataFromBooking maps a stored booking onto the composer input. The
// booking's own figures double as the fallback pricing, so a failed
// reconciliation still renders the stored totals.
func DataFromBooking(booking model.BookingRecord) model.TicketData {
	data := model.TicketData{
		BookingID:      booking.ID,
		BookingDate:    booking.BookedAt.Format(time.RFC3339),
		Quantity:       booking.Quantity,
		TotalPrice:     booking.TotalPrice,
		ConvenienceFee: booking.ConvenienceFee,
		EventName:      booking.Event.Name,
		VenueName:      booking.Event.VenueName,
		Address:        booking.Event.Address,
		IsRecurring:    booking.Event.IsRecurring,
		CustomerName:   booking.CustomerName,
		CustomerEmail:  booking.CustomerEmail,
		CustomerPhone:  booking.CustomerPhone,
		Seats:          booking.Seats,
	}

	date, clock := pricing.ResolveEventDateTime(booking.Event, booking.Occurrence)
	data.EventDate = date
	data.EventTime = clock

	if booking.Occurrence != nil {
		data.OccurrenceDate = booking.Occurrence.Date
		data.OccurrenceTime = booking.Occurrence.Time
	}

	return data
}
