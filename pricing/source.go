package pricing

import (
	"ticketooz/common/constant"
	"ticketooz/model"
)

// breakdownSource is the tagged union of the three breakdown
// strategies. Exactly one is chosen per reconciliation.
type breakdownSource interface {
	breakdown(booking model.BookingRecord) []model.CategoryBreakdownEntry
}

type occurrenceCategorySource struct {
	category model.OccurrenceCategory
}

func (s occurrenceCategorySource) breakdown(booking model.BookingRecord) []model.CategoryBreakdownEntry {
	return []model.CategoryBreakdownEntry{{
		Category:  s.category.Name,
		Quantity:  booking.Quantity,
		UnitPrice: s.category.BasePrice,
		LineTotal: s.category.BasePrice * float64(booking.Quantity),
	}}
}

type seatArraySource struct{}

func (seatArraySource) breakdown(booking model.BookingRecord) []model.CategoryBreakdownEntry {
	return GroupSeats(booking.Seats)
}

type flatFallbackSource struct{}

func (flatFallbackSource) breakdown(booking model.BookingRecord) []model.CategoryBreakdownEntry {
	base := booking.TotalPrice - booking.ConvenienceFee

	unit := base
	if booking.Quantity > 0 {
		unit = base / float64(booking.Quantity)
	}

	quantity := booking.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return []model.CategoryBreakdownEntry{{
		Category:  constant.GeneralAdmissionName,
		Quantity:  quantity,
		UnitPrice: unit,
		LineTotal: base,
	}}
}

// GroupSeats normalizes the raw seat array and accumulates quantity and
// price per category, preserving first-seen category order.
func GroupSeats(seats []model.SeatRecord) []model.CategoryBreakdownEntry {
	if len(seats) == 0 {
		return nil
	}

	order := make([]string, 0, len(seats))
	grouped := make(map[string]*model.CategoryBreakdownEntry, len(seats))

	for _, record := range seats {
		seat := record.Normalize()

		entry, ok := grouped[seat.Category]
		if !ok {
			entry = &model.CategoryBreakdownEntry{Category: seat.Category, UnitPrice: seat.UnitPrice}
			grouped[seat.Category] = entry
			order = append(order, seat.Category)
		}

		entry.Quantity += seat.Quantity
		entry.LineTotal += seat.UnitPrice * float64(seat.Quantity)
	}

	breakdown := make([]model.CategoryBreakdownEntry, 0, len(order))
	for _, category := range order {
		breakdown = append(breakdown, *grouped[category])
	}

	return breakdown
}
