// Package pricing reconciles a booking's price breakdown from the
// store, preferring occurrence-specific ticket categories, then the
// seat array, then the flat booking totals.
package pricing

import (
	"context"
	"log/slog"
	"time"

	"ticketooz/common"
	"ticketooz/common/constant"
	"ticketooz/common/errs"
	"ticketooz/common/otel"
	"ticketooz/model"
)

// Store is the read-only booking data source the engine reconciles
// against. Implementations return typed records or an error; the engine
// treats them as black-box calls.
type Store interface {
	FindBookingByID(ctx context.Context, id string) (model.BookingRecord, error)
	FindOccurrenceCategoryByID(ctx context.Context, id string) (model.OccurrenceCategory, error)
}

type Engine struct {
	Store Store

	// Timeout bounds one reconciliation end to end. Zero means 5s.
	Timeout time.Duration
}

const defaultTimeout = 5 * time.Second

// Reconcile loads the booking and derives its canonical pricing view.
// A booking that cannot be loaded yields a DataFetchError; callers must
// treat that as "no authoritative pricing" and fall back to the totals
// they already hold. Secondary lookup failures degrade to the next
// breakdown tier instead of aborting.
func (e Engine) Reconcile(ctx context.Context, bookingID string) (*model.ReconciledPricing, error) {
	timeout := e.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := otel.Tracer.Start(ctx, "pricing.Reconcile")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	booking, err := e.Store.FindBookingByID(ctx, bookingID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load booking for reconciliation", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return nil, &errs.DataFetchError{Op: "find booking", Err: err}
	}

	src := e.resolveSource(ctx, booking)
	breakdown := src.breakdown(booking)

	basePrice := 0.0
	for _, entry := range breakdown {
		basePrice += entry.LineTotal
	}

	fee, tax := DecomposeConvenienceFee(booking.ConvenienceFee)

	total := booking.TotalPrice
	if total == 0 {
		total = basePrice + booking.ConvenienceFee
	}

	eventDate, eventTime := ResolveEventDateTime(booking.Event, booking.Occurrence)

	first, last := SplitName(booking.CustomerName)

	return &model.ReconciledPricing{
		BasePrice:      basePrice,
		ConvenienceFee: fee,
		Tax:            tax,
		TotalPrice:     total,
		Breakdown:      breakdown,
		Customer: model.Customer{
			FirstName: first,
			LastName:  last,
			Email:     booking.CustomerEmail,
			Phone:     booking.CustomerPhone,
		},
		EventDate: eventDate,
		EventTime: eventTime,
	}, nil
}

// resolveSource picks the breakdown source once, in strict priority
// order, so the rest of the engine can match on it instead of probing
// nullable fields.
func (e Engine) resolveSource(ctx context.Context, booking model.BookingRecord) breakdownSource {
	if booking.OccurrenceID != "" && booking.OccurrenceCategoryID != "" {
		category, err := e.Store.FindOccurrenceCategoryByID(ctx, booking.OccurrenceCategoryID)
		if err == nil {
			return occurrenceCategorySource{category: category}
		}

		slog.WarnContext(ctx, "occurrence category lookup failed, degrading to seat array",
			common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
	}

	if len(booking.Seats) > 0 {
		return seatArraySource{}
	}

	return flatFallbackSource{}
}
