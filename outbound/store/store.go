// Package store implements the booking data source against Postgres,
// with a Redis read-through cache for occurrence ticket categories and
// the invoice-number verification index.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"ticketooz/common/constant"
	"ticketooz/common/contract"
	"ticketooz/model"
)

const findBookingByIdSQL = `
SELECT
	b.id, b.quantity, b.total_price, b.convenience_fee, b.booked_at,
	b.seats, b.occurrence_id, b.occurrence_ticket_category_id,
	b.customer_name, b.customer_email, b.customer_phone,
	e.id, e.name, e.start_at, e.venue_name, e.venue_city, e.address,
	e.category, e.sub_category, e.language, e.duration,
	e.genres, e.artists, e.is_recurring, e.event_time,
	o.occurrence_date, o.occurrence_time
FROM bookings b
JOIN events e ON e.id = b.event_id
LEFT JOIN event_occurrences o ON o.id = b.occurrence_id
WHERE b.id = $1`

const findOccurrenceCategorySQL = `
SELECT id, name, base_price
FROM occurrence_ticket_categories
WHERE id = $1`

const listRecentBookingsSQL = `
SELECT id, booked_at
FROM bookings
WHERE booked_at >= now() - $1::interval
ORDER BY booked_at DESC
LIMIT $2`

type BookingStore struct {
	Db    contract.DbConn
	Cache *redis.Client
}

func (s *BookingStore) FindBookingByID(ctx context.Context, id string) (model.BookingRecord, error) {
	var (
		booking        model.BookingRecord
		seatsRaw       []byte
		occurrenceID   *string
		categoryID     *string
		eventTime      *string
		occurrenceDate *string
		occurrenceTime *string
		genresRaw      []byte
		artistsRaw     []byte
	)

	row := s.Db.QueryRow(ctx, findBookingByIdSQL, id)
	err := row.Scan(
		&booking.ID, &booking.Quantity, &booking.TotalPrice, &booking.ConvenienceFee, &booking.BookedAt,
		&seatsRaw, &occurrenceID, &categoryID,
		&booking.CustomerName, &booking.CustomerEmail, &booking.CustomerPhone,
		&booking.Event.ID, &booking.Event.Name, &booking.Event.StartAt,
		&booking.Event.VenueName, &booking.Event.VenueCity, &booking.Event.Address,
		&booking.Event.Category, &booking.Event.SubCategory, &booking.Event.Language, &booking.Event.Duration,
		&genresRaw, &artistsRaw, &booking.Event.IsRecurring, &eventTime,
		&occurrenceDate, &occurrenceTime,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.BookingRecord{}, fmt.Errorf("booking %s not found: %w", id, err)
		}
		return model.BookingRecord{}, fmt.Errorf("query booking %s: %w", id, err)
	}

	booking.Seats, err = model.DecodeSeats(seatsRaw)
	if err != nil {
		return model.BookingRecord{}, fmt.Errorf("decode seats for booking %s: %w", id, err)
	}

	if occurrenceID != nil {
		booking.OccurrenceID = *occurrenceID
	}
	if categoryID != nil {
		booking.OccurrenceCategoryID = *categoryID
	}
	if eventTime != nil {
		booking.Event.EventTime = *eventTime
	}

	if occurrenceDate != nil {
		booking.Occurrence = &model.Occurrence{Date: *occurrenceDate}
		if occurrenceTime != nil {
			booking.Occurrence.Time = *occurrenceTime
		}
	}

	decodeJSONList(genresRaw, &booking.Event.Genres)
	decodeJSONList(artistsRaw, &booking.Event.Artists)

	return booking, nil
}

// FindOccurrenceCategoryByID reads through the Redis cache; a cache
// miss or a cache error falls through to Postgres.
func (s *BookingStore) FindOccurrenceCategoryByID(ctx context.Context, id string) (model.OccurrenceCategory, error) {
	cacheKey := fmt.Sprintf(constant.OccurrenceCategoryKey, id)

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var category model.OccurrenceCategory
			if unmarshalErr := json.Unmarshal([]byte(cached), &category); unmarshalErr == nil {
				return category, nil
			}
		}
	}

	var category model.OccurrenceCategory
	row := s.Db.QueryRow(ctx, findOccurrenceCategorySQL, id)
	if err := row.Scan(&category.ID, &category.Name, &category.BasePrice); err != nil {
		return model.OccurrenceCategory{}, fmt.Errorf("query occurrence category %s: %w", id, err)
	}

	if s.Cache != nil {
		if encoded, err := json.Marshal(category); err == nil {
			s.Cache.Set(ctx, cacheKey, encoded, constant.OccurrenceCategoryTTL)
		}
	}

	return category, nil
}

type RecentBooking struct {
	ID       string
	BookedAt time.Time
}

// ListRecentBookings returns bookings made within the lookback window,
// newest first, for the verify-index refresher.
func (s *BookingStore) ListRecentBookings(ctx context.Context, lookback string, limit int32) ([]RecentBooking, error) {
	rows, err := s.Db.Query(ctx, listRecentBookingsSQL, lookback, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent bookings: %w", err)
	}
	defer rows.Close()

	var bookings []RecentBooking
	for rows.Next() {
		var b RecentBooking
		if err := rows.Scan(&b.ID, &b.BookedAt); err != nil {
			return nil, fmt.Errorf("scan recent booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func decodeJSONList(raw []byte, dst *[]string) {
	if len(raw) == 0 {
		return
	}
	// Best effort; descriptive metadata never blocks reconciliation.
	_ = json.Unmarshal(raw, dst)
}
