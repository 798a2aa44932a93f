package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ticketooz/common/constant"
)

// VerifyIndex maps invoice numbers to booking ids in Redis so the
// verify-ticket endpoint can resolve the QR payload without scanning
// bookings. Entries have no TTL; an invoice is valid for the life of
// its booking.
type VerifyIndex struct {
	Cache *redis.Client
}

func (v *VerifyIndex) Record(ctx context.Context, invoiceNumber, bookingID string) error {
	err := v.Cache.SetNX(ctx, fmt.Sprintf(constant.InvoiceBookingKey, invoiceNumber), bookingID, 0).Err()
	if err != nil {
		return fmt.Errorf("record invoice index %s: %w", invoiceNumber, err)
	}
	return nil
}

// Resolve returns the booking id behind an invoice number. A missing
// entry returns redis.Nil.
func (v *VerifyIndex) Resolve(ctx context.Context, invoiceNumber string) (string, error) {
	bookingID, err := v.Cache.Get(ctx, fmt.Sprintf(constant.InvoiceBookingKey, invoiceNumber)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", err
		}
		return "", fmt.Errorf("resolve invoice %s: %w", invoiceNumber, err)
	}
	return bookingID, nil
}
