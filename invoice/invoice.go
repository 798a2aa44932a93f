// Package invoice derives the deterministic, booking-derived invoice
// code used both for display and as the QR verification key.
package invoice

import (
	"fmt"
	"strings"
	"time"

	"ticketooz/common/errs"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Generate builds the invoice number INV-YYMMDD-XXXXXX from a booking
// id and its ISO booking date. The suffix is the uppercased last six
// characters of the id; shorter ids are used whole, unpadded.
func Generate(bookingID, bookingDateISO string) (string, error) {
	if bookingID == "" {
		return "", fmt.Errorf("%w: empty booking id", errs.ErrMalformedInput)
	}

	bookedAt, err := parseDate(bookingDateISO)
	if err != nil {
		return "", err
	}

	runes := []rune(bookingID)
	if len(runes) > 6 {
		runes = runes[len(runes)-6:]
	}
	suffix := strings.ToUpper(string(runes))

	return fmt.Sprintf("INV-%02d%02d%02d-%s",
		bookedAt.Year()%100, int(bookedAt.Month()), bookedAt.Day(), suffix), nil
}

// Format returns the code unchanged, or "N/A" for an empty one. Display
// only, never stored.
func Format(code string) string {
	if code == "" {
		return "N/A"
	}
	return code
}

func parseDate(iso string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errs.ErrInvalidDate, iso)
}
