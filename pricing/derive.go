package pricing

import (
	"strings"
	"time"

	"ticketooz/common/constant"
	"ticketooz/model"
)

const (
	displayDateLayout = "01/02/2006"
	displayTimeLayout = "3:04 PM"
	clockLayout       = "15:04"
	dateOnlyLayout    = "2006-01-02"
)

// DecomposeConvenienceFee splits the stored, tax-inclusive convenience
// fee into its pre-tax portion and the GST carved out of it. A zero fee
// decomposes to zero without division.
func DecomposeConvenienceFee(stored float64) (fee, tax float64) {
	if stored == 0 {
		return 0, 0
	}

	fee = stored / (1 + constant.ConvenienceFeeTaxRate)
	return fee, stored - fee
}

// ResolveEventDateTime applies the recurring-event rule: a recurring
// booking with occurrence data uses the occurrence's date combined with
// the event's canonical time-of-day, falling back to the occurrence's
// own stored time. Non-recurring events always use the event start.
// Unparsable inputs render as TBA, never as a garbled date.
func ResolveEventDateTime(event model.EventRecord, occurrence *model.Occurrence) (date, clock string) {
	if event.IsRecurring && occurrence != nil {
		date = formatDate(occurrence.Date)

		clockSrc := event.EventTime
		if clockSrc == "" {
			clockSrc = occurrence.Time
		}
		clock = formatClock(clockSrc)

		return date, clock
	}

	if event.StartAt.IsZero() {
		return constant.DateTBA, constant.DateTBA
	}

	return event.StartAt.Format(displayDateLayout), event.StartAt.Format(displayTimeLayout)
}

func formatDate(raw string) string {
	parsed, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return constant.DateTBA
	}
	return parsed.Format(displayDateLayout)
}

func formatClock(raw string) string {
	for _, layout := range []string{clockLayout, "15:04:05", displayTimeLayout} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format(displayTimeLayout)
		}
	}
	return constant.DateTBA
}

// SplitName splits a full name into first and last: a single token is
// first-name-only, everything after the first token joins into the last
// name.
func SplitName(full string) (first, last string) {
	tokens := strings.Fields(full)
	if len(tokens) == 0 {
		return "", ""
	}
	if len(tokens) == 1 {
		return tokens[0], ""
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}
