package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ticketooz/model"
)

func TestDecomposeConvenienceFee(t *testing.T) {
	tests := []struct {
		name        string
		stored      float64
		expectedFee float64
		expectedTax float64
	}{
		{
			name:        "standard fee",
			stored:      82.60,
			expectedFee: 70.00,
			expectedTax: 12.60,
		},
		{
			name:        "zero fee skips division",
			stored:      0,
			expectedFee: 0,
			expectedTax: 0,
		},
		{
			name:        "small fee",
			stored:      11.8,
			expectedFee: 10,
			expectedTax: 1.8,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fee, tax := DecomposeConvenienceFee(tc.stored)

			assert.InDelta(t, tc.expectedFee, fee, 1e-9)
			assert.InDelta(t, tc.expectedTax, tax, 1e-9)
			assert.InDelta(t, tc.stored, fee+tax, 1e-9)
		})
	}
}

func TestDecomposeConvenienceFeeRoundTrips(t *testing.T) {
	for _, stored := range []float64{0.01, 1, 59, 82.6, 100, 12345.67} {
		fee, tax := DecomposeConvenienceFee(stored)
		assert.True(t, math.Abs(stored-(fee+tax)) < 1e-9)
	}
}

func TestResolveEventDateTime(t *testing.T) {
	startAt := time.Date(2025, 3, 7, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		event        model.EventRecord
		occurrence   *model.Occurrence
		expectedDate string
		expectedTime string
	}{
		{
			name:         "non-recurring uses event start",
			event:        model.EventRecord{StartAt: startAt},
			occurrence:   &model.Occurrence{Date: "2025-06-01", Time: "20:00"},
			expectedDate: "03/07/2025",
			expectedTime: "6:30 PM",
		},
		{
			name:         "recurring prefers occurrence date with canonical event time",
			event:        model.EventRecord{IsRecurring: true, EventTime: "19:30", StartAt: startAt},
			occurrence:   &model.Occurrence{Date: "2025-06-01", Time: "20:00"},
			expectedDate: "06/01/2025",
			expectedTime: "7:30 PM",
		},
		{
			name:         "recurring falls back to occurrence time",
			event:        model.EventRecord{IsRecurring: true, StartAt: startAt},
			occurrence:   &model.Occurrence{Date: "2025-06-01", Time: "20:00"},
			expectedDate: "06/01/2025",
			expectedTime: "8:00 PM",
		},
		{
			name:         "recurring without occurrence uses event start",
			event:        model.EventRecord{IsRecurring: true, EventTime: "19:30", StartAt: startAt},
			expectedDate: "03/07/2025",
			expectedTime: "6:30 PM",
		},
		{
			name:         "unparsable occurrence date renders TBA",
			event:        model.EventRecord{IsRecurring: true, EventTime: "19:30"},
			occurrence:   &model.Occurrence{Date: "soon"},
			expectedDate: "TBA",
			expectedTime: "7:30 PM",
		},
		{
			name:         "zero start renders TBA",
			event:        model.EventRecord{},
			expectedDate: "TBA",
			expectedTime: "TBA",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, clock := ResolveEventDateTime(tc.event, tc.occurrence)

			assert.Equal(t, tc.expectedDate, date)
			assert.Equal(t, tc.expectedTime, clock)
		})
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name          string
		full          string
		expectedFirst string
		expectedLast  string
	}{
		{name: "two tokens", full: "John Doe", expectedFirst: "John", expectedLast: "Doe"},
		{name: "single token has no last name", full: "Madonna", expectedFirst: "Madonna", expectedLast: ""},
		{name: "extra tokens join the last name", full: "Jan van der Berg", expectedFirst: "Jan", expectedLast: "van der Berg"},
		{name: "empty", full: "", expectedFirst: "", expectedLast: ""},
		{name: "whitespace only", full: "   ", expectedFirst: "", expectedLast: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			first, last := SplitName(tc.full)

			assert.Equal(t, tc.expectedFirst, first)
			assert.Equal(t, tc.expectedLast, last)
		})
	}
}
