package invoice

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketooz/common/errs"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name        string
		bookingID   string
		bookingDate string
		expected    string
		expectedErr error
	}{
		{
			name:        "full length id",
			bookingID:   "abc123456789",
			bookingDate: "2025-03-07T10:00:00Z",
			expected:    "INV-250307-456789",
		},
		{
			name:        "lowercase suffix is uppercased",
			bookingID:   "xyz-deadbeef",
			bookingDate: "2024-12-31T23:59:59Z",
			expected:    "INV-241231-ADBEEF",
		},
		{
			name:        "short id used whole without padding",
			bookingID:   "ab1",
			bookingDate: "2025-01-02T00:00:00Z",
			expected:    "INV-250102-AB1",
		},
		{
			name:        "multibyte id suffix stays valid utf-8",
			bookingID:   "booking-résumé",
			bookingDate: "2025-03-07T10:00:00Z",
			expected:    "INV-250307-RÉSUMÉ",
		},
		{
			name:        "date only input",
			bookingID:   "abc123456789",
			bookingDate: "2025-03-07",
			expected:    "INV-250307-456789",
		},
		{
			name:        "unparsable date",
			bookingID:   "abc123456789",
			bookingDate: "not-a-date",
			expectedErr: errs.ErrInvalidDate,
		},
		{
			name:        "empty booking id",
			bookingID:   "",
			bookingDate: "2025-03-07T10:00:00Z",
			expectedErr: errs.ErrMalformedInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Generate(tc.bookingID, tc.bookingDate)

			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.expectedErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestGeneratePattern(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{6}-[A-Z0-9]{1,6}$`)

	ids := []string{"a", "ab12", "abcdef", "booking00042", "ABCDEF123456"}
	for _, id := range ids {
		got, err := Generate(id, "2025-06-15T08:30:00Z")
		require.NoError(t, err)
		assert.Regexp(t, pattern, got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := Generate("abc123456789", "2025-03-07T10:00:00Z")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Generate("abc123456789", "2025-03-07T10:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "INV-250307-456789", Format("INV-250307-456789"))
	assert.Equal(t, "N/A", Format(""))
}
