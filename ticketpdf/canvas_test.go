package ticketpdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T, paginate bool) *Canvas {
	t.Helper()
	c := NewCanvas(ResolveLayout(210, 297), paginate)
	require.NoError(t, c.Err())
	return c
}

func TestWrapTextWordSafe(t *testing.T) {
	c := newTestCanvas(t, true)

	lines := c.WrapText("The quick brown fox jumps over the lazy dog near the riverbank", 40, 10)

	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, c.width(line), 40.0)
	}
	assert.Equal(t,
		"The quick brown fox jumps over the lazy dog near the riverbank",
		strings.Join(lines, " "))
}

func TestWrapTextSingleShortWord(t *testing.T) {
	c := newTestCanvas(t, true)

	lines := c.WrapText("Standing", 80, 10)

	assert.Equal(t, []string{"Standing"}, lines)
}

func TestWrapTextEmpty(t *testing.T) {
	c := newTestCanvas(t, true)

	assert.Nil(t, c.WrapText("", 80, 10))
	assert.Nil(t, c.WrapText("   ", 80, 10))
}

func TestWrapTextOverlongWordSplitsByRunes(t *testing.T) {
	c := newTestCanvas(t, true)

	long := strings.Repeat("x", 200)
	lines := c.WrapText(long, 30, 10)

	require.Greater(t, len(lines), 1)
	total := 0
	for _, line := range lines {
		assert.LessOrEqual(t, c.width(line), 30.0)
		total += len(line)
	}
	assert.Equal(t, len(long), total)
}

func TestHasSpace(t *testing.T) {
	c := newTestCanvas(t, true)
	layout := c.Layout()

	c.SetY(layout.Margin)
	assert.True(t, c.HasSpace(10))

	c.SetY(layout.PageHeight - layout.Margin - 5)
	assert.True(t, c.HasSpace(5))
	assert.False(t, c.HasSpace(5.01))
}

func TestWriteLineAdvancesCursor(t *testing.T) {
	c := newTestCanvas(t, true)
	c.FirstPage("E-Ticket")

	before := c.Y()
	c.WriteLine("Booking Date:", c.Layout().Margin, 10)

	assert.InDelta(t, before+c.Layout().LineHeight, c.Y(), 1e-9)
	assert.NoError(t, c.Err())
}

func TestWriteLinePaginates(t *testing.T) {
	c := newTestCanvas(t, true)
	c.FirstPage("E-Ticket")
	require.Equal(t, 1, c.Pages())

	layout := c.Layout()
	c.SetY(layout.PageHeight - layout.Margin - layout.LineHeight/2)
	c.WriteLine("overflow line", layout.Margin, 10)

	assert.Equal(t, 2, c.Pages())
	assert.InDelta(t,
		layout.HeaderHeight+layout.SectionSpacing+layout.LineHeight,
		c.Y(), 1e-9)
}

func TestWriteLineCompactModeNeverPaginates(t *testing.T) {
	c := newTestCanvas(t, false)
	c.FirstPage("E-Ticket")

	layout := c.Layout()
	c.SetY(layout.PageHeight - layout.Margin)
	for i := 0; i < 20; i++ {
		c.WriteLine("overflow line", layout.Margin, 10)
	}

	assert.Equal(t, 1, c.Pages())
	assert.NoError(t, c.Err())
}

func TestWriteWrappedLongTextPaginates(t *testing.T) {
	c := newTestCanvas(t, true)
	c.FirstPage("E-Ticket")

	layout := c.Layout()
	text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 400))
	c.WriteWrapped(text, layout.Margin, 60, 10)

	assert.Greater(t, c.Pages(), 1)
	assert.NoError(t, c.Err())
}

func TestWriteKeyValueAdvancesOneLine(t *testing.T) {
	c := newTestCanvas(t, true)
	c.FirstPage("E-Ticket")

	before := c.Y()
	c.WriteKeyValue("Total Amount:", "Rs. 500.00", c.Layout().Margin, 80, 10, true)

	assert.InDelta(t, before+c.Layout().LineHeight, c.Y(), 1e-9)
	assert.NoError(t, c.Err())
}

func TestOutputProducesPdfBytes(t *testing.T) {
	c := newTestCanvas(t, true)
	c.FirstPage("E-Ticket")
	c.WriteLine("Event: Summer Beats", c.Layout().Margin, 10)
	c.Rule()

	var buf bytes.Buffer
	require.NoError(t, c.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
