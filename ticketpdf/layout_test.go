package ticketpdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLayoutStackedFlag(t *testing.T) {
	tests := []struct {
		name      string
		pageWidth float64
		stacked   bool
	}{
		{name: "a6 width stacks", pageWidth: 105, stacked: true},
		{name: "a5 width stacks", pageWidth: 148, stacked: true},
		{name: "just under threshold stacks", pageWidth: 149.9, stacked: true},
		{name: "at threshold splits", pageWidth: 150, stacked: false},
		{name: "a4 width splits", pageWidth: 210, stacked: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ResolveLayout(tc.pageWidth, tc.pageWidth*1.414)
			assert.Equal(t, tc.stacked, cfg.Stacked)
		})
	}
}

func TestResolveLayoutStackedColumnsCollapse(t *testing.T) {
	cfg := ResolveLayout(105, 148)

	assert.True(t, cfg.Stacked)
	assert.Equal(t, cfg.LeftColX, cfg.RightColX)
	assert.Equal(t, cfg.LeftColWidth, cfg.RightColWidth)
	assert.InDelta(t, 105-2*cfg.Margin, cfg.LeftColWidth, 1e-9)
}

func TestResolveLayoutTwoColumnGeometry(t *testing.T) {
	cfg := ResolveLayout(210, 297)

	assert.False(t, cfg.Stacked)
	assert.Greater(t, cfg.RightColX, cfg.LeftColX+cfg.LeftColWidth)
	assert.InDelta(t, 210-cfg.Margin, cfg.RightColX+cfg.RightColWidth, 1e-9)
}

func TestResolveLayoutFontsMonotonicInWidth(t *testing.T) {
	prev := ResolveLayout(100, 141)

	for width := 101.0; width <= 300; width++ {
		cfg := ResolveLayout(width, width*1.414)

		assert.GreaterOrEqual(t, cfg.Fonts.Title, prev.Fonts.Title)
		assert.GreaterOrEqual(t, cfg.Fonts.Subtitle, prev.Fonts.Subtitle)
		assert.GreaterOrEqual(t, cfg.Fonts.Heading, prev.Fonts.Heading)
		assert.GreaterOrEqual(t, cfg.Fonts.Body, prev.Fonts.Body)
		assert.GreaterOrEqual(t, cfg.Fonts.Small, prev.Fonts.Small)

		prev = cfg
	}
}

func TestResolveLayoutClamps(t *testing.T) {
	tiny := ResolveLayout(50, 70)
	huge := ResolveLayout(1000, 1414)

	assert.GreaterOrEqual(t, tiny.Fonts.Body, 8.0)
	assert.LessOrEqual(t, huge.Fonts.Body, 12.0)
	assert.GreaterOrEqual(t, tiny.QRSize, 25.0)
	assert.LessOrEqual(t, huge.QRSize, 55.0)
	assert.GreaterOrEqual(t, tiny.Margin, 8.0)
	assert.LessOrEqual(t, huge.Margin, 18.0)
}

func TestResolveLayoutTierConstants(t *testing.T) {
	small := ResolveLayout(120, 170)
	medium := ResolveLayout(170, 240)
	large := ResolveLayout(210, 297)

	assert.Less(t, small.HeaderHeight, medium.HeaderHeight)
	assert.Less(t, medium.HeaderHeight, large.HeaderHeight)
	assert.Less(t, small.LineHeight, large.LineHeight)
	assert.Less(t, small.SectionSpacing, large.SectionSpacing)
}

func TestResolveLayoutDeterministic(t *testing.T) {
	assert.Equal(t, ResolveLayout(210, 297), ResolveLayout(210, 297))
}
