// Package ticketpdf renders the printable e-ticket document: a
// responsive layout over an A4-default page, a cursor-based text flow
// engine with pagination, and the section composer.
package ticketpdf

// Page size tiers. Thresholds are in page units (mm).
const (
	tierSmallMax  = 150.0
	tierMediumMax = 190.0

	// referenceWidth is the A4 width all proportional sizes scale from.
	referenceWidth = 210.0

	// columnSplit is the fraction of page width given to the left
	// column in two-column mode.
	columnSplit = 0.62

	columnGutter = 6.0
)

// FontSizes holds the per-role font sizes in points.
type FontSizes struct {
	Title    float64
	Subtitle float64
	Heading  float64
	Body     float64
	Small    float64
}

// LayoutConfig is the complete set of typographic and geometric
// constants for one target page size. Pure value, recomputed per
// document.
type LayoutConfig struct {
	PageWidth  float64
	PageHeight float64

	Margin         float64
	HeaderHeight   float64
	LineHeight     float64
	SectionSpacing float64

	Fonts  FontSizes
	QRSize float64

	// Stacked collapses both logical columns onto the same x-origin.
	Stacked bool

	LeftColX      float64
	LeftColWidth  float64
	RightColX     float64
	RightColWidth float64
}

// ResolveLayout derives all layout constants from the target page
// dimensions. Deterministic, no I/O.
func ResolveLayout(pageWidth, pageHeight float64) LayoutConfig {
	scale := pageWidth / referenceWidth

	cfg := LayoutConfig{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,

		Margin: clamp(12*scale, 8, 18),
		QRSize: clamp(40*scale, 25, 55),

		Fonts: FontSizes{
			Title:    clamp(20*scale, 14, 26),
			Subtitle: clamp(12*scale, 9, 15),
			Heading:  clamp(13*scale, 10, 16),
			Body:     clamp(10*scale, 8, 12),
			Small:    clamp(8*scale, 6, 10),
		},
	}

	switch {
	case pageWidth < tierSmallMax:
		cfg.HeaderHeight = 22
		cfg.LineHeight = 5
		cfg.SectionSpacing = 6
	case pageWidth < tierMediumMax:
		cfg.HeaderHeight = 26
		cfg.LineHeight = 5.5
		cfg.SectionSpacing = 7
	default:
		cfg.HeaderHeight = 30
		cfg.LineHeight = 6
		cfg.SectionSpacing = 8
	}

	cfg.Stacked = pageWidth < tierSmallMax

	if cfg.Stacked {
		cfg.LeftColX = cfg.Margin
		cfg.LeftColWidth = pageWidth - 2*cfg.Margin
		cfg.RightColX = cfg.LeftColX
		cfg.RightColWidth = cfg.LeftColWidth
		return cfg
	}

	split := pageWidth * columnSplit
	cfg.LeftColX = cfg.Margin
	cfg.LeftColWidth = split - cfg.Margin - columnGutter/2
	cfg.RightColX = split + columnGutter/2
	cfg.RightColWidth = pageWidth - cfg.RightColX - cfg.Margin

	return cfg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
