package ticketpdf

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Canvas owns one document's page stack and vertical write cursor.
// Exclusively owned by a single Generate call; calls are strictly
// sequential, so no locking.
type Canvas struct {
	pdf      *fpdf.Fpdf
	layout   LayoutConfig
	paginate bool
	tr       func(string) string

	y     float64
	pages int
}

// NewCanvas builds an empty canvas. With paginate false (compact mode)
// overflow past the bottom margin is accepted instead of starting a new
// page.
func NewCanvas(layout LayoutConfig, paginate bool) *Canvas {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", layout.Fonts.Body)

	return &Canvas{
		pdf:      pdf,
		layout:   layout,
		paginate: paginate,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		y:        layout.Margin,
	}
}

func (c *Canvas) Layout() LayoutConfig { return c.layout }

func (c *Canvas) Y() float64 { return c.y }

func (c *Canvas) SetY(y float64) { c.y = y }

// Space advances the cursor by h without drawing.
func (c *Canvas) Space(h float64) { c.y += h }

func (c *Canvas) Pages() int { return c.pages }

// HasSpace reports whether required height still fits above the bottom
// margin at the current cursor.
func (c *Canvas) HasSpace(required float64) bool {
	return c.y+required <= c.layout.PageHeight-c.layout.Margin
}

// SetFont selects a core font style ("", "B", "I") at the given size.
func (c *Canvas) SetFont(style string, size float64) {
	c.pdf.SetFont("Helvetica", style, size)
}

// WrapText splits text into lines whose measured width at fontSize does
// not exceed maxWidth. Wrapping is word-safe; a single word wider than
// the column is split by runes.
func (c *Canvas) WrapText(text string, maxWidth, fontSize float64) []string {
	c.pdf.SetFontSize(fontSize)

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""

	for _, word := range words {
		if c.width(word) > maxWidth {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, c.splitWord(word, maxWidth)...)
			if len(lines) > 0 {
				// Over-long word fragments continue the flow.
				current = lines[len(lines)-1]
				lines = lines[:len(lines)-1]
			}
			continue
		}

		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if c.width(candidate) <= maxWidth {
			current = candidate
			continue
		}

		lines = append(lines, current)
		current = word
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

func (c *Canvas) width(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(s))
}

func (c *Canvas) splitWord(word string, maxWidth float64) []string {
	var parts []string
	runes := []rune(word)
	start := 0

	for start < len(runes) {
		end := start + 1
		for end < len(runes) && c.width(string(runes[start:end+1])) <= maxWidth {
			end++
		}
		parts = append(parts, string(runes[start:end]))
		start = end
	}

	return parts
}

// WriteLine draws a single line at x and advances the cursor one line
// height, starting a new page first when the line would not fit.
func (c *Canvas) WriteLine(text string, x, fontSize float64) {
	c.pdf.SetFontSize(fontSize)

	if c.paginate && !c.HasSpace(c.layout.LineHeight) {
		c.NewPage()
	}

	c.pdf.Text(x, c.y+c.layout.LineHeight*0.75, c.tr(text))
	c.y += c.layout.LineHeight
}

// WriteWrapped wraps text to maxWidth and writes each line, paginating
// as needed. Returns the cursor after the last line.
func (c *Canvas) WriteWrapped(text string, x, maxWidth, fontSize float64) float64 {
	for _, line := range c.WrapText(text, maxWidth, fontSize) {
		c.WriteLine(line, x, fontSize)
	}
	return c.y
}

// WriteKeyValue writes label at x and value right-aligned at x+width
// on the same line, advancing the cursor one line height.
func (c *Canvas) WriteKeyValue(label, value string, x, width, fontSize float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	c.pdf.SetFont("Helvetica", style, fontSize)

	if c.paginate && !c.HasSpace(c.layout.LineHeight) {
		c.NewPage()
	}

	baseline := c.y + c.layout.LineHeight*0.75
	c.pdf.Text(x, baseline, c.tr(label))
	c.pdf.Text(x+width-c.width(value), baseline, c.tr(value))
	c.y += c.layout.LineHeight

	if bold {
		c.pdf.SetFont("Helvetica", "", fontSize)
	}
}

// NewPage appends a page, paints the continued-header banner and
// returns the y where body content resumes.
func (c *Canvas) NewPage() float64 {
	c.pdf.AddPage()
	c.pages++

	c.paintBanner("E-Ticket (continued)")

	c.y = c.layout.HeaderHeight + c.layout.SectionSpacing
	return c.y
}

// FirstPage appends the opening page with the full header banner.
func (c *Canvas) FirstPage(subtitle string) float64 {
	c.pdf.AddPage()
	c.pages++

	c.paintBanner(subtitle)

	c.y = c.layout.HeaderHeight + c.layout.SectionSpacing
	return c.y
}

func (c *Canvas) paintBanner(subtitle string) {
	c.pdf.SetFillColor(24, 24, 72)
	c.pdf.Rect(0, 0, c.layout.PageWidth, c.layout.HeaderHeight, "F")

	c.pdf.SetTextColor(255, 255, 255)
	c.pdf.SetFont("Helvetica", "B", c.layout.Fonts.Title)
	c.pdf.Text(c.layout.Margin, c.layout.HeaderHeight*0.55, "Ticketooz")

	c.pdf.SetFont("Helvetica", "", c.layout.Fonts.Subtitle)
	c.pdf.Text(c.layout.Margin, c.layout.HeaderHeight*0.85, c.tr(subtitle))

	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.SetFont("Helvetica", "", c.layout.Fonts.Body)
}

// Rule draws a horizontal separator across the body width at the
// cursor.
func (c *Canvas) Rule() {
	c.pdf.SetDrawColor(180, 180, 180)
	c.pdf.Line(c.layout.Margin, c.y, c.layout.PageWidth-c.layout.Margin, c.y)
	c.y += c.layout.SectionSpacing / 2
}

// Output writes the finished document. The canvas must not be reused
// afterwards.
func (c *Canvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}

// Err reports any drawing error fpdf accumulated.
func (c *Canvas) Err() error {
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return nil
}
