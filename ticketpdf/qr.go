package ticketpdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"ticketooz/common/errs"
)

// qrPixelsPerMM gives the raster enough density to scan at print size.
const qrPixelsPerMM = 8

// DrawQR encodes url and places the image at (x, y) with the layout's
// QR size. On encoding failure it draws a bordered placeholder instead
// of failing the document, returning the wrapped error for logging.
func (c *Canvas) DrawQR(url string, x, y float64) error {
	size := c.layout.QRSize

	png, err := qrcode.Encode(url, qrcode.Medium, int(size*qrPixelsPerMM))
	if err != nil {
		c.drawQRPlaceholder(x, y, size)
		return &errs.RenderableAssetError{Asset: "qr", Err: err}
	}

	name := fmt.Sprintf("qr-%d-%f", c.pages, y)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	c.pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")

	return nil
}

func (c *Canvas) drawQRPlaceholder(x, y, size float64) {
	c.pdf.SetDrawColor(120, 120, 120)
	c.pdf.Rect(x, y, size, size, "D")

	c.pdf.SetFont("Helvetica", "", c.layout.Fonts.Small)
	c.pdf.Text(x+size*0.25, y+size*0.45, "QR Code")
	c.pdf.Text(x+size*0.3, y+size*0.6, "Error")
	c.pdf.SetFont("Helvetica", "", c.layout.Fonts.Body)
}
