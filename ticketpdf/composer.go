package ticketpdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/message"

	"ticketooz/common"
	"ticketooz/common/constant"
	"ticketooz/common/errs"
	"ticketooz/common/otel"
	"ticketooz/invoice"
	"ticketooz/model"
	"ticketooz/pricing"
)

type Mode string

const (
	// ModePaginated starts a new page with a repeated header banner
	// whenever a section would overflow. The default.
	ModePaginated Mode = "paginated"
	// ModeCompact disables pagination entirely; overflow past the
	// bottom margin is accepted.
	ModeCompact Mode = "compact"
)

// A4 in mm, the default page size.
const (
	defaultPageWidth  = 210
	defaultPageHeight = 297
)

// Document is one finished ticket PDF.
type Document struct {
	Bytes         []byte
	Filename      string
	InvoiceNumber string
}

// Composer builds ticket documents. Each Generate call owns an
// independent canvas and cursor, so concurrent generation needs no
// locking, only separate calls.
type Composer struct {
	// Pricing reconciles authoritative pricing; nil (or a failed
	// reconciliation) degrades to the caller-supplied figures in
	// TicketData.
	Pricing  *pricing.Engine
	Validate *validator.Validate
	// Currency renders monetary values, two decimals with the rupee
	// glyph prefix.
	Currency *message.Printer
	// Origin is the deployment origin encoded into the QR verification
	// URL.
	Origin string
	Mode   Mode

	// PageWidth/PageHeight override the A4 default when non-zero.
	PageWidth  float64
	PageHeight float64
}

// Generate composes the full ticket document for one booking. Input
// validation failures surface before any page is drawn; reconciliation
// and QR failures degrade gracefully; anything else aborts the whole
// document.
func (c Composer) Generate(ctx context.Context, data model.TicketData) (*Document, error) {
	ctx, span := otel.Tracer.Start(ctx, "Composer.Generate")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	if err := c.validateInput(data); err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	reconciled := c.reconcile(ctx, data, traceIdAttr)
	pr := reconciled
	if pr == nil {
		pr = c.fallbackPricing(data)
	}

	invoiceNumber, err := invoice.Generate(data.BookingID, data.BookingDate)
	if err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	width, height := c.PageWidth, c.PageHeight
	if width == 0 || height == 0 {
		width, height = defaultPageWidth, defaultPageHeight
	}

	layout := ResolveLayout(width, height)
	canvas := NewCanvas(layout, c.Mode != ModeCompact)
	canvas.FirstPage("E-Ticket")

	leftBodyTop := canvas.Y()

	c.writeEventDetails(canvas, data, pr)
	c.writeTicketInfo(canvas, data, pr, reconciled != nil)

	leftBottom := canvas.Y()

	// Customer block and QR live in the right column; in stacked mode
	// they just continue the flow.
	if !layout.Stacked {
		canvas.SetY(leftBodyTop)
	}

	c.writeCustomerInfo(ctx, canvas, data, pr, invoiceNumber, traceIdAttr)
	c.writeQR(ctx, canvas, invoiceNumber, traceIdAttr)

	if !layout.Stacked && leftBottom > canvas.Y() {
		canvas.SetY(leftBottom)
	}

	canvas.Space(layout.SectionSpacing / 2)
	canvas.Rule()

	c.writePaymentSummary(canvas, pr)
	c.writeNotices(canvas)

	if err := canvas.Err(); err != nil {
		common.UtilSpanError(span, err)
		return nil, fmt.Errorf("compose ticket document: %w", err)
	}

	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		common.UtilSpanError(span, err)
		return nil, fmt.Errorf("write ticket document: %w", err)
	}

	slog.InfoContext(ctx, "ticket document generated", traceIdAttr,
		slog.String("invoice_number", invoiceNumber),
		slog.Int("pages", canvas.Pages()),
	)

	return &Document{
		Bytes:         buf.Bytes(),
		Filename:      fmt.Sprintf("ticket-%s.pdf", invoiceNumber),
		InvoiceNumber: invoiceNumber,
	}, nil
}

func (c Composer) validateInput(data model.TicketData) error {
	if data.BookingID == "" {
		return fmt.Errorf("%w: booking id is required", errs.ErrMalformedInput)
	}

	if c.Validate != nil {
		if err := c.Validate.Struct(data); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
		}
	}

	return nil
}

func (c Composer) reconcile(ctx context.Context, data model.TicketData, traceIdAttr slog.Attr) *model.ReconciledPricing {
	if c.Pricing == nil {
		return nil
	}

	pr, err := c.Pricing.Reconcile(ctx, data.BookingID)
	if err != nil {
		slog.WarnContext(ctx, "pricing reconciliation failed, using caller-supplied totals",
			traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return nil
	}

	return pr
}

// fallbackPricing builds the pricing view from the figures the caller
// already holds, used when the store has no authoritative answer.
func (c Composer) fallbackPricing(data model.TicketData) *model.ReconciledPricing {
	fee, tax := pricing.DecomposeConvenienceFee(data.ConvenienceFee)

	base := data.BasePrice
	if base == 0 {
		base = data.TotalPrice - data.ConvenienceFee
	}

	breakdown := c.fallbackBreakdown(data, base)

	first, last := pricing.SplitName(data.CustomerName)
	date, clock := c.fallbackDateTime(data)

	return &model.ReconciledPricing{
		BasePrice:      base,
		ConvenienceFee: fee,
		Tax:            tax,
		TotalPrice:     data.TotalPrice,
		Breakdown:      breakdown,
		Customer: model.Customer{
			FirstName: first,
			LastName:  last,
			Email:     data.CustomerEmail,
			Phone:     data.CustomerPhone,
		},
		EventDate: date,
		EventTime: clock,
	}
}

func (c Composer) fallbackBreakdown(data model.TicketData, base float64) []model.CategoryBreakdownEntry {
	if len(data.SelectedTickets) > 0 {
		entries := make([]model.CategoryBreakdownEntry, 0, len(data.SelectedTickets))
		for _, sel := range data.SelectedTickets {
			entries = append(entries, model.CategoryBreakdownEntry{
				Category:  sel.CategoryName,
				Quantity:  sel.Quantity,
				UnitPrice: sel.Price,
				LineTotal: sel.Price * float64(sel.Quantity),
			})
		}
		return entries
	}

	if grouped := pricing.GroupSeats(data.Seats); len(grouped) > 0 {
		return grouped
	}

	quantity := data.Quantity
	if quantity == 0 {
		quantity = 1
	}

	unit := base
	if quantity > 0 {
		unit = base / float64(quantity)
	}

	return []model.CategoryBreakdownEntry{{
		Category:  constant.GeneralAdmissionName,
		Quantity:  quantity,
		UnitPrice: unit,
		LineTotal: base,
	}}
}

func (c Composer) fallbackDateTime(data model.TicketData) (string, string) {
	if data.IsRecurring && data.OccurrenceDate != "" {
		event := model.EventRecord{IsRecurring: true, EventTime: data.EventTime}
		occurrence := &model.Occurrence{Date: data.OccurrenceDate, Time: data.OccurrenceTime}
		return pricing.ResolveEventDateTime(event, occurrence)
	}

	date, clock := data.EventDate, data.EventTime
	if date == "" {
		date = constant.DateTBA
	}
	if clock == "" {
		clock = constant.DateTBA
	}

	return date, clock
}

func (c Composer) writeHeading(canvas *Canvas, title string, x float64) {
	layout := canvas.Layout()

	canvas.Space(layout.SectionSpacing / 2)
	canvas.SetFont("B", layout.Fonts.Heading)
	canvas.WriteLine(title, x, layout.Fonts.Heading)
	canvas.SetFont("", layout.Fonts.Body)
}

func (c Composer) writeEventDetails(canvas *Canvas, data model.TicketData, pr *model.ReconciledPricing) {
	layout := canvas.Layout()
	x, width := layout.LeftColX, layout.LeftColWidth

	c.writeHeading(canvas, "Event Details", x)

	name := data.EventName
	if name == "" {
		name = constant.DateTBA
	}

	canvas.SetFont("B", layout.Fonts.Body)
	canvas.WriteWrapped(name, x, width, layout.Fonts.Body)
	canvas.SetFont("", layout.Fonts.Body)

	canvas.WriteLine(fmt.Sprintf("Date: %s, %s", pr.EventDate, pr.EventTime), x, layout.Fonts.Body)

	venue := data.VenueName
	if venue == "" {
		venue = constant.DateTBA
	}
	canvas.WriteWrapped(fmt.Sprintf("Venue: %s", venue), x, width, layout.Fonts.Body)

	address := data.Address
	if address == "" {
		address = constant.DateTBA
	}
	canvas.WriteWrapped(fmt.Sprintf("Address: %s", address), x, width, layout.Fonts.Body)
}

func (c Composer) writeTicketInfo(canvas *Canvas, data model.TicketData, pr *model.ReconciledPricing, reconciled bool) {
	layout := canvas.Layout()
	x, width := layout.LeftColX, layout.LeftColWidth

	c.writeHeading(canvas, "Ticket Information", x)

	if line, ok := assignedSeatLine(data.Seats); ok {
		canvas.WriteWrapped(line, x, width, layout.Fonts.Body)
		return
	}

	canvas.WriteWrapped(c.ticketSummary(data, pr, reconciled), x, width, layout.Fonts.Body)
}

// ticketSummary builds the comma-joined "category × quantity" line for
// bookings without seat assignments, in fixed source-priority order.
func (c Composer) ticketSummary(data model.TicketData, pr *model.ReconciledPricing, reconciled bool) string {
	if data.IsRecurring && reconciled && len(pr.Breakdown) > 0 {
		return joinBreakdown(pr.Breakdown)
	}

	if len(data.SelectedTickets) > 0 {
		parts := make([]string, 0, len(data.SelectedTickets))
		for _, sel := range data.SelectedTickets {
			parts = append(parts, fmt.Sprintf("%s x %d", sel.CategoryName, sel.Quantity))
		}
		return strings.Join(parts, ", ")
	}

	if grouped := pricing.GroupSeats(data.Seats); len(grouped) > 0 {
		return joinBreakdown(grouped)
	}

	quantity := data.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return fmt.Sprintf("%s x %d", constant.GeneralCategoryName, quantity)
}

func joinBreakdown(entries []model.CategoryBreakdownEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("%s x %d", entry.Category, entry.Quantity))
	}
	return strings.Join(parts, ", ")
}

// assignedSeatLine groups assigned seat identifiers by category into
// one flowing "Category: s1, s2; ..." line. ok is false when the
// booking has no seat assignments.
func assignedSeatLine(seats []model.SeatRecord) (string, bool) {
	order := make([]string, 0, len(seats))
	byCategory := make(map[string][]string)

	for _, record := range seats {
		if record.SeatNumber == "" {
			continue
		}
		seat := record.Normalize()
		if _, ok := byCategory[seat.Category]; !ok {
			order = append(order, seat.Category)
		}
		byCategory[seat.Category] = append(byCategory[seat.Category], seat.SeatNumber)
	}

	if len(order) == 0 {
		return "", false
	}

	parts := make([]string, 0, len(order))
	for _, category := range order {
		parts = append(parts, fmt.Sprintf("%s: %s", category, strings.Join(byCategory[category], ", ")))
	}

	return strings.Join(parts, "; "), true
}

func (c Composer) writeCustomerInfo(ctx context.Context, canvas *Canvas, data model.TicketData, pr *model.ReconciledPricing, invoiceNumber string, traceIdAttr slog.Attr) {
	layout := canvas.Layout()
	x, width := layout.RightColX, layout.RightColWidth

	c.writeHeading(canvas, "Customer Information", x)

	canvas.WriteWrapped(customerDisplayName(pr, data), x, width, layout.Fonts.Body)

	if email := firstNonEmpty(pr.Customer.Email, data.CustomerEmail); email != "" {
		canvas.WriteWrapped(email, x, width, layout.Fonts.Body)
	}
	if phone := firstNonEmpty(pr.Customer.Phone, data.CustomerPhone); phone != "" {
		canvas.WriteLine(phone, x, layout.Fonts.Body)
	}

	if !data.Combined() {
		canvas.WriteLine(fmt.Sprintf("Invoice: %s", invoice.Format(invoiceNumber)), x, layout.Fonts.Body)
		return
	}

	canvas.WriteLine("Invoices:", x, layout.Fonts.Body)
	for _, combinedID := range data.CombinedBookingIDs {
		combinedInvoice, err := invoice.Generate(combinedID, data.BookingDate)
		if err != nil {
			slog.WarnContext(ctx, "skipping combined booking with bad id", traceIdAttr,
				slog.Any(constant.LogFieldErr, err))
			continue
		}
		canvas.WriteLine(invoice.Format(combinedInvoice), x, layout.Fonts.Body)
	}
}

func (c Composer) writeQR(ctx context.Context, canvas *Canvas, invoiceNumber string, traceIdAttr slog.Attr) {
	layout := canvas.Layout()

	url := fmt.Sprintf("%s/verify-ticket/%s", c.Origin, invoiceNumber)

	canvas.Space(layout.SectionSpacing / 2)

	x := layout.RightColX
	if layout.Stacked {
		x = layout.LeftColX
	}

	if !canvas.HasSpace(layout.QRSize) && c.Mode != ModeCompact {
		canvas.NewPage()
	}

	if err := canvas.DrawQR(url, x, canvas.Y()); err != nil {
		// Placeholder already drawn; the document still completes.
		slog.ErrorContext(ctx, "qr encoding failed, placeholder drawn", traceIdAttr,
			slog.Any(constant.LogFieldErr, err))
	}

	canvas.Space(layout.QRSize + layout.LineHeight)
	canvas.SetFont("", layout.Fonts.Small)
	canvas.WriteLine("Scan to verify this ticket", x, layout.Fonts.Small)
	canvas.SetFont("", layout.Fonts.Body)
}

func (c Composer) writePaymentSummary(canvas *Canvas, pr *model.ReconciledPricing) {
	layout := canvas.Layout()
	x, width := layout.LeftColX, layout.LeftColWidth

	c.writeHeading(canvas, "Payment Summary", x)

	for _, entry := range pr.Breakdown {
		label := fmt.Sprintf("%s x %d", entry.Category, entry.Quantity)
		canvas.WriteKeyValue(label, c.amount(entry.LineTotal), x, width, layout.Fonts.Body, false)
	}

	if pr.ConvenienceFee > 0 {
		canvas.WriteKeyValue("Convenience Fee", c.amount(pr.ConvenienceFee), x, width, layout.Fonts.Body, false)
	}
	if pr.Tax > 0 {
		canvas.WriteKeyValue("GST (18%)", c.amount(pr.Tax), x, width, layout.Fonts.Body, false)
	}

	canvas.WriteKeyValue("Total Amount", c.amount(pr.TotalPrice), x, width, layout.Fonts.Body, true)
}

func (c Composer) amount(v float64) string {
	if c.Currency != nil {
		return c.Currency.Sprintf("₹%.2f", v)
	}
	return fmt.Sprintf("₹%.2f", v)
}

func (c Composer) writeNotices(canvas *Canvas) {
	layout := canvas.Layout()
	x, width := layout.LeftColX, layout.PageWidth-2*layout.Margin

	c.writeHeading(canvas, "Important Notices", x)

	canvas.SetFont("", layout.Fonts.Small)
	for _, notice := range constant.ImportantNotices {
		canvas.WriteWrapped("- "+notice, x, width, layout.Fonts.Small)
	}
	canvas.SetFont("", layout.Fonts.Body)
}

// customerDisplayName prefers the reconciled name, then the caller's,
// then the guest fallback. An empty name never reaches the page.
func customerDisplayName(pr *model.ReconciledPricing, data model.TicketData) string {
	name := strings.TrimSpace(pr.Customer.FirstName + " " + pr.Customer.LastName)
	if name == "" {
		name = strings.TrimSpace(data.CustomerName)
	}
	if name == "" {
		name = constant.GuestCustomerFallback
	}
	return name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
