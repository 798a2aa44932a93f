package event

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/text/message"

	"ticketooz/common"
	"ticketooz/common/constant"
	"ticketooz/common/otel"
	"ticketooz/model"
	"ticketooz/outbound/store"
	"ticketooz/ticketpdf"
)

type TicketEvent struct {
	Store        *store.BookingStore
	VerifyIndex  *store.VerifyIndex
	Publisher    jetstream.Publisher
	Composer     ticketpdf.Composer
	InrFormatter *message.Printer

	Timeout time.Duration
}

// BookingCompletedHandler generates the ticket document for a paid
// booking and queues it for email delivery.
func (in TicketEvent) BookingCompletedHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.BookingCompletedEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "booking completed event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "TicketEvent.BookingCompleted")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "booking completed event receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	booking, err := in.Store.FindBookingByID(ctx, req.BookingID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load booking", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return err
	}

	doc, err := in.Composer.Generate(ctx, ticketpdf.DataFromBooking(booking))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate ticket document", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return err
	}

	if err := in.VerifyIndex.Record(ctx, doc.InvoiceNumber, booking.ID); err != nil {
		slog.WarnContext(ctx, "failed to record verify index", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	emailPayload := model.SendEmailEventMessage{
		To:                 booking.CustomerEmail,
		Subject:            "Your Ticketooz E-Ticket",
		Body:               in.buildTicketDeliveryEmailBody(booking, doc.InvoiceNumber),
		Attachment:         base64.StdEncoding.EncodeToString(doc.Bytes),
		AttachmentFilename: doc.Filename,
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, emailPayload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish ticket email", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	slog.InfoContext(ctx, "booking completed event success", traceIdAttr, slog.String(constant.LogFieldResponse, doc.InvoiceNumber))

	return nil
}

func (in TicketEvent) buildTicketDeliveryEmailBody(booking model.BookingRecord, invoiceNumber string) string {
	totalFormatted := in.InrFormatter.Sprintf("₹%.2f", booking.TotalPrice)

	return fmt.Sprintf(constant.EmailTicketDeliveryTemplate,
		booking.CustomerName,
		invoiceNumber,
		booking.Event.Name,
		booking.Event.StartAt.Format("01/02/2006"),
		booking.Event.StartAt.Format("3:04 PM"),
		booking.Event.VenueName,
		totalFormatted,
	)
}
