package http

import (
	"log/slog"
	"net/http"

	"ticketooz/common"
	"ticketooz/common/constant"
	"ticketooz/common/errs"
	"ticketooz/common/otel"
	"ticketooz/outbound/store"
	"ticketooz/ticketpdf"
)

type TicketHttp struct {
	Store       *store.BookingStore
	VerifyIndex *store.VerifyIndex
	Composer    ticketpdf.Composer
}

func RegisterTicketHttp(
	mux *http.ServeMux,
	bookingStore *store.BookingStore,
	verifyIndex *store.VerifyIndex,
	composer ticketpdf.Composer,
) *TicketHttp {
	in := &TicketHttp{
		Store:       bookingStore,
		VerifyIndex: verifyIndex,
		Composer:    composer,
	}

	mux.HandleFunc("GET /api/bookings/{id}/ticket", in.download)

	return in
}

// download generates the ticket document for a booking and streams it
// as a file download.
func (in *TicketHttp) download(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "TicketHttp.download")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	bookingID := r.PathValue("id")
	if bookingID == "" {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Booking id is required"})
		return
	}

	slog.InfoContext(ctx, "ticket download receive request", traceIdAttr, slog.String("booking_id", bookingID))

	booking, err := in.Store.FindBookingByID(ctx, bookingID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load booking", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Booking not found"})
		return
	}

	doc, err := in.Composer.Generate(ctx, ticketpdf.DataFromBooking(booking))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate ticket document", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	if err := in.VerifyIndex.Record(ctx, doc.InvoiceNumber, booking.ID); err != nil {
		// The ticket is still valid; verification falls back to a miss.
		slog.WarnContext(ctx, "failed to record verify index", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	slog.InfoContext(ctx, "ticket download success", traceIdAttr, slog.String(constant.LogFieldResponse, doc.InvoiceNumber))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Bytes)
}
