package http

import (
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"ticketooz/common"
	"ticketooz/common/constant"
	"ticketooz/common/errs"
	"ticketooz/common/otel"
	"ticketooz/model"
	"ticketooz/outbound/store"
	"ticketooz/pricing"
)

type VerifyHttp struct {
	VerifyIndex *store.VerifyIndex
	Pricing     *pricing.Engine
	Store       *store.BookingStore
}

func RegisterVerifyHttp(
	mux *http.ServeMux,
	verifyIndex *store.VerifyIndex,
	engine *pricing.Engine,
	bookingStore *store.BookingStore,
) *VerifyHttp {
	in := &VerifyHttp{VerifyIndex: verifyIndex, Pricing: engine, Store: bookingStore}

	mux.HandleFunc("GET /verify-ticket/{invoiceNumber}", in.verify)

	return in
}

// verify resolves the QR payload: an invoice number, never a raw
// booking id.
func (in *VerifyHttp) verify(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "VerifyHttp.verify")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	invoiceNumber := r.PathValue("invoiceNumber")
	if invoiceNumber == "" {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invoice number is required"})
		return
	}

	slog.InfoContext(ctx, "verify ticket receive request", traceIdAttr, slog.String("invoice_number", invoiceNumber))

	bookingID, err := in.VerifyIndex.Resolve(ctx, invoiceNumber)
	if err != nil {
		if err == redis.Nil {
			writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Ticket not found"})
			return
		}

		slog.ErrorContext(ctx, "failed to resolve invoice", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	reconciled, err := in.Pricing.Reconcile(ctx, bookingID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to reconcile booking for verification", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Ticket not found"})
		return
	}

	booking, err := in.Store.FindBookingByID(ctx, bookingID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load booking for verification", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Ticket not found"})
		return
	}

	quantity := 0
	for _, entry := range reconciled.Breakdown {
		quantity += entry.Quantity
	}

	name := reconciled.Customer.FirstName
	if reconciled.Customer.LastName != "" {
		name += " " + reconciled.Customer.LastName
	}
	if name == "" {
		name = constant.GuestCustomerFallback
	}

	writeJSONResponse(w, http.StatusOK, model.VerifyTicketResponse{
		InvoiceNumber: invoiceNumber,
		BookingID:     bookingID,
		EventName:     booking.Event.Name,
		EventDate:     reconciled.EventDate,
		EventTime:     reconciled.EventTime,
		CustomerName:  name,
		Quantity:      quantity,
		Breakdown:     reconciled.Breakdown,
	})
}
