package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"ticketooz/outbound/store"
	"ticketooz/ticketpdf"
)

// runGenerateTicketCmd renders a single booking's ticket PDF to disk,
// for support workflows and local inspection.
func runGenerateTicketCmd(ctx context.Context, bookingID, outDir string, compact bool) {
	cfg := newCfg("env")

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	bookingStore := newStore(db, cacheClient)
	engine := newEngine(cfg, bookingStore)

	composer := newComposer(cfg, engine)
	if compact {
		composer.Mode = ticketpdf.ModeCompact
	}

	booking, err := bookingStore.FindBookingByID(ctx, bookingID)
	if err != nil {
		log.Fatalln("unable to load booking", err)
	}

	doc, err := composer.Generate(ctx, ticketpdf.DataFromBooking(booking))
	if err != nil {
		log.Fatalln("unable to generate ticket", err)
	}

	verifyIndex := &store.VerifyIndex{Cache: cacheClient}
	if err := verifyIndex.Record(ctx, doc.InvoiceNumber, booking.ID); err != nil {
		slog.Warn("failed to record verify index", slog.Any("error", err))
	}

	path := filepath.Join(outDir, doc.Filename)
	if err := os.WriteFile(path, doc.Bytes, 0644); err != nil {
		log.Fatalln("unable to write ticket file", err)
	}

	slog.Info("ticket generated", slog.String("path", path), slog.String("invoice_number", doc.InvoiceNumber))
}
