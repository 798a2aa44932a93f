package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"ticketooz/common"
	"ticketooz/common/constant"
	"ticketooz/invoice"
	"ticketooz/outbound/store"
)

// VerifyIndexCron keeps the invoice-number verification index warm:
// bookings created outside this service (imports, admin tools) still
// resolve at /verify-ticket once the refresher has seen them.
type VerifyIndexCron struct {
	Cfg         *viper.Viper
	Store       *store.BookingStore
	VerifyIndex *store.VerifyIndex
}

func (in VerifyIndexCron) Start(ctx context.Context) {
	refreshTicker := time.NewTicker(in.Cfg.GetDuration("cron.verify_index.refresh.interval"))
	defer refreshTicker.Stop()

	in.refresh(ctx)

	slog.Info("verify index cron started")

	for {
		select {
		case <-refreshTicker.C:
			in.refresh(ctx)
		case <-ctx.Done():
			slog.Info("verify index cron stopped")
			return
		}
	}
}

func (in VerifyIndexCron) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, in.Cfg.GetDuration("cron.verify_index.refresh.timeout"))
	defer cancel()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.DebugContext(ctx, "refreshing verify index", traceIdAttr)

	bookings, err := in.Store.ListRecentBookings(ctx,
		in.Cfg.GetString("cron.verify_index.lookback"),
		in.Cfg.GetInt32("cron.verify_index.batch_size"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list recent bookings", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return
	}

	indexed := 0
	for _, booking := range bookings {
		invoiceNumber, err := invoice.Generate(booking.ID, booking.BookedAt.Format(time.RFC3339))
		if err != nil {
			slog.WarnContext(ctx, "skipping booking with unusable invoice inputs", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			continue
		}

		if err := in.VerifyIndex.Record(ctx, invoiceNumber, booking.ID); err != nil {
			slog.ErrorContext(ctx, "failed to record verify index entry", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			return
		}
		indexed++
	}

	slog.DebugContext(ctx, "verify index refreshed", traceIdAttr, slog.Int("indexed", indexed))
}
