package event

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"ticketooz/common/constant"
	"ticketooz/model"
	emailOutbound "ticketooz/outbound/email"
)

type EmailEvent struct {
	EmailOutbound emailOutbound.EmailOutbound
	Timeout       time.Duration
}

func (in EmailEvent) SendEmailHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.SendEmailEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "send email event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	traceIdAttr := slog.String(constant.LogFieldTraceId, ulid.Make().String())

	if req.Attachment == "" {
		err = in.EmailOutbound.Send([]string{req.To}, req.Subject, req.Body)
		if err != nil {
			slog.ErrorContext(ctx, "send email error", slog.Any(constant.LogFieldErr, err), traceIdAttr)
			return err
		}
		return nil
	}

	attachment, err := base64.StdEncoding.DecodeString(req.Attachment)
	if err != nil {
		// A corrupt attachment is not retryable; deliver the body alone.
		slog.WarnContext(ctx, "attachment decode error, sending without it", slog.Any(constant.LogFieldErr, err), traceIdAttr)
		return in.EmailOutbound.Send([]string{req.To}, req.Subject, req.Body)
	}

	err = in.EmailOutbound.SendWithAttachment([]string{req.To}, req.Subject, req.Body, req.AttachmentFilename, attachment)
	if err != nil {
		slog.ErrorContext(ctx, "send email with attachment error", slog.Any(constant.LogFieldErr, err), traceIdAttr)
		return err
	}

	return nil
}
