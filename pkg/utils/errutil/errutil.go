package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
)

// Handle logs the error with a message and reports it to Sentry. The error
// is returned unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	log(ctx, msg, err)
	capture(ctx, err)
	return err
}

// HandleHTTP logs the error and writes a JSON error response. Server errors
// are reported to Sentry and their message is not exposed to the client.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	msg := err.Error()
	if statusCode >= http.StatusInternalServerError {
		log(ctx, "HTTP error", err, "status", statusCode)
		capture(ctx, err)
		msg = http.StatusText(statusCode)
	} else {
		logging.From(ctx).Warn("HTTP request rejected", "status", statusCode, "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		logging.From(ctx).Error("failed to write error response", "error", err)
	}
}

func log(ctx context.Context, msg string, err error, args ...any) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg, append(args,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)...)
		return
	}
	logger.Error(msg, append(args, "error", err.Error())...)
}

// capture is a no-op unless sentry.Init has been called.
func capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
