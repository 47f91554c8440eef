package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/report"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
	"github.com/secmon-lab/safetydocs/pkg/utils/errutil"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
	"github.com/secmon-lab/safetydocs/pkg/utils/safe"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(ctx).Error("failed to write response", "error", err)
	}
}

// statusOf maps use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, report.ErrInvalidHeader):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrPermissionDenied), errors.Is(err, usecase.ErrInactiveUser):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}

// decode reads a JSON body into v and validates it
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrInvalidInput, "malformed request body", goerr.V("error", err.Error()))
	}
	return validateRequest(v)
}

// writePDF sends a rendered report as download
func writePDF(ctx context.Context, w http.ResponseWriter, r *usecase.Report) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", contentDisposition(r.FileName))
	w.Header().Set("Content-Length", fmt.Sprint(len(r.Data)))
	w.WriteHeader(http.StatusOK)
	safe.Write(ctx, w, r.Data)
}

// contentDisposition keeps an ASCII file name for old clients and adds the
// RFC 5987 form for names with umlauts
func contentDisposition(name string) string {
	ascii := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)

	v := `attachment; filename="` + ascii + `"`
	if ascii != name {
		v += "; filename*=UTF-8''" + url.PathEscape(name)
	}
	return v
}
