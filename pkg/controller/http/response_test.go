package http_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/safetydocs/pkg/controller/http"
	"github.com/secmon-lab/safetydocs/pkg/report"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
)

func TestStatusOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", goerr.Wrap(usecase.ErrInvalidInput, "bad"), http.StatusBadRequest},
		{"csv header", goerr.Wrap(report.ErrInvalidHeader, "bad"), http.StatusBadRequest},
		{"unauthenticated", usecase.ErrUnauthenticated, http.StatusUnauthorized},
		{"denied", goerr.Wrap(usecase.ErrPermissionDenied, "no"), http.StatusForbidden},
		{"inactive", usecase.ErrInactiveUser, http.StatusForbidden},
		{"not found", goerr.Wrap(usecase.ErrNotFound, "gone"), http.StatusNotFound},
		{"conflict", usecase.ErrConflict, http.StatusConflict},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Number(t, server.StatusOf(tc.err)).Equal(tc.want)
		})
	}
}

func TestContentDisposition(t *testing.T) {
	gt.String(t, server.ContentDisposition("GBU_Sommerfest.pdf")).
		Equal(`attachment; filename="GBU_Sommerfest.pdf"`)

	got := server.ContentDisposition("GBU_Straßenfest.pdf")
	gt.String(t, got).Contains(`filename="GBU_Stra_enfest.pdf"`)
	gt.String(t, got).Contains(`filename*=UTF-8''GBU_Stra%C3%9Fenfest.pdf`)
}
