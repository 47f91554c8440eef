package errutil_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/utils/errutil"
)

func TestHandleHTTP(t *testing.T) {
	t.Run("client error keeps message", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, goerr.New("name is required"), http.StatusBadRequest)

		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, w.Header().Get("Content-Type")).Equal("application/json")

		var body map[string]string
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body["error"]).Equal("name is required")
	})

	t.Run("server error hides message", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, goerr.New("db password wrong"), http.StatusInternalServerError)

		gt.Value(t, w.Code).Equal(http.StatusInternalServerError)
		var body map[string]string
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body["error"]).Equal("Internal Server Error")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, nil, http.StatusInternalServerError)
		gt.Number(t, w.Body.Len()).Equal(0)
	})
}
