package errutil_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/utils/errutil"
)

func TestHandleReturnsSameError(t *testing.T) {
	err := goerr.New("boom", goerr.V("collection", "roles"))
	got := errutil.Handle(context.Background(), err, "test")
	gt.Error(t, got).Is(err)

	gt.NoError(t, errutil.Handle(context.Background(), nil, "nothing"))
}

func TestHandleHTTP(t *testing.T) {
	w := httptest.NewRecorder()
	errutil.HandleHTTP(context.Background(), w, goerr.New("record not found"), http.StatusNotFound)

	gt.Value(t, w.Code).Equal(http.StatusNotFound)
	gt.String(t, w.Header().Get("Content-Type")).Equal("application/json")

	var body map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	gt.Value(t, body["error"]).Equal("record not found")
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	errutil.WriteJSON(context.Background(), w, http.StatusCreated, map[string]int{"count": 4})

	gt.Value(t, w.Code).Equal(http.StatusCreated)
	gt.String(t, w.Body.String()).Equal(`{"count":4}`)
}
