package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/repository/memory"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/secmon-lab/kottos/pkg/utils/errutil"
)

var errBadRequest = goerr.New("bad request")

// writeError maps use case errors to status codes. Field errors and score band conflicts
// have their own body shapes so clients can show them inline or as an alert.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		errutil.WriteJSON(ctx, w, http.StatusUnprocessableEntity, map[string]any{"errors": verr.Fields})

	case model.IsScoreBandConflict(err):
		errutil.WriteJSON(ctx, w, http.StatusConflict, map[string]string{"alert": model.Alert(err)})

	case model.Alert(err) != "":
		errutil.WriteJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": model.Alert(err)})

	case errors.Is(err, memory.ErrNotFound),
		errors.Is(err, usecase.ErrUnknownCollection),
		errors.Is(err, usecase.ErrUnknownTicket):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)

	case errors.Is(err, usecase.ErrNotImageField),
		errors.Is(err, errBadRequest):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)

	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

// decodeValues reads a JSON object of field values. Numbers and booleans are kept in their
// text form and arrays are joined with commas, matching the form representation.
func decodeValues(r *http.Request) (map[string]string, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, goerr.Wrap(errBadRequest, "request body must be a JSON object", goerr.V("cause", err.Error()))
	}

	values := make(map[string]string, len(raw))
	for field, v := range raw {
		s, err := formValue(v)
		if err != nil {
			return nil, goerr.Wrap(err, "unsupported field value", goerr.V("field", field))
		}
		values[field] = s
	}
	return values, nil
}

func formValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, err := formValue(item)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return strings.Join(items, ","), nil
	default:
		return "", goerr.Wrap(errBadRequest, "nested objects are not accepted")
	}
}

func queryLimit(r *http.Request, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
