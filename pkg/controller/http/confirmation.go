package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/secmon-lab/kottos/pkg/utils/errutil"
)

// deleteRecordHandler only opens a confirmation. The record is removed by confirmHandler.
func deleteRecordHandler(uc *usecase.ConfirmationUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := types.CollectionName(chi.URLParam(r, "name"))
		pending, err := uc.RequestDelete(r.Context(), name, recordID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		errutil.WriteJSON(r.Context(), w, http.StatusAccepted, pending)
	}
}

func listConfirmationsHandler(uc *usecase.ConfirmationUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errutil.WriteJSON(r.Context(), w, http.StatusOK, map[string]any{
			"confirmations": uc.Pending(r.Context()),
		})
	}
}

func confirmHandler(uc *usecase.ConfirmationUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := uc.Confirm(r.Context(), chi.URLParam(r, "ticket"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		errutil.WriteJSON(r.Context(), w, http.StatusOK, map[string]any{"deleted": deleted})
	}
}

func cancelHandler(uc *usecase.ConfirmationUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.Cancel(r.Context(), chi.URLParam(r, "ticket")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
