package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/secmon-lab/kottos/pkg/utils/errutil"
)

func editorFor(w http.ResponseWriter, r *http.Request, registry *usecase.Registry) (usecase.CollectionEditor, bool) {
	editor, err := registry.Editor(types.CollectionName(chi.URLParam(r, "name")))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return editor, true
}

func recordID(r *http.Request) types.RecordID {
	return types.RecordID(chi.URLParam(r, "id"))
}

func listCollectionsHandler(registry *usecase.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errutil.WriteJSON(r.Context(), w, http.StatusOK, map[string]any{
			"collections": registry.Schemas(r.Context()),
		})
	}
}

func listRecordsHandler(registry *usecase.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editor, ok := editorFor(w, r, registry)
		if !ok {
			return
		}

		records, err := editor.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		errutil.WriteJSON(r.Context(), w, http.StatusOK, map[string]any{"records": records})
	}
}

func getRecordHandler(registry *usecase.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editor, ok := editorFor(w, r, registry)
		if !ok {
			return
		}

		record, err := editor.Get(r.Context(), recordID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		errutil.WriteJSON(r.Context(), w, http.StatusOK, record)
	}
}

func createRecordHandler(registry *usecase.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editor, ok := editorFor(w, r, registry)
		if !ok {
			return
		}

		values, err := decodeValues(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		record, err := editor.Create(r.Context(), values)
		if err != nil {
			writeError(w, r, err)
			return
		}
		errutil.WriteJSON(r.Context(), w, http.StatusCreated, record)
	}
}

func updateRecordHandler(registry *usecase.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editor, ok := editorFor(w, r, registry)
		if !ok {
			return
		}

		values, err := decodeValues(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		record, err := editor.Update(r.Context(), recordID(r), values)
		if err != nil {
			writeError(w, r, err)
			return
		}
		errutil.WriteJSON(r.Context(), w, http.StatusOK, record)
	}
}

func exportHandler(registry *usecase.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editor, ok := editorFor(w, r, registry)
		if !ok {
			return
		}

		name := editor.Schema().Name
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name.String()+`.csv"`)
		if err := editor.ExportCSV(r.Context(), w); err != nil {
			writeError(w, r, err)
		}
	}
}
