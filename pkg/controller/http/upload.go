package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	"github.com/secmon-lab/kottos/pkg/usecase"
	"github.com/secmon-lab/kottos/pkg/utils/errutil"
	"github.com/secmon-lab/kottos/pkg/utils/safe"
)

// maxUploadBody leaves room for multipart framing and the form fields around the file
const maxUploadBody = model.MaxAssetSize + 1<<20

// startUploadHandler accepts a multipart form with a "file" part and the optional fields
// folder, collection, recordId and field. It answers 202 with the pending task.
func startUploadHandler(uc *usecase.UploadUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
		if err := r.ParseMultipartForm(maxUploadBody); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, r, goerr.Wrap(model.ErrAssetTooLarge, "upload body exceeds limit"))
				return
			}
			writeError(w, r, goerr.Wrap(errBadRequest, "invalid multipart form", goerr.V("cause", err.Error())))
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll() //nolint:errcheck // temporary files only
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, goerr.Wrap(errBadRequest, "file part is missing"))
			return
		}
		defer safe.Close(r.Context(), file)

		if header.Size > model.MaxAssetSize {
			writeError(w, r, goerr.Wrap(model.ErrAssetTooLarge, "file exceeds limit", goerr.V(model.SizeKey, header.Size)))
			return
		}
		data, err := io.ReadAll(io.LimitReader(file, model.MaxAssetSize+1))
		if err != nil {
			writeError(w, r, goerr.Wrap(err, "failed to read uploaded file"))
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" || contentType == "application/octet-stream" {
			contentType = http.DetectContentType(data)
		}

		asset := model.Asset{
			Folder:      r.FormValue("folder"),
			Filename:    header.Filename,
			ContentType: contentType,
			Data:        data,
		}
		target := &model.UploadTarget{
			Collection: types.CollectionName(r.FormValue("collection")),
			RecordID:   types.RecordID(r.FormValue("recordId")),
			Field:      r.FormValue("field"),
		}

		task, err := uc.Start(r.Context(), asset, target)
		if err != nil {
			writeError(w, r, err)
			return
		}
		errutil.WriteJSON(r.Context(), w, http.StatusAccepted, task)
	}
}

func getUploadHandler(uc *usecase.UploadUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task, err := uc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		errutil.WriteJSON(r.Context(), w, http.StatusOK, task)
	}
}
