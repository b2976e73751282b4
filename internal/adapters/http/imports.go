package httpadapter

import (
	"errors"
	"net/http"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

func (rt *Router) uploadImport(w http.ResponseWriter, r *http.Request) {
	maxMB := rt.cfg.ImportMaxUploadMB
	if maxMB <= 0 {
		maxMB = 10
	}
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxMB)<<20)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			rt.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody("multipart field 'file' is required"))
		return
	}
	defer file.Close()

	job, err := rt.deps.Imports.Upload(r.Context(), scopeFromRequest(r), fileHeader.Filename, file)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/imports/"+job.ID)
	writeJSON(w, http.StatusAccepted, job)
}

func (rt *Router) getImport(w http.ResponseWriter, r *http.Request) {
	job, err := rt.deps.ImportJobs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if scope := scopeFromRequest(r); scope.Scoped() && job.OwnerID != scope.OwnerID {
		rt.writeError(w, r, domain.WrapError(domain.ErrImportJobNotFound, "get import job", errors.New("owner mismatch")))
		return
	}
	writeJSON(w, http.StatusOK, job)
}
