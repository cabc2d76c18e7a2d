package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dstasiak/cs2-tracker/services"
)

type DataOpsHandler struct {
	dataOpsService services.DataOpsService
}

func NewDataOpsHandler(ds services.DataOpsService) *DataOpsHandler {
	return &DataOpsHandler{dataOpsService: ds}
}

// ExportDatabase streams the full database snapshot as a JSON attachment.
func (h *DataOpsHandler) ExportDatabase(w http.ResponseWriter, r *http.Request) {
	export, err := h.dataOpsService.Export(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := http.Header{
		"Content-Disposition": []string{`attachment; filename=full_backup.json`},
	}
	if err := writeJSON(w, http.StatusOK, export, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ImportDatabase replaces the database contents with an uploaded snapshot.
// It accepts the snapshot either as a raw JSON body or as a multipart form
// with a 'file' field.
func (h *DataOpsHandler) ImportDatabase(w http.ResponseWriter, r *http.Request) {
	var snapshot services.DatabaseExport

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		file, _, err := formFile(r)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&snapshot); err != nil {
			badRequestResponse(w, r, errors.New("file does not contain a valid database snapshot"))
			return
		}
	} else {
		if err := readJSON(w, r, &snapshot); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	if err := h.dataOpsService.Import(r.Context(), snapshot); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "database restored from snapshot"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DataOpsHandler) ClearDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.dataOpsService.Clear(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "database cleared"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
