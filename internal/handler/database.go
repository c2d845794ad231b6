package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"tooldir/internal/codec"
	"tooldir/internal/service"
)

func (h *Handler) registerDatabase(mux *http.ServeMux) {
	mux.Handle("GET /api/export", h.admin(h.exportDatabase))
	mux.Handle("POST /api/import", h.admin(h.importDatabase))
}

// exportDatabase downloads every collection as ?format=json (default) or yaml
func (h *Handler) exportDatabase(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")

	// Render first so a failure can still be reported as JSON
	var buf bytes.Buffer
	err := h.db.ExportTo(r.Context(), format, &buf)
	if errors.Is(err, codec.ErrInvalidDocument) {
		writeError(w, "Invalid format", err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.fail(w, r, "export database", err)
		return
	}

	contentType := "application/json"
	if format == "yaml" || format == "yml" {
		contentType = "application/x-yaml"
	}
	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+service.ExportFileName(h.now(), format))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// importDatabase replaces the database with the uploaded document. The
// format comes from ?format= or the Content-Type and defaults to JSON.
func (h *Handler) importDatabase(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" && strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = "yaml"
	}

	res, err := h.db.ImportData(r.Context(), data, format)
	if errors.Is(err, codec.ErrInvalidDocument) {
		writeError(w, "Invalid import document", err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.fail(w, r, "import database", err)
		return
	}
	writeJSON(w, res, http.StatusOK)
}
