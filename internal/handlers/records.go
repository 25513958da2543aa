package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/treeslice/internal/export"
)

func (h *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.session.Records())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleRecordsAction serves /api/records/export and /api/records/duplicates
func (h *Handler) HandleRecordsAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch strings.TrimPrefix(r.URL.Path, "/api/records/") {
	case "export":
		h.handleExport(w, r)
	case "duplicates":
		h.handleDuplicates(w, r)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")

	// Encode fully before writing headers so a failure can still return an error status
	var buf bytes.Buffer
	if err := export.Write(&buf, format, h.session.Records()); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(format)+`"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.writeError(w, "Failed to write export: "+err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	maxDistance := h.config.DuplicateDistance
	if v := r.URL.Query().Get("max_distance"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, "Invalid max_distance: "+v, http.StatusBadRequest)
			return
		}
		maxDistance = n
	}

	h.writeJSON(w, h.session.Duplicates(maxDistance))
}
