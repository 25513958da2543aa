package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/treeslice/internal/images"
	"github.com/lehigh-university-libraries/treeslice/internal/inspection"
)

type saveRequest struct {
	TreeID     string   `json:"tree_id"`
	Location   string   `json:"location"`
	Timestamp  *string  `json:"timestamp"`
	DiameterCM *float64 `json:"diameter_cm"`
}

func (h *Handler) HandleAnalyses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.session.Pending())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleAnalysisDetail serves /api/analyses/{id}, /api/analyses/{id}/preview
// and /api/analyses/{id}/save
func (h *Handler) HandleAnalysisDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/analyses/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		h.writeError(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	switch {
	case action == "" && r.Method == "GET":
		analysis, err := h.session.Analysis(id)
		if err != nil {
			h.writeError(w, err.Error(), statusFor(err))
			return
		}
		h.writeJSON(w, analysis)
	case action == "" && r.Method == "DELETE":
		if err := h.session.Discard(id); err != nil {
			h.writeError(w, err.Error(), statusFor(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case action == "preview" && r.Method == "GET":
		h.handlePreview(w, id)
	case action == "save" && r.Method == "POST":
		h.handleSave(w, r, id)
	case action != "" && action != "preview" && action != "save":
		h.writeError(w, "Not found", http.StatusNotFound)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handlePreview(w http.ResponseWriter, id string) {
	analysis, err := h.session.Analysis(id)
	if err != nil {
		h.writeError(w, err.Error(), statusFor(err))
		return
	}

	thumb, err := images.Thumbnail(analysis.Image, previewSize)
	if err != nil {
		h.writeError(w, "Failed to render preview: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := w.Write(thumb); err != nil {
		h.writeError(w, "Failed to write preview: "+err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request, id string) {
	var request saveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.session.Confirm(id, inspection.Confirmation{
		TreeID:     request.TreeID,
		Location:   request.Location,
		Timestamp:  request.Timestamp,
		DiameterCM: request.DiameterCM,
	})
	if err != nil {
		h.writeError(w, err.Error(), statusFor(err))
		return
	}

	h.writeJSONStatus(w, http.StatusCreated, record)
}
