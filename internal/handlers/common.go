package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/treeslice/internal/config"
	"github.com/lehigh-university-libraries/treeslice/internal/images"
	"github.com/lehigh-university-libraries/treeslice/internal/inspection"
)

// previewSize is the longest edge of analysis previews in pixels
const previewSize = 480

type Handler struct {
	session *inspection.Session
	fetcher *images.Fetcher
	config  *config.Config
}

func New(session *inspection.Session, cfg *config.Config) *Handler {
	return &Handler{
		session: session,
		fetcher: images.NewFetcher(cfg.MaxUploadBytes()),
		config:  cfg,
	}
}

// Routes registers every endpoint on mux
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/upload", h.HandleUpload)
	mux.HandleFunc("/api/analyses", h.HandleAnalyses)
	mux.HandleFunc("/api/analyses/", h.HandleAnalysisDetail)
	mux.HandleFunc("/api/records", h.HandleRecords)
	mux.HandleFunc("/api/records/", h.HandleRecordsAction)
	mux.HandleFunc("/", h.HandleStatic)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// statusFor maps pipeline errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, inspection.ErrAnalysisNotFound):
		return http.StatusNotFound
	case errors.Is(err, inspection.ErrDecode),
		errors.Is(err, inspection.ErrDiameterRequired),
		errors.Is(err, inspection.ErrInvalidDiameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
