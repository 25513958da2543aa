package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/treeslice/internal/inspection"
	"github.com/lehigh-university-libraries/treeslice/internal/models"
)

type uploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

type uploadResponse struct {
	Message  string             `json:"message"`
	Analyses []*models.Analysis `json:"analyses"`
	Errors   []uploadFailure    `json:"errors,omitempty"`
	Source   string             `json:"source,omitempty"`
}

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Check if this is a JSON request with image URL
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleURLUpload(w, r)
		return
	}

	h.handleFileUpload(w, r)
}

func (h *Handler) handleURLUpload(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURL string `json:"image_url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.ImageURL == "" {
		h.writeError(w, "image_url is required", http.StatusBadRequest)
		return
	}

	analysis, err := h.analyzeURL(r, request.ImageURL)
	if err != nil {
		h.writeError(w, "Failed to process image URL: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, uploadResponse{
		Message:  "Successfully processed image from URL",
		Analyses: []*models.Analysis{analysis},
		Source:   "url",
	})
}

func (h *Handler) analyzeURL(r *http.Request, imageURL string) (*models.Analysis, error) {
	data, filename, err := h.fetcher.Fetch(r.Context(), imageURL)
	if err != nil {
		return nil, err
	}
	return h.session.Analyze(r.Context(), inspection.Upload{Filename: filename, Data: data})
}

func (h *Handler) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		h.writeError(w, "Failed to read file: no files in form", http.StatusBadRequest)
		return
	}

	resp := uploadResponse{Analyses: []*models.Analysis{}}

	// Files are processed in upload order; a bad file does not stop the rest
	for _, header := range headers {
		analysis, err := h.analyzeFile(r, header)
		if err != nil {
			resp.Errors = append(resp.Errors, uploadFailure{Filename: header.Filename, Error: err.Error()})
			continue
		}
		resp.Analyses = append(resp.Analyses, analysis)
	}

	resp.Message = fmt.Sprintf("Successfully analyzed %d of %d images", len(resp.Analyses), len(headers))

	if len(resp.Analyses) == 0 {
		h.writeJSONStatus(w, http.StatusBadRequest, resp)
		return
	}
	h.writeJSON(w, resp)
}

func (h *Handler) analyzeFile(r *http.Request, header *multipart.FileHeader) (*models.Analysis, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	limit := h.config.MaxUploadBytes()
	fileData, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}
	if int64(len(fileData)) > limit {
		return nil, fmt.Errorf("file too large (max %dMB)", h.config.MaxUploadMB)
	}

	return h.session.Analyze(r.Context(), inspection.Upload{Filename: header.Filename, Data: fileData})
}
