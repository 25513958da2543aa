package handlers

import (
	"log/slog"
	"net/http"
	"path"
	"strings"
)

// staticDir holds the browser UI
const staticDir = "static"

// HandleStatic serves the UI. A ?image=URL query analyzes that image first
// and opens the UI on the new analysis.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	if imageURL := r.URL.Query().Get("image"); imageURL != "" {
		analysis, err := h.analyzeURL(r, imageURL)
		if err != nil {
			slog.Error("Failed to analyze image from URL", "url", imageURL, "err", err)
			http.Error(w, "Failed to process image URL: "+err.Error(), http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/?analysis="+analysis.ID, http.StatusFound)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/static/")
	name = strings.TrimPrefix(name, "/")
	if strings.Contains(name, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}
	if name == "" {
		name = "index.html"
	}

	// content type is picked from the extension by ServeFile
	http.ServeFile(w, r, path.Join(staticDir, path.Clean("/"+name)))
}
