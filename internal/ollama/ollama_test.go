package ollama

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lehigh-university-libraries/treeslice/internal/providers"
)

func TestExtractTextSendsImage(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected /api/generate, got %s", r.URL.Path)
		}
		var body struct {
			Model  string   `json:"model"`
			Prompt string   `json:"prompt"`
			Images []string `json:"images"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if body.Model != "llava" || body.Prompt != "diameter?" {
			t.Errorf("Unexpected request %+v", body)
		}
		if len(body.Images) != 1 || body.Images[0] != base64.StdEncoding.EncodeToString(image) {
			t.Errorf("Expected one base64 image, got %v", body.Images)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "37.5"})
	}))
	defer srv.Close()

	got, err := New(srv.URL).ExtractText(context.Background(), providers.Config{
		Model:  "llava",
		Prompt: "diameter?",
		Image:  image,
	})
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if got != "37.5" {
		t.Errorf("Expected 37.5, got %q", got)
	}
}

func TestExtractTextNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).ExtractText(context.Background(), providers.Config{Model: "x"}); err == nil {
		t.Error("Expected error for non-200 response, got nil")
	}
}

func TestNewFallsBackToEnv(t *testing.T) {
	t.Setenv("OLLAMA_URL", "")
	t.Setenv("OLLAMA_HOST", "http://gpu-box:11434")

	if got := New("").baseURL; got != "http://gpu-box:11434" {
		t.Errorf("Expected OLLAMA_HOST, got %s", got)
	}
	if got := New("http://explicit").baseURL; got != "http://explicit" {
		t.Errorf("Expected explicit URL, got %s", got)
	}
}
