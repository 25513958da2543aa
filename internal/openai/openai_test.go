package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/treeslice/internal/providers"
)

func TestExtractText(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		var body struct {
			Messages []struct {
				Content []map[string]any `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if len(body.Messages) != 1 || len(body.Messages[0].Content) != 2 {
			t.Errorf("Expected text and image parts, got %+v", body.Messages)
			return
		}
		imageURL, _ := body.Messages[0].Content[1]["image_url"].(map[string]any)
		if url, _ := imageURL["url"].(string); !strings.HasPrefix(url, "data:image/png;base64,") {
			t.Errorf("Expected PNG data URL, got %q", url)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"42"}}]}`))
	}))
	defer srv.Close()

	o := New()
	o.url = srv.URL

	got, err := o.ExtractText(context.Background(), providers.Config{
		Model:       "gpt-4o",
		Prompt:      "diameter?",
		Image:       []byte{0x89, 'P', 'N', 'G'},
		ImageFormat: "png",
	})
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if got != "42" {
		t.Errorf("Expected 42, got %q", got)
	}
}

func TestExtractTextRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := New().ExtractText(context.Background(), providers.Config{}); err == nil {
		t.Error("Expected error without API key, got nil")
	}
}
