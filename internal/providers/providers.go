package providers

import (
	"context"
)

// Config represents the configuration for a vision LLM request
type Config struct {
	Model       string
	Temperature float64
	Prompt      string

	// Image is the raw encoded image sent along with the prompt
	Image []byte
	// ImageFormat is the decoder format name, e.g. "jpeg" or "png"
	ImageFormat string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}

// MIMEType returns the media type for a decoder format name
func MIMEType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
