package measurement

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/treeslice/internal/config"
	"github.com/lehigh-university-libraries/treeslice/internal/gemini"
	"github.com/lehigh-university-libraries/treeslice/internal/ollama"
	"github.com/lehigh-university-libraries/treeslice/internal/openai"
)

// Source names accepted in configuration
const (
	SourceManual    = "manual"
	SourceSimulated = "simulated"
	SourceGemini    = "gemini"
	SourceOllama    = "ollama"
	SourceOpenAI    = "openai"
)

// NewSource builds the measurement source selected in configuration
func NewSource(cfg config.Measurement) (Source, error) {
	model := cfg.Model
	if model == "" {
		model = defaultModel(cfg.Source)
	}

	switch cfg.Source {
	case "", SourceManual:
		return Manual{}, nil
	case SourceSimulated:
		return NewSimulated(cfg.SimulatedMinCM, cfg.SimulatedMaxCM, cfg.Seed), nil
	case SourceGemini:
		return NewVision(SourceGemini, gemini.New(), model, cfg.Timeout), nil
	case SourceOllama:
		return NewVision(SourceOllama, ollama.New(cfg.OllamaURL), model, cfg.Timeout), nil
	case SourceOpenAI:
		return NewVision(SourceOpenAI, openai.New(), model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported measurement source: %s", cfg.Source)
	}
}

func defaultModel(source string) string {
	switch source {
	case SourceGemini:
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	case SourceOpenAI:
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case SourceOllama:
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "llama3.2-vision"
	default:
		return ""
	}
}
