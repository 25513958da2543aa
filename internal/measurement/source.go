package measurement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/treeslice/internal/providers"
)

// ErrManualEntry is returned by sources that never estimate a diameter
var ErrManualEntry = errors.New("diameter must be entered manually")

// Sample is the photo a source estimates a diameter from
type Sample struct {
	Image  []byte
	Format string
}

// Source proposes a slice diameter for a photo. The user confirms or
// overrides the proposal before a record is saved.
type Source interface {
	Name() string
	Estimate(ctx context.Context, sample Sample) (float64, error)
}

// Manual leaves the measurement entirely to the user
type Manual struct{}

func (Manual) Name() string { return SourceManual }

func (Manual) Estimate(context.Context, Sample) (float64, error) {
	return 0, ErrManualEntry
}

// Simulated returns a uniformly random diameter in [min, max], rounded to a
// millimeter. It stands in for a detector during demos.
type Simulated struct {
	min, max float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated source. A zero seed draws a random one.
func NewSimulated(min, max float64, seed uint64) *Simulated {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Simulated{
		min: min,
		max: max,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *Simulated) Name() string { return SourceSimulated }

func (s *Simulated) Estimate(context.Context, Sample) (float64, error) {
	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()

	d := s.min + f*(s.max-s.min)
	return math.Round(d*10) / 10, nil
}

// Vision asks a vision-capable LLM to read the diameter off the ruler in the photo
type Vision struct {
	name     string
	provider providers.Provider
	model    string
	timeout  time.Duration
}

// NewVision wraps an LLM provider as a measurement source
func NewVision(name string, provider providers.Provider, model string, timeout time.Duration) *Vision {
	return &Vision{name: name, provider: provider, model: model, timeout: timeout}
}

func (v *Vision) Name() string { return v.name }

func (v *Vision) Estimate(ctx context.Context, sample Sample) (float64, error) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := v.provider.ExtractText(ctx, providers.Config{
		Model:       v.model,
		Temperature: 0.1,
		Prompt:      diameterPrompt,
		Image:       sample.Image,
		ImageFormat: sample.Format,
	})
	if err != nil {
		return 0, fmt.Errorf("%s estimate failed: %w", v.name, err)
	}

	d, err := ParseDiameter(text)
	if err != nil {
		return 0, err
	}

	slog.Debug("Diameter estimated", "source", v.name, "model", v.model, "diameter_cm", d, "elapsed", time.Since(start))
	return d, nil
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseDiameter pulls the first number out of a model answer
func ParseDiameter(text string) (float64, error) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no diameter in response: %q", truncate(text, 80))
	}
	d, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid diameter %q: %w", match, err)
	}
	return d, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
