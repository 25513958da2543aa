package inspection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/treeslice/internal/fingerprint"
	"github.com/lehigh-university-libraries/treeslice/internal/images"
	"github.com/lehigh-university-libraries/treeslice/internal/measurement"
	"github.com/lehigh-university-libraries/treeslice/internal/metadata"
	"github.com/lehigh-university-libraries/treeslice/internal/models"
	"github.com/lehigh-university-libraries/treeslice/internal/storage"
)

// Session owns the pending analyses and the saved records of one intake session
type Session struct {
	source   measurement.Source
	analyses *storage.AnalysisStore
	results  *storage.ResultSet
	now      func() time.Time
}

// Upload is one photo handed to the pipeline
type Upload struct {
	Filename string
	Data     []byte
}

// Confirmation holds the user-entered fields that turn an analysis into a record
type Confirmation struct {
	TreeID   string
	Location string
	// Timestamp is used only when the photo carried none. It is stored
	// verbatim, so an empty string is kept as empty rather than absent.
	Timestamp *string
	// DiameterCM overrides the suggested diameter when set
	DiameterCM *float64
}

func NewSession(source measurement.Source) *Session {
	if source == nil {
		source = measurement.Manual{}
	}
	return &Session{
		source:   source,
		analyses: storage.NewAnalysisStore(),
		results:  storage.NewResultSet(),
		now:      time.Now,
	}
}

// Source returns the configured measurement source
func (s *Session) Source() measurement.Source {
	return s.source
}

// Analyze runs extraction, resolution, fingerprinting and the diameter
// estimate for one photo and keeps the result pending. Only a decode
// failure is returned as an error.
func (s *Session) Analyze(ctx context.Context, upload Upload) (*models.Analysis, error) {
	img, format, err := images.Decode(upload.Data)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrDecode, upload.Filename, err)
	}

	meta := metadata.Extract(upload.Data)

	analysis := &models.Analysis{
		ID:                uuid.NewString(),
		Filename:          upload.Filename,
		Format:            format,
		Width:             img.Bounds().Dx(),
		Height:            img.Bounds().Dy(),
		Fingerprint:       fingerprint.Compute(img),
		MeasurementSource: s.source.Name(),
		MetadataTags:      len(meta),
		CreatedAt:         s.now(),
		Image:             upload.Data,
	}

	if ts, ok := metadata.Timestamp(meta); ok {
		analysis.Timestamp = &ts
	}
	if geo, ok := metadata.Geolocation(meta); ok {
		analysis.Geolocation = &geo
	}

	d, err := s.source.Estimate(ctx, measurement.Sample{Image: upload.Data, Format: format})
	switch {
	case err == nil:
		analysis.SuggestedDiameterCM = &d
	case errors.Is(err, measurement.ErrManualEntry):
	default:
		slog.Warn("Diameter estimate unavailable", "filename", upload.Filename, "source", s.source.Name(), "err", err)
	}

	s.analyses.Set(analysis.ID, analysis)

	slog.Info("Photo analyzed",
		"analysis_id", analysis.ID,
		"filename", upload.Filename,
		"format", format,
		"metadata_tags", len(meta),
		"has_timestamp", analysis.Timestamp != nil,
		"has_gps", analysis.Geolocation != nil,
		"hash", analysis.Fingerprint)

	return analysis, nil
}

// Confirm classifies the diameter and saves the record for the analysis.
// The analysis is consumed; confirming it again returns ErrAnalysisNotFound.
func (s *Session) Confirm(id string, c Confirmation) (models.InspectionRecord, error) {
	analysis, ok := s.analyses.Get(id)
	if !ok {
		return models.InspectionRecord{}, fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}

	var diameter float64
	switch {
	case c.DiameterCM != nil:
		diameter = *c.DiameterCM
	case analysis.SuggestedDiameterCM != nil:
		diameter = *analysis.SuggestedDiameterCM
	default:
		return models.InspectionRecord{}, ErrDiameterRequired
	}
	if diameter < 0 || math.IsNaN(diameter) || math.IsInf(diameter, 0) {
		return models.InspectionRecord{}, fmt.Errorf("%w: %v", ErrInvalidDiameter, diameter)
	}

	if _, ok := s.analyses.Take(id); !ok {
		return models.InspectionRecord{}, fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}

	timestamp := analysis.Timestamp
	if timestamp == nil && c.Timestamp != nil {
		manual := *c.Timestamp
		timestamp = &manual
	}

	record := Assemble(s.results, RecordInput{
		TreeID:      c.TreeID,
		Timestamp:   timestamp,
		Location:    c.Location,
		Geolocation: analysis.Geolocation,
		Measurement: measurement.Classify(diameter),
		Fingerprint: analysis.Fingerprint,
	})

	slog.Info("Inspection saved",
		"analysis_id", id,
		"tree_id", record.TreeID,
		"diameter_cm", record.DiameterCM,
		"category", record.Category,
		"records", s.results.Len())

	return record, nil
}

// Discard drops a pending analysis without saving it
func (s *Session) Discard(id string) error {
	if !s.analyses.Delete(id) {
		return fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}
	return nil
}

func (s *Session) Analysis(id string) (*models.Analysis, error) {
	analysis, ok := s.analyses.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}
	return analysis, nil
}

// Pending returns the unconfirmed analyses oldest first
func (s *Session) Pending() []*models.Analysis {
	return s.analyses.GetAll()
}

// Records returns the saved records in the order they were confirmed
func (s *Session) Records() []models.InspectionRecord {
	return s.results.All()
}
