package models

import "time"

// Geolocation is a signed latitude/longitude pair in decimal degrees
type Geolocation struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// InspectionRecord represents one saved tree slice inspection
type InspectionRecord struct {
	TreeID      string       `json:"tree_id" yaml:"tree_id"`
	Timestamp   *string      `json:"timestamp" yaml:"timestamp"`
	Location    string       `json:"location" yaml:"location"`
	Geolocation *Geolocation `json:"gps" yaml:"gps"`
	DiameterCM  float64      `json:"diameter_cm" yaml:"diameter_cm"`
	AreaCM2     float64      `json:"area_cm2" yaml:"area_cm2"`
	Category    string       `json:"category" yaml:"category"`
	Fingerprint string       `json:"hash" yaml:"hash"`
}

// Analysis is an uploaded photo that has been processed but not yet saved.
// It is consumed when the user confirms it.
type Analysis struct {
	ID                  string       `json:"id"`
	Filename            string       `json:"filename"`
	Format              string       `json:"format"`
	Width               int          `json:"width"`
	Height              int          `json:"height"`
	Timestamp           *string      `json:"timestamp"`
	Geolocation         *Geolocation `json:"gps"`
	Fingerprint         string       `json:"hash"`
	SuggestedDiameterCM *float64     `json:"suggested_diameter_cm"`
	MeasurementSource   string       `json:"measurement_source"`
	MetadataTags        int          `json:"metadata_tags"`
	CreatedAt           time.Time    `json:"created_at"`

	// Raw image bytes, kept for previews. Not serialized.
	Image []byte `json:"-"`
}
