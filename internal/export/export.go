package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/treeslice/internal/models"
	"gopkg.in/yaml.v3"
)

// Supported export formats
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
	FormatYAML    = "yaml"
	FormatJSON    = "json"
)

// Header is the CSV header row; column order is fixed
var Header = []string{"Tree ID", "Timestamp", "Location", "GPS", "Diameter (cm)", "Area (cm²)", "Category", "Hash"}

// Formats lists the accepted export format names
var Formats = []string{FormatCSV, FormatParquet, FormatYAML, FormatJSON}

// Write encodes records in the given format
func Write(w io.Writer, format string, records []models.InspectionRecord) error {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		return WriteCSV(w, records)
	case FormatParquet:
		return WriteParquet(w, records)
	case FormatYAML, "yml":
		return WriteYAML(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	default:
		return fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// ContentType returns the media type for an export format
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatParquet:
		return "application/vnd.apache.parquet"
	case FormatYAML, "yml":
		return "application/yaml"
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename returns the download filename for an export format
func Filename(format string) string {
	switch strings.ToLower(format) {
	case FormatParquet, FormatYAML, FormatJSON:
		return "tree_data." + strings.ToLower(format)
	case "yml":
		return "tree_data.yaml"
	default:
		return "tree_data.csv"
	}
}

// WriteYAML writes records as a YAML sequence
func WriteYAML(w io.Writer, records []models.InspectionRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nonNil(records)); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes records as an indented JSON array
func WriteJSON(w io.Writer, records []models.InspectionRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nonNil(records))
}

func nonNil(records []models.InspectionRecord) []models.InspectionRecord {
	if records == nil {
		return []models.InspectionRecord{}
	}
	return records
}

// formatFloat writes the shortest exact decimal and always keeps a fractional
// part, so 35 is written as 35.0
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// FormatGeolocation renders a pair as "(lat, lon)"; absent pairs render empty
func FormatGeolocation(g *models.Geolocation) string {
	if g == nil {
		return ""
	}
	return "(" + formatFloat(g.Latitude) + ", " + formatFloat(g.Longitude) + ")"
}

func formatTimestamp(ts *string) string {
	if ts == nil {
		return ""
	}
	return *ts
}

// Row returns the record as CSV cells in Header order
func Row(r models.InspectionRecord) []string {
	return []string{
		r.TreeID,
		formatTimestamp(r.Timestamp),
		r.Location,
		FormatGeolocation(r.Geolocation),
		formatFloat(r.DiameterCM),
		formatFloat(r.AreaCM2),
		r.Category,
		r.Fingerprint,
	}
}
