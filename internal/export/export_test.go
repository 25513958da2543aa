package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/treeslice/internal/models"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

func sampleRecords() []models.InspectionRecord {
	ts := "2024:05:01 10:30:00"
	return []models.InspectionRecord{
		{
			TreeID:      "T-1",
			Timestamp:   &ts,
			Location:    "ROW 12, span 4",
			Geolocation: &models.Geolocation{Latitude: -33.5, Longitude: 151.25},
			DiameterCM:  35,
			AreaCM2:     962.11,
			Category:    "B",
			Fingerprint: "c3a1b2d4e5f60718",
		},
		{
			TreeID:      "Unknown",
			DiameterCM:  12.5,
			AreaCM2:     122.72,
			Category:    "C",
			Fingerprint: "0000000000000001",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	if !utf8.Valid(buf.Bytes()) {
		t.Error("Expected UTF-8 output")
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}

	expected := [][]string{
		{"Tree ID", "Timestamp", "Location", "GPS", "Diameter (cm)", "Area (cm²)", "Category", "Hash"},
		{"T-1", "2024:05:01 10:30:00", "ROW 12, span 4", "(-33.5, 151.25)", "35.0", "962.11", "B", "c3a1b2d4e5f60718"},
		{"Unknown", "", "", "", "12.5", "122.72", "C", "0000000000000001"},
	}
	for i := range expected {
		if strings.Join(rows[i], "|") != strings.Join(expected[i], "|") {
			t.Errorf("Row %d:\nExpected %q\nGot      %q", i, expected[i], rows[i])
		}
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(Header, ",") {
		t.Errorf("Expected header only, got %q", got)
	}
}

func TestWriteParquet(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteParquet(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteParquet returned error: %v", err)
	}

	rows, err := parquet.Read[ParquetRecord](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Failed to read parquet back: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0].Latitude == nil || *rows[0].Latitude != -33.5 {
		t.Errorf("Expected latitude -33.5, got %v", rows[0].Latitude)
	}
	if rows[1].Latitude != nil || rows[1].Timestamp != nil {
		t.Errorf("Expected null geolocation and timestamp, got %+v", rows[1])
	}
	if rows[1].TreeID != "Unknown" || rows[1].Category != "C" {
		t.Errorf("Unexpected second row %+v", rows[1])
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteYAML returned error: %v", err)
	}

	var decoded []models.InspectionRecord
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Geolocation == nil || decoded[1].Geolocation != nil {
		t.Errorf("Unexpected YAML round trip: %+v", decoded)
	}
}

func TestWriteDispatch(t *testing.T) {
	tests := []struct {
		format   string
		contains string
		wantErr  bool
	}{
		{format: "", contains: "Tree ID,Timestamp"},
		{format: "CSV", contains: "Tree ID,Timestamp"},
		{format: "json", contains: `"tree_id": "T-1"`},
		{format: "yml", contains: "tree_id: T-1"},
		{format: "xlsx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.format, sampleRecords())
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestFilenameAndContentType(t *testing.T) {
	if Filename("") != "tree_data.csv" || Filename("parquet") != "tree_data.parquet" {
		t.Errorf("Unexpected filenames %s, %s", Filename(""), Filename("parquet"))
	}
	if !strings.HasPrefix(ContentType("csv"), "text/csv") {
		t.Errorf("Unexpected CSV content type %s", ContentType("csv"))
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleRecords())
	for _, want := range []string{"TREE ID", "T-1", "962.11", "(-33.5, 151.25)"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{value: 35, expected: "35.0"},
		{value: 0, expected: "0.0"},
		{value: 962.11, expected: "962.11"},
		{value: 12.5, expected: "12.5"},
		{value: -80, expected: "-80.0"},
		{value: 40.446111111111115, expected: "40.446111111111115"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := formatFloat(tt.value); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}

	if got := FormatGeolocation(&models.Geolocation{Latitude: 40, Longitude: -75.5}); got != "(40.0, -75.5)" {
		t.Errorf("Expected (40.0, -75.5), got %s", got)
	}
}
