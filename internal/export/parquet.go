package export

import (
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/treeslice/internal/models"
	"github.com/parquet-go/parquet-go"
)

// ParquetRecord is the flat row layout of a parquet export. The geolocation
// pair is split into two optional columns.
type ParquetRecord struct {
	TreeID      string   `parquet:"tree_id"`
	Timestamp   *string  `parquet:"timestamp,optional"`
	Location    string   `parquet:"location"`
	Latitude    *float64 `parquet:"latitude,optional"`
	Longitude   *float64 `parquet:"longitude,optional"`
	DiameterCM  float64  `parquet:"diameter_cm"`
	AreaCM2     float64  `parquet:"area_cm2"`
	Category    string   `parquet:"category"`
	Fingerprint string   `parquet:"hash"`
}

func toParquet(r models.InspectionRecord) ParquetRecord {
	row := ParquetRecord{
		TreeID:      r.TreeID,
		Timestamp:   r.Timestamp,
		Location:    r.Location,
		DiameterCM:  r.DiameterCM,
		AreaCM2:     r.AreaCM2,
		Category:    r.Category,
		Fingerprint: r.Fingerprint,
	}
	if r.Geolocation != nil {
		lat, lon := r.Geolocation.Latitude, r.Geolocation.Longitude
		row.Latitude = &lat
		row.Longitude = &lon
	}
	return row
}

// WriteParquet writes records as a single parquet file
func WriteParquet(w io.Writer, records []models.InspectionRecord) error {
	rows := make([]ParquetRecord, 0, len(records))
	for _, r := range records {
		rows = append(rows, toParquet(r))
	}

	if err := parquet.Write(w, rows); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	return nil
}
