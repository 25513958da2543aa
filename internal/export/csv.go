package export

import (
	"encoding/csv"
	"io"

	"github.com/lehigh-university-libraries/treeslice/internal/models"
)

// WriteCSV writes the header row followed by one row per record
func WriteCSV(w io.Writer, records []models.InspectionRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := writer.Write(Row(r)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
