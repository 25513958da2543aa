package inspection

import (
	"github.com/lehigh-university-libraries/treeslice/internal/measurement"
	"github.com/lehigh-university-libraries/treeslice/internal/models"
	"github.com/lehigh-university-libraries/treeslice/internal/storage"
)

// UnknownTreeID is stored when the user leaves the identifier empty
const UnknownTreeID = "Unknown"

// RecordInput carries everything a record is built from
type RecordInput struct {
	TreeID      string
	Timestamp   *string
	Location    string
	Geolocation *models.Geolocation
	Measurement measurement.Measurement
	Fingerprint string
}

// Assemble builds the record and appends it to set. Only an empty identifier
// is defaulted; every other value, whitespace included, is stored as given.
func Assemble(set *storage.ResultSet, in RecordInput) models.InspectionRecord {
	treeID := in.TreeID
	if treeID == "" {
		treeID = UnknownTreeID
	}

	record := models.InspectionRecord{
		TreeID:      treeID,
		Timestamp:   in.Timestamp,
		Location:    in.Location,
		Geolocation: in.Geolocation,
		DiameterCM:  in.Measurement.DiameterCM,
		AreaCM2:     in.Measurement.AreaCM2,
		Category:    in.Measurement.Category,
		Fingerprint: in.Fingerprint,
	}

	set.Append(record)
	return record
}
