package inspection

import (
	"github.com/lehigh-university-libraries/treeslice/internal/fingerprint"
	"github.com/lehigh-university-libraries/treeslice/internal/models"
)

// DuplicatePair marks two saved records whose photos look alike. Pairs are
// only reported for a reviewer; nothing is removed.
type DuplicatePair struct {
	First        int    `json:"first"`
	Second       int    `json:"second"`
	FirstTreeID  string `json:"first_tree_id"`
	SecondTreeID string `json:"second_tree_id"`
	Distance     int    `json:"distance"`
}

// NearDuplicates returns every record pair whose fingerprints are within
// maxDistance bits. Indexes refer to positions in records.
func NearDuplicates(records []models.InspectionRecord, maxDistance int) []DuplicatePair {
	pairs := []DuplicatePair{}
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			d, err := fingerprint.Distance(records[i].Fingerprint, records[j].Fingerprint)
			if err != nil || d > maxDistance {
				continue
			}
			pairs = append(pairs, DuplicatePair{
				First:        i,
				Second:       j,
				FirstTreeID:  records[i].TreeID,
				SecondTreeID: records[j].TreeID,
				Distance:     d,
			})
		}
	}
	return pairs
}

// Duplicates reports near-duplicate pairs among the session's saved records
func (s *Session) Duplicates(maxDistance int) []DuplicatePair {
	return NearDuplicates(s.results.All(), maxDistance)
}
