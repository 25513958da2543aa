package storage

import (
	"sort"
	"sync"

	"github.com/lehigh-university-libraries/treeslice/internal/models"
)

// AnalysisStore holds analyses that are waiting for confirmation
type AnalysisStore struct {
	analyses map[string]*models.Analysis
	mu       sync.RWMutex
}

func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{
		analyses: make(map[string]*models.Analysis),
	}
}

func (s *AnalysisStore) Get(id string) (*models.Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	analysis, exists := s.analyses[id]
	return analysis, exists
}

func (s *AnalysisStore) Set(id string, analysis *models.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[id] = analysis
}

// Take removes and returns the analysis, so that it can be confirmed only once
func (s *AnalysisStore) Take(id string) (*models.Analysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	analysis, exists := s.analyses[id]
	if exists {
		delete(s.analyses, id)
	}
	return analysis, exists
}

// GetAll returns the pending analyses oldest first
func (s *AnalysisStore) GetAll() []*models.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Analysis, 0, len(s.analyses))
	for _, v := range s.analyses {
		result = append(result, v)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (s *AnalysisStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.analyses[id]
	delete(s.analyses, id)
	return exists
}

// ResultSet is the insertion-ordered list of saved records for one session.
// It only grows.
type ResultSet struct {
	records []models.InspectionRecord
	mu      sync.RWMutex
}

func NewResultSet() *ResultSet {
	return &ResultSet{}
}

func (r *ResultSet) Append(record models.InspectionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
}

// All returns a copy of the records in insertion order
func (r *ResultSet) All() []models.InspectionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.InspectionRecord, len(r.records))
	copy(result, r.records)
	return result
}

func (r *ResultSet) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
