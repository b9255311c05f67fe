package catalog

import (
	"sync"

	"github.com/studiowebux/foodboard/internal/types"
)

// Store holds the ordered food list shown by the dashboard.
// At most one record per id is kept.
type Store struct {
	mu sync.RWMutex

	records []types.FoodRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		records: []types.FoodRecord{},
	}
}

// All returns a copy of the records in order
func (s *Store) All() []types.FoodRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]types.FoodRecord, len(s.records))
	copy(records, s.records)
	return records
}

// Len returns the number of records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// At returns the record at index i
func (s *Store) At(i int) (types.FoodRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.records) {
		return types.FoodRecord{}, false
	}
	return s.records[i], true
}

// Get returns the record with the given id
func (s *Store) Get(id string) (types.FoodRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	return types.FoodRecord{}, false
}

// ReplaceAll swaps in a fresh list. When the input repeats an id, the first
// position wins and the later record's contents replace it.
func (s *Store) ReplaceAll(records []types.FoodRecord) {
	deduped := make([]types.FoodRecord, 0, len(records))
	seen := make(map[string]int, len(records))
	for _, r := range records {
		if i, ok := seen[r.ID]; ok {
			deduped[i] = r
			continue
		}
		seen[r.ID] = len(deduped)
		deduped = append(deduped, r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = deduped
}

// Append adds a record at the end. If the id is already present the existing
// entry is replaced in place and false is returned.
func (s *Store) Append(record types.FoodRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(record.ID); i >= 0 {
		s.records[i] = record
		return false
	}
	s.records = append(s.records, record)
	return true
}

// ReplaceByID replaces the record sharing record.ID. Nothing is inserted when
// the id is unknown.
func (s *Store) ReplaceByID(record types.FoodRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(record.ID)
	if i < 0 {
		return false
	}
	s.records[i] = record
	return true
}

// RemoveByID drops the record with the given id
func (s *Store) RemoveByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.records = append(s.records[:i:i], s.records[i+1:]...)
	return true
}

// indexOf must be called with the lock held
func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}
