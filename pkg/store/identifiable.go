package store

import (
	"cmp"
	"slices"

	"golang.org/x/exp/maps"
)

// Identifiable is any record that carries its own store key.
type Identifiable[K cmp.Ordered] interface {
	Identifier() K
}

// IdentifiableStore is an associative container keyed by each record's own
// identifier. Iteration is always in identifier order. Identifier collisions
// never error: Put replaces silently and hands the displaced record back to
// the caller, which is responsible for any cascade effects.
type IdentifiableStore[K cmp.Ordered, V Identifiable[K]] struct {
	records map[K]V
}

func NewIdentifiableStore[K cmp.Ordered, V Identifiable[K]]() *IdentifiableStore[K, V] {
	return &IdentifiableStore[K, V]{
		records: map[K]V{},
	}
}

func (s *IdentifiableStore[K, V]) Get(id K) (V, bool) {
	record, ok := s.records[id]
	return record, ok
}

func (s *IdentifiableStore[K, V]) Contains(id K) bool {
	_, ok := s.records[id]
	return ok
}

// Put inserts the record, replacing and returning any record already stored
// under the same identifier.
func (s *IdentifiableStore[K, V]) Put(record V) (V, bool) {
	displaced, ok := s.records[record.Identifier()]
	s.records[record.Identifier()] = record

	return displaced, ok
}

func (s *IdentifiableStore[K, V]) PutAll(records []V) {
	for _, record := range records {
		s.Put(record)
	}
}

// All returns every record ordered by identifier.
func (s *IdentifiableStore[K, V]) All() []V {
	keys := maps.Keys(s.records)
	slices.Sort(keys)

	records := make([]V, 0, len(keys))
	for _, key := range keys {
		records = append(records, s.records[key])
	}

	return records
}

func (s *IdentifiableStore[K, V]) Len() int {
	return len(s.records)
}

func (s *IdentifiableStore[K, V]) Clear() {
	maps.Clear(s.records)
}
