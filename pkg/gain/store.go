// Package gain persists per-device gain stage settings.
package gain

import (
	"sort"
	"strings"
	"sync"
)

// FieldPrefix is the configuration field prefix of stored gain values
const FieldPrefix = "gain."

// Key identifies a gain stage of a device driver. Names are compared
// verbatim: no case folding or whitespace trimming is applied.
type Key struct {
	Driver string
	Stage  string
}

// String returns the dotted form "driver.stage"
func (k Key) String() string {
	return k.Driver + "." + k.Stage
}

// FieldName returns the configuration field name for the key
func FieldName(k Key) string {
	return FieldPrefix + k.String()
}

// ParseField recovers a key from a configuration field name. The driver ends
// at the first dot after the prefix; the stage may contain further dots.
func ParseField(field string) (Key, bool) {
	rest, ok := strings.CutPrefix(field, FieldPrefix)
	if !ok {
		return Key{}, false
	}
	driver, stage, ok := strings.Cut(rest, ".")
	if !ok {
		return Key{}, false
	}
	return Key{Driver: driver, Stage: stage}, true
}

// Entry is a stored gain value
type Entry struct {
	Key   Key
	Value float32
}

// Store maps gain stages to values. It is safe for concurrent use.
type Store struct {
	values map[Key]float32
	mu     sync.RWMutex
}

// NewStore creates an empty gain store
func NewStore() *Store {
	return &Store{values: make(map[Key]float32)}
}

// Get returns the stored value, or 0 if the stage was never set
func (s *Store) Get(driver, stage string) float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[Key{Driver: driver, Stage: stage}]
}

// Has reports whether a value was stored for the stage
func (s *Store) Has(driver, stage string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[Key{Driver: driver, Stage: stage}]
	return ok
}

// Set inserts or overwrites the value of a stage
func (s *Store) Set(driver, stage string, value float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[Key{Driver: driver, Stage: stage}] = value
}

// Len returns the number of stored stages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Entries returns all stored values ordered by driver, then stage
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	entries := make([]Entry, 0, len(s.values))
	for k, v := range s.values {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Key, entries[j].Key
		if a.Driver != b.Driver {
			return a.Driver < b.Driver
		}
		return a.Stage < b.Stage
	})
	return entries
}

// Fields returns the stored values keyed by configuration field name
func (s *Store) Fields() map[string]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields := make(map[string]float32, len(s.values))
	for k, v := range s.values {
		fields[FieldName(k)] = v
	}
	return fields
}
