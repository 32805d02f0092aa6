package bandplan

import "sync"

// Registry holds the loaded tables, at most one per name
type Registry struct {
	tables []*Table
	mu     sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a table. A table already registered under the same name is
// replaced in place.
func (r *Registry) Add(t *Table) error {
	if t == nil || t.Name == "" {
		return ErrNoName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.index(t.Name); i >= 0 {
		r.tables[i] = t
		return nil
	}
	r.tables = append(r.tables, t)
	return nil
}

// Lookup returns the table with the given name
func (r *Registry) Lookup(name string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(name); i >= 0 {
		return r.tables[i], true
	}
	return nil, false
}

// Remove drops the named table and reports whether it was present
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(name)
	if i < 0 {
		return false
	}
	r.tables = append(r.tables[:i], r.tables[i+1:]...)
	return true
}

// Names returns the table names in load order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.tables))
	for i, t := range r.tables {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of tables
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}

// Match is a band found by an overlay query
type Match struct {
	Table string
	Band  Band
}

// BandsAt returns every band of every table covering f
func (r *Registry) BandsAt(f int64) []Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Match
	for _, t := range r.tables {
		for _, b := range t.BandsAt(f) {
			out = append(out, Match{Table: t.Name, Band: b})
		}
	}
	return out
}

func (r *Registry) index(name string) int {
	for i, t := range r.tables {
		if t.Name == name {
			return i
		}
	}
	return -1
}
