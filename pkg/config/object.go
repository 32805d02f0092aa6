// Package config persists application state as flat, typed key/value
// objects and loads application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Object is a flat key/value store with typed accessors. Keys are kept
// verbatim, so "gain.rtlsdr.RF" and "gain.rtlsdr.rf" are distinct fields.
// Getters never fail: a missing or unconvertible field yields the default.
type Object struct {
	Class  string
	fields map[string]interface{}
	mu     sync.RWMutex
}

// NewObject creates an empty object of the given class
func NewObject(class string) *Object {
	return &Object{Class: class, fields: make(map[string]interface{})}
}

// Set stores a field value, replacing any previous one
func (o *Object) Set(key string, value interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fields[key] = value
}

// Has reports whether a field is present
func (o *Object) Has(key string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.fields[key]
	return ok
}

// Delete removes a field
func (o *Object) Delete(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.fields, key)
}

// Get returns the raw field value
func (o *Object) Get(key string) (interface{}, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.fields[key]
	return v, ok
}

// Fields returns the field names in sorted order
func (o *Object) Fields() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of fields
func (o *Object) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.fields)
}

// GetBool returns a boolean field or def
func (o *Object) GetBool(key string, def bool) bool {
	if v, ok := o.Get(key); ok {
		if b, err := cast.ToBoolE(v); err == nil {
			return b
		}
	}
	return def
}

// GetString returns a string field or def
func (o *Object) GetString(key string, def string) string {
	if v, ok := o.Get(key); ok {
		if s, err := cast.ToStringE(v); err == nil {
			return s
		}
	}
	return def
}

// GetInt64 returns an integer field or def
func (o *Object) GetInt64(key string, def int64) int64 {
	if v, ok := o.Get(key); ok {
		if f, err := cast.ToFloat64E(v); err == nil {
			return int64(f)
		}
	}
	return def
}

// GetUint64 returns an unsigned integer field or def. Negative values are
// rejected.
func (o *Object) GetUint64(key string, def uint64) uint64 {
	if v, ok := o.Get(key); ok {
		if f, err := cast.ToFloat64E(v); err == nil && f >= 0 {
			return uint64(f)
		}
	}
	return def
}

// GetFloat64 returns a floating point field or def
func (o *Object) GetFloat64(key string, def float64) float64 {
	if v, ok := o.Get(key); ok {
		if f, err := cast.ToFloat64E(v); err == nil {
			return f
		}
	}
	return def
}

// GetFloat32 returns a single precision field or def
func (o *Object) GetFloat32(key string, def float32) float32 {
	if v, ok := o.Get(key); ok {
		if f, err := cast.ToFloat32E(v); err == nil {
			return f
		}
	}
	return def
}

// document is the on-disk layout of an object
type document struct {
	Class  string                 `yaml:"class,omitempty"`
	Fields map[string]interface{} `yaml:"fields"`
}

// MarshalYAML implements yaml.Marshaler
func (o *Object) MarshalYAML() (interface{}, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	fields := make(map[string]interface{}, len(o.fields))
	for k, v := range o.fields {
		fields[k] = v
	}
	return document{Class: o.Class, Fields: fields}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	var doc document
	if err := node.Decode(&doc); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.Class = doc.Class
	o.fields = doc.Fields
	if o.fields == nil {
		o.fields = make(map[string]interface{})
	}
	return nil
}

// Save writes objects to a YAML file keyed by name, creating the directory
// if needed
func Save(path string, objects map[string]*Object) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(objects)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Load reads objects written by Save
func Load(path string) (map[string]*Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	objects := make(map[string]*Object)
	if err := yaml.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	return objects, nil
}
