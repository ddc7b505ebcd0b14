package project

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the full set of tracked projects keyed by name. Key order is
// insertion order and survives a JSON round trip, matching the persisted
// layout, a single JSON object of name to project.
type Document struct {
	names    []string
	projects map[string]*Project
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{projects: make(map[string]*Project)}
}

// Len returns the number of projects.
func (d *Document) Len() int {
	return len(d.names)
}

// Names returns project names in insertion order.
func (d *Document) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Get returns the project with the given name.
func (d *Document) Get(name string) (*Project, bool) {
	p, ok := d.projects[name]
	return p, ok
}

// Put inserts or replaces a project. A replaced project keeps its position.
func (d *Document) Put(name string, p *Project) {
	if _, ok := d.projects[name]; !ok {
		d.names = append(d.names, name)
	}
	d.projects[name] = p
}

// Delete removes a project and reports whether it was present.
func (d *Document) Delete(name string) bool {
	if _, ok := d.projects[name]; !ok {
		return false
	}
	delete(d.projects, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return true
}

// MarshalJSON encodes the document as a JSON object in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range d.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(d.projects[name])
		if err != nil {
			return nil, fmt.Errorf("encoding project %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, recording key order as it streams by.
func (d *Document) UnmarshalJSON(data []byte) error {
	d.names = nil
	d.projects = make(map[string]*Project)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var p Project
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("decoding project %q: %w", name, err)
		}
		if p.Days == nil {
			p.Days = NewDayLog()
		}
		d.Put(name, &p)
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
