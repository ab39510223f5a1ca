// Package records reads and writes the tabular course data that surrounds
// the layout engine.
//
// A [Dataset] is what a spreadsheet export looks like: a mapping from table
// name to a list of flat records. Tables of interest hold courses and their
// prerequisites; any other top-level value (such as a previous run's
// layout_metadata) is kept as-is in [Dataset.Extra].
//
// [Extract] pulls course identifiers and prerequisite records out of a
// dataset. [Merge] writes computed coordinates back onto a deep copy so the
// caller's dataset is never modified.
package records

import (
	"encoding/json"
	"maps"

	"gopkg.in/yaml.v3"
)

// Record is one row of a table: field name to string, number, bool or nil.
type Record map[string]any

// Dataset is a set of named tables plus any non-table top-level values.
type Dataset struct {
	Tables map[string][]Record
	Extra  map[string]any
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{Tables: map[string][]Record{}, Extra: map[string]any{}}
}

// Table returns the named table, or nil.
func (d *Dataset) Table(name string) []Record { return d.Tables[name] }

// Clone returns a deep copy of d.
func (d *Dataset) Clone() *Dataset {
	c := New()
	for name, rows := range d.Tables {
		out := make([]Record, len(rows))
		for i, r := range rows {
			out[i] = Record(deepCopy(map[string]any(r)).(map[string]any))
		}
		c.Tables[name] = out
	}
	for k, v := range d.Extra {
		c.Extra[k] = deepCopy(v)
	}
	return c
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = deepCopy(vv)
		}
		return m
	case Record:
		return Record(deepCopy(map[string]any(t)).(map[string]any))
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = deepCopy(vv)
		}
		return s
	case []Record:
		s := make([]Record, len(t))
		for i, r := range t {
			s[i] = deepCopy(r).(Record)
		}
		return s
	default:
		return v
	}
}

// flatten merges tables and extras into one top-level map for encoding.
func (d *Dataset) flatten() map[string]any {
	out := make(map[string]any, len(d.Tables)+len(d.Extra))
	maps.Copy(out, d.Extra)
	for name, rows := range d.Tables {
		if rows == nil {
			rows = []Record{}
		}
		out[name] = rows
	}
	return out
}

// absorb sorts decoded top-level values into tables and extras. A value is
// a table when it is a list whose elements are all objects.
func (d *Dataset) absorb(top map[string]any) {
	d.Tables = map[string][]Record{}
	d.Extra = map[string]any{}
	for k, v := range top {
		if rows, ok := asTable(v); ok {
			d.Tables[k] = rows
			continue
		}
		d.Extra[k] = v
	}
}

func asTable(v any) ([]Record, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	rows := make([]Record, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		rows[i] = Record(m)
	}
	return rows, true
}

// MarshalJSON implements json.Marshaler.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.flatten())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var top map[string]any
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	d.absorb(top)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d *Dataset) MarshalYAML() (any, error) {
	return d.flatten(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Dataset) UnmarshalYAML(node *yaml.Node) error {
	var top map[string]any
	if err := node.Decode(&top); err != nil {
		return err
	}
	d.absorb(top)
	return nil
}
