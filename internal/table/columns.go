package table

import (
	"strings"
)

// InferColumns returns the ordered union of column names across records.
// Primitive and null fields are columns; a nested record contributes one
// "parent.child" column per key. Deeper levels are not flattened.
func InferColumns(records []*Record) []string {
	seen := make(map[string]struct{})
	var cols []string
	add := func(c string) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		cols = append(cols, c)
	}

	for _, r := range records {
		for _, key := range r.Keys() {
			v, _ := r.Get(key)
			if v.Kind() != KindRecord {
				add(key)
				continue
			}
			for _, child := range v.Record().Keys() {
				add(key + "." + child)
			}
		}
	}
	return cols
}

// Lookup resolves column against r. Dotted columns read one level of
// nesting; a missing path is null.
func Lookup(r *Record, column string) Value {
	parent, child, nested := strings.Cut(column, ".")
	v, _ := r.Get(parent)
	if !nested {
		return v
	}
	if v.Kind() != KindRecord {
		return Null()
	}
	inner, _ := v.Record().Get(child)
	return inner
}

// Filter keeps records where any column's text contains term,
// case-insensitively. An empty term returns records unchanged.
func Filter(records []*Record, columns []string, term string) []*Record {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	var out []*Record
	for _, r := range records {
		for _, c := range columns {
			if strings.Contains(strings.ToLower(Lookup(r, c).Text()), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
