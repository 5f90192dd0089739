// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"fmt"
	"hash/maphash"

	"github.com/knapsack-heuristics/benchviz/benchcsv"
	"github.com/knapsack-heuristics/benchviz/benchproc/internal/parse"
)

// A ProjectionParser parses one or more related projection expressions.
//
// The zero ProjectionParser accepts any column name. If Schema is
// set, Parse rejects columns the schema doesn't declare, and Residue
// can report the columns no projection covers.
type ProjectionParser struct {
	Schema *benchcsv.Schema

	// projected records every column named by a parsed projection.
	projected map[string]bool
}

// Parse parses a single projection expression, such as
// "pop_size,mutation_rate". A projection expression describes how to
// extract columns of a record into a Key and how to order the
// resulting Keys. See the package documentation for the syntax.
//
// A projection expression may also imply a filter, for example if
// there's a fixed order like "type@(vns_gloutonne vns_aleatoire)".
// Parse will add any filters to "filter".
func (p *ProjectionParser) Parse(projection string, filter *Filter) (*Projection, error) {
	if p.projected == nil {
		p.projected = make(map[string]bool)
	}

	parts, err := parse.ParseProjection(projection)
	if err != nil {
		return nil, err
	}
	proj := newProjection()
	var filterParts []filterFn
	for _, part := range parts {
		f, err := p.makeField(proj, projection, part)
		if err != nil {
			return nil, err
		}
		if f != nil {
			filterParts = append(filterParts, f)
		}
	}
	for _, part := range parts {
		p.projected[part.Key] = true
	}
	// Only touch the filter once the whole projection is known to
	// be valid.
	if len(filterParts) > 0 {
		if filter == nil {
			panic(fmt.Sprintf("projection expression %s contains a filter, but Parse was passed a nil *Filter", projection))
		}
		if filter.match != nil {
			filterParts = append(filterParts, filter.match)
		}
		filter.match = filterOp(parse.OpAnd, filterParts)
	}
	return proj, nil
}

// Residue returns a projection of every column of p.Schema that no
// projection parsed by p names and that isn't in exclude. The
// resulting Projection orders values by first observation.
//
// The intended use is to warn when results have been over-aggregated:
// project every record of a group with the residue, and if the group
// has more than one distinct residue Key, NonSingularFields reports
// which columns varied. Callers typically exclude the measured
// columns, such as "value" and "time".
func (p *ProjectionParser) Residue(exclude ...string) *Projection {
	proj := newProjection()
	if p.Schema == nil {
		return proj
	}
	skip := make(map[string]bool)
	for _, name := range exclude {
		skip[name] = true
	}
	for _, name := range p.Schema.Names() {
		if p.projected[name] || skip[name] {
			continue
		}
		p.makeField(proj, "", parse.Field{Key: name, Order: "first"})
	}
	return proj
}

func (p *ProjectionParser) makeField(proj *Projection, q string, pf parse.Field) (filterFn, error) {
	if p.Schema != nil && !p.Schema.Has(pf.Key) {
		return nil, &parse.SyntaxError{Query: q, Off: pf.KeyOff, Msg: fmt.Sprintf("unknown column %q", pf.Key)}
	}
	if proj.byName[pf.Key] != nil {
		return nil, &parse.SyntaxError{Query: q, Off: pf.KeyOff, Msg: fmt.Sprintf("column %q projected twice", pf.Key)}
	}

	field := proj.addField(pf.Key)
	var filter filterFn
	switch pf.Order {
	case "fixed":
		fixedMap := make(map[string]int, len(pf.Fixed))
		for i, s := range pf.Fixed {
			fixedMap[s] = i
		}
		field.cmp = func(a, b string) int {
			return fixedMap[a] - fixedMap[b]
		}
		filter = func(g Getter) bool {
			v, _ := g.Get(pf.Key)
			_, ok := fixedMap[v]
			return ok
		}
	case "first":
		field.order = make(map[string]int)
		field.cmp = func(a, b string) int {
			return field.order[a] - field.order[b]
		}
	default:
		cmp, ok := builtinOrders[pf.Order]
		if !ok {
			return nil, &parse.SyntaxError{Query: q, Off: pf.OrderOff, Msg: fmt.Sprintf("unknown order %q", pf.Order)}
		}
		field.cmp = cmp
	}
	return filter, nil
}

// A Projection extracts some subset of the columns of a record into
// a Key.
//
// A Projection also implies a sort order over Keys that is
// lexicographic over the fields of the Projection.
type Projection struct {
	fields []*Field
	byName map[string]*Field

	// row is the buffer used to construct a projection.
	row []string

	// interns deduplicates the value strings held by Keys.
	interns map[string]string

	// keys are the interned Keys of this Projection, by hash.
	keys map[uint64][]*keyNode
}

func newProjection() *Projection {
	return &Projection{
		byName:  make(map[string]*Field),
		interns: make(map[string]string),
		keys:    make(map[uint64][]*keyNode),
	}
}

func (p *Projection) addField(name string) *Field {
	field := &Field{Name: name, proj: p, idx: len(p.fields)}
	p.fields = append(p.fields, field)
	p.byName[name] = field
	p.row = append(p.row, "")
	return field
}

// Fields returns the fields of p. These correspond exactly to the
// fields in the Projection's projection expression.
//
// The caller must not modify the returned slice.
func (p *Projection) Fields() []*Field {
	return p.fields
}

// Field returns the field called name, or nil.
func (p *Projection) Field(name string) *Field {
	return p.byName[name]
}

// A Field is a single field of a Projection.
//
// For example, in the projection "pop_size,mutation_rate",
// "pop_size" and "mutation_rate" are both Fields.
type Field struct {
	Name string

	proj *Projection

	// idx gives the index of this field's values in a keyNode.
	idx int

	// cmp is the comparison function for values of this field. It
	// returns <0 if a < b, >0 if a > b, or 0 if a == b or a and b
	// are unorderable.
	cmp func(a, b string) int

	// order, if non-nil, records the observation order of this
	// field.
	order map[string]int
}

// String returns the name of Field f.
func (f Field) String() string {
	return f.Name
}

var keySeed = maphash.MakeSeed()

// Project extracts fields from g according to Projection p and
// returns them as a Key. Fields g doesn't have are "".
//
// Two Keys produced by Project will be == if and only if their
// projected fields have the same values. Notably, this means Keys can
// be used as Go map keys, which is useful for grouping records.
func (p *Projection) Project(g Getter) Key {
	for i, f := range p.fields {
		v, _ := g.Get(f.Name)
		p.row[i] = p.intern(v)
	}
	return p.internRow()
}

func (p *Projection) internRow() Key {
	var h maphash.Hash
	h.SetSeed(keySeed)
	for _, val := range p.row {
		h.WriteString(val)
		// Separate values so ("ab", "") and ("a", "b") differ.
		h.WriteByte(0)
	}
	hash := h.Sum64()

	for _, key := range p.keys[hash] {
		if key.equalRow(p.row) {
			return Key{key}
		}
	}

	// This is a new Key. Update observation orders.
	for _, field := range p.fields {
		if field.order == nil {
			continue
		}
		val := p.row[field.idx]
		if _, ok := field.order[val]; !ok {
			field.order[val] = len(field.order)
		}
	}

	key := &keyNode{p, append([]string(nil), p.row...)}
	p.keys[hash] = append(p.keys[hash], key)
	return Key{key}
}

func (p *Projection) intern(s string) string {
	if str, ok := p.interns[s]; ok {
		return str
	}
	p.interns[s] = s
	return s
}
