// Package keyset implements cursor ("keyset") pagination over a composite
// sort key whose fields may be NULL.
//
// An Order lists the fields of a sort key K from most to least significant.
// NULL sorts after every non-null value at each level, whatever the field's
// direction. The last field must never be NULL, which makes the order total
// and guarantees that a traversal terminates without duplicates.
//
// The same Order drives three things:
//   - Compare, the canonical comparator used to sort in-process sources
//   - After, the boundary predicate selecting everything strictly after a cursor
//   - OrderBy and Where, the SQL forms of the two above for storage push-down
package keyset

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is the sort direction of one field
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns the SQL keyword for the direction
func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// Field describes one level of a composite sort key K
type Field[K any] struct {
	// Column is the SQL expression the field is read from. Case-insensitive
	// fields put the folding here, e.g. lower(name).
	Column    string
	Direction Direction
	Nullable  bool

	// Compare orders the non-null values of a and b ascending
	Compare func(a, b K) int

	// IsNull reports whether the field is NULL in k. Required when Nullable.
	IsNull func(k K) bool

	// Arg returns the SQL bind value of the field in k. It must apply the same
	// folding as Column.
	Arg func(k K) interface{}
}

func (f Field[K]) isNull(k K) bool {
	return f.Nullable && f.IsNull(k)
}

// past reports whether a sorts strictly after b on this field alone; both
// values must be non-null
func (f Field[K]) past(a, b K) bool {
	c := f.Compare(a, b)
	if f.Direction == Descending {
		return c < 0
	}
	return c > 0
}

// Order is a composite sort order over K
type Order[K any] struct {
	fields []Field[K]
}

// NewOrder builds an order from fields listed most significant first
func NewOrder[K any](fields ...Field[K]) (Order[K], error) {
	if len(fields) == 0 {
		return Order[K]{}, errors.New("keyset: order needs at least one field")
	}
	for i, f := range fields {
		if f.Column == "" {
			return Order[K]{}, fmt.Errorf("keyset: field %d has no column", i)
		}
		if f.Compare == nil || f.Arg == nil {
			return Order[K]{}, fmt.Errorf("keyset: field %q needs Compare and Arg", f.Column)
		}
		if f.Nullable && f.IsNull == nil {
			return Order[K]{}, fmt.Errorf("keyset: nullable field %q needs IsNull", f.Column)
		}
	}
	if last := fields[len(fields)-1]; last.Nullable {
		return Order[K]{}, fmt.Errorf("keyset: last field %q must not be nullable", last.Column)
	}
	return Order[K]{fields: append([]Field[K](nil), fields...)}, nil
}

// MustOrder is like NewOrder but panics on an invalid field list. It is meant
// for package-level order definitions.
func MustOrder[K any](fields ...Field[K]) Order[K] {
	o, err := NewOrder(fields...)
	if err != nil {
		panic(err)
	}
	return o
}

// Compare returns a negative number when a sorts before b, a positive number
// when a sorts after b and zero when they are equal on every field
func (o Order[K]) Compare(a, b K) int {
	for _, f := range o.fields {
		an, bn := f.isNull(a), f.isNull(b)
		switch {
		case an && bn:
			continue
		case an:
			return 1
		case bn:
			return -1
		}
		c := f.Compare(a, b)
		if f.Direction == Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// OrderBy renders the order as a SQL ORDER BY list
func (o Order[K]) OrderBy() string {
	parts := make([]string, len(o.fields))
	for i, f := range o.fields {
		parts[i] = f.Column + " " + f.Direction.String()
		if f.Nullable {
			parts[i] += " NULLS LAST"
		}
	}
	return strings.Join(parts, ", ")
}
