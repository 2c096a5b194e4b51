package keyset

import (
	"fmt"
	"strings"
)

// Cond is a boundary condition over sort keys. It can be evaluated in process
// with Match or rendered for the database with Where.
type Cond[K any] interface {
	// Match reports whether item satisfies the condition
	Match(item K) bool

	writeSQL(w *sqlWriter)
}

// After returns the condition selecting every key that sorts strictly after
// cursor.
//
// The condition is built innermost-first. The last level is a strict
// comparison. Each enclosing level k wraps the level below it as
//
//	cursor_k NULL:      item_k IS NULL AND <below>
//	cursor_k not NULL:  item_k IS NULL OR item_k past cursor_k OR (item_k = cursor_k AND <below>)
//
// where the IS NULL alternative only exists for nullable fields.
func (o Order[K]) After(cursor K) Cond[K] {
	last := len(o.fields) - 1

	var cond Cond[K] = past[K]{field: o.fields[last], cursor: cursor}
	for i := last - 1; i >= 0; i-- {
		f := o.fields[i]
		if f.isNull(cursor) {
			cond = and[K]{isNull[K]{field: f}, cond}
			continue
		}

		var alt or[K]
		if f.Nullable {
			alt = append(alt, isNull[K]{field: f})
		}
		alt = append(alt,
			past[K]{field: f, cursor: cursor},
			and[K]{equal[K]{field: f, cursor: cursor}, cond},
		)
		cond = alt
	}
	return cond
}

type isNull[K any] struct {
	field Field[K]
}

func (c isNull[K]) Match(item K) bool {
	return c.field.isNull(item)
}

func (c isNull[K]) writeSQL(w *sqlWriter) {
	w.WriteString(c.field.Column + " IS NULL")
}

// past holds when the item is non-null and strictly past the cursor value
type past[K any] struct {
	field  Field[K]
	cursor K
}

func (c past[K]) Match(item K) bool {
	return !c.field.isNull(item) && c.field.past(item, c.cursor)
}

func (c past[K]) writeSQL(w *sqlWriter) {
	op := ">"
	if c.field.Direction == Descending {
		op = "<"
	}
	w.WriteString(fmt.Sprintf("%s %s %s", c.field.Column, op, w.bind(c.field.Arg(c.cursor))))
}

type equal[K any] struct {
	field  Field[K]
	cursor K
}

func (c equal[K]) Match(item K) bool {
	return !c.field.isNull(item) && c.field.Compare(item, c.cursor) == 0
}

func (c equal[K]) writeSQL(w *sqlWriter) {
	w.WriteString(fmt.Sprintf("%s = %s", c.field.Column, w.bind(c.field.Arg(c.cursor))))
}

type and[K any] []Cond[K]

func (c and[K]) Match(item K) bool {
	for _, sub := range c {
		if !sub.Match(item) {
			return false
		}
	}
	return true
}

func (c and[K]) writeSQL(w *sqlWriter) {
	writeJoined[K](w, " AND ", c)
}

type or[K any] []Cond[K]

func (c or[K]) Match(item K) bool {
	for _, sub := range c {
		if sub.Match(item) {
			return true
		}
	}
	return false
}

func (c or[K]) writeSQL(w *sqlWriter) {
	writeJoined[K](w, " OR ", c)
}

type sqlWriter struct {
	strings.Builder
	args []interface{}
	next int
}

func (w *sqlWriter) bind(v interface{}) string {
	w.args = append(w.args, v)
	placeholder := fmt.Sprintf("$%d", w.next)
	w.next++
	return placeholder
}

func writeJoined[K any](w *sqlWriter, sep string, conds []Cond[K]) {
	w.WriteString("(")
	for i, c := range conds {
		if i > 0 {
			w.WriteString(sep)
		}
		c.writeSQL(w)
	}
	w.WriteString(")")
}

// Where renders cond as a parameterized Postgres boolean expression. Bind
// placeholders are numbered from first, so the expression can be appended to
// a query that already uses $1..$first-1.
func Where[K any](cond Cond[K], first int) (string, []interface{}) {
	w := &sqlWriter{next: first}
	cond.writeSQL(w)
	return w.String(), w.args
}
