package docstore

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq  Op = "=="
	OpNe  Op = "!="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGt  Op = ">"
	OpGte Op = ">="
)

// Filter restricts a query to documents whose Field compares to Value.
// Field may name a nested value with dots, e.g. "spouse.name".
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query selects documents from one collection.
type Query struct {
	Collection CollectionRef
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Where returns a copy of q with an added filter.
func (q Query) Where(field string, op Op, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Op: op, Value: value})
	return q
}

// Order returns a copy of q sorted by field.
func (q Query) Order(field string, descending bool) Query {
	q.OrderBy = field
	q.Descending = descending
	return q
}

// WithLimit returns a copy of q returning at most n documents.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

type row struct {
	rec    *Record
	fields map[string]any
}

func (q Query) apply(recs []*Record) ([]*Snapshot, error) {
	rows := make([]row, 0, len(recs))
	for _, rec := range recs {
		var fields map[string]any
		if err := json.Unmarshal(rec.Data, &fields); err != nil {
			return nil, fmt.Errorf("decode %s: %w", rec.Path, err)
		}
		if q.matches(fields) {
			rows = append(rows, row{rec: rec, fields: fields})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if q.OrderBy != "" {
			c, ok := compare(lookup(rows[i].fields, q.OrderBy), lookup(rows[j].fields, q.OrderBy))
			if ok && c != 0 {
				if q.Descending {
					return c > 0
				}
				return c < 0
			}
		}
		return rows[i].rec.Path < rows[j].rec.Path
	})

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	snaps := make([]*Snapshot, len(rows))
	for i, r := range rows {
		snaps[i] = snapshotFromRecord(r.rec)
	}
	return snaps, nil
}

func (q Query) matches(fields map[string]any) bool {
	for _, f := range q.Filters {
		c, ok := compare(lookup(fields, f.Field), f.Value)
		if !ok {
			if f.Op == OpNe {
				continue
			}
			return false
		}
		var pass bool
		switch f.Op {
		case OpEq:
			pass = c == 0
		case OpNe:
			pass = c != 0
		case OpLt:
			pass = c < 0
		case OpLte:
			pass = c <= 0
		case OpGt:
			pass = c > 0
		case OpGte:
			pass = c >= 0
		}
		if !pass {
			return false
		}
	}
	return true
}

func lookup(fields map[string]any, field string) any {
	var cur any = fields
	for _, part := range strings.Split(field, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

// compare orders two JSON-compatible values. ok is false when the values are
// not comparable, e.g. a string against a number.
func compare(a, b any) (c int, ok bool) {
	switch av := a.(type) {
	case string:
		bv, isStr := stringOf(b)
		if !isStr {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case bool:
		bv, isBool := b.(bool)
		if !isBool {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		default:
			return 1, true
		}
	case float64:
		bv, isNum := numberOf(b)
		if !isNum {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func stringOf(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func numberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
