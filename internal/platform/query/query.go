// Package query filters, projects, sorts, and limits tabular records in
// memory. Every aggregation in this module reads its data through these
// helpers so the storage format behind a snapshot (slice, CSV load,
// relational scan) never leaks into the computation code.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrUnknownOperator  = errors.New("unknown query operator")
	ErrUnknownDirection = errors.New("unknown sort direction")
	ErrNotComparable    = errors.New("values are not comparable")
)

// Record is any row type that can expose column values by name.
type Record interface {
	Field(column string) (any, error)
}

// Op enumerates the supported predicate operators.
type Op string

const (
	OpEq         Op = "eq"
	OpNe         Op = "ne"
	OpLt         Op = "lt"
	OpLe         Op = "le"
	OpGt         Op = "gt"
	OpGe         Op = "ge"
	OpIn         Op = "in"
	OpNotIn      Op = "not_in"
	OpContains   Op = "contains"
	OpStartsWith Op = "startswith"
	OpEndsWith   Op = "endswith"
)

// Condition is one column predicate. Conditions passed to Filter are ANDed;
// OR-style queries compose multiple Filter calls upstream.
type Condition struct {
	Column string
	Op     Op
	Value  any
	Values []any
}

func Eq(column string, value any) Condition { return Condition{Column: column, Op: OpEq, Value: value} }

func Ne(column string, value any) Condition { return Condition{Column: column, Op: OpNe, Value: value} }

func Lt(column string, value any) Condition { return Condition{Column: column, Op: OpLt, Value: value} }

func Le(column string, value any) Condition { return Condition{Column: column, Op: OpLe, Value: value} }

func Gt(column string, value any) Condition { return Condition{Column: column, Op: OpGt, Value: value} }

func Ge(column string, value any) Condition { return Condition{Column: column, Op: OpGe, Value: value} }

func In(column string, values ...any) Condition {
	return Condition{Column: column, Op: OpIn, Values: values}
}

func NotIn(column string, values ...any) Condition {
	return Condition{Column: column, Op: OpNotIn, Values: values}
}

func Contains(column, substr string) Condition {
	return Condition{Column: column, Op: OpContains, Value: substr}
}

func StartsWith(column, prefix string) Condition {
	return Condition{Column: column, Op: OpStartsWith, Value: prefix}
}

func EndsWith(column, suffix string) Condition {
	return Condition{Column: column, Op: OpEndsWith, Value: suffix}
}

// Filter returns the records matching every condition. The input slice is
// never modified; an empty result is a value, not an error. Conditions are
// checked up front, so a malformed operator fails even over zero records.
func Filter[T Record](records []T, conds ...Condition) ([]T, error) {
	for _, c := range conds {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		ok, err := matches(rec, conds)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func matches(rec Record, conds []Condition) (bool, error) {
	for _, c := range conds {
		got, err := rec.Field(c.Column)
		if err != nil {
			return false, err
		}
		ok, err := c.eval(got)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (c Condition) validate() error {
	switch c.Op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe, OpIn, OpNotIn,
		OpContains, OpStartsWith, OpEndsWith:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperator, c.Op)
	}
}

func (c Condition) eval(got any) (bool, error) {
	switch c.Op {
	case OpEq:
		return equal(got, c.Value), nil
	case OpNe:
		return !equal(got, c.Value), nil
	case OpLt, OpLe, OpGt, OpGe:
		cmp, err := compare(got, c.Value)
		if err != nil {
			return false, fmt.Errorf("%s %s: %w", c.Column, c.Op, err)
		}
		switch c.Op {
		case OpLt:
			return cmp < 0, nil
		case OpLe:
			return cmp <= 0, nil
		case OpGt:
			return cmp > 0, nil
		default:
			return cmp >= 0, nil
		}
	case OpIn:
		for _, v := range c.Values {
			if equal(got, v) {
				return true, nil
			}
		}
		return false, nil
	case OpNotIn:
		for _, v := range c.Values {
			if equal(got, v) {
				return false, nil
			}
		}
		return true, nil
	case OpContains, OpStartsWith, OpEndsWith:
		s, ok := got.(string)
		want, okWant := c.Value.(string)
		if !ok || !okWant {
			return false, fmt.Errorf("%s %s: %w: string operator on non-string", c.Column, c.Op, ErrNotComparable)
		}
		switch c.Op {
		case OpContains:
			return strings.Contains(s, want), nil
		case OpStartsWith:
			return strings.HasPrefix(s, want), nil
		default:
			return strings.HasSuffix(s, want), nil
		}
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownOperator, c.Op)
	}
}

// Select projects records onto the named columns.
func Select[T Record](records []T, columns ...string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		row := make(map[string]any, len(columns))
		for _, col := range columns {
			v, err := rec.Field(col)
			if err != nil {
				return nil, err
			}
			row[col] = v
		}
		out = append(out, row)
	}
	return out, nil
}

// Direction orders a sort key.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort returns a new slice ordered by the given keys. Directions beyond the
// key list's length default to ascending, but a given direction must be Asc
// or Desc; the sort is stable so equal rows keep their input order.
func Sort[T Record](records []T, keys []string, directions []Direction) ([]T, error) {
	for _, d := range directions {
		if d != Asc && d != Desc {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDirection, d)
		}
	}

	out := make([]T, len(records))
	copy(out, records)

	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		for k, key := range keys {
			a, err := out[i].Field(key)
			if err != nil {
				sortErr = err
				return false
			}
			b, err := out[j].Field(key)
			if err != nil {
				sortErr = err
				return false
			}
			cmp, err := compare(a, b)
			if err != nil {
				sortErr = fmt.Errorf("sort by %s: %w", key, err)
				return false
			}
			if cmp == 0 {
				continue
			}
			if k < len(directions) && directions[k] == Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return out, nil
}

// Limit returns at most n records; n < 0 means no limit.
func Limit[T any](records []T, n int) []T {
	if n < 0 || n >= len(records) {
		out := make([]T, len(records))
		copy(out, records)
		return out
	}
	out := make([]T, n)
	copy(out, records[:n])
	return out
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if cmp, err := compare(a, b); err == nil {
		return cmp == 0
	}
	return a == b
}

// compare orders two scalar values. Integers and floats compare across
// types; strings, bools, and timestamps compare within their own kind.
func compare(a, b any) (int, error) {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		if !bok {
			return 0, fmt.Errorf("%w: %T vs %T", ErrNotComparable, a, b)
		}
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf("%w: %T vs %T", ErrNotComparable, a, b)
		}
		return strings.Compare(av, bv), nil
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, fmt.Errorf("%w: %T vs %T", ErrNotComparable, a, b)
		}
		switch {
		case av == bv:
			return 0, nil
		case !av:
			return -1, nil
		default:
			return 1, nil
		}
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, fmt.Errorf("%w: %T vs %T", ErrNotComparable, a, b)
		}
		return av.Compare(bv), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotComparable, a)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
