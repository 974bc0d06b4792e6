// Package listfilter narrows an in-memory collection with AND-composed
// predicates.
//
// Every listing in the app (Browse, Feedback, the admin tables) is the same
// shape: one free-text search that ORs across a few fields, plus one or two
// categorical selectors where the sentinel "all" switches the dimension off.
// Instead of rewriting that per page, callers describe their fields once with
// accessors and compose predicates:
//
//	members := listfilter.Filter(all,
//	    listfilter.Text(q, listfilter.Str(nameOf), listfilter.Strs(offeredOf)),
//	    listfilter.Equals(location, locationOf),
//	)
//
// Filter never reorders and never mutates its input.
package listfilter

import (
	"strings"
	"time"
)

// All is the selector value that disables a categorical filter.
const All = "all"

// Predicate reports whether an item is kept. A nil Predicate keeps everything.
type Predicate[T any] func(T) bool

// Field extracts the searchable strings of an item.
type Field[T any] func(T) []string

// Str adapts a single-string accessor into a Field.
func Str[T any](get func(T) string) Field[T] {
	return func(item T) []string { return []string{get(item)} }
}

// Strs adapts a string-slice accessor into a Field.
func Strs[T any](get func(T) []string) Field[T] {
	return Field[T](get)
}

// Filter returns the items that satisfy every predicate, in their original
// order. The result is always a fresh slice.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	keep := And(preds...)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// And keeps an item only if all non-nil predicates keep it.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p != nil && !p(item) {
				return false
			}
		}
		return true
	}
}

// Or keeps an item if any non-nil predicate keeps it. With no non-nil
// predicates it keeps everything, matching an inactive filter.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		active := false
		for _, p := range preds {
			if p == nil {
				continue
			}
			active = true
			if p(item) {
				return true
			}
		}
		return !active
	}
}

// Not inverts p. Not(nil) drops everything.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(item T) bool { return p != nil && !p(item) }
}

// Text is a case-insensitive substring search across fields. An empty term
// matches everything.
func Text[T any](term string, fields ...Field[T]) Predicate[T] {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)
	return func(item T) bool {
		for _, field := range fields {
			for _, v := range field(item) {
				if strings.Contains(strings.ToLower(v), needle) {
					return true
				}
			}
		}
		return false
	}
}

// Equals requires a scalar field to equal selected exactly.
func Equals[T any](selected string, get func(T) string) Predicate[T] {
	if disabled(selected) {
		return nil
	}
	return func(item T) bool { return get(item) == selected }
}

// Contains requires selected to be an exact member of at least one of the
// given set-valued fields.
func Contains[T any](selected string, sets ...func(T) []string) Predicate[T] {
	if disabled(selected) {
		return nil
	}
	return func(item T) bool {
		for _, set := range sets {
			for _, v := range set(item) {
				if v == selected {
					return true
				}
			}
		}
		return false
	}
}

// AtLeast keeps items whose numeric field is >= min.
func AtLeast[T any](min float64, get func(T) float64) Predicate[T] {
	return func(item T) bool { return get(item) >= min }
}

// After keeps items whose time field is strictly after threshold.
func After[T any](threshold time.Time, get func(T) time.Time) Predicate[T] {
	return func(item T) bool { return get(item).After(threshold) }
}

// When returns p if cond holds, otherwise an inactive filter.
func When[T any](cond bool, p Predicate[T]) Predicate[T] {
	if !cond {
		return nil
	}
	return p
}

// Choice picks a named preset filter, e.g. "available" or "high-rated".
// "all" and "" select no filter. ok is false for names not in options.
func Choice[T any](selected string, options map[string]Predicate[T]) (p Predicate[T], ok bool) {
	if disabled(selected) {
		return nil, true
	}
	p, ok = options[selected]
	return p, ok
}

func disabled(selected string) bool {
	return selected == "" || selected == All
}
