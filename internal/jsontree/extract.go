package jsontree

import (
	"strconv"
	"strings"
)

// arrayShapes are the nesting paths tried by ExtractArray, in order.
var arrayShapes = [][]string{
	{},
	{"data"},
	{"records"},
	{"data", "records"},
	{"data", "records", "data"},
	{"results"},
}

// ExtractArray returns the first records array found in payload, trying the
// payload itself, then data, records, data.records, data.records.data and
// results. The array is returned as-is. When nothing matches the result is
// an empty, non-nil slice.
func ExtractArray(payload any) []any {
	for _, path := range arrayShapes {
		v, ok := Lookup(payload, path...)
		if !ok {
			continue
		}
		if arr, ok := v.([]any); ok {
			return arr
		}
	}
	return []any{}
}

// FirstByKeys searches the whole graph under payload for the first key that
// matches one of keys, ignoring case, and returns its value. Traversal order
// is that of Walk, so a match nested under an earlier key beats a shallower
// match under a later key. A matched null is reported as found.
func FirstByKeys(payload any, keys ...string) (any, bool) {
	if payload == nil || len(keys) == 0 {
		return nil, false
	}

	wanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		wanted[strings.ToLower(k)] = struct{}{}
	}

	var (
		found any
		ok    bool
	)
	Walk(payload, func(key string, value any) bool {
		if _, hit := wanted[strings.ToLower(key)]; hit {
			found, ok = value, true
			return false
		}
		return true
	})
	return found, ok
}

// Lookup follows path through nested objects. An empty path returns v.
func Lookup(v any, path ...string) (any, bool) {
	if v == nil {
		return nil, false
	}
	cur := v
	for _, key := range path {
		var (
			next any
			ok   bool
		)
		switch node := cur.(type) {
		case *Object:
			next, ok = node.Get(key)
		case map[string]any:
			next, ok = node[key]
		}
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// LookupFirst returns the first non-null value found among paths.
func LookupFirst(v any, paths ...[]string) (any, bool) {
	for _, p := range paths {
		if got, ok := Lookup(v, p...); ok && got != nil {
			return got, true
		}
	}
	return nil, false
}

// Text renders a scalar as a string. Numbers use their shortest form;
// containers and null give "".
func Text(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// Number converts numbers and numeric strings to float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
