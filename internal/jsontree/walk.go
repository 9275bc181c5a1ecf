package jsontree

import (
	"reflect"
	"sort"
	"strconv"
)

// Visitor receives every key/value edge reached by Walk. Returning false
// stops the traversal.
type Visitor func(key string, value any) bool

type edge struct {
	key   string
	value any
}

// identity names a container by where it lives in memory, so equal values
// stored in different containers stay distinct.
type identity struct {
	kind reflect.Kind
	ptr  uintptr
	n    int
}

// Walk is a first-match depth-first traversal. For each key of a container
// it calls visit, then descends into the value, then moves to the next key.
// Containers are *Object (insertion order), map[string]any (sorted keys) and
// []any (decimal index keys). A container already seen on this walk is not
// entered again, so cyclic graphs terminate.
func Walk(root any, visit Visitor) {
	seen := make(map[identity]struct{})
	walk(root, visit, seen)
}

func walk(node any, visit Visitor, seen map[identity]struct{}) bool {
	id, ok := identityOf(node)
	if !ok {
		return true
	}
	if _, dup := seen[id]; dup {
		return true
	}
	seen[id] = struct{}{}

	for _, e := range children(node) {
		if !visit(e.key, e.value) {
			return false
		}
		if !walk(e.value, visit, seen) {
			return false
		}
	}
	return true
}

func identityOf(node any) (identity, bool) {
	switch v := node.(type) {
	case *Object:
		if v == nil {
			return identity{}, false
		}
	case map[string]any:
		if v == nil {
			return identity{}, false
		}
	case []any:
		if len(v) == 0 {
			return identity{}, false
		}
	default:
		return identity{}, false
	}

	rv := reflect.ValueOf(node)
	id := identity{kind: rv.Kind(), ptr: rv.Pointer()}
	if rv.Kind() == reflect.Slice {
		id.n = rv.Len()
	}
	return id, true
}

func children(node any) []edge {
	switch v := node.(type) {
	case *Object:
		out := make([]edge, 0, len(v.keys))
		for _, k := range v.keys {
			out = append(out, edge{key: k, value: v.values[k]})
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]edge, 0, len(keys))
		for _, k := range keys {
			out = append(out, edge{key: k, value: v[k]})
		}
		return out
	case []any:
		out := make([]edge, 0, len(v))
		for i, item := range v {
			out = append(out, edge{key: strconv.Itoa(i), value: item})
		}
		return out
	}
	return nil
}
