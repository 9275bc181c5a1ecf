package jsontree

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Parse for bodies that are not JSON text.
var ErrInvalidJSON = errors.New("jsontree: invalid JSON")

// Valid reports whether raw is well-formed JSON text.
func Valid(raw []byte) bool {
	return len(raw) > 0 && gjson.ValidBytes(raw)
}

// Parse decodes raw into *Object, []any, string, float64, bool or nil.
// Object keys keep their document order.
func Parse(raw []byte) (any, error) {
	if !Valid(raw) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(raw)), nil
}

func fromResult(r gjson.Result) any {
	switch {
	case r.IsObject():
		obj := NewObject()
		r.ForEach(func(key, value gjson.Result) bool {
			obj.Set(key.String(), fromResult(value))
			return true
		})
		return obj
	case r.IsArray():
		arr := make([]any, 0)
		r.ForEach(func(_, value gjson.Result) bool {
			arr = append(arr, fromResult(value))
			return true
		})
		return arr
	}

	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Num
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}
