package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pnre/maze-engine/internal/geometry"
)

// Document is a decoded top-level configuration document.
type Document struct {
	Root Dictionary
}

// LoadDocument decodes a YAML document into the typed Value/Dictionary
// model. Recognised scalar shapes: plain scalars become Int/Float/
// String by YAML's own type inference; a 2-element sequence of integers
// becomes a Size; a 4-element sequence of numbers becomes a Rectangle;
// any other sequence becomes a List (single-typed — mixed-kind elements
// are a configuration-invalid error); a mapping becomes a nested
// Dictionary.
//
// A decode or shape error wraps ErrInvalidDocument. A decode error
// carries the YAML decoder's own line/column position; a shape error
// names the top-level key it was found under.
func LoadDocument(r io.Reader) (*Document, error) {
	var raw map[string]any
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	root := NewDictionary()
	for k, v := range raw {
		val, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrInvalidDocument, k, err)
		}
		root.Set(k, val)
	}
	return &Document{Root: root}, nil
}

func toValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case int:
		return IntValue(int64(v)), nil
	case int64:
		return IntValue(v), nil
	case float64:
		return FloatValue(v), nil
	case string:
		return StringValue(v), nil
	case bool:
		if v {
			return IntValue(1), nil
		}
		return IntValue(0), nil
	case map[string]any:
		dict := NewDictionary()
		for k, e := range v {
			ev, err := toValue(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			dict.Set(k, ev)
		}
		return DictValue(dict), nil
	case []any:
		return toListOrCompositeValue(v)
	case nil:
		return Value{}, nil
	default:
		return Value{}, fmt.Errorf("unsupported scalar type %T", raw)
	}
}

func toListOrCompositeValue(raw []any) (Value, error) {
	if len(raw) == 2 {
		if w, h, ok := asIntPair(raw); ok {
			return SizeValue(geometry.IntSize{Width: w, Height: h}), nil
		}
	}
	if len(raw) == 4 {
		if nums, ok := asFloatSlice(raw); ok {
			return RectValue(geometry.RectMake(nums[0], nums[1], nums[2], nums[3])), nil
		}
	}

	out := make([]Value, 0, len(raw))
	for _, e := range raw {
		v, err := toValue(e)
		if err != nil {
			return Value{}, err
		}
		if len(out) > 0 && out[0].Kind != v.Kind {
			return Value{}, fmt.Errorf("list elements must share a type, got %v after %v", v.Kind, out[0].Kind)
		}
		out = append(out, v)
	}
	return ListValue(out), nil
}

func asIntPair(raw []any) (int, int, bool) {
	vals := make([]int, 0, 2)
	for _, e := range raw {
		switch n := e.(type) {
		case int:
			vals = append(vals, n)
		case int64:
			vals = append(vals, int(n))
		default:
			return 0, 0, false
		}
	}
	return vals[0], vals[1], true
}

func asFloatSlice(raw []any) ([]float64, bool) {
	out := make([]float64, 0, len(raw))
	for _, e := range raw {
		switch n := e.(type) {
		case int:
			out = append(out, float64(n))
		case int64:
			out = append(out, float64(n))
		case float64:
			out = append(out, n)
		default:
			return nil, false
		}
	}
	return out, true
}
