// Package config implements the typed configuration value container
// the rest of the engine consumes, a YAML document loader for it, and
// the maze map-body grammar loader.
package config

import (
	"errors"
	"fmt"

	"github.com/pnre/maze-engine/internal/geometry"
)

// Kind tags the dynamic type carried by a Value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindSize
	KindRectangle
	KindList
	KindDictionary
)

// ErrInvalidDocument is returned when a configuration document cannot be
// decoded into the Value model.
var ErrInvalidDocument = errors.New("invalid configuration document")

// Value is a tagged union over the configuration grammar's scalar and
// composite types.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
	Size  geometry.IntSize
	Rect  geometry.Rect
	List  []Value // single-typed, enforced by the loader
	Dict  Dictionary
}

// IntValue, FloatValue, ... are constructors for each Kind.
func IntValue(v int64) Value { return Value{Kind: KindInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }
func SizeValue(v geometry.IntSize) Value { return Value{Kind: KindSize, Size: v} }
func RectValue(v geometry.Rect) Value { return Value{Kind: KindRectangle, Rect: v} }
func ListValue(v []Value) Value { return Value{Kind: KindList, List: v} }
func DictValue(v Dictionary) Value { return Value{Kind: KindDictionary, Dict: v} }

// AsBool interprets an Int value as a boolean (non-zero is true), the
// convention the power-up effect keys use for boolean flags
// (breaks_walls, ignores_collisions, ...).
func (v Value) AsBool() bool {
	return v.Kind == KindInt && v.Int != 0
}

// deepCopy returns an independent copy of v (composite Kinds recurse),
// used by Dictionary.Snapshot for the live-vs-default config contract.
func (v Value) deepCopy() Value {
	switch v.Kind {
	case KindList:
		out := make([]Value, len(v.List))
		for i, e := range v.List {
			out[i] = e.deepCopy()
		}
		return Value{Kind: KindList, List: out}
	case KindDictionary:
		return Value{Kind: KindDictionary, Dict: v.Dict.Clone()}
	default:
		return v
	}
}

// Equal reports whether two values carry the same kind and content
// (used by tests and by power-up revert diagnostics).
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindString:
		return v.Str == o.Str
	case KindSize:
		return v.Size == o.Size
	case KindRectangle:
		return v.Rect == o.Rect
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case KindDictionary:
		return v.Dict.Equal(o.Dict)
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindString:
		return v.Str
	case KindSize:
		return fmt.Sprintf("[%d,%d]", v.Size.Width, v.Size.Height)
	case KindRectangle:
		return fmt.Sprintf("[%g,%g,%g,%g]", v.Rect.Origin.X, v.Rect.Origin.Y, v.Rect.Size.Width, v.Rect.Size.Height)
	case KindList:
		return fmt.Sprintf("list(%d)", len(v.List))
	case KindDictionary:
		return fmt.Sprintf("dict(%d)", len(v.Dict.keys))
	default:
		return "?"
	}
}
