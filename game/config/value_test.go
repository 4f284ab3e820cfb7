package config

import (
	"testing"

	"github.com/pnre/maze-engine/internal/geometry"
)

func TestValueEqualByKind(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal ints", IntValue(3), IntValue(3), true},
		{"different ints", IntValue(3), IntValue(4), false},
		{"equal strings", StringValue("x"), StringValue("x"), true},
		{"kind mismatch", IntValue(1), FloatValue(1), false},
		{"equal sizes", SizeValue(geometry.IntSize{Width: 2, Height: 3}), SizeValue(geometry.IntSize{Width: 2, Height: 3}), true},
		{"equal lists", ListValue([]Value{IntValue(1), IntValue(2)}), ListValue([]Value{IntValue(1), IntValue(2)}), true},
		{"different length lists", ListValue([]Value{IntValue(1)}), ListValue([]Value{IntValue(1), IntValue(2)}), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Fatalf("Equal = %v, want %v", got, c.want)
			}
		})
	}
}

func TestValueDeepCopyIsIndependent(t *testing.T) {
	inner := NewDictionary()
	inner.Set("hp", IntValue(10))
	original := DictValue(inner)

	dup := original.deepCopy()
	dup.Dict.Set("hp", IntValue(99))

	if v, _ := original.Dict.Get("hp"); v.Int != 10 {
		t.Fatalf("mutating the copy affected the original: hp = %d", v.Int)
	}

	list := ListValue([]Value{IntValue(1), IntValue(2)})
	listCopy := list.deepCopy()
	listCopy.List[0] = IntValue(42)
	if list.List[0].Int != 1 {
		t.Fatalf("mutating the list copy affected the original")
	}
}

func TestAsBool(t *testing.T) {
	if !IntValue(1).AsBool() {
		t.Fatalf("IntValue(1).AsBool() = false, want true")
	}
	if IntValue(0).AsBool() {
		t.Fatalf("IntValue(0).AsBool() = true, want false")
	}
	if StringValue("1").AsBool() {
		t.Fatalf("a string Value should never report true from AsBool")
	}
}
