package config

import (
	"strings"
	"testing"
)

func TestLoadDocumentScalarsAndNesting(t *testing.T) {
	doc, err := LoadDocument(strings.NewReader(`
name: trial-maze
complexity: 0.6
character:
  speed: 5
  breaks_walls: false
`))
	if err != nil {
		t.Fatalf("LoadDocument returned error: %v", err)
	}

	name, ok := doc.Root.Get("name")
	if !ok || name.Kind != KindString || name.Str != "trial-maze" {
		t.Fatalf("name = %+v, want string trial-maze", name)
	}

	complexity, ok := doc.Root.Get("complexity")
	if !ok || complexity.Kind != KindFloat || complexity.Float != 0.6 {
		t.Fatalf("complexity = %+v, want float 0.6", complexity)
	}

	character, ok := doc.Root.Get("character")
	if !ok || character.Kind != KindDictionary {
		t.Fatalf("character = %+v, want a dictionary", character)
	}
	speed, ok := character.Dict.Get("speed")
	if !ok || speed.Int != 5 {
		t.Fatalf("character.speed = %+v, want int 5", speed)
	}
	breaksWalls, ok := character.Dict.Get("breaks_walls")
	if !ok || breaksWalls.Int != 0 {
		t.Fatalf("character.breaks_walls = %+v, want falsy int 0", breaksWalls)
	}
}

func TestLoadDocumentSizeAndRectangleInference(t *testing.T) {
	doc, err := LoadDocument(strings.NewReader(`
cell_size: [32, 32]
spawn_window: [10, 10, 64, 64]
`))
	if err != nil {
		t.Fatalf("LoadDocument returned error: %v", err)
	}

	cellSize, ok := doc.Root.Get("cell_size")
	if !ok || cellSize.Kind != KindSize {
		t.Fatalf("cell_size = %+v, want a 2-element list inferred as Size", cellSize)
	}
	if cellSize.Size.Width != 32 || cellSize.Size.Height != 32 {
		t.Fatalf("cell_size = %+v, want {32 32}", cellSize.Size)
	}

	window, ok := doc.Root.Get("spawn_window")
	if !ok || window.Kind != KindRectangle {
		t.Fatalf("spawn_window = %+v, want a 4-element list inferred as Rectangle", window)
	}
	if window.Rect.Size.Width != 64 || window.Rect.Size.Height != 64 {
		t.Fatalf("spawn_window size = %+v, want {64 64}", window.Rect.Size)
	}
}

func TestLoadDocumentRejectsMixedTypeList(t *testing.T) {
	_, err := LoadDocument(strings.NewReader(`
values: [1, "two", 3]
`))
	if err == nil {
		t.Fatalf("expected an error for a mixed-kind list")
	}
}

func TestLoadDocumentRejectsMalformedYAML(t *testing.T) {
	_, err := LoadDocument(strings.NewReader("name: [unterminated"))
	if err == nil {
		t.Fatalf("expected an error for malformed YAML")
	}
}
