package main

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/pnre/maze-engine/game/maze"
)

func TestRenderASCII(t *testing.T) {
	res := maze.GeneratePerfect(rand.New(rand.NewSource(42)), 5, 5, false)

	out := renderASCII(res.Map)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != res.Map.Height {
		t.Fatalf("rendered %d lines, want %d", len(lines), res.Map.Height)
	}
	for i, line := range lines {
		if len(line) != res.Map.Width {
			t.Fatalf("line %d has width %d, want %d", i, len(line), res.Map.Width)
		}
	}
	if !strings.Contains(out, "S") || !strings.Contains(out, "E") {
		t.Fatal("rendered maze must show entrance and exit")
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("MAZE_TEST_KEY", "from-env")
	if got := envOr("MAZE_TEST_KEY", "fallback"); got != "from-env" {
		t.Fatalf("envOr = %q, want env value", got)
	}
	if got := envOr("MAZE_TEST_KEY_ABSENT", "fallback"); got != "fallback" {
		t.Fatalf("envOr = %q, want fallback", got)
	}
}
