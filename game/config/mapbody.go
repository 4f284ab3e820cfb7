package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/geometry"
)

// ErrInvalidMapBody is returned when a map body document cannot be
// parsed into a mapgraph.Map.
var ErrInvalidMapBody = errors.New("invalid map body")

// MapBody is the result of loading a map body document: the map graph
// itself (not yet Connect()-ed — callers connect after any further
// mutation such as weighting) plus the AI spawn slots the grammar marks.
type MapBody struct {
	Map        *mapgraph.Map
	SpawnSlots []geometry.IntPoint
}

// LoadMapBody parses the maze map body grammar: `#` = wall, ` ` =
// path, `1`-`9` = path with weight, `S` = start (path), `E` = exit
// (path), `V` = AI spawn slot, `P` = forced power-up-eligible path
// cell; unrecognised characters are ignored; newline advances to
// column 0, next row.
func LoadMapBody(r io.Reader) (*MapBody, error) {
	scanner := bufio.NewScanner(r)
	var rows [][]byte
	maxWidth := 0
	for scanner.Scan() {
		line := []byte(scanner.Text())
		rows = append(rows, line)
		if len(line) > maxWidth {
			maxWidth = len(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMapBody, err)
	}
	if len(rows) == 0 || maxWidth == 0 {
		return nil, fmt.Errorf("%w: empty map body", ErrInvalidMapBody)
	}

	m := mapgraph.NewMap(maxWidth, len(rows))
	var spawnSlots []geometry.IntPoint
	var eligible []int
	start, end := mapgraph.NoIndex, mapgraph.NoIndex

	for y, row := range rows {
		for x := 0; x < maxWidth; x++ {
			if x >= len(row) {
				continue // short line: remaining columns stay Unknown/wall
			}
			idx := m.Index(x, y)
			switch ch := row[x]; {
			case ch == '#':
				m.Cells[idx].Type = mapgraph.Wall
			case ch == ' ':
				m.Cells[idx].Type = mapgraph.Path
			case ch >= '1' && ch <= '9':
				m.Cells[idx].Type = mapgraph.Path
				m.Cells[idx].Weight = int(ch - '0')
			case ch == 'S':
				m.Cells[idx].Type = mapgraph.Path
				start = idx
			case ch == 'E':
				m.Cells[idx].Type = mapgraph.Path
				end = idx
			case ch == 'V':
				m.Cells[idx].Type = mapgraph.Path
				spawnSlots = append(spawnSlots, geometry.IntPoint{X: x, Y: y})
			case ch == 'P':
				m.Cells[idx].Type = mapgraph.Path
				eligible = append(eligible, idx)
			default:
				// unrecognised characters are ignored: cell stays Unknown
			}
		}
	}

	if start == mapgraph.NoIndex {
		return nil, fmt.Errorf("%w: no start cell (S) found", ErrInvalidMapBody)
	}
	if end == mapgraph.NoIndex {
		return nil, fmt.Errorf("%w: no exit cell (E) found", ErrInvalidMapBody)
	}

	m.Start, m.End = start, end
	m.EligibleCells = eligible

	return &MapBody{Map: m, SpawnSlots: spawnSlots}, nil
}
