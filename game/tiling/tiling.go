// Package tiling computes background quadrant tiling and character
// sprite tile rectangles — pure arithmetic over a mapgraph.Map and a
// tile sheet layout; image decoding and blitting belong to the
// renderer.
package tiling

import (
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/geometry"
)

// Quadrant identifies one of a cell's 4 background sub-tiles.
type Quadrant int

const (
	QuadrantTopLeft Quadrant = iota
	QuadrantTopRight
	QuadrantBottomLeft
	QuadrantBottomRight
)

// Part is a bitmask of which sides of a quadrant border a
// differently-typed neighbour.
type Part int

const (
	PartNone   Part = 0
	PartTop    Part = 1 << 0
	PartRight  Part = 1 << 1
	PartBottom Part = 1 << 2
	PartLeft   Part = 1 << 3
	PartAngle  Part = 1 << 4 // special-cased: overrides the side bits
)

// TileOffset is a pixel offset into a background tile sheet.
type TileOffset struct{ X, Y int }

// tileSheetSpecs gives, for each quadrant and part bitmask, the pixel
// offset of the matching sub-tile in a 64x96 sheet.
var tileSheetSpecs = map[Quadrant]map[Part]TileOffset{
	QuadrantTopLeft: {
		PartNone:           {32, 64},
		PartTop:            {32, 32},
		PartLeft:           {0, 64},
		PartTop | PartLeft: {0, 32},
		PartAngle:          {32, 0},
	},
	QuadrantTopRight: {
		PartNone:            {16, 64},
		PartTop:             {16, 32},
		PartRight:           {48, 64},
		PartTop | PartRight: {48, 32},
		PartAngle:           {48, 0},
	},
	QuadrantBottomLeft: {
		PartNone:              {32, 48},
		PartLeft:              {0, 48},
		PartBottom:            {32, 80},
		PartBottom | PartLeft: {0, 80},
		PartAngle:             {32, 16},
	},
	QuadrantBottomRight: {
		PartNone:               {16, 48},
		PartBottom:             {16, 80},
		PartRight:              {48, 48},
		PartBottom | PartRight: {48, 80},
		PartAngle:              {48, 16},
	},
}

// typeAt returns the cell type at (x, y), or Unknown if out of bounds.
func typeAt(m *mapgraph.Map, x, y int) mapgraph.CellType {
	c, ok := m.At(x, y)
	if !ok {
		return mapgraph.Unknown
	}
	return c.Type
}

// QuadrantOffsets returns the pixel offsets of the 4 background
// sub-tiles for the cell at (x, y), given its neighbour-type pattern.
func QuadrantOffsets(m *mapgraph.Map, x, y int) map[Quadrant]TileOffset {
	cellType := typeAt(m, x, y)

	top := typeAt(m, x, y-1)
	left := typeAt(m, x-1, y)
	right := typeAt(m, x+1, y)
	bottom := typeAt(m, x, y+1)

	var a, b, c, d Part

	if top != cellType {
		a |= PartTop
		b |= PartTop
	}
	if right != cellType {
		b |= PartRight
		d |= PartRight
	}
	if left != cellType {
		a |= PartLeft
		c |= PartLeft
	}
	if bottom != cellType {
		c |= PartBottom
		d |= PartBottom
	}

	if top == cellType && left == cellType && typeAt(m, x-1, y-1) != cellType {
		a = PartAngle
	}
	if top == cellType && right == cellType && typeAt(m, x+1, y-1) != cellType {
		b = PartAngle
	}
	if left == cellType && bottom == cellType && typeAt(m, x-1, y+1) != cellType {
		c = PartAngle
	}
	if right == cellType && bottom == cellType && typeAt(m, x+1, y+1) != cellType {
		d = PartAngle
	}

	return map[Quadrant]TileOffset{
		QuadrantTopLeft:     tileSheetSpecs[QuadrantTopLeft][a],
		QuadrantTopRight:    tileSheetSpecs[QuadrantTopRight][b],
		QuadrantBottomLeft:  tileSheetSpecs[QuadrantBottomLeft][c],
		QuadrantBottomRight: tileSheetSpecs[QuadrantBottomRight][d],
	}
}

// CharacterTileSize is the pixel size of a single frame in a character
// sprite sheet.
var CharacterTileSize = geometry.IntSize{Width: 32, Height: 32}

// CharacterFrameRect returns the source rectangle for facing row (0=up,
// 1=right, 2=down, 3=left) and frame column within a sheet whose top
// left is at origin.
func CharacterFrameRect(origin geometry.IntPoint, row, col int) geometry.Rect {
	return geometry.RectMake(
		float64(origin.X+col*CharacterTileSize.Width),
		float64(origin.Y+row*CharacterTileSize.Height),
		float64(CharacterTileSize.Width),
		float64(CharacterTileSize.Height),
	)
}

// FacingRow maps a direction to its sprite-sheet row.
func FacingRow(d geometry.Direction) int {
	switch d {
	case geometry.DirNorth:
		return 0
	case geometry.DirEast:
		return 1
	case geometry.DirSouth:
		return 2
	case geometry.DirWest:
		return 3
	default:
		return 2 // default to facing south, as an idle character does
	}
}
