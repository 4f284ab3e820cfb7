// Package svg renders a generated map to an SVG document — a one-shot
// diagnostic dump of walls, corridors, weights, and the start/exit
// cells, with no live rendering loop attached.
package svg

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/pnre/maze-engine/game/mapgraph"
)

// Options configures the export.
type Options struct {
	CellPixels  int  // side of one cell square (default 16)
	ShowWeights bool // print non-default weights inside their cells
}

// DefaultOptions returns the default export options.
func DefaultOptions() Options {
	return Options{CellPixels: 16, ShowWeights: true}
}

// Cell fill styles.
const (
	wallFill    = "fill:#1a1a2e"
	pathFill    = "fill:#e8e8f0"
	unknownFill = "fill:#11111a"
	startFill   = "fill:#2e8b57"
	endFill     = "fill:#b22222"
	weightStyle = "text-anchor:middle;font-size:%dpx;fill:#555577"
)

// Export renders m to an SVG byte slice.
func Export(m *mapgraph.Map, opts Options) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("map cannot be nil")
	}
	if opts.CellPixels <= 0 {
		opts.CellPixels = 16
	}

	px := opts.CellPixels
	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(m.Width*px, m.Height*px)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cell := m.CellAt(m.Index(x, y))

			style := unknownFill
			switch {
			case m.Index(x, y) == m.Start:
				style = startFill
			case m.Index(x, y) == m.End:
				style = endFill
			case cell.Type == mapgraph.Wall:
				style = wallFill
			case cell.Type == mapgraph.Path:
				style = pathFill
			}

			canvas.Rect(x*px, y*px, px, px, style)

			if opts.ShowWeights && cell.IsPath() && cell.Weight != mapgraph.DefaultWeight {
				canvas.Text(x*px+px/2, y*px+px*3/4,
					fmt.Sprintf("%d", cell.Weight),
					fmt.Sprintf(weightStyle, px/2))
			}
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}
