// Command maze drives the simulation engine headlessly: it runs a
// configured game to completion at a fixed virtual tick rate, generates
// and exports mazes, validates configuration documents, and summarizes
// map statistics.
//
// Exit codes: 0 on clean exit, non-zero on fatal initialisation failure
// (unreadable or invalid configuration).
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/pnre/maze-engine/export/svg"
	"github.com/pnre/maze-engine/game/config"
	"github.com/pnre/maze-engine/game/engine"
	"github.com/pnre/maze-engine/game/eventbus"
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/game/maze"
	"github.com/pnre/maze-engine/game/pathfinding"
	"github.com/pnre/maze-engine/internal/prng"
	"github.com/pnre/maze-engine/validate"
)

func main() {
	// Optional .env overrides (MAZE_CONFIG) before flag
	// parsing, matching the usual server bootstrap.
	_ = godotenv.Load()

	root := &cli.Command{
		Name:  "maze",
		Usage: "maze-engine simulation driver",
		Commands: []*cli.Command{
			runCommand(),
			genCommand(),
			validateCommand(),
			analyzeCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func loadDocument(path string) (*config.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration: %w", err)
	}
	defer f.Close()
	return config.LoadDocument(f)
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "drive a configured game to completion headlessly",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: envOr("MAZE_CONFIG", "game.yaml"), Usage: "configuration document"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "deterministic PRNG seed"},
			&cli.IntFlag{Name: "ticks", Value: 60 * 60 * 5, Usage: "maximum principal ticks before giving up"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			log := newLogger(cmd.Bool("verbose"))

			doc, err := loadDocument(cmd.String("config"))
			if err != nil {
				return err
			}
			if result := validate.Document(cmd.String("config"), doc); !result.Valid {
				return fmt.Errorf("invalid configuration: %s", strings.Join(result.Errors, "; "))
			}

			g, err := engine.FromDocument(doc, uint64(cmd.Int("seed")), engine.WithLogger(log))
			if err != nil {
				return err
			}
			g.Start()

			maxTicks := int(cmd.Int("ticks"))
			ticks := 0
			for ; ticks < maxTicks && !g.IsOver(); ticks++ {
				mask := g.Tick()
				if mask&eventbus.Exit != 0 {
					break
				}
			}

			log.Info().
				Int("ticks", ticks).
				Bool("over", g.IsOver()).
				Bool("won", g.IsWon()).
				Int("lives", g.LivesIcons()).
				Int("levels_remaining", g.LevelsRemaining()).
				Msg("run finished")

			return nil
		},
	}
}

func genCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen",
		Usage: "generate a maze and print it (optionally exporting SVG)",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Value: 8, Usage: "logical maze width"},
			&cli.IntFlag{Name: "height", Value: 6, Usage: "logical maze height"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "deterministic PRNG seed"},
			&cli.BoolFlag{Name: "braided", Usage: "knock out a fraction of dead-end walls"},
			&cli.BoolFlag{Name: "start-on-x", Usage: "entrance/exit on the left/right edges"},
			&cli.FloatFlag{Name: "complexity", Value: 0.0, Usage: "weighted-cell density in [0,1]"},
			&cli.StringFlag{Name: "svg", Usage: "write an SVG rendering to this path"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			rng := rand.New(prng.NewWell512(uint64(cmd.Int("seed"))))

			var res maze.Result
			if cmd.Bool("braided") {
				res = maze.GenerateBraided(rng, int(cmd.Int("width")), int(cmd.Int("height")),
					cmd.Bool("start-on-x"), maze.DefaultBraidProbability)
			} else {
				res = maze.GeneratePerfect(rng, int(cmd.Int("width")), int(cmd.Int("height")),
					cmd.Bool("start-on-x"))
			}

			if c := cmd.Float("complexity"); c > 0 {
				maze.RandomizeWeights(rng, res.Map, c)
			}

			fmt.Print(renderASCII(res.Map))

			if out := cmd.String("svg"); out != "" {
				data, err := svg.Export(res.Map, svg.DefaultOptions())
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("failed to write SVG: %w", err)
				}
			}

			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate configuration documents",
		ArgsUsage: "FILE [FILE...]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("no configuration files given")
			}

			failed := 0
			for _, path := range paths {
				doc, err := loadDocument(path)
				if err != nil {
					fmt.Printf("✗ %s\n  %v\n", path, err)
					failed++
					continue
				}

				result := validate.Document(path, doc)
				if result.Valid {
					fmt.Printf("✓ %s\n", path)
					continue
				}
				failed++
				fmt.Printf("✗ %s\n", path)
				for _, e := range result.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(paths))
			}
			return nil
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "summarize the maps of a configuration document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: envOr("MAZE_CONFIG", "game.yaml"), Usage: "configuration document"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			doc, err := loadDocument(cmd.String("config"))
			if err != nil {
				return err
			}

			levelsVal, ok := doc.Root.Get("levels")
			if !ok || levelsVal.Kind != config.KindList {
				return fmt.Errorf("configuration defines no levels")
			}

			for _, nameVal := range levelsVal.List {
				if nameVal.Kind != config.KindString {
					continue
				}
				lv, ok := doc.Root.Get(nameVal.Str)
				if !ok || lv.Kind != config.KindDictionary {
					continue
				}
				analyzeLevel(nameVal.Str, lv.Dict)
			}
			return nil
		},
	}
}

func analyzeLevel(name string, cfg config.Dictionary) {
	mapsVal, ok := cfg.Get("maps")
	if !ok || mapsVal.Kind != config.KindList {
		return
	}

	fmt.Printf("level %s\n", name)
	for _, entry := range mapsVal.List {
		if entry.Kind != config.KindString {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(entry.Str), "RANDOM") {
			fmt.Printf("  %-12s generated at load time\n", entry.Str)
			continue
		}
		body, ok := cfg.Get(entry.Str)
		if !ok || body.Kind != config.KindString {
			fmt.Printf("  %-12s missing body\n", entry.Str)
			continue
		}
		loaded, err := config.LoadMapBody(strings.NewReader(body.Str))
		if err != nil {
			fmt.Printf("  %-12s %v\n", entry.Str, err)
			continue
		}

		m := loaded.Map
		m.Connect()
		pathfinding.RunBFS(m, m.Start)

		paths := 0
		for i := range m.Cells {
			if m.Cells[i].IsPath() {
				paths++
			}
		}
		reachable := m.Cells[m.End].Distance < pathfinding.Infinity

		fmt.Printf("  %-12s %dx%d, %d path cells, %d spawn slots, %d eligible cells, exit reachable: %v\n",
			entry.Str, m.Width, m.Height, paths, len(loaded.SpawnSlots), len(m.EligibleCells), reachable)
	}
}

// renderASCII prints a map with the map-body alphabet: '#' walls,
// spaces for corridors, digits for weighted cells, S/E for the
// entrance and exit.
func renderASCII(m *mapgraph.Map) string {
	var b strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := m.Index(x, y)
			cell := m.CellAt(idx)
			switch {
			case idx == m.Start:
				b.WriteByte('S')
			case idx == m.End:
				b.WriteByte('E')
			case cell.Type == mapgraph.Path && cell.Weight != mapgraph.DefaultWeight:
				b.WriteByte(byte('0' + cell.Weight))
			case cell.Type == mapgraph.Path:
				b.WriteByte(' ')
			default:
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
