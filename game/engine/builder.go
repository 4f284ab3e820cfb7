package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/pnre/maze-engine/game/ai"
	"github.com/pnre/maze-engine/game/config"
	"github.com/pnre/maze-engine/game/kinematics"
	"github.com/pnre/maze-engine/game/level"
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/game/maze"
	"github.com/pnre/maze-engine/game/powerup"
	"github.com/pnre/maze-engine/internal/geometry"
	"github.com/pnre/maze-engine/internal/prng"
)

// Builder errors. A broken artifact aborts loading of itself and its
// dependents; initialisation fails only when nothing loads.
var (
	ErrNoUser       = errors.New("configuration defines no user character")
	ErrNoLevels     = errors.New("configuration defines no loadable level")
	ErrInvalidLevel = errors.New("invalid level configuration")
)

// DefaultComplexity is used when a level's complexity is missing or out
// of [0,1].
const DefaultComplexity = 0.1

// Default per-map power-up placement throttling.
const (
	defaultPlacementInterval = 10 // seconds
	defaultPlacementLimit    = 3  // simultaneous instances
)

// FromDocument assembles a Game from a configuration document. The
// same document and seed always produce the same game;
// after a GameReload the caller rebuilds from the same document,
// carrying the old game's Mute flag over.
func FromDocument(doc *config.Document, seed uint64, opts ...Option) (*Game, error) {
	rng := rand.New(prng.NewWell512(seed))

	userVal, ok := doc.Root.Get("user")
	if !ok || userVal.Kind != config.KindDictionary {
		return nil, ErrNoUser
	}
	user := kinematics.New(true, userVal.Dict)
	user.Controller = kinematics.UserController{}

	templates := loadTemplates(doc.Root)

	levelsVal, ok := doc.Root.Get("levels")
	if !ok || levelsVal.Kind != config.KindList {
		return nil, ErrNoLevels
	}

	var levels []*level.Level
	for _, nameVal := range levelsVal.List {
		if nameVal.Kind != config.KindString {
			continue
		}
		lvl, err := loadLevel(doc.Root, nameVal.Str, rng)
		if err != nil {
			// A broken level is skipped, not fatal, unless nothing
			// loads at all.
			continue
		}
		levels = append(levels, lvl)
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}

	return New(user, levels, templates, seed, opts...), nil
}

// loadTemplates reads the optional "powerups" dictionary-of-
// dictionaries into templates, sorted by name (the document loader does
// not keep mapping key order).
func loadTemplates(root config.Dictionary) []*powerup.Template {
	v, ok := root.Get("powerups")
	if !ok || v.Kind != config.KindDictionary {
		return nil
	}

	names := v.Dict.Keys()
	sort.Strings(names)

	var templates []*powerup.Template
	for _, name := range names {
		entry, _ := v.Dict.Get(name)
		if entry.Kind != config.KindDictionary {
			continue
		}
		templates = append(templates, powerup.NewTemplate(name, entry.Dict))
	}
	return templates
}

// loadLevel builds one level from its top-level dictionary.
func loadLevel(root config.Dictionary, name string, rng *rand.Rand) (*level.Level, error) {
	v, ok := root.Get(name)
	if !ok || v.Kind != config.KindDictionary {
		return nil, fmt.Errorf("%w: %q is not a dictionary", ErrInvalidLevel, name)
	}
	cfg := v.Dict

	complexity := DefaultComplexity
	if cv, ok := cfg.Get("complexity"); ok && cv.Kind == config.KindFloat && cv.Float >= 0 && cv.Float <= 1 {
		complexity = cv.Float
	}

	mapsVal, ok := cfg.Get("maps")
	if !ok || mapsVal.Kind != config.KindList {
		return nil, fmt.Errorf("%w: level %q has no maps", ErrInvalidLevel, name)
	}

	interval := float64(defaultPlacementInterval)
	if iv, ok := cfg.Get("powerups_interval"); ok && iv.Kind == config.KindInt {
		interval = float64(iv.Int)
	}
	limit := defaultPlacementLimit
	if lv, ok := cfg.Get("powerups_limit"); ok && lv.Kind == config.KindInt {
		limit = int(lv.Int)
	}

	// Entrance/exit axis is drawn once per level.
	startOnX := rng.Intn(2) == 1

	var maps []*mapgraph.Map
	var spawnSlots []geometry.IntPoint

	for _, entry := range mapsVal.List {
		if entry.Kind != config.KindString {
			continue
		}

		var m *mapgraph.Map
		if strings.HasPrefix(strings.ToUpper(entry.Str), "RANDOM") {
			m = generateMap(cfg, rng, startOnX, complexity)
		} else {
			body, ok := cfg.Get(entry.Str)
			if !ok || body.Kind != config.KindString {
				continue
			}
			loaded, err := config.LoadMapBody(strings.NewReader(body.Str))
			if err != nil {
				continue
			}
			loaded.Map.Connect()
			m = loaded.Map
			if len(maps) == 0 {
				spawnSlots = loaded.SpawnSlots
			}
		}

		m.MinPlacementInterval = interval
		m.PlacementLimit = limit
		maps = append(maps, m)
	}
	if len(maps) == 0 {
		return nil, fmt.Errorf("%w: level %q loaded no maps", ErrInvalidLevel, name)
	}

	var enemies []*kinematics.Character
	if ev, ok := cfg.Get("enemies"); ok && ev.Kind == config.KindList {
		for _, nameVal := range ev.List {
			if nameVal.Kind != config.KindString {
				continue
			}
			ec, ok := cfg.Get(nameVal.Str)
			if !ok || ec.Kind != config.KindDictionary {
				continue
			}
			enemy := kinematics.New(false, ec.Dict)
			enemy.Controller = ai.Controller{}
			enemies = append(enemies, enemy)
		}
	}

	lvl := level.New(name, complexity, maps, enemies)
	lvl.SpawnSlots = spawnSlots
	return lvl, nil
}

// generateMap produces a procedurally generated map: perfect or braided
// at even odds, weighted by the level complexity, with the recorded
// dead-ends becoming the power-up eligible cells.
func generateMap(cfg config.Dictionary, rng *rand.Rand, startOnX bool, complexity float64) *mapgraph.Map {
	w, h := maze.MinMazeDimension, maze.MinMazeDimension
	if sv, ok := cfg.Get("map_size"); ok && sv.Kind == config.KindSize {
		w, h = sv.Size.Width, sv.Size.Height
	} else {
		w += rng.Intn(5)
		h += rng.Intn(5)
	}

	var res maze.Result
	if rng.Float64() < 0.5 {
		res = maze.GenerateBraided(rng, w, h, startOnX, maze.DefaultBraidProbability)
	} else {
		res = maze.GeneratePerfect(rng, w, h, startOnX)
	}

	m := res.Map
	maze.RandomizeWeights(rng, m, complexity)

	for _, idx := range res.DeadEnds {
		if !m.Cells[idx].IsPath() || idx == m.Start || idx == m.End {
			continue
		}
		m.EligibleCells = append(m.EligibleCells, idx)
	}

	return m
}
