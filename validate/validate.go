// Package validate checks a game configuration document before the
// engine builds from it: structural shape (user, levels, power-ups),
// map-body parses, and exit reachability on every explicit map.
package validate

import (
	"fmt"
	"strings"

	"github.com/pnre/maze-engine/game/config"
	"github.com/pnre/maze-engine/game/pathfinding"
)

// Result captures the outcome of validating a single document. If
// Valid is true, Errors is empty; otherwise it accumulates every
// validation error that was found.
type Result struct {
	Name   string
	Valid  bool
	Errors []string
}

func (r *Result) errorf(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Document validates a configuration document.
func Document(name string, doc *config.Document) Result {
	result := Result{Name: name, Valid: true}

	root := doc.Root

	userVal, ok := root.Get("user")
	if !ok {
		result.errorf("missing required key %q", "user")
	} else if userVal.Kind != config.KindDictionary {
		result.errorf("%q must be a dictionary", "user")
	}

	validatePowerUps(&result, root)

	levelsVal, ok := root.Get("levels")
	if !ok {
		result.errorf("missing required key %q", "levels")
		return result
	}
	if levelsVal.Kind != config.KindList || len(levelsVal.List) == 0 {
		result.errorf("%q must be a non-empty list of level names", "levels")
		return result
	}

	for _, nameVal := range levelsVal.List {
		if nameVal.Kind != config.KindString {
			result.errorf("level names must be strings")
			continue
		}
		validateLevel(&result, root, nameVal.Str)
	}

	return result
}

func validatePowerUps(result *Result, root config.Dictionary) {
	v, ok := root.Get("powerups")
	if !ok {
		return
	}
	if v.Kind != config.KindDictionary {
		result.errorf("%q must be a dictionary of power-up definitions", "powerups")
		return
	}

	for _, name := range v.Dict.Keys() {
		entry, _ := v.Dict.Get(name)
		if entry.Kind != config.KindDictionary {
			result.errorf("power-up %q must be a dictionary", name)
			continue
		}
		if pv, ok := entry.Dict.Get("appearance_probability"); ok {
			if pv.Kind != config.KindFloat || pv.Float < 0 || pv.Float > 1 {
				result.errorf("power-up %q: appearance_probability must be a float in [0,1]", name)
			}
		}
		_, picker := entry.Dict.Get("picker")
		_, characters := entry.Dict.Get("characters")
		if !picker && !characters {
			result.errorf("power-up %q declares no effects", name)
		}
	}
}

func validateLevel(result *Result, root config.Dictionary, name string) {
	v, ok := root.Get(name)
	if !ok || v.Kind != config.KindDictionary {
		result.errorf("level %q is not defined as a dictionary", name)
		return
	}
	cfg := v.Dict

	if cv, ok := cfg.Get("complexity"); ok {
		if cv.Kind != config.KindFloat || cv.Float < 0 || cv.Float > 1 {
			result.errorf("level %q: complexity must be a float in [0,1]", name)
		}
	}

	mapsVal, ok := cfg.Get("maps")
	if !ok || mapsVal.Kind != config.KindList || len(mapsVal.List) == 0 {
		result.errorf("level %q: %q must be a non-empty list", name, "maps")
		return
	}

	for _, entry := range mapsVal.List {
		if entry.Kind != config.KindString {
			result.errorf("level %q: map entries must be strings", name)
			continue
		}
		if strings.HasPrefix(strings.ToUpper(entry.Str), "RANDOM") {
			continue
		}
		validateMapBody(result, cfg, name, entry.Str)
	}

	if ev, ok := cfg.Get("enemies"); ok {
		if ev.Kind != config.KindList {
			result.errorf("level %q: %q must be a list of names", name, "enemies")
		} else {
			for _, nameVal := range ev.List {
				if nameVal.Kind != config.KindString {
					result.errorf("level %q: enemy names must be strings", name)
					continue
				}
				if ec, ok := cfg.Get(nameVal.Str); !ok || ec.Kind != config.KindDictionary {
					result.errorf("level %q: enemy %q is not defined as a dictionary", name, nameVal.Str)
				}
			}
		}
	}
}

func validateMapBody(result *Result, cfg config.Dictionary, levelName, mapName string) {
	body, ok := cfg.Get(mapName)
	if !ok || body.Kind != config.KindString {
		result.errorf("level %q: map %q has no body", levelName, mapName)
		return
	}

	loaded, err := config.LoadMapBody(strings.NewReader(body.Str))
	if err != nil {
		result.errorf("level %q: map %q: %v", levelName, mapName, err)
		return
	}

	m := loaded.Map
	m.Connect()

	pathfinding.RunBFS(m, m.Start)
	if m.Cells[m.End].Distance >= pathfinding.Infinity {
		result.errorf("level %q: map %q: exit is not reachable from start", levelName, mapName)
	}
}
