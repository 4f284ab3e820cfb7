// Package powerup implements the power-up subsystem: templates placed
// on eligible map cells on a throttled cadence, per-character statuses,
// timed activation with declarative config-override effects, and the
// matching deactivation that restores the owner's default snapshot.
package powerup

import (
	"math"

	"github.com/google/uuid"

	"github.com/pnre/maze-engine/game/config"
	"github.com/pnre/maze-engine/game/kinematics"
	"github.com/pnre/maze-engine/game/pathfinding"
	"github.com/pnre/maze-engine/internal/containers"
	"github.com/pnre/maze-engine/internal/geometry"
)

// Trigger-once effect keys: they act at activation instead of becoming
// persistent overrides.
const (
	keyRandomizePosition      = "randomize_position"
	keyShowShortestPathToExit = "show_shortest_path_to_exit"
)

// Role keys of the picker effect dictionary.
const (
	RoleUser  = "user"
	RoleEnemy = "enemy"
)

// Template describes one kind of power-up.
type Template struct {
	ID   string
	Name string

	// AppearanceProbability weights placement rolls in [0,1].
	AppearanceProbability float64

	// EffectAreaSize bounds the "other characters" effects, in cells;
	// zero means the whole map.
	EffectAreaSize geometry.IntSize

	// Duration in seconds a status stays enabled; zero = instant.
	Duration int

	// Timeout in seconds an untaken placement lingers before being
	// re-absorbed; zero = forever.
	Timeout int

	// Limit is the per-level placement cap.
	Limit int

	// Trigger is the activation key ('A'-'Z'); zero activates on
	// acquisition.
	Trigger byte

	// Picker holds the effects for whoever picks the power-up, keyed by
	// role ("user"/"enemy"); a missing "enemy" entry makes the template
	// user-only.
	Picker config.Dictionary

	// Characters holds the effects applied to every other character
	// within the effect area.
	Characters config.Dictionary

	// Placed counts placements made this level.
	Placed int
}

// NewTemplate builds a template from its configuration dictionary,
// applying the documented defaults for missing keys.
func NewTemplate(name string, cfg config.Dictionary) *Template {
	t := &Template{
		ID:    uuid.NewString(),
		Name:  name,
		Limit: math.MaxInt,
	}

	if v, ok := cfg.Get("appearance_probability"); ok && v.Kind == config.KindFloat {
		t.AppearanceProbability = v.Float
	}
	if v, ok := cfg.Get("duration"); ok && v.Kind == config.KindInt {
		t.Duration = int(v.Int)
	}
	if v, ok := cfg.Get("timeout"); ok && v.Kind == config.KindInt {
		t.Timeout = int(v.Int)
	}
	if v, ok := cfg.Get("limit"); ok && v.Kind == config.KindInt {
		t.Limit = int(v.Int)
	}
	if v, ok := cfg.Get("effects_rect_size"); ok && v.Kind == config.KindSize {
		t.EffectAreaSize = v.Size
	}
	if v, ok := cfg.Get("trigger"); ok && v.Kind == config.KindString && v.Str != "" {
		t.Trigger = v.Str[0]
	}
	if v, ok := cfg.Get("picker"); ok && v.Kind == config.KindDictionary {
		t.Picker = v.Dict.Clone()
	}
	if v, ok := cfg.Get("characters"); ok && v.Kind == config.KindDictionary {
		t.Characters = v.Dict.Clone()
	}

	return t
}

// UserOnly reports whether AI characters are refused this template.
func (t *Template) UserOnly() bool {
	_, enemy := t.Picker.Get(RoleEnemy)
	return !enemy
}

// pickerEffects returns the effect dictionary matching the picker's
// role, empty when none is declared.
func (t *Template) pickerEffects(isUser bool) (config.Dictionary, bool) {
	role := RoleEnemy
	if isUser {
		role = RoleUser
	}
	v, ok := t.Picker.Get(role)
	if !ok || v.Kind != config.KindDictionary {
		return config.Dictionary{}, false
	}
	return v.Dict, true
}

// Status associates a template with one owning character.
type Status struct {
	Template  *Template
	Character *kinematics.Character

	Enabled bool
	Count   int

	// Elapsed seconds since the last activation.
	Elapsed int
}

// applyProperties overlays every effect key onto the target's live
// config (write-through, insert when absent), then acts on the
// trigger-once keys.
func applyProperties(ctx *kinematics.Context, effects config.Dictionary, target *kinematics.Character) {
	for _, key := range effects.Keys() {
		v, _ := effects.Get(key)
		target.Config.Set(key, v)
	}

	if v, ok := effects.Get(keyRandomizePosition); ok && v.AsBool() {
		target.SetRandomPosition(ctx)
	}

	if v, ok := effects.Get(keyShowShortestPathToExit); ok && v.AsBool() && target.IsUser {
		showShortestPathToExit(target)
	}

	if target.IsUser {
		if v, ok := effects.Get(kinematics.KeyLives); ok && v.Kind == config.KindInt {
			target.Lives += int(v.Int)
			if target.Lives < 0 {
				target.Lives = 0
			}
			if target.Lives > kinematics.MaxLives {
				target.Lives = kinematics.MaxLives
			}
		}
	}
}

// showShortestPathToExit computes the user's A* route to the exit and
// installs it as the displayed path stack.
func showShortestPathToExit(c *kinematics.Character) {
	m := c.Map
	source := m.Index(c.Location.X, c.Location.Y)
	path := pathfinding.Run(pathfinding.AStar, m, source, m.End)

	c.Path = containers.NewStack[int]()
	for i := len(path) - 1; i >= 1; i-- {
		c.Path.Push(path[i])
	}
}

// resetProperties restores every key the effect dictionary touched from
// the target's default snapshot; keys with no default are removed.
func resetProperties(effects config.Dictionary, target *kinematics.Character) {
	target.Config.RestoreFrom(target.DefaultConfig, effects.Keys())
}
