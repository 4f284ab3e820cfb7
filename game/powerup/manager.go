package powerup

import (
	"github.com/pnre/maze-engine/game/kinematics"
	"github.com/pnre/maze-engine/game/mapgraph"
	"github.com/pnre/maze-engine/internal/geometry"
)

// Manager owns the level's templates and every character's held
// statuses. A status stays in its owner's inventory after its count
// drops to zero, and a later acquisition of the same kind reuses it; the
// association is
// kept here rather than on the Character so that kinematics stays
// independent of this package.
type Manager struct {
	templates   []*Template
	byID        map[string]*Template
	inventories map[*kinematics.Character][]*Status
}

// NewManager returns a manager over the given templates.
func NewManager(templates []*Template) *Manager {
	m := &Manager{
		templates:   templates,
		byID:        make(map[string]*Template, len(templates)),
		inventories: map[*kinematics.Character][]*Status{},
	}
	for _, t := range templates {
		m.byID[t.ID] = t
	}
	return m
}

// Templates returns the managed templates.
func (m *Manager) Templates() []*Template {
	return m.templates
}

// Statuses returns the statuses held by c.
func (m *Manager) Statuses(c *kinematics.Character) []*Status {
	return m.inventories[c]
}

// Forget drops a character's inventory (level teardown).
func (m *Manager) Forget(c *kinematics.Character) {
	delete(m.inventories, c)
}

// Acquire hands the template to the character: refused for AI when the
// template is user-only; otherwise a status is created (or its count
// incremented) and, for instant templates or AI pickers, immediately
// enabled.
func (m *Manager) Acquire(ctx *kinematics.Context, c *kinematics.Character, t *Template) bool {
	if !c.IsUser && t.UserOnly() {
		return false
	}

	var status *Status
	for _, s := range m.inventories[c] {
		if s.Template.Name == t.Name {
			status = s
			break
		}
	}

	if status == nil {
		status = &Status{Template: t, Character: c, Count: 1}
		m.inventories[c] = append(m.inventories[c], status)
	} else {
		status.Count++
	}

	if t.Trigger == 0 || !c.IsUser {
		m.Enable(ctx, status)
	}

	return true
}

// TryPickUp is the cell-entry hook (kinematics.Context.OnEnterCell):
// when the cell holds a placed power-up, attempt acquisition and empty
// the slot on success.
func (m *Manager) TryPickUp(ctx *kinematics.Context, c *kinematics.Character, cellIdx int) {
	cell := c.Map.CellAt(cellIdx)
	if !cell.PowerUp.Occupied {
		return
	}
	t, ok := m.byID[cell.PowerUp.TemplateID]
	if !ok {
		return
	}
	if m.Acquire(ctx, c, t) {
		cell.PowerUp = mapgraph.PowerUpSlot{}
		c.Map.RecordRemoval()
	}
}

// Enable activates a held status: picker effects apply to the owner,
// the "characters" effects to every other character within the effect
// area (whole map when the area is zero), and the template's sample
// plays.
func (m *Manager) Enable(ctx *kinematics.Context, status *Status) {
	c := status.Character

	if status.Enabled || status.Count == 0 {
		return
	}

	status.Enabled = true
	status.Elapsed = 0

	if effects, ok := status.Template.pickerEffects(c.IsUser); ok {
		applyProperties(ctx, effects, c)
	}

	if status.Template.Characters.Len() > 0 {
		area := c.Map.Bounds(kinematics.CellSize)
		if s := status.Template.EffectAreaSize; s.Width != 0 || s.Height != 0 {
			pixel := geometry.Size{
				Width:  float64(s.Width) * kinematics.CellSize.Width,
				Height: float64(s.Height) * kinematics.CellSize.Height,
			}
			area = geometry.CenteredOn(c.Position, pixel).Clamp(area)
		}

		for _, other := range ctx.Characters() {
			if other == c {
				continue
			}
			if !area.Contains(other.Position) {
				continue
			}
			applyProperties(ctx, status.Template.Characters, other)
		}
	}

	if ctx.PlaySFX != nil {
		ctx.PlaySFX(status.Template.Name)
	}
}

// Disable deactivates a status, restoring the touched keys of the
// owner (and of every other character) from their default snapshots.
func (m *Manager) Disable(ctx *kinematics.Context, status *Status) {
	c := status.Character

	status.Enabled = false

	if effects, ok := status.Template.pickerEffects(c.IsUser); ok {
		resetProperties(effects, c)
	}

	if status.Template.Characters.Len() > 0 {
		for _, other := range ctx.Characters() {
			if other == c {
				continue
			}
			resetProperties(status.Template.Characters, other)
		}
	}
}

// TickSecond is the 1 Hz handler: advance every enabled status's
// elapsed counter (deactivating on wrap), then attempt placement on
// the active map.
func (m *Manager) TickSecond(ctx *kinematics.Context, active *mapgraph.Map, nowSec float64) {
	for _, c := range ctx.Characters() {
		for _, status := range m.inventories[c] {
			if !status.Enabled {
				continue
			}

			if status.Template.Duration > 0 {
				status.Elapsed = (status.Elapsed + 1) % status.Template.Duration
			} else {
				status.Elapsed = 0
			}

			if status.Elapsed == 0 {
				m.Disable(ctx, status)
				status.Count--
			}
		}
	}

	m.place(ctx, active, nowSec)
}

// ResetPlacements zeroes every template's per-level placement counter
// (called on level transition — the limit is per level).
func (m *Manager) ResetPlacements() {
	for _, t := range m.templates {
		t.Placed = 0
	}
}

// place rolls each template over every empty eligible cell, honouring
// the map's throttle interval and simultaneous limit and the template's
// per-level cap.
func (m *Manager) place(ctx *kinematics.Context, active *mapgraph.Map, nowSec float64) {
	if active == nil || len(m.templates) == 0 {
		return
	}
	if !active.PlacementAllowed(nowSec) {
		return
	}

	for _, cellIdx := range active.EligibleCells {
		cell := active.CellAt(cellIdx)
		if cell.PowerUp.Occupied {
			continue
		}

		for _, t := range m.templates {
			if t.Placed >= t.Limit {
				continue
			}
			if ctx.RNG.Float64() >= t.AppearanceProbability/float64(len(m.templates)) {
				continue
			}

			cell.PowerUp = mapgraph.PowerUpSlot{
				TemplateID:  t.ID,
				PlacedAtSec: nowSec,
				Occupied:    true,
			}
			t.Placed++
			active.RecordPlacement(nowSec)
			break
		}

		if !active.PlacementAllowed(nowSec) {
			return
		}
	}
}

// CheckCell re-empties a cell whose placed power-up outlived its
// timeout; the engine calls this as cells are rendered.
func (m *Manager) CheckCell(active *mapgraph.Map, cellIdx int, nowSec float64) {
	cell := active.CellAt(cellIdx)
	if !cell.PowerUp.Occupied {
		return
	}
	t, ok := m.byID[cell.PowerUp.TemplateID]
	if !ok || t.Timeout <= 0 {
		return
	}
	if nowSec-cell.PowerUp.PlacedAtSec >= float64(t.Timeout) {
		cell.PowerUp = mapgraph.PowerUpSlot{}
		active.RecordRemoval()
	}
}
