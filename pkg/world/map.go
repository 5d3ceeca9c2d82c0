package world

import (
	"fmt"
	"slices"
)

// Annotation replaces the tile at a location, optionally for a limited
// number of turns.
type Annotation struct {
	Coords Coords
	TileID int
	// TTL is the number of turns left, or -1 for a permanent change.
	TTL int
}

type Map struct {
	Width   int
	Height  int
	City    bool
	Tileset *Tileset
	Avatar  Coords

	tiles       []int
	objects     []*Object
	annotations []*Annotation
}

// NewMap creates a map filled with the named tile.
func NewMap(width, height int, ts *Tileset, fill string) (*Map, error) {
	t := ts.ByName(fill)
	if t == nil {
		return nil, fmt.Errorf("no %s tile in tileset", fill)
	}
	m := &Map{
		Width:   width,
		Height:  height,
		Tileset: ts,
		tiles:   make([]int, width*height),
	}
	for i := range m.tiles {
		m.tiles[i] = t.ID
	}
	return m, nil
}

func (m *Map) inBounds(c Coords) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < m.Width && c.Y < m.Height
}

// SetTile changes the base tile at c.
func (m *Map) SetTile(c Coords, name string) error {
	if !m.inBounds(c) {
		return fmt.Errorf("coords %s out of bounds", c)
	}
	t := m.Tileset.ByName(name)
	if t == nil {
		return fmt.Errorf("no %s tile in tileset", name)
	}
	m.tiles[c.Y*m.Width+c.X] = t.ID
	return nil
}

// TileAt returns the tile shown at c: an annotation if there is one,
// otherwise the base tile.
func (m *Map) TileAt(c Coords) *Tile {
	if !m.inBounds(c) {
		return nil
	}
	for i := len(m.annotations) - 1; i >= 0; i-- {
		if m.annotations[i].Coords == c {
			return m.Tileset.Get(m.annotations[i].TileID)
		}
	}
	return m.Tileset.Get(m.tiles[c.Y*m.Width+c.X])
}

// ObjectAt returns the topmost object at c.
func (m *Map) ObjectAt(c Coords) *Object {
	for i := len(m.objects) - 1; i >= 0; i-- {
		if m.objects[i].Coords == c {
			return m.objects[i]
		}
	}
	return nil
}

// PersonAt returns the person at c, if that is what stands there.
func (m *Map) PersonAt(c Coords) *Object {
	o := m.ObjectAt(c)
	if o == nil || o.Type != ObjectPerson {
		return nil
	}
	return o
}

func (m *Map) Objects() []*Object {
	return slices.Clone(m.objects)
}

func (m *Map) AddObject(o *Object) {
	m.objects = append(m.objects, o)
}

func (m *Map) RemoveObject(o *Object) bool {
	i := slices.Index(m.objects, o)
	if i < 0 {
		return false
	}
	m.objects = slices.Delete(m.objects, i, i+1)
	return true
}

// Annotate overlays tileID at c. A ttl of -1 is permanent.
func (m *Map) Annotate(c Coords, tileID int, ttl int) *Annotation {
	a := &Annotation{Coords: c, TileID: tileID, TTL: ttl}
	m.annotations = append(m.annotations, a)
	return a
}

func (m *Map) Annotations() []*Annotation {
	return slices.Clone(m.annotations)
}

// PassTurn ages temporary annotations and drops the expired ones.
func (m *Map) PassTurn() {
	m.annotations = slices.DeleteFunc(m.annotations, func(a *Annotation) bool {
		if a.TTL < 0 {
			return false
		}
		a.TTL--
		return a.TTL <= 0
	})
}

// AlertGuards turns every guard on the map against the avatar.
func (m *Map) AlertGuards() {
	for _, o := range m.objects {
		if o.NPCType == NPCGuard {
			o.Movement = MovementAttackAvatar
		}
	}
}

// SpawnNear places o on the nearest free walkable tile around the avatar,
// searching outward up to radius steps. It reports whether a spot was found.
func (m *Map) SpawnNear(o *Object, radius int) bool {
	for r := 1; r <= radius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				c := m.Avatar.Add(dx, dy)
				t := m.TileAt(c)
				if t == nil || !t.Walkable || m.ObjectAt(c) != nil {
					continue
				}
				o.Coords = c
				m.AddObject(o)
				return true
			}
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
