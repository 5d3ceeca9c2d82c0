// Package world is the minimal map model the gameplay actions act on: a tile
// grid, the objects standing on it, and temporary tile annotations.
package world

import (
	"fmt"
	"strings"
)

type Coords struct {
	X, Y, Z int
}

func (c Coords) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

func (c Coords) Add(dx, dy int) Coords {
	return Coords{X: c.X + dx, Y: c.Y + dy, Z: c.Z}
}

type Direction int

const (
	DirNone Direction = iota
	DirWest
	DirNorth
	DirEast
	DirSouth
)

// DirectionFromName parses a direction typed by the player.
func DirectionFromName(name string) Direction {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "north":
		return DirNorth
	case "down", "south":
		return DirSouth
	case "right", "east":
		return DirEast
	case "left", "west":
		return DirWest
	}
	return DirNone
}

// Delta is the one-step offset for d.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	case DirWest:
		return -1, 0
	}
	return 0, 0
}

type Tile struct {
	ID         int
	Name       string
	Walkable   bool
	Door       bool
	LockedDoor bool
	Chest      bool
	Ship       bool
}

type Tileset struct {
	tiles []*Tile
}

// NewTileset assigns IDs in the order tiles are given.
func NewTileset(tiles ...Tile) *Tileset {
	ts := &Tileset{}
	for i := range tiles {
		t := tiles[i]
		t.ID = i
		ts.tiles = append(ts.tiles, &t)
	}
	return ts
}

// DefaultTileset is the set of town tiles the actions refer to by name.
func DefaultTileset() *Tileset {
	return NewTileset(
		Tile{Name: "grass", Walkable: true},
		Tile{Name: "brick_floor", Walkable: true},
		Tile{Name: "wall"},
		Tile{Name: "water"},
		Tile{Name: "door", Door: true},
		Tile{Name: "locked_door", LockedDoor: true},
		Tile{Name: "chest", Walkable: true, Chest: true},
		Tile{Name: "ship", Ship: true},
	)
}

func (ts *Tileset) Get(id int) *Tile {
	if id < 0 || id >= len(ts.tiles) {
		return nil
	}
	return ts.tiles[id]
}

func (ts *Tileset) ByName(name string) *Tile {
	for _, t := range ts.tiles {
		if t.Name == name {
			return t
		}
	}
	return nil
}
