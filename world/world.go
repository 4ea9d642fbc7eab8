// Package world models the adventure's areas, items, props, and the
// containers that hold them. Everything here is built once by the loader
// and mutated afterwards only through container moves and connection
// opening.
package world

import (
	"strconv"
	"strings"
)

// World is the loaded graph of areas and items with id lookup tables.
type World struct {
	Title string
	Areas map[string]*Area
	Items map[string]*Item
}

// New returns an empty world ready for the loader to populate.
func New() *World {
	return &World{
		Areas: make(map[string]*Area),
		Items: make(map[string]*Item),
	}
}

// FindArea returns the area with the given id, or nil if unknown.
func (w *World) FindArea(id string) *Area {
	return w.Areas[id]
}

// FindItem returns the item with the given id, or nil if unknown.
func (w *World) FindItem(id string) *Item {
	return w.Items[id]
}

// MatchToken reports whether a player token selects the candidate shown
// at 1-based listing position pos under the given display name. A token
// matches by position ("2") or by case-insensitive name ("Lantern").
// Positions restart at 1 for every listing, so they are only meaningful
// against the list the player last saw.
func MatchToken(token string, pos int, name string) bool {
	if token == strconv.Itoa(pos) {
		return true
	}
	return strings.EqualFold(token, name)
}
