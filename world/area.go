package world

// Direction is the movement label on a connection.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Opposite returns the inverse direction. Labels outside the six
// standard ones have no inverse and yield "", which makes "go back"
// fail after such a move.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	}
	return ""
}

// Connection is a directed link from one area to another. Passages
// start open; every other kind starts closed and needs the open verb,
// plus the key item when one is set.
type Connection struct {
	To        *Area
	Direction Direction
	Kind      string // "passage", "door", ...
	Open      bool
	Key       string // item id required to open, empty for none
}

// Prop is a fixed feature of an area: examinable, never portable, and a
// container in its own right.
type Prop struct {
	Name        string
	Description string
	Container
}

// Area is one location in the world graph. Connections, props, and the
// loose-item container keep their load order, which listings and token
// positions rely on.
type Area struct {
	ID          string
	Name        string
	Description string
	Connections []*Connection
	Items       Container
	Props       []*Prop
}

// FindProp matches a player token against the area's props, by listing
// position or case-insensitive name, first match wins. Returns nil when
// nothing matches.
func (a *Area) FindProp(token string) *Prop {
	for i, p := range a.Props {
		if MatchToken(token, i+1, p.Name) {
			return p
		}
	}
	return nil
}

// FindConnection returns the connection leading the given direction, or
// nil when the area has none.
func (a *Area) FindConnection(dir Direction) *Connection {
	for _, c := range a.Connections {
		if c.Direction == dir {
			return c
		}
	}
	return nil
}
