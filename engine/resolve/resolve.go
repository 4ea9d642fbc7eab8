// Package resolve matches player noun tokens against the current area
// and its containers. A miss is a normal empty result, never an error:
// verbs render their own failure lines.
package resolve

import (
	"strings"

	"github.com/nberg/fable/world"
)

// Target is the outcome of resolving a noun token: an item together
// with the container that holds it, or a prop. The zero Target means
// nothing matched.
type Target struct {
	Item   *world.Item
	Source *world.Container // holds Item when Item is set
	Prop   *world.Prop
}

// Found reports whether the resolution matched anything.
func (t Target) Found() bool { return t.Item != nil || t.Prop != nil }

// InArea resolves the bare "verb <target>" form. The area's loose item
// stacks are scanned before its props, so an item and a prop answering
// to the same token resolve to the item.
func InArea(a *world.Area, token string) Target {
	if t := InContainer(&a.Items, token); t.Item != nil {
		return t
	}
	if p := a.FindProp(token); p != nil {
		return Target{Prop: p}
	}
	return Target{}
}

// InContainer resolves a token against one container's stacks only, by
// listing position or case-insensitive item name.
func InContainer(c *world.Container, token string) Target {
	for i, s := range c.Stacks() {
		if world.MatchToken(token, i+1, s.Item.Name) {
			return Target{Item: s.Item, Source: c}
		}
	}
	return Target{}
}

// Source resolves the "from <source>" clause. The literal token "bag"
// is the player's own container; any other token names a prop in the
// current area. Returns nil when unresolved.
func Source(a *world.Area, bag *world.Container, token string) *world.Container {
	if strings.EqualFold(token, "bag") {
		return bag
	}
	if p := a.FindProp(token); p != nil {
		return &p.Container
	}
	return nil
}
