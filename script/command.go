// Package script models the scripted side of an adventure: the commands
// entries run, the entries themselves, and the story that holds them.
package script

import (
	"fmt"

	"github.com/nberg/fable/world"
)

// Env is the session surface a Custom command acts through. The engine
// implements it.
type Env interface {
	// EnterArea moves the session to the area with the given id.
	EnterArea(id string) bool
	// GiveItem adds amount of an item to the player's bag.
	GiveItem(id string, amount int) bool
	// TakeItem removes up to amount of an item from the player's bag
	// and returns how many were actually removed.
	TakeItem(id string, amount int) int
	// HasItem reports whether the player's bag holds the item.
	HasItem(id string) bool
	// PlayEntry switches the running script to another entry.
	PlayEntry(id string) bool
	// Finish marks the session as ended.
	Finish()
}

// Command is one step of an entry script. The variant set is closed:
// Text, Enter, Continue, Select, and Custom.
type Command interface {
	command()
}

// Text prints one fixed line.
type Text struct {
	Line string
}

// Enter moves the session to a named area.
type Enter struct {
	AreaID string
}

// Continue does nothing. It exists to give a Select a harmless branch.
type Continue struct{}

// Option is one selectable branch of a Select.
type Option struct {
	Text string
	Next Command
}

// Select prints its prompt plus numbered options, then suspends the
// engine until input picks a branch.
type Select struct {
	Prompt  string
	Options []Option
}

// Custom wraps an effect run against the session. Lines it returns are
// printed. Loaded scripts and the quit farewell use this variant.
type Custom struct {
	Name   string
	Effect func(Env) []string
}

func (*Text) command()     {}
func (*Enter) command()    {}
func (*Continue) command() {}
func (*Select) command()   {}
func (*Custom) command()   {}

// Render returns the prompt followed by the numbered options, the way
// the player sees them.
func (s *Select) Render() []string {
	lines := make([]string, 0, len(s.Options)+1)
	lines = append(lines, s.Prompt)
	for i, opt := range s.Options {
		lines = append(lines, fmt.Sprintf("%d: %s", i+1, opt.Text))
	}
	return lines
}

// Resolve matches input against the options, by 1-based number or
// case-insensitive text, and returns the chosen follow-up command.
// Unmatched input returns (nil, false) and the select stays open.
func (s *Select) Resolve(input string) (Command, bool) {
	for i, opt := range s.Options {
		if world.MatchToken(input, i+1, opt.Text) {
			return opt.Next, true
		}
	}
	return nil, false
}
