package script

import "fmt"

// Entry is one scripted scene: an id and the ordered commands it runs.
// Immutable once built.
type Entry struct {
	id       string
	commands []Command
}

// NewEntry builds an entry over its command sequence.
func NewEntry(id string, commands []Command) *Entry {
	return &Entry{id: id, commands: commands}
}

// ID returns the entry's id.
func (e *Entry) ID() string { return e.id }

// CommandCount returns how many commands the entry holds.
func (e *Entry) CommandCount() int { return len(e.commands) }

// Command returns the command at 0-based position i. Callers must stay
// below CommandCount; indexing past the end panics.
func (e *Entry) Command(i int) Command {
	if i < 0 || i >= len(e.commands) {
		panic(fmt.Sprintf("script: entry %q has no command %d", e.id, i))
	}
	return e.commands[i]
}

// Story is the entry lookup table plus the configured start entry.
type Story struct {
	entries map[string]*Entry
	start   string
}

// NewStory returns an empty story that begins at the given entry id.
func NewStory(start string) *Story {
	return &Story{entries: make(map[string]*Entry), start: start}
}

// Add registers an entry under its id.
func (s *Story) Add(e *Entry) { s.entries[e.id] = e }

// Entry returns the entry with the given id, or nil if unknown.
func (s *Story) Entry(id string) *Entry { return s.entries[id] }

// Entries returns every entry in the story, in no particular order.
func (s *Story) Entries() []*Entry {
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// StartID returns the configured start entry id.
func (s *Story) StartID() string { return s.start }

// Start returns the entry the story begins at, or nil if it is missing.
func (s *Story) Start() *Entry { return s.entries[s.start] }
