// Package engine interprets a loaded adventure one tick at a time. A
// tick runs one queued command, one scripted command, or asks the host
// for a line of input; the engine itself never blocks and never writes,
// it hands lines back to whoever drives it.
package engine

import (
	"fmt"
	"strings"

	"github.com/nberg/fable/script"
	"github.com/nberg/fable/world"
)

// Status tells the host what the engine needs next.
type Status int

const (
	// Running means more work remains; tick again.
	Running Status = iota
	// AwaitingInput means the engine needs one line, either for a
	// suspended select or as free-text input.
	AwaitingInput
	// Finished means the session ended through the quit path.
	Finished
)

// Session is the mutable per-run state: where the player is, what they
// carry, the direction memory behind "go back", and the finished flag.
type Session struct {
	Area     *world.Area
	Bag      world.Container
	LastMove world.Direction
	Finished bool
}

// Engine drives one adventure session over a loaded world and story.
type Engine struct {
	World   *world.World
	Story   *script.Story
	Session *Session

	entry   *script.Entry
	cursor  int
	queue   []script.Command
	pending *script.Select
}

// New builds an engine over a loaded world and story, reset and ready
// to tick.
func New(w *world.World, s *script.Story) *Engine {
	e := &Engine{World: w, Story: s}
	e.Reset()
	return e
}

// Reset starts the session over: a fresh bag and position, the story's
// start entry at its first command, queue and suspension cleared.
// Changes already made to the world itself (moved items, opened
// connections) survive a reset.
func (e *Engine) Reset() {
	e.Session = &Session{}
	e.entry = e.Story.Start()
	e.cursor = 0
	e.queue = nil
	e.pending = nil
}

// Tick performs one unit of progress. Work is taken in a fixed order:
//
//  1. A finished session reports Finished and nothing else.
//  2. A suspended select waits for Feed.
//  3. The queue runs one command.
//  4. The current entry runs one command and the cursor advances.
//  5. Nothing left: the engine asks for free-text input.
//
// Queued commands therefore always run before the script resumes, and
// free-text input is only read once both are exhausted.
func (e *Engine) Tick() ([]string, Status) {
	switch {
	case e.Session.Finished:
		return nil, Finished
	case e.pending != nil:
		return nil, AwaitingInput
	case len(e.queue) > 0:
		cmd := e.queue[0]
		e.queue = e.queue[1:]
		return e.execute(cmd)
	case e.entry != nil && e.cursor < e.entry.CommandCount():
		cmd := e.entry.Command(e.cursor)
		e.cursor++
		return e.execute(cmd)
	default:
		return nil, AwaitingInput
	}
}

// Feed hands the engine the line it asked for. A suspended select
// consumes it first: a matching option enqueues its follow-up for a
// later tick and lifts the suspension, anything else keeps the select
// suspended. Without a suspension the line is free-text input.
func (e *Engine) Feed(line string) ([]string, Status) {
	if e.Session.Finished {
		return nil, Finished
	}
	line = strings.TrimSpace(line)
	if e.pending != nil {
		next, ok := e.pending.Resolve(line)
		if !ok {
			return nil, AwaitingInput
		}
		e.pending = nil
		e.push(next)
		return nil, Running
	}
	return e.freeText(line), Running
}

// execute runs a single command and reports the follow-on status.
func (e *Engine) execute(cmd script.Command) ([]string, Status) {
	switch c := cmd.(type) {
	case *script.Text:
		return []string{c.Line}, Running
	case *script.Enter:
		if !e.EnterArea(c.AreaID) {
			panic(fmt.Sprintf("engine: enter names unknown area %q", c.AreaID))
		}
		return nil, Running
	case *script.Continue:
		return nil, Running
	case *script.Select:
		e.pending = c
		return c.Render(), AwaitingInput
	case *script.Custom:
		return c.Effect(e), Running
	}
	panic(fmt.Sprintf("engine: unknown command %T", cmd))
}

func (e *Engine) push(cmd script.Command) {
	e.queue = append(e.queue, cmd)
}

// EnterArea implements script.Env.
func (e *Engine) EnterArea(id string) bool {
	a := e.World.FindArea(id)
	if a == nil {
		return false
	}
	e.Session.Area = a
	return true
}

// GiveItem implements script.Env.
func (e *Engine) GiveItem(id string, amount int) bool {
	it := e.World.FindItem(id)
	if it == nil {
		return false
	}
	e.Session.Bag.Add(it, amount)
	return true
}

// TakeItem implements script.Env.
func (e *Engine) TakeItem(id string, amount int) int {
	it := e.World.FindItem(id)
	if it == nil {
		return 0
	}
	return e.Session.Bag.Remove(it, amount)
}

// HasItem implements script.Env.
func (e *Engine) HasItem(id string) bool {
	it := e.World.FindItem(id)
	return it != nil && e.Session.Bag.Amount(it) > 0
}

// PlayEntry implements script.Env.
func (e *Engine) PlayEntry(id string) bool {
	entry := e.Story.Entry(id)
	if entry == nil {
		return false
	}
	e.entry = entry
	e.cursor = 0
	return true
}

// Finish implements script.Env.
func (e *Engine) Finish() {
	e.Session.Finished = true
}
