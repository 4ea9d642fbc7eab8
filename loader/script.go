package loader

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/nberg/fable/script"
	lua "github.com/yuin/gopher-lua"
)

// opcodeLimit caps the Lua opcodes a single chunk execution may spend.
// A runaway chunk exhausts it and aborts; well-behaved scripts never
// come close.
const opcodeLimit = 1_000_000

// scriptHost owns the shared sandboxed Lua state every script command
// of one document runs on. The engine is single-threaded, so one state
// and one active env are enough.
type scriptHost struct {
	L     *lua.LState
	env   script.Env
	lines []string
}

func newScriptHost() *scriptHost {
	h := &scriptHost{}
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	h.L = L
	h.registerAPI()
	return h
}

// openSafeLibs opens only the safe subset of the Lua standard library.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox strips the globals that reach outside the session. Output
// goes through say, so print goes too.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"require", "collectgarbage", "print",
	} {
		L.SetGlobal(name, lua.LNil)
	}
}

// registerAPI exposes the session surface to scripts. Each function
// works against the env active during the current run.
func (h *scriptHost) registerAPI() {
	L := h.L
	L.SetGlobal("say", L.NewFunction(func(L *lua.LState) int {
		h.lines = append(h.lines, L.CheckString(1))
		return 0
	}))
	L.SetGlobal("enter", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(h.env.EnterArea(L.CheckString(1))))
		return 1
	}))
	L.SetGlobal("give", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(h.env.GiveItem(L.CheckString(1), L.OptInt(2, 1))))
		return 1
	}))
	L.SetGlobal("take", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(h.env.TakeItem(L.CheckString(1), L.OptInt(2, 1))))
		return 1
	}))
	L.SetGlobal("has", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(h.env.HasItem(L.CheckString(1))))
		return 1
	}))
	L.SetGlobal("play", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(h.env.PlayEntry(L.CheckString(1))))
		return 1
	}))
	L.SetGlobal("finish", L.NewFunction(func(L *lua.LState) int {
		h.env.Finish()
		return 0
	}))
}

// bind compiles one script chunk and wraps it as a Custom command.
// Compile errors are load errors.
func (h *scriptHost) bind(entryID, src string) (*script.Custom, error) {
	fn, err := h.L.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("entry %q: compiling script: %w", entryID, err)
	}
	return &script.Custom{
		Name: "script:" + entryID,
		Effect: func(env script.Env) []string {
			return h.run(fn, env)
		},
	}, nil
}

// run executes a compiled chunk under a fresh opcode budget, so an
// aborted chunk never starves the scripts that run after it. Execution
// errors become one system line in the output, never a crash.
func (h *scriptHost) run(fn *lua.LFunction, env script.Env) []string {
	h.env = env
	h.lines = nil
	h.L.SetContext(newOpcodeBudget(opcodeLimit))
	err := h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	out := h.lines
	h.env = nil
	h.lines = nil
	if err != nil {
		// Keep the message, drop the Lua traceback lines.
		msg := err.Error()
		if i := strings.Index(msg, "\n"); i >= 0 {
			msg = msg[:i]
		}
		out = append(out, fmt.Sprintf("[script error: %s]", msg))
	}
	return out
}

// opcodeBudget is a context that cancels itself once Done has been
// consulted limit times. The Lua VM checks Done on every opcode, which
// turns the budget into an opcode ceiling for one execution.
type opcodeBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func newOpcodeBudget(limit int64) *opcodeBudget {
	ctx, cancel := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: ctx, cancel: cancel}
	b.left.Store(limit)
	return b
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}
