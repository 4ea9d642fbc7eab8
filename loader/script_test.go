package loader

import (
	"strings"
	"testing"

	"github.com/nberg/fable/script"
)

// fakeEnv records what a script asked the session to do.
type fakeEnv struct {
	area     string
	bag      map[string]int
	played   []string
	finished bool
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{bag: map[string]int{}}
}

func (f *fakeEnv) EnterArea(id string) bool {
	f.area = id
	return true
}

func (f *fakeEnv) GiveItem(id string, amount int) bool {
	if amount < 1 {
		return false
	}
	f.bag[id] += amount
	return true
}

func (f *fakeEnv) TakeItem(id string, amount int) int {
	have := f.bag[id]
	if amount > have {
		amount = have
	}
	f.bag[id] -= amount
	return amount
}

func (f *fakeEnv) HasItem(id string) bool { return f.bag[id] > 0 }

func (f *fakeEnv) PlayEntry(id string) bool {
	f.played = append(f.played, id)
	return true
}

func (f *fakeEnv) Finish() { f.finished = true }

// loadScript loads a document whose start entry holds just the given
// chunk and returns the compiled command.
func loadScript(t *testing.T, chunk string) *script.Custom {
	t.Helper()
	doc := `<adventure><entry id="1"><script>` + chunk + `</script></entry></adventure>`
	_, story, err := LoadBytes([]byte(doc))
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	cmd, ok := story.Start().Command(0).(*script.Custom)
	if !ok {
		t.Fatalf("command 0 is %T, want *script.Custom", story.Start().Command(0))
	}
	return cmd
}

func TestScript_DrivesSession(t *testing.T) {
	cmd := loadScript(t, `
		say("hello")
		give("coin", 2)
		if has("coin") then say("rich") end
		enter("hall")
		play("2")
	`)
	env := newFakeEnv()
	lines := cmd.Effect(env)

	if want := []string{"hello", "rich"}; len(lines) != 2 || lines[0] != want[0] || lines[1] != want[1] {
		t.Errorf("lines = %q, want %q", lines, want)
	}
	if env.area != "hall" {
		t.Errorf("area = %q, want hall", env.area)
	}
	if env.bag["coin"] != 2 {
		t.Errorf("bag holds %d coins, want 2", env.bag["coin"])
	}
	if len(env.played) != 1 || env.played[0] != "2" {
		t.Errorf("played = %v, want [2]", env.played)
	}
}

func TestScript_TakeReportsCount(t *testing.T) {
	cmd := loadScript(t, `say("took " .. take("coin", 5))`)
	env := newFakeEnv()
	env.bag["coin"] = 3
	lines := cmd.Effect(env)

	if len(lines) != 1 || lines[0] != "took 3" {
		t.Errorf("lines = %q, want [took 3]", lines)
	}
	if env.bag["coin"] != 0 {
		t.Errorf("bag holds %d coins, want 0", env.bag["coin"])
	}
}

func TestScript_Finish(t *testing.T) {
	cmd := loadScript(t, `finish()`)
	env := newFakeEnv()
	cmd.Effect(env)
	if !env.finished {
		t.Error("session should be finished")
	}
}

func TestScript_CompileErrorFailsLoad(t *testing.T) {
	doc := `<adventure><entry id="1"><script>this is not lua(</script></entry></adventure>`
	_, _, err := LoadBytes([]byte(doc))
	if err == nil {
		t.Fatal("expected a load error")
	}
	if !strings.Contains(err.Error(), `entry "1"`) {
		t.Errorf("error %q should name the entry", err)
	}
}

func TestScript_RuntimeErrorBecomesLine(t *testing.T) {
	cmd := loadScript(t, `say("before") error("boom")`)
	lines := cmd.Effect(newFakeEnv())

	if len(lines) != 2 || lines[0] != "before" {
		t.Fatalf("lines = %q, want the said line then the error line", lines)
	}
	if !strings.Contains(lines[1], "[script error:") || !strings.Contains(lines[1], "boom") {
		t.Errorf("line = %q, want a script error naming boom", lines[1])
	}
	if strings.Contains(lines[1], "\n") {
		t.Errorf("line = %q, want the traceback trimmed to one line", lines[1])
	}
}

func TestScript_SandboxBlocksEscapes(t *testing.T) {
	for _, call := range []string{`dofile("x")`, `loadstring("return 1")`, `require("os")`} {
		lines := loadScript(t, call).Effect(newFakeEnv())
		if len(lines) != 1 || !strings.Contains(lines[0], "[script error:") {
			t.Errorf("%s: lines = %q, want a script error", call, lines)
		}
	}
}

func TestScript_RunawayLoopStops(t *testing.T) {
	lines := loadScript(t, `while true do end`).Effect(newFakeEnv())
	if len(lines) != 1 || !strings.Contains(lines[0], "[script error:") {
		t.Errorf("lines = %q, want a script error", lines)
	}
}

func TestScript_RunawayDoesNotPoisonLaterScripts(t *testing.T) {
	// Both entries compile onto the document's shared Lua state.
	doc := `<adventure>
		<entry id="1"><script>while true do end</script></entry>
		<entry id="2"><script>say("ok")</script></entry>
	</adventure>`
	_, story, err := LoadBytes([]byte(doc))
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	runaway := story.Entry("1").Command(0).(*script.Custom)
	healthy := story.Entry("2").Command(0).(*script.Custom)

	lines := runaway.Effect(newFakeEnv())
	if len(lines) != 1 || !strings.Contains(lines[0], "[script error:") {
		t.Fatalf("runaway chunk returned %q, want a script error", lines)
	}
	if got := healthy.Effect(newFakeEnv()); len(got) != 1 || got[0] != "ok" {
		t.Errorf("script after the aborted one returned %q, want [ok]", got)
	}
}
