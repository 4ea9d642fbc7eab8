package engine

import (
	"fmt"
	"strings"

	"github.com/nberg/fable/engine/parser"
	"github.com/nberg/fable/engine/resolve"
	"github.com/nberg/fable/script"
	"github.com/nberg/fable/world"
)

// freeText runs one round of free-text processing. No failure here ever
// ends the session; everything comes back as lines.
func (e *Engine) freeText(line string) []string {
	in := parser.Parse(line)
	switch in.Verb {
	case "":
		return nil
	case "restart":
		e.Reset()
		return nil
	case "quit":
		e.push(quitSelect())
		return nil
	case "items":
		return e.listBag()
	case "take":
		return e.take(in.Args)
	case "drop":
		return e.drop(in.Args)
	case "open":
		return e.open(in.Args)
	case "go":
		return e.move(in.Args)
	case "examine":
		return e.examine(in.Args)
	case "look":
		return e.look()
	default:
		return []string{"I do not understand that."}
	}
}

// quitSelect builds the yes/no confirmation. Yes prints the farewell
// and finishes the session on the following tick; no carries on.
func quitSelect() *script.Select {
	return &script.Select{
		Prompt: "Are you sure?",
		Options: []script.Option{
			{Text: "yes", Next: &script.Custom{
				Name: "farewell",
				Effect: func(env script.Env) []string {
					env.Finish()
					return []string{"Good bye!"}
				},
			}},
			{Text: "no", Next: &script.Continue{}},
		},
	}
}

func (e *Engine) look() []string {
	a := e.Session.Area
	if a == nil {
		return []string{"You are nowhere."}
	}
	lines := []string{a.Description}
	for i, p := range a.Props {
		lines = append(lines, fmt.Sprintf("%d: %s", i+1, p.Name))
	}
	for _, c := range a.Connections {
		lines = append(lines, fmt.Sprintf("There is %s %s [%s].", article(c.Kind), c.Kind, c.Direction))
	}
	for _, s := range a.Items.Stacks() {
		if s.Amount == 1 {
			lines = append(lines, fmt.Sprintf("There is %s %s.", article(s.Item.Name), s.Item.Name))
		} else {
			lines = append(lines, fmt.Sprintf("There are %d %s.", s.Amount, s.Item.Name))
		}
	}
	return lines
}

func (e *Engine) listBag() []string {
	if e.Session.Bag.Empty() {
		return []string{"You carry nothing."}
	}
	return append([]string{"You carry:"}, stackLines(e.Session.Bag.Stacks())...)
}

func (e *Engine) take(args []string) []string {
	a := e.Session.Area
	if a == nil {
		return []string{"You are nowhere."}
	}
	target, source, hasFrom := parser.SplitFrom(args)
	if target == "" {
		return []string{"Take what?"}
	}
	var t resolve.Target
	if hasFrom {
		src := resolve.Source(a, &e.Session.Bag, source)
		if src == nil {
			return []string{"Can not take that."}
		}
		t = resolve.InContainer(src, target)
	} else {
		t = resolve.InArea(a, target)
	}
	if t.Item == nil {
		// A prop match lands here too: props are not portable.
		return []string{"Can not take that."}
	}
	t.Source.MoveTo(&e.Session.Bag, t.Item, 1)
	return []string{fmt.Sprintf("You take the %s.", t.Item.Name)}
}

func (e *Engine) drop(args []string) []string {
	a := e.Session.Area
	if a == nil {
		return []string{"You are nowhere."}
	}
	target := strings.Join(args, " ")
	if target == "" {
		return []string{"Drop what?"}
	}
	t := resolve.InContainer(&e.Session.Bag, target)
	if t.Item == nil {
		return []string{"Can not drop that."}
	}
	e.Session.Bag.MoveTo(&a.Items, t.Item, 1)
	return []string{fmt.Sprintf("You drop the %s.", t.Item.Name)}
}

func (e *Engine) examine(args []string) []string {
	a := e.Session.Area
	if a == nil {
		return []string{"You are nowhere."}
	}
	target, source, hasFrom := parser.SplitFrom(args)
	if target == "" {
		return []string{"Examine what?"}
	}
	if hasFrom {
		src := resolve.Source(a, &e.Session.Bag, source)
		if src == nil {
			return []string{"Can not examine that."}
		}
		t := resolve.InContainer(src, target)
		if t.Item == nil {
			return []string{"Can not examine that."}
		}
		return []string{t.Item.Description}
	}
	t := resolve.InArea(a, target)
	switch {
	case t.Item != nil:
		return []string{t.Item.Description}
	case t.Prop != nil:
		return describeProp(t.Prop)
	}
	return []string{"Can not examine that."}
}

func (e *Engine) move(args []string) []string {
	a := e.Session.Area
	if a == nil {
		return []string{"You are nowhere."}
	}
	if len(args) == 0 {
		return []string{"Go where?"}
	}
	token := strings.ToLower(strings.Join(args, " "))
	dir := world.Direction(token)
	if token == "back" {
		dir = e.Session.LastMove.Opposite()
		if dir == "" {
			return []string{"You can not go back."}
		}
	}
	conn := a.FindConnection(dir)
	if conn == nil {
		return []string{fmt.Sprintf("You can not go [%s].", dir)}
	}
	if !conn.Open {
		return []string{fmt.Sprintf("The %s [%s] is closed.", conn.Kind, conn.Direction)}
	}
	e.Session.Area = conn.To
	e.Session.LastMove = dir
	return []string{fmt.Sprintf("You moved [%s].", dir)}
}

// open works on a connection named by its direction or, failing that,
// by its kind. A keyed connection needs the key item in the bag; keys
// are not consumed.
func (e *Engine) open(args []string) []string {
	a := e.Session.Area
	if a == nil {
		return []string{"You are nowhere."}
	}
	if len(args) == 0 {
		return []string{"Open what?"}
	}
	token := strings.Join(args, " ")
	conn := a.FindConnection(world.Direction(strings.ToLower(token)))
	if conn == nil {
		for _, c := range a.Connections {
			if strings.EqualFold(c.Kind, token) {
				conn = c
				break
			}
		}
	}
	if conn == nil {
		return []string{"Can not open that."}
	}
	if conn.Open {
		return []string{"It is already open."}
	}
	if conn.Key != "" {
		key := e.World.FindItem(conn.Key)
		if key == nil || e.Session.Bag.Amount(key) == 0 {
			return []string{"It is locked."}
		}
		conn.Open = true
		return []string{fmt.Sprintf("You unlock the %s [%s].", conn.Kind, conn.Direction)}
	}
	conn.Open = true
	return []string{fmt.Sprintf("You open the %s [%s].", conn.Kind, conn.Direction)}
}

// describeProp prints the prop's description and what sits inside it.
func describeProp(p *world.Prop) []string {
	lines := []string{p.Description}
	stacks := p.Stacks()
	if len(stacks) == 0 {
		return append(lines, "It is empty.")
	}
	return append(append(lines, "It contains:"), stackLines(stacks)...)
}

// stackLines renders container contents as a numbered listing, the
// numbering MatchToken accepts back.
func stackLines(stacks []world.Stack) []string {
	lines := make([]string, 0, len(stacks))
	for i, s := range stacks {
		if s.Amount == 1 {
			lines = append(lines, fmt.Sprintf("%d: %s", i+1, s.Item.Name))
		} else {
			lines = append(lines, fmt.Sprintf("%d: %s (x%d)", i+1, s.Item.Name, s.Amount))
		}
	}
	return lines
}

// article picks the indefinite article for a display name.
func article(name string) string {
	if name == "" {
		return "a"
	}
	switch name[0] {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return "an"
	}
	return "a"
}
