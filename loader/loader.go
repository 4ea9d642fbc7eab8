// Package loader reads an adventure document into a world and a story.
// Loading is two-pass: the first pass registers every item, area, and
// entry id, the second populates area bodies, because areas may refer
// to siblings declared later in the document. Structural problems are
// collected and fail the load as one descriptive error.
package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/nberg/fable/script"
	"github.com/nberg/fable/world"
)

// Load reads and validates one adventure file.
func Load(path string) (*world.World, *script.Story, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return build(doc)
}

// LoadBytes reads and validates an adventure document held in memory.
func LoadBytes(data []byte) (*world.World, *script.Story, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, nil, fmt.Errorf("parsing adventure document: %w", err)
	}
	return build(doc)
}

// builder carries the halves of a load in progress.
type builder struct {
	w     *world.World
	story *script.Story
	host  *scriptHost
	ve    *ValidationError
}

func build(doc *etree.Document) (*world.World, *script.Story, error) {
	root := doc.SelectElement("adventure")
	if root == nil {
		return nil, nil, fmt.Errorf("document has no <adventure> root element")
	}

	b := &builder{
		w:     world.New(),
		story: script.NewStory(root.SelectAttrValue("start", "1")),
		ve:    &ValidationError{},
	}
	b.w.Title = root.SelectAttrValue("name", "")

	// First pass: register ids.
	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "item":
			b.registerItem(el)
		case "area":
			b.registerArea(el)
		case "entry":
			b.registerEntry(el)
		default:
			b.warnf("ignoring unknown element <%s>", el.Tag)
		}
	}

	// Second pass: area bodies, now that every sibling id is known.
	for _, el := range root.ChildElements() {
		if el.Tag == "area" {
			b.populateArea(el)
		}
	}

	b.validate()

	if len(b.ve.Errors) > 0 {
		return nil, nil, b.ve
	}
	return b.w, b.story, nil
}

// scripts returns the document's Lua host, creating it on first use so
// script-free documents never start a VM.
func (b *builder) scripts() *scriptHost {
	if b.host == nil {
		b.host = newScriptHost()
	}
	return b.host
}

func (b *builder) registerItem(el *etree.Element) {
	id := el.SelectAttrValue("id", "")
	if id == "" {
		b.errf("item element missing id attribute")
		return
	}
	if b.w.FindItem(id) != nil {
		b.errf("duplicate item id %q", id)
		return
	}
	b.w.Items[id] = &world.Item{
		ID:          id,
		Name:        el.SelectAttrValue("name", id),
		Description: el.SelectAttrValue("desc", ""),
	}
}

func (b *builder) registerArea(el *etree.Element) {
	id := el.SelectAttrValue("id", "")
	if id == "" {
		b.errf("area element missing id attribute")
		return
	}
	if b.w.FindArea(id) != nil {
		b.errf("duplicate area id %q", id)
		return
	}
	b.w.Areas[id] = &world.Area{
		ID:          id,
		Name:        el.SelectAttrValue("name", id),
		Description: el.SelectAttrValue("desc", ""),
	}
}

func (b *builder) registerEntry(el *etree.Element) {
	id := el.SelectAttrValue("id", "")
	if id == "" {
		b.errf("entry element missing id attribute")
		return
	}
	if b.story.Entry(id) != nil {
		b.errf("duplicate entry id %q", id)
		return
	}
	b.story.Add(script.NewEntry(id, b.commands(id, el)))
}

// commands builds the command list declared by el's children, in
// document order. Select options nest further commands, so the walk
// recurses. Tags outside the command vocabulary contribute no command;
// an "id" child is an attribute echo some documents carry, never a
// command.
func (b *builder) commands(entryID string, el *etree.Element) []script.Command {
	var cmds []script.Command
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "id":
		case "text":
			cmds = append(cmds, &script.Text{Line: strings.TrimSpace(child.Text())})
		case "enter":
			cmds = append(cmds, &script.Enter{AreaID: child.SelectAttrValue("area", "")})
		case "select":
			cmds = append(cmds, b.selectCommand(entryID, child))
		case "script":
			cmd, err := b.scripts().bind(entryID, child.Text())
			if err != nil {
				b.errf("%v", err)
				continue
			}
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// selectCommand builds a Select from its option children. An option
// carries at most one follow-up command; an option with no command
// resolves to a Continue.
func (b *builder) selectCommand(entryID string, el *etree.Element) *script.Select {
	s := &script.Select{Prompt: el.SelectAttrValue("text", "")}
	for _, child := range el.ChildElements() {
		if child.Tag != "option" {
			continue
		}
		name := child.SelectAttrValue("name", "")
		if name == "" {
			b.errf("entry %q: select option missing name attribute", entryID)
			continue
		}
		opt := script.Option{Text: name, Next: &script.Continue{}}
		switch next := b.commands(entryID, child); {
		case len(next) == 1:
			opt.Next = next[0]
		case len(next) > 1:
			b.errf("entry %q: select option %q holds %d commands, want at most one", entryID, name, len(next))
		}
		s.Options = append(s.Options, opt)
	}
	return s
}

func (b *builder) populateArea(el *etree.Element) {
	a := b.w.FindArea(el.SelectAttrValue("id", ""))
	if a == nil {
		// Registration already recorded what is wrong.
		return
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "contains":
			b.addContents(fmt.Sprintf("area %q", a.ID), &a.Items, child)
		case "connects":
			b.addConnection(a, child)
		case "prop":
			b.addProp(a, child)
		default:
			b.warnf("area %q: ignoring unknown element <%s>", a.ID, child.Tag)
		}
	}
}

func (b *builder) addProp(a *world.Area, el *etree.Element) {
	p := &world.Prop{
		Name:        el.SelectAttrValue("name", ""),
		Description: el.SelectAttrValue("desc", ""),
	}
	if p.Name == "" {
		b.errf("area %q: prop missing name attribute", a.ID)
		return
	}
	for _, child := range el.ChildElements() {
		if child.Tag == "contains" {
			b.addContents(fmt.Sprintf("prop %q in area %q", p.Name, a.ID), &p.Container, child)
		}
	}
	a.Props = append(a.Props, p)
}

// addContents resolves one contains element into c. The ammount
// attribute (spelled as the documents spell it) defaults to 1 and must
// be a positive integer.
func (b *builder) addContents(where string, c *world.Container, el *etree.Element) {
	itemID := el.SelectAttrValue("item", "")
	it := b.w.FindItem(itemID)
	if it == nil {
		b.errf("%s: contains unknown item %q", where, itemID)
		return
	}
	amount := 1
	if raw := el.SelectAttrValue("ammount", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			b.errf("%s: item %q has bad ammount %q", where, itemID, raw)
			return
		}
		amount = n
	}
	c.Add(it, amount)
}

// addConnection resolves one connects element. Only passages start
// open; a missing type reads as a passage.
func (b *builder) addConnection(a *world.Area, el *etree.Element) {
	to := el.SelectAttrValue("to", "")
	target := b.w.FindArea(to)
	if target == nil {
		b.errf("area %q: connects to unknown area %q", a.ID, to)
		return
	}
	dir := world.Direction(strings.ToLower(el.SelectAttrValue("dir", "")))
	if dir == "" {
		b.errf("area %q: connects to %q missing dir attribute", a.ID, to)
		return
	}
	kind := el.SelectAttrValue("type", "passage")
	a.Connections = append(a.Connections, &world.Connection{
		To:        target,
		Direction: dir,
		Kind:      kind,
		Open:      kind == "passage",
		Key:       el.SelectAttrValue("key", ""),
	})
}
