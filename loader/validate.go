package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nberg/fable/script"
	"github.com/nberg/fable/world"
)

// ValidationError collects every structural problem in a document so
// authors see them all at once instead of one per load.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("adventure validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (b *builder) errf(format string, args ...any) {
	b.ve.Errors = append(b.ve.Errors, fmt.Sprintf(format, args...))
}

func (b *builder) warnf(format string, args ...any) {
	b.ve.Warnings = append(b.ve.Warnings, fmt.Sprintf(format, args...))
}

// validate runs the cross-reference checks that need the whole document
// built: the start entry, connection keys and directions, and the areas
// entries enter. Warnings go to stderr; errors fail the load.
func (b *builder) validate() {
	if b.story.Start() == nil {
		b.errf("start entry %q is not defined", b.story.StartID())
	}

	for _, a := range b.w.Areas {
		seen := map[world.Direction]bool{}
		for _, c := range a.Connections {
			if seen[c.Direction] {
				b.errf("area %q has two connections [%s]", a.ID, c.Direction)
			}
			seen[c.Direction] = true
			if c.Key != "" && b.w.FindItem(c.Key) == nil {
				b.errf("area %q: connection [%s] needs unknown key item %q", a.ID, c.Direction, c.Key)
			}
		}
	}

	for _, entry := range b.story.Entries() {
		for i := 0; i < entry.CommandCount(); i++ {
			b.checkCommand(entry.ID(), entry.Command(i))
		}
	}

	for _, w := range b.ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// checkCommand verifies one command's references, descending into the
// branches of a select.
func (b *builder) checkCommand(entryID string, cmd script.Command) {
	switch c := cmd.(type) {
	case *script.Enter:
		if b.w.FindArea(c.AreaID) == nil {
			b.errf("entry %q: enter names unknown area %q", entryID, c.AreaID)
		}
	case *script.Select:
		for _, opt := range c.Options {
			if opt.Next != nil {
				b.checkCommand(entryID, opt.Next)
			}
		}
	}
}
