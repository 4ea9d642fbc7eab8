// Package cli drives an engine session over a line-oriented terminal.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nberg/fable/engine"
)

// Terminal is the surface a session talks to.
type Terminal interface {
	// Prompt shows the input marker without ending the line.
	Prompt()
	// ReadLine blocks for one line of input.
	ReadLine() (string, error)
	// WriteLine prints one line of output.
	WriteLine(string)
}

// Console is a Terminal over a reader/writer pair.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsole wraps in and out as a terminal.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{scanner: bufio.NewScanner(in), out: out}
}

func (c *Console) Prompt() {
	fmt.Fprint(c.out, "> ")
}

func (c *Console) ReadLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}

func (c *Console) WriteLine(line string) {
	fmt.Fprintln(c.out, line)
}

// Session runs one engine over one terminal until the story finishes
// or input runs out.
type Session struct {
	Engine    *engine.Engine
	Term      Terminal
	EchoInput bool // echo each fed line (script playback transcripts)
}

// NewSession wires an engine to a terminal.
func NewSession(eng *engine.Engine, term Terminal) *Session {
	return &Session{Engine: eng, Term: term}
}

// Run loops tick, write, and on demand prompt, read, feed. It returns
// nil once the session finishes and the read error, io.EOF included,
// when input ends first.
func (s *Session) Run() error {
	for {
		lines, status := s.Engine.Tick()
		s.write(lines)
		if status == engine.Finished {
			return nil
		}
		if status != engine.AwaitingInput {
			continue
		}
		line, err := s.read()
		if err != nil {
			return err
		}
		out, _ := s.Engine.Feed(line)
		s.write(out)
	}
}

// read prompts until it has a line worth feeding. Blank lines re-prompt
// and lines starting with # are playback comments.
func (s *Session) read() (string, error) {
	for {
		s.Term.Prompt()
		line, err := s.Term.ReadLine()
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if s.EchoInput {
			s.Term.WriteLine(line)
		}
		return line, nil
	}
}

func (s *Session) write(lines []string) {
	for _, line := range lines {
		s.Term.WriteLine(line)
	}
}
