// Fable plays XML adventure documents in the terminal.
// Usage: fable [--version] [--plain] [--script <file>] <adventure-file>
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nberg/fable/cli"
	"github.com/nberg/fable/engine"
	"github.com/nberg/fable/loader"
	"github.com/nberg/fable/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	var file string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("fable %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if file == "" {
				file = args[i]
			}
		}
	}

	if file == "" {
		fmt.Fprintf(os.Stderr, "Usage: fable [--version] [--plain] [--script <file>] <adventure-file>\n")
		os.Exit(1)
	}

	w, story, err := loader.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading adventure: %v\n", err)
		os.Exit(1)
	}

	title := w.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	eng := engine.New(w, story)

	// Script mode: feed commands from the file, echoing each one.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		s := cli.NewSession(eng, cli.NewConsole(f, os.Stdout))
		s.EchoInput = true
		runSession(s)
		return
	}

	// Use the plain CLI if asked for or when stdout is not a terminal.
	if plain || !isTerminal() {
		runSession(cli.NewSession(eng, cli.NewConsole(os.Stdin, os.Stdout)))
		return
	}

	if err := tui.Run(eng, title); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runSession runs a line session to its end. Input running out is a
// normal way to stop.
func runSession(s *cli.Session) {
	if err := s.Run(); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal reports whether stdout is a terminal rather than a pipe
// or file.
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
