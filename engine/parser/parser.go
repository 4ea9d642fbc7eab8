// Package parser turns a raw input line into a verb and its arguments.
package parser

import "strings"

// Input is a tokenized player command line.
type Input struct {
	Verb string
	Args []string
}

// Parse splits a line on whitespace, dropping empty tokens. The first
// token lower-cased is the verb; the rest stay as typed and become the
// positional arguments.
func Parse(line string) Input {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Input{}
	}
	in := Input{Verb: strings.ToLower(tokens[0])}
	if len(tokens) > 1 {
		in.Args = tokens[1:]
	}
	return in
}

// SplitFrom splits an argument list at the first "from" into a target
// phrase and a source phrase, both space-joined. ok is false when the
// list has no "from"; target is then the whole argument list.
func SplitFrom(args []string) (target, source string, ok bool) {
	for i, a := range args {
		if strings.EqualFold(a, "from") {
			return strings.Join(args[:i], " "), strings.Join(args[i+1:], " "), true
		}
	}
	return strings.Join(args, " "), "", false
}
