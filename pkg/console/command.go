package console

import "strings"

// CommandKind identifies a console command.
type CommandKind int

const (
	// CommandUnknown is any line that is not a command; it shows the help.
	CommandUnknown CommandKind = iota

	// CommandQuit ends the console.
	CommandQuit

	// CommandReload rebuilds the session from the configured paths.
	CommandReload

	// CommandFind runs a pattern query.
	CommandFind
)

// Command is one classified input line.
type Command struct {
	Kind CommandKind

	// Pattern is the query text of a find command, verbatim.
	Pattern string
}

// Classify maps an input line to a command. Lines are matched exactly:
// surrounding spaces make a line unknown, and a find command keeps every
// character after "find ".
func Classify(line string) Command {
	switch line {
	case "quit":
		return Command{Kind: CommandQuit}
	case "reload!":
		return Command{Kind: CommandReload}
	}

	if rest, ok := strings.CutPrefix(line, "find "); ok && rest != "" {
		return Command{Kind: CommandFind, Pattern: rest}
	}

	return Command{Kind: CommandUnknown}
}
