// Package repl is the interactive "query" mode of cmd/grampiler: a readline
// loop that answers FIRST/FOLLOW/PREDICT/nullability questions against an
// already-analyzed grammar without re-invoking the CLI per query. It uses
// GNU-readline-style input the same way the teacher's interactive game
// session does (internal/input.InteractiveCommandReader).
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/grampiler/internal/collect"
	"github.com/dekarrin/grampiler/internal/grammar"
)

// Run starts the query REPL against g (already analyzed) and writes its
// output to out. It returns when the user types "quit" or sends EOF
// (Ctrl-D).
func Run(g *grammar.Grammar, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "grampiler> ",
	})
	if err != nil {
		return fmt.Errorf("repl: create readline config: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !dispatch(g, out, line) {
			return nil
		}
	}
}

// dispatch handles one line of input, returning false if the REPL should
// exit.
func dispatch(g *grammar.Grammar, out io.Writer, line string) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "quit", "exit":
		return false
	case "conflicts":
		reportConflicts(g, out)
	case "first", "follow", "predict", "nullable":
		if len(fields) < 2 {
			fmt.Fprintf(out, "usage: %s NAME\n", cmd)
			return true
		}
		reportNonTerminal(g, out, cmd, fields[1])
	case "help":
		fmt.Fprintln(out, "commands: first NAME, follow NAME, predict NAME, nullable NAME, conflicts, quit")
	default:
		fmt.Fprintf(out, "unknown command %q; type 'help' for a list\n", cmd)
	}
	return true
}

func reportNonTerminal(g *grammar.Grammar, out io.Writer, cmd, name string) {
	nt := g.NonTerminal(name)
	if nt == nil {
		fmt.Fprintf(out, "no such non-terminal %q\n", name)
		return
	}

	switch cmd {
	case "first":
		fmt.Fprintf(out, "FIRST(%s) = %s\n", name, setString(nt.FirstSet))
	case "follow":
		fmt.Fprintf(out, "FOLLOW(%s) = %s\n", name, setString(nt.FollowSet))
	case "predict":
		fmt.Fprintf(out, "PREDICT(%s) = %s\n", name, setString(nt.PredictSet))
	case "nullable":
		fmt.Fprintf(out, "nullable(%s) = %t\n", name, nt.IsNullable)
	}
}

func reportConflicts(g *grammar.Grammar, out io.Writer) {
	conflicts := grammar.DetectLLConflicts(g)
	if len(conflicts) == 0 {
		fmt.Fprintln(out, "grammar is LL(1): no conflicts")
		return
	}
	for _, c := range conflicts {
		fmt.Fprintf(out, "%s: %s\n", c.NonTerminal, collect.TextList(c.Terminals))
	}
}

func setString(s collect.StringSet) string {
	names := collect.Alphabetized(s)
	return "{" + strings.Join(names, ", ") + "}"
}
