package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/lmorg/readline"

	"github.com/tim-hardcastle/wordscript/source/ast"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/text"
	"github.com/tim-hardcastle/wordscript/source/ws"
)

// Reads lines from the terminal and hands them to the service until told to quit.
func Start(sv *ws.Service, out io.Writer) {
	rline := readline.NewInstance()
	rline.TabCompleter = completer(sv)
	rline.SetPrompt(text.PROMPT)
	fmt.Fprint(out, text.Logo())
	for {
		line, e := rline.Readline()
		if e != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := Do(sv, line, out); quit {
			return
		}
	}
}

// Does what the REPL does with one line: a line starting with ':' is a command, and anything
// else is code to run. Returns true if the line asked the REPL to quit.
func Do(sv *ws.Service, line string, out io.Writer) bool {
	if strings.HasPrefix(line, ":") {
		return command(sv, line, out)
	}
	val, e := sv.Do(line)
	if e != nil {
		fmt.Fprint(out, sv.ErrorReport(e))
		return false
	}
	fmt.Fprintln(out, sv.Describe(val))
	return false
}

func command(sv *ws.Service, line string, out io.Writer) bool {
	verb, rest, _ := strings.Cut(line, " ")
	args, e := shlex.Split(rest)
	if e != nil {
		fmt.Fprintln(out, text.ERROR+e.Error())
		return false
	}
	switch verb {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(out, text.REPL_HELP)
	case ":tokens":
		toks, e := sv.Tokens(rest)
		if e != nil {
			fmt.Fprint(out, sv.ErrorReport(e))
			return false
		}
		for _, tok := range toks {
			fmt.Fprintln(out, text.BULLET+tok.String())
		}
	case ":tree":
		b, e := sv.Parse(rest, ws.REPL_SOURCE)
		if e != nil {
			fmt.Fprint(out, sv.ErrorReport(e))
			return false
		}
		fmt.Fprint(out, ast.Debug(b, sv.Registry()))
	case ":load":
		if len(args) != 1 {
			fmt.Fprintln(out, text.ERROR+"':load' takes the name of one file")
			return false
		}
		val, e := sv.RunFile(args[0])
		if e != nil {
			fmt.Fprint(out, sv.ErrorReport(e))
			return false
		}
		fmt.Fprintln(out, sv.Describe(val))
	case ":vars":
		for _, name := range sv.VariableNames() {
			val, _ := sv.GetVariable(name)
			fmt.Fprintln(out, text.BULLET+name+" : "+sv.TypeName(val.T)+" = "+sv.Describe(val))
		}
	case ":overloads":
		for _, name := range args {
			overloads := sv.Registry().Overloads(name)
			if len(overloads) == 0 {
				fmt.Fprintln(out, text.BULLET+"nothing is registered as "+text.Emph(name))
			}
			for _, sig := range overloads {
				fmt.Fprintln(out, text.BULLET+sig)
			}
		}
	case ":why":
		fmt.Fprint(out, text.Pretty(sv.Why(), 2, 92))
	case ":trace":
		for _, name := range settings.Trace(args...) {
			fmt.Fprintln(out, text.ERROR+"there is nothing to trace called "+text.Emph(name))
		}
	default:
		fmt.Fprintln(out, text.ERROR+"unknown command "+text.Emph(verb)+", try ':help'")
	}
	return false
}

// Completes the word under the cursor from the names of the registered functions.
func completer(sv *ws.Service) func(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	return func(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
		start := pos
		for start > 0 && line[start-1] != ' ' {
			start--
		}
		word := string(line[start:pos])
		suggestions := []string{}
		if word == "" {
			return word, suggestions, nil, readline.TabDisplayGrid
		}
		for _, name := range sv.Registry().FunctionNames() {
			if strings.HasPrefix(name, word) {
				suggestions = append(suggestions, name[len(word):])
			}
		}
		return word, suggestions, nil, readline.TabDisplayGrid
	}
}
