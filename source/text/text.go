package text

// This consists of a bunch of text utilities to help in generating pretty and meaningful
// help messages, error messages, etc.

import (
	"strconv"
	"strings"

	"github.com/tim-hardcastle/wordscript/source/token"
)

const (
	VERSION = "0.2.0"
	BULLET  = "  ▪ "
	PROMPT  = "→ "
)

func ToEscapedText(s string) string {
	result := "\""
	for _, ch := range s {
		switch ch {
		case '\n':
			result = result + "\\n"
		case '\r':
			result = result + "\\r"
		case '\b':
			result = result + "\\b"
		case '\\':
			result = result + "\\\\"
		case '"':
			result = result + "\\\""
		default:
			result = result + string(ch)
		}
	}
	return result + "\""
}

func Emph(s string) string {
	return "'" + s + "'"
}

func Red(s string) string {
	return RED + s + RESET
}

func Green(s string) string {
	return GREEN + s + RESET
}

func Logo() string {
	var padding string
	if len(VERSION)%2 == 0 {
		padding = ","
	}
	titleText := " WordScript" + padding + " version " + VERSION + " "
	loveHeart := Red("♥")
	leftMargin := "  "
	bar := strings.Repeat("═", len(titleText)/2)
	logoString := "\n" +
		leftMargin + "╔" + bar + loveHeart + bar + "╗\n" +
		leftMargin + "║" + titleText + "║\n" +
		leftMargin + "╚" + bar + loveHeart + bar + "╝\n\n"
	return logoString
}

const HELP = "\nUsage: wordscript [-trace lexer,parser,eval] [-no-sql] [-no-crypto]\n" +
	"                  <command> [args]\n\n" +
	"Commands are:\n\n" +
	"  repl              Starts the REPL. This is what happens if you don't give a command.\n" +
	"  run <files>       Runs each script, concurrently, each in its own environment.\n" +
	"  watch <file>      Runs a script, and runs it again every time it changes.\n" +
	"  tokens <file>     Shows how a script is tokenized.\n" +
	"  tree <file>       Shows the validated syntax tree of a script.\n\n"

const REPL_HELP = "\nREPL commands are:\n\n" +
	"  :tokens <code>    Shows the tokens of the code.\n" +
	"  :tree <code>      Shows the validated syntax tree of the code.\n" +
	"  :load <file>      Runs a script in the REPL's environment.\n" +
	"  :vars             Lists the variables defined so far.\n" +
	"  :overloads <name> Lists the signatures registered under a name.\n" +
	"  :why              Explains the last error.\n" +
	"  :trace <names>    Traces the lexer, parser, or eval.\n" +
	"  :help             Shows this message.\n" +
	"  :quit             Leaves the REPL.\n\n"

// Describes where a position is, for error messages. Returns the empty string for the
// zero position.
func DescribePos(pos token.Position) string {
	prettySource := pos.Source
	if prettySource == "" {
		return ""
	}
	if prettySource != "REPL input" && prettySource != "<external>" {
		prettySource = "'" + prettySource + "'"
	}
	if pos.Line > 0 {
		return " at line " + strconv.FormatUint(uint64(pos.Line), 10) + ":" +
			strconv.FormatUint(uint64(pos.Column), 10) + " of " + prettySource
	}
	return " in " + prettySource
}

var (
	RESET     = "\033[0m"
	UNDERLINE = "\033[3m"
	RED       = "\033[31m"
	GREEN     = "\033[32m"
	YELLOW    = "\033[33m"
	BLUE      = "\033[34m"
	PURPLE    = "\033[35m"
	CYAN      = "\033[36m"
	GRAY      = "\033[37m"
	WHITE     = "\033[97m"

	ERROR    = Red("error") + ": "
	RT_ERROR = Red("runtime error") + ": "
	OK       = Green("OK")
)

// Wraps text to the margins, highlighting anything in '   '.
func Pretty(s string, lMargin, rMargin int) string {
	LENGTH := rMargin - lMargin
	result := ""
	for _, paragraph := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			if line != "" && len(line)+1+len(word) > LENGTH {
				result = result + strings.Repeat(" ", lMargin) + highlight(line) + "\n"
				line = ""
			}
			if line != "" {
				line = line + " "
			}
			line = line + word
		}
		result = result + strings.Repeat(" ", lMargin) + highlight(line) + "\n"
	}
	return result
}

func highlight(plainLine string) string {
	highlitLine := ""
	inQuote := false
	prevCh := ' '
	for _, ch := range plainLine {
		if ch == '\'' && !inQuote && prevCh == ' ' {
			inQuote = true
			highlitLine = highlitLine + CYAN + string(ch)
		} else if ch == '\'' && inQuote {
			inQuote = false
			highlitLine = highlitLine + string(ch) + RESET
		} else {
			highlitLine = highlitLine + string(ch)
		}
		prevCh = ch
	}
	if inQuote {
		highlitLine = highlitLine + RESET
	}
	return highlitLine
}
