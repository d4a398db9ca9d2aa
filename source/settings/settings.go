// All this does is contain in one place the switches controlling which bits of the inner
// workings of the lexer/parser/evaluator are traced, and the logger they are traced to. In a
// release the switches must all be false.

package settings

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	SHOW_LEXER  = false // Logs every token as it's made.
	SHOW_PARSER = false // Logs every statement as it's validated, with what it was bound to.
	SHOW_EVAL   = false // Logs block evaluation, including early returns.

	SHOW_TESTS = false // Says whether the tests should say what is being tested, useful if one of them crashes and we don't know which.
)

var Log = newLogger()

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	return log
}

// Turns on the named switches ("lexer", "parser", "eval") and lets their debug output
// through the logger. Returns the names it didn't recognize.
func Trace(names ...string) []string {
	unknown := []string{}
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case "lexer":
			SHOW_LEXER = true
		case "parser":
			SHOW_PARSER = true
		case "eval":
			SHOW_EVAL = true
		default:
			unknown = append(unknown, name)
		}
	}
	if SHOW_LEXER || SHOW_PARSER || SHOW_EVAL {
		Log.SetLevel(logrus.DebugLevel)
	}
	return unknown
}
