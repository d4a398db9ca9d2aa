package err

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tim-hardcastle/wordscript/source/text"
	"github.com/tim-hardcastle/wordscript/source/token"
)

type Kind int

const (
	UNKNOWN_ERROR Kind = iota
	TOKENIZATION_ERROR
	SYNTAX_ERROR
	NUMBER_LITERAL_ERROR
	TYPE_ERROR
	VARIABLE_ERROR
	BLOCK_ERROR
	REGISTRATION_ERROR
	RUNTIME_ERROR
)

var kindNames = map[Kind]string{
	UNKNOWN_ERROR:        "error",
	TOKENIZATION_ERROR:   "tokenization error",
	SYNTAX_ERROR:         "syntax error",
	NUMBER_LITERAL_ERROR: "number literal error",
	TYPE_ERROR:           "type error",
	VARIABLE_ERROR:       "variable error",
	BLOCK_ERROR:          "block error",
	REGISTRATION_ERROR:   "registration error",
	RUNTIME_ERROR:        "runtime error",
}

func (k Kind) String() string {
	return kindNames[k]
}

type ErrorCreator struct {
	Kind        Kind
	Message     func(args ...any) string
	Explanation func(args ...any) string
}

type Error struct {
	ErrorId  string
	Message  string
	Args     []any
	Position token.Position
	Trace    []token.Position
}

func (e *Error) Error() string {
	return e.Message + text.DescribePos(e.Position)
}

func (e *Error) Kind() Kind {
	if creator, ok := ErrorCreatorMap[e.ErrorId]; ok {
		return creator.Kind
	}
	return UNKNOWN_ERROR
}

// Gives the error a position if it doesn't have one yet, and returns it. Errors raised by
// the registry don't know where in the source they were provoked.
func (e *Error) Locate(pos token.Position) *Error {
	if e.Position.IsZero() {
		e.Position = pos
	}
	return e
}

func (e *Error) AddToTrace(pos token.Position) {
	e.Trace = append(e.Trace, pos)
}

// Makes an error from its identifier. An identifier which isn't in the map is itself a bug,
// and we say so rather than failing silently.
func CreateErr(errorID string, pos token.Position, args ...any) *Error {
	creator, ok := ErrorCreatorMap[errorID]
	if !ok {
		return &Error{ErrorId: "err/misdirect", Message: "couldn't find error identifier " + emph(errorID), Args: args, Position: pos}
	}
	return &Error{ErrorId: errorID, Message: creator.Message(args...), Args: args, Position: pos}
}

// Supplies the long-form explanation of an error, if there is one.
func Explain(e *Error) string {
	creator, ok := ErrorCreatorMap[e.ErrorId]
	if !ok || creator.Explanation == nil {
		return "Sorry, there is no further explanation of this error."
	}
	return creator.Explanation(e.Args...)
}

// Returns the identifier of the error if it is one of ours, and the empty string otherwise.
func Id(e error) string {
	var ours *Error
	if errors.As(e, &ours) {
		return ours.ErrorId
	}
	return ""
}

func IsKind(e error, kind Kind) bool {
	var ours *Error
	return errors.As(e, &ours) && ours.Kind() == kind
}

// Renders the line where the error happened, with a line of context either side and a caret
// under the column.
func (e *Error) Snippet(source string) string {
	if e.Position.Line == 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	lineNo := int(e.Position.Line)
	if lineNo > len(lines) {
		lineNo = len(lines)
	}
	width := len(strconv.Itoa(lineNo + 1))
	var out strings.Builder
	for i := lineNo - 1; i <= lineNo+1; i++ {
		if i < 1 || i > len(lines) {
			continue
		}
		fmt.Fprintf(&out, "%*d | %s\n", width, i, lines[i-1])
		if i == lineNo {
			col := int(e.Position.Column)
			if col < 1 {
				col = 1
			}
			fmt.Fprintf(&out, "%s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", col-1))
		}
	}
	return out.String()
}

// Describes a list of signatures one per line, for error messages.
func describeCandidates(args any) string {
	candidates, _ := args.([]string)
	if len(candidates) == 0 {
		return "none"
	}
	return "{\n  " + strings.Join(candidates, ",\n  ") + "\n}"
}

func emph(s any) string {
	if t, ok := s.(string); ok {
		s = strings.TrimSpace(t)
	}
	return fmt.Sprintf("'%v'", s)
}

func emphStr(s any) string {
	return fmt.Sprintf("%q", s)
}
