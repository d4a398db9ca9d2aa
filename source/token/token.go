package token

import "strconv"

type TokenType string

const (
	EOF = "EOF"

	WORD       = "WORD"       // add, 10, &x, DEFINE:y:int, .invoke ...
	PIPE       = "PIPE"       // ,
	TERMINATOR = "TERMINATOR" // .
	KEYWORD    = "KEYWORD"    // IN, BLOCK, ACTION, END, or any other all-caps word
	STRING     = "STRING"     // "foo", 'bar'
)

// The keywords the parser understands. The lexer classifies any all-uppercase word as a
// keyword; it is up to the parser to reject the ones it doesn't know.
const (
	IN     = "IN"
	BLOCK  = "BLOCK"
	ACTION = "ACTION"
	END    = "END"
)

// Position is where something is in the source. Lines and columns count from 1; the zero
// Position means "nowhere in particular".
type Position struct {
	Line   uint32
	Column uint32
	Source string
}

func NewPosition(source string) Position {
	return Position{Line: 1, Column: 1, Source: source}
}

// Used for things defined by the host rather than by a script.
func External() Position {
	return Position{Source: "<external>"}
}

func (pos *Position) AdvanceColumn() {
	pos.Column++
}

func (pos *Position) AdvanceLine() {
	pos.Line++
	pos.Column = 1
}

func (pos Position) IsZero() bool {
	return pos == Position{}
}

func (pos Position) String() string {
	return strconv.FormatUint(uint64(pos.Line), 10) + ":" + strconv.FormatUint(uint64(pos.Column), 10) + ":" + pos.Source
}

type Token struct {
	Type     TokenType
	Literal  string
	Position Position
}

func (tok Token) String() string {
	return strconv.Quote(tok.Literal) + ":" + string(tok.Type) + " at " + tok.Position.String()
}

func MakeWord(lit string, pos Position) Token {
	return Token{Type: WORD, Literal: lit, Position: pos}
}

func MakePipe(pos Position) Token {
	return Token{Type: PIPE, Literal: ",", Position: pos}
}

func MakeTerminator(pos Position) Token {
	return Token{Type: TERMINATOR, Literal: ".", Position: pos}
}

func MakeKeyword(lit string, pos Position) Token {
	return Token{Type: KEYWORD, Literal: lit, Position: pos}
}

func MakeStringLiteral(lit string, pos Position) Token {
	return Token{Type: STRING, Literal: lit, Position: pos}
}

func (tok Token) IsKeyword(lit string) bool {
	return tok.Type == KEYWORD && tok.Literal == lit
}
