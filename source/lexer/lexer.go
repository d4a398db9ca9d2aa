package lexer

import (
	"unicode"

	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/token"
)

type lexer struct {
	runes  *RuneSupplier
	source string
	tstart token.Position // Where the token being read started.
}

func NewLexer(source, input string) *lexer {
	return &lexer{
		runes:  NewRuneSupplier([]rune(input), source),
		source: source,
	}
}

// Turns source code into tokens. Whitespace separates tokens and is otherwise discarded.
// Whether a word is a number is for the parser to decide.
func Tokenize(input, source string) ([]token.Token, error) {
	return NewLexer(source, input).Tokens()
}

func (l *lexer) Tokens() ([]token.Token, error) {
	result := []token.Token{}
	for {
		tok, ok, e := l.getToken()
		if e != nil {
			return nil, e
		}
		if !ok {
			return result, nil
		}
		result = append(result, tok)
	}
}

// Reads the next token, or reports that there isn't one.
func (l *lexer) getToken() (token.Token, bool, *err.Error) {
	l.skipWhitespace()
	if l.runes.AtEnd() {
		return token.Token{}, false, nil
	}
	l.tstart = l.runes.Position()
	ch := l.runes.CurrentRune()
	if ch == '"' || ch == '\'' {
		str, e := l.runes.ReadString(ch)
		if e != nil {
			return token.Token{}, false, e
		}
		return l.traced(token.MakeStringLiteral(str, l.tstart)), true, nil
	}
	word := l.runes.ReadWord()
	switch {
	case word == ".":
		return l.traced(token.MakeTerminator(l.tstart)), true, nil
	case word == ",":
		return l.traced(token.MakePipe(l.tstart)), true, nil
	case IsKeyword(word):
		return l.traced(token.MakeKeyword(word, l.tstart)), true, nil
	}
	return l.traced(token.MakeWord(word, l.tstart)), true, nil
}

func (l *lexer) skipWhitespace() {
	for !l.runes.AtEnd() && IsWhitespace(l.runes.CurrentRune()) {
		l.runes.Next()
	}
}

// Reads a string literal delimited by the quote mark we're sitting on, leaving the supplier
// just after the closing quote. The result excludes the quotes and has its escapes replaced.
func (runes *RuneSupplier) ReadString(quote rune) (string, *err.Error) {
	result := []rune{}
	for {
		runes.Next()
		if runes.AtEnd() {
			return "", err.CreateErr("lex/eof", runes.Position(), string(quote))
		}
		ch := runes.CurrentRune()
		if ch == quote {
			runes.Next()
			return string(result), nil
		}
		if ch == '\\' {
			escPos := runes.Position()
			runes.Next()
			if runes.AtEnd() {
				return "", err.CreateErr("lex/eof", runes.Position(), string(quote))
			}
			escaped, ok := escapes[runes.CurrentRune()]
			if !ok {
				return "", err.CreateErr("lex/escape", escPos, runes.CurrentRune())
			}
			ch = escaped
		}
		result = append(result, ch)
	}
}

var escapes = map[rune]rune{
	'n':  '\n',
	'\\': '\\',
	'b':  '\b',
	'r':  '\r',
	'\'': '\'',
	'"':  '"',
}

// Reads everything up to the next whitespace.
func (runes *RuneSupplier) ReadWord() string {
	result := []rune{}
	for !runes.AtEnd() && !IsWhitespace(runes.CurrentRune()) {
		result = append(result, runes.CurrentRune())
		runes.Next()
	}
	return string(result)
}

// A keyword is any word made entirely of uppercase letters.
func IsKeyword(word string) bool {
	if word == "" {
		return false
	}
	for _, ch := range word {
		if !(unicode.IsLetter(ch) && unicode.IsUpper(ch)) {
			return false
		}
	}
	return true
}

func IsWhitespace(ch rune) bool {
	return unicode.IsSpace(ch)
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *lexer) traced(tok token.Token) token.Token {
	if settings.SHOW_LEXER {
		settings.Log.Debugf("lexer: %v", tok)
	}
	return tok
}
