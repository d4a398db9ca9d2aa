package token

// The parser walks over one of these. The position starts before the first token, so the
// first call to Next moves to the first token.
type TokenizedCodeChunk struct {
	position int
	code     []Token
}

func NewCodeChunk(code []Token) *TokenizedCodeChunk {
	return &TokenizedCodeChunk{
		position: -1,
		code:     code,
	}
}

// Advances and reports whether there was anything to advance to.
func (tcc *TokenizedCodeChunk) Next() bool {
	if tcc.position+1 < len(tcc.code) {
		tcc.position++
		return true
	}
	tcc.position = len(tcc.code)
	return false
}

// Past the end of the chunk we get an EOF token positioned on the last real token, for the
// benefit of error messages.
func (tcc *TokenizedCodeChunk) CurrentToken() Token {
	if tcc.position >= 0 && tcc.position < len(tcc.code) {
		return tcc.code[tcc.position]
	}
	pos := Position{}
	if len(tcc.code) > 0 {
		pos = tcc.code[len(tcc.code)-1].Position
	}
	return Token{Type: EOF, Literal: "EOF", Position: pos}
}
