package lexer

import (
	"github.com/tim-hardcastle/wordscript/source/token"
)

// The RuneSupplier walks over the source one rune at a time and keeps track of where it is,
// so that the lexer only has to decide what the runes mean.
type RuneSupplier struct {
	code     []rune
	pos      int
	position token.Position
}

func NewRuneSupplier(code []rune, source string) *RuneSupplier {
	return &RuneSupplier{code: code, position: token.NewPosition(source)}
}

func (rs *RuneSupplier) CurrentRune() rune {
	if rs.pos < len(rs.code) {
		return rs.code[rs.pos]
	}
	return 0
}

func (rs *RuneSupplier) AtEnd() bool {
	return rs.pos >= len(rs.code)
}

func (rs *RuneSupplier) Next() {
	if rs.pos >= len(rs.code) {
		return
	}
	if rs.code[rs.pos] == '\n' {
		rs.position.AdvanceLine()
	} else {
		rs.position.AdvanceColumn()
	}
	rs.pos++
}

func (rs *RuneSupplier) Position() token.Position {
	return rs.position
}
