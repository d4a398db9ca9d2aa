package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tim-hardcastle/wordscript/source/ast"
	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/lexer"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

// The Parser turns tokens into validated nodes. Parsing and validation are one pass: each
// statement is bound to its function or variable as soon as its arguments are known, so the
// first error stops everything and there is never a partly typed tree.
type Parser struct {
	env    *ast.Environment
	tokens *token.TokenizedCodeChunk
}

func New(env *ast.Environment) *Parser {
	return &Parser{env: env}
}

func (p *Parser) Environment() *ast.Environment {
	return p.env
}

// Parses the code as a new block nested in the block the environment is in, validates the
// block, and returns it.
func (p *Parser) Parse(code, source string) (*ast.Block, error) {
	toks, e := lexer.Tokenize(code, source)
	if e != nil {
		return nil, e
	}
	return p.ParseTokens(toks, token.NewPosition(source))
}

func (p *Parser) ParseTokens(toks []token.Token, pos token.Position) (*ast.Block, error) {
	p.tokens = token.NewCodeChunk(toks)
	depth := p.env.Depth()
	b, e := p.parseBlock(pos, false, false)
	if e != nil {
		p.env.Unwind(depth)
		return nil, e
	}
	return b, nil
}

// Parses the code into the block the environment is in, rather than into a block of its
// own, and returns the index of the first new node. Variables it defines stay defined.
// If parsing fails, the block and its scope are left as they were.
func (p *Parser) ParseInline(code, source string) (int, error) {
	top := p.env.Top()
	start, vars := top.Len(), top.Scope().Len()
	toks, e := lexer.Tokenize(code, source)
	if e != nil {
		return start, e
	}
	p.tokens = token.NewCodeChunk(toks)
	depth := p.env.Depth()
	if _, e := p.parseBlock(token.NewPosition(source), true, false); e != nil {
		p.env.Unwind(depth)
		top.Truncate(start)
		top.Scope().Truncate(vars)
		return start, e
	}
	return start, nil
}

// Parses statements until the tokens run out or, for a nested block, until the END that
// closes it.
func (p *Parser) parseBlock(pos token.Position, inline, nested bool) (*ast.Block, error) {
	if !inline {
		p.env.StartBlock(pos)
	}
	for {
		if !p.tokens.Next() {
			if nested {
				return nil, err.CreateErr("parse/eof/block", pos)
			}
			break
		}
		tok := p.tokens.CurrentToken()
		if tok.IsKeyword(token.END) {
			if nested {
				break
			}
			return nil, err.CreateErr("parse/end", tok.Position)
		}
		node, e := p.parseStatement(false, nil)
		if e != nil {
			return nil, e
		}
		p.env.Append(node)
	}
	if inline {
		return nil, nil
	}
	b, e := p.env.EndBlock()
	if e != nil {
		return nil, e
	}
	if e := b.Validate(p.env.Registry); e != nil {
		return nil, e
	}
	if settings.SHOW_PARSER {
		settings.Log.Debugf("parser: block at %v returns %v", b.Position(), b.ReturnType())
	}
	return b, nil
}

// Parses one statement starting at the current token.
//
// An argument is exactly one literal or statement wide, so in argument position we return as
// soon as we have it. Otherwise we go on collecting arguments until a terminator ends the
// statement, or a pipe passes it on as the first argument of the next one.
func (p *Parser) parseStatement(isArgument bool, piped ast.Node) (ast.Node, error) {
	tok := p.tokens.CurrentToken()
	var result ast.Node
	var stmt *ast.Statement
	switch tok.Type {
	case token.TERMINATOR, token.PIPE:
		return nil, err.CreateErr("parse/unexpected", tok.Position, tok.Literal)
	case token.KEYWORD:
		switch tok.Literal {
		case token.IN:
			if !isArgument {
				return nil, err.CreateErr("parse/in", tok.Position)
			}
			if !p.tokens.Next() {
				return nil, err.CreateErr("parse/eof/a", tok.Position)
			}
			return p.parseStatement(false, nil)
		case token.BLOCK, token.ACTION:
			b, e := p.parseBlock(tok.Position, false, true)
			if e != nil {
				return nil, e
			}
			result = ast.NewLiteral(b.AsValue(tok.Literal == token.ACTION), tok.Position, tok.Literal)
		case token.END:
			return nil, err.CreateErr("parse/unexpected", tok.Position, tok.Literal)
		default:
			return nil, err.CreateErr("parse/keyword", tok.Position, tok.Literal)
		}
	case token.STRING:
		if piped != nil {
			return nil, err.CreateErr("parse/pipe/string", tok.Position)
		}
		result = ast.NewLiteral(values.Str(tok.Literal), tok.Position, tok.Literal)
	case token.WORD:
		if lexer.IsDigit(rune(tok.Literal[0])) {
			if piped != nil {
				return nil, err.CreateErr("parse/pipe/number", tok.Position)
			}
			lit, e := parseNumber(tok)
			if e != nil {
				return nil, e
			}
			result = lit
		} else {
			stmt = ast.NewStatement(tok.Literal, tok.Position)
			result = stmt
		}
	default:
		return nil, err.CreateErr("parse/eof/b", tok.Position)
	}

	if isArgument {
		if stmt != nil {
			if e := p.Validate(stmt); e != nil {
				return nil, e
			}
		}
		return result, nil
	}

	if piped != nil {
		if stmt == nil {
			return nil, err.CreateErr("parse/pipe/literal", tok.Position)
		}
		stmt.Args = append(stmt.Args, piped)
	}

	for {
		lastPos := p.tokens.CurrentToken().Position
		if !p.tokens.Next() {
			return nil, err.CreateErr("parse/eof/b", lastPos)
		}
		current := p.tokens.CurrentToken()
		switch current.Type {
		case token.TERMINATOR:
			if stmt != nil {
				if e := p.Validate(stmt); e != nil {
					return nil, e
				}
			}
			return result, nil
		case token.PIPE:
			if stmt != nil {
				if e := p.Validate(stmt); e != nil {
					return nil, e
				}
			}
			if !p.tokens.Next() {
				return nil, err.CreateErr("parse/eof/c", current.Position)
			}
			return p.parseStatement(false, result)
		default:
			if stmt == nil {
				return nil, err.CreateErr("parse/argument", current.Position, current.Literal)
			}
			arg, e := p.parseStatement(true, nil)
			if e != nil {
				return nil, e
			}
			stmt.Args = append(stmt.Args, arg)
		}
	}
}

// A word starting with a digit is a number. A final 'i' makes it an int and a final 'f' a
// float; with no suffix it is an int.
func parseNumber(tok token.Token) (*ast.Literal, error) {
	text := tok.Literal
	last, size := utf8.DecodeLastRuneInString(text)
	if lexer.IsDigit(last) {
		i, e := strconv.Atoi(text)
		if e != nil {
			return nil, err.CreateErr("parse/number/format", tok.Position, text)
		}
		return ast.NewLiteral(values.Int(i), tok.Position, text), nil
	}
	body := text[:len(text)-size]
	switch last {
	case 'i':
		i, e := strconv.Atoi(body)
		if e != nil {
			return nil, err.CreateErr("parse/number/format", tok.Position, text)
		}
		return ast.NewLiteral(values.Int(i), tok.Position, text), nil
	case 'f':
		if !isDecimal(body) {
			return nil, err.CreateErr("parse/number/format", tok.Position, text)
		}
		f, e := strconv.ParseFloat(body, 64)
		if e != nil {
			return nil, err.CreateErr("parse/number/format", tok.Position, text)
		}
		return ast.NewLiteral(values.Float(f), tok.Position, text), nil
	}
	return nil, err.CreateErr("parse/number/suffix", tok.Position, last)
}

// Digits with at most one decimal point among them, and optionally an exponent. This rules
// out the hex and 'inf' forms that strconv would otherwise accept.
func isDecimal(body string) bool {
	mantissa, exponent, hasExponent := strings.Cut(strings.ToLower(body), "e")
	whole, fraction, _ := strings.Cut(mantissa, ".")
	if !allDigits(whole) || whole == "" || !allDigits(fraction) {
		return false
	}
	if hasExponent {
		if strings.HasPrefix(exponent, "+") || strings.HasPrefix(exponent, "-") {
			exponent = exponent[1:]
		}
		return exponent != "" && allDigits(exponent)
	}
	return true
}

func allDigits(s string) bool {
	for _, ch := range s {
		if !lexer.IsDigit(ch) {
			return false
		}
	}
	return true
}
