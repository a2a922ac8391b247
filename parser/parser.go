// Package parser turns schema definition text into the statement
// sequence of package schema.
//
// The grammar covers a small slice of PostgreSQL DDL: CREATE EXTENSION,
// CREATE TABLE, CREATE TYPE ... AS ENUM, ALTER TABLE ... ADD CONSTRAINT
// and "--" comment lines. A parse either consumes the whole input or
// fails with a single *SyntaxError; there is no partial result.
package parser

import (
	"fmt"
	"strings"

	"github.com/forkkit/ihp/schema"
)

// Parse parses src into its statement sequence, in source order. name
// labels error messages and is typically the file path.
func Parse(name, src string) ([]schema.Statement, error) {
	p := &parser{name: name, src: src}
	p.skip()
	var stmts []schema.Statement
	for !p.eof() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skip()
	}
	return stmts, nil
}

// parser is a cursor over the input. Alternatives are tried by saving
// the cursor, attempting a match and restoring the cursor on failure;
// once an alternative has consumed its anchor keywords, any later
// mismatch is a hard error.
type parser struct {
	name string
	src  string
	pos  int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) fail(expected string) *SyntaxError {
	line, column := position(p.src, p.pos)
	return &SyntaxError{
		Source:   p.name,
		Offset:   p.pos,
		Line:     line,
		Column:   column,
		Expected: expected,
	}
}

// skip consumes whitespace, "//" line comments and "/* */" block
// comments. Every token consumer calls it after a successful match, so
// tokens behave as lexemes and extra space between any two tokens never
// changes the result.
func (p *parser) skip() {
	for !p.eof() {
		switch {
		case isSpace(p.src[p.pos]):
			p.pos++
		case strings.HasPrefix(p.src[p.pos:], "//"):
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		case strings.HasPrefix(p.src[p.pos:], "/*"):
			p.pos += 2
			for !p.eof() && !strings.HasPrefix(p.src[p.pos:], "*/") {
				p.pos++
			}
			if !p.eof() {
				p.pos += 2
			}
		default:
			return
		}
	}
}

// keyword matches tok at the cursor ignoring letter case. No word
// boundary is required after the match, so ordering in the tables
// below keeps longer keywords ahead of their prefixes.
func (p *parser) keyword(tok string) bool {
	if len(p.src)-p.pos < len(tok) {
		return false
	}
	if !strings.EqualFold(p.src[p.pos:p.pos+len(tok)], tok) {
		return false
	}
	p.pos += len(tok)
	p.skip()
	return true
}

// keywords matches a sequence of keywords, restoring the cursor when
// any of them is missing.
func (p *parser) keywords(toks ...string) bool {
	mark := p.pos
	for _, tok := range toks {
		if !p.keyword(tok) {
			p.pos = mark
			return false
		}
	}
	return true
}

func (p *parser) expect(tok string) error {
	if p.keyword(tok) {
		return nil
	}
	return p.fail(fmt.Sprintf("%q", tok))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// word reads a maximal run of alphanumeric and underscore characters.
func (p *parser) word() (string, error) {
	start := p.pos
	for !p.eof() && isWordChar(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", p.fail("an identifier")
	}
	w := p.src[start:p.pos]
	p.skip()
	return w, nil
}

// identifier reads a double-quoted or unquoted identifier. Quoted
// identifiers take any characters up to the closing quote with no
// escape processing.
func (p *parser) identifier() (string, error) {
	if p.eof() || p.src[p.pos] != '"' {
		return p.word()
	}
	p.pos++
	start := p.pos
	for !p.eof() && p.src[p.pos] != '"' {
		p.pos++
	}
	if p.eof() {
		return "", p.fail(`'"'`)
	}
	name := p.src[start:p.pos]
	p.pos++
	p.skip()
	return name, nil
}

// text reads a single-quoted string literal with backslash escapes
// decoded.
func (p *parser) text() (string, error) {
	if p.eof() || p.src[p.pos] != '\'' {
		return "", p.fail("a string literal")
	}
	p.pos++
	return p.escaped('\'')
}

// quotedName reads a double-quoted name with backslash escapes
// decoded. CREATE EXTENSION is the one place the grammar requires
// quotes and reads them escape-aware.
func (p *parser) quotedName() (string, error) {
	if p.eof() || p.src[p.pos] != '"' {
		return "", p.fail("a quoted name")
	}
	p.pos++
	return p.escaped('"')
}

// escaped reads characters up to the unescaped delimiter, which is
// consumed. \n \t \r \b \f decode to control characters; any other
// escaped character stands for itself.
func (p *parser) escaped(delim byte) (string, error) {
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		if c == delim {
			p.pos++
			p.skip()
			return b.String(), nil
		}
		p.pos++
		if c == '\\' {
			if p.eof() {
				break
			}
			c = unescape(p.src[p.pos])
			p.pos++
		}
		b.WriteByte(c)
	}
	return "", p.fail(fmt.Sprintf("%q", string(delim)))
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	}
	return c
}
