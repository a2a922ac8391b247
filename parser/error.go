package parser

import "fmt"

// SyntaxError is the single error kind reported by Parse. It points at
// the byte where parsing could not continue and names what the grammar
// expected there.
type SyntaxError struct {
	Source   string
	Offset   int
	Line     int
	Column   int
	Expected string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: expected %s", e.Source, e.Line, e.Column, e.Expected)
}

// position converts a byte offset into 1-based line and column numbers.
// Columns count bytes, not runes.
func position(src string, offset int) (line, column int) {
	line = 1
	last := -1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			last = i
		}
	}
	return line, offset - last
}
