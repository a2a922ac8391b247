package parser

import (
	"fmt"
	"os"

	"github.com/forkkit/ihp/schema"
)

// ParseFile reads path and parses its contents. The path labels any
// syntax error.
func ParseFile(path string) ([]schema.Statement, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %s: os.ReadFile: %w", path, err)
	}
	return Parse(path, string(b))
}
