// Package compiler renders parsed statements back to canonical SQL
// text. Parsing the compiled output yields the same statement tree.
package compiler

import (
	"strings"

	"github.com/lib/pq"

	"github.com/forkkit/ihp/schema"
)

// Compile renders the statement sequence, one statement per line
// group separated by blank lines.
func Compile(stmts []schema.Statement) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(CompileStatement(stmt))
		b.WriteString("\n")
	}
	return b.String()
}

// CompileStatement renders a single statement without a trailing
// newline.
func CompileStatement(stmt schema.Statement) string {
	switch s := stmt.(type) {
	case *schema.CreateExtension:
		// IF NOT EXISTS is always emitted, matching the parser always
		// recording the flag as set.
		return "CREATE EXTENSION IF NOT EXISTS " + quote(s.Name, '"') + ";"
	case *schema.CreateTable:
		if len(s.Columns) == 0 {
			return "CREATE TABLE " + ident(s.Name) + " ();"
		}
		var b strings.Builder
		b.WriteString("CREATE TABLE " + ident(s.Name) + " (\n")
		for i, col := range s.Columns {
			if i > 0 {
				b.WriteString(",\n")
			}
			b.WriteString("    " + compileColumn(col))
		}
		b.WriteString("\n);")
		return b.String()
	case *schema.CreateEnumType:
		values := make([]string, len(s.Values))
		for i, v := range s.Values {
			values[i] = quote(v, '\'')
		}
		return "CREATE TYPE " + ident(s.Name) + " AS ENUM (" + strings.Join(values, ", ") + ");"
	case *schema.AddConstraint:
		return "ALTER TABLE " + ident(s.TableName) +
			" ADD CONSTRAINT " + ident(s.ConstraintName) +
			" " + compileConstraint(s.Constraint) + ";"
	case *schema.Comment:
		return "--" + s.Content
	}
	return ""
}

func compileColumn(col schema.Column) string {
	var b strings.Builder
	b.WriteString(ident(col.Name) + " " + col.Type.String())
	if col.Default != nil {
		b.WriteString(" DEFAULT " + CompileExpression(col.Default))
	}
	if col.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if col.NotNull {
		b.WriteString(" NOT NULL")
	}
	if col.Unique {
		b.WriteString(" UNIQUE")
	}
	return b.String()
}

func compileConstraint(c schema.Constraint) string {
	fk := c.(*schema.ForeignKeyConstraint)
	var b strings.Builder
	b.WriteString("FOREIGN KEY (" + ident(fk.ColumnName) + ") REFERENCES " + ident(fk.ReferenceTable))
	if fk.ReferenceColumn != nil {
		b.WriteString(" (" + ident(*fk.ReferenceColumn) + ")")
	}
	if fk.OnDelete != nil {
		b.WriteString(" ON DELETE " + fk.OnDelete.String())
	}
	return b.String()
}

// CompileExpression renders a DEFAULT value expression.
func CompileExpression(expr schema.Expression) string {
	switch e := expr.(type) {
	case *schema.VarExpression:
		return e.Name
	case *schema.CallExpression:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = CompileExpression(arg)
		}
		return e.Function + "(" + strings.Join(args, ", ") + ")"
	case *schema.TextExpression:
		return quote(e.Value, '\'')
	}
	return ""
}

// quote renders v between delim characters using the backslash escapes
// the parser decodes, so compiled literals always read back to the
// same value. SQL-style quote doubling is not used: the grammar's
// string reader does not understand it.
func quote(v string, delim byte) string {
	var b strings.Builder
	b.WriteByte(delim)
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case delim, '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(delim)
	return b.String()
}

// ident quotes a name only when it needs quoting, so common names stay
// readable in the output.
func ident(name string) string {
	if name == "" {
		return pq.QuoteIdentifier(name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return pq.QuoteIdentifier(name)
		}
	}
	return name
}
