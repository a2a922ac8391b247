package parser

import (
	"strings"

	"github.com/forkkit/ihp/schema"
)

// typeKeywords lists the recognized column types in recognition order.
// BIGINT stays ahead of INT so the prefix never shadows it; multi-word
// keywords are matched word by word so comments and extra space between
// the words are tolerated.
var typeKeywords = []struct {
	words []string
	kind  schema.TypeKind
}{
	{[]string{"UUID"}, schema.PUUID},
	{[]string{"TEXT"}, schema.PText},
	{[]string{"BIGINT"}, schema.PBigInt},
	{[]string{"INT"}, schema.PInt},
	{[]string{"BOOLEAN"}, schema.PBoolean},
	{[]string{"TIMESTAMP", "WITH", "TIME", "ZONE"}, schema.PTimestamp},
	{[]string{"REAL"}, schema.PReal},
	{[]string{"DOUBLE", "PRECISION"}, schema.PDouble},
	{[]string{"DATE"}, schema.PDate},
	{[]string{"BINARY"}, schema.PBinary},
	{[]string{"TIME"}, schema.PTime},
}

var onDeleteActions = []struct {
	words  []string
	action schema.OnDelete
}{
	{[]string{"NO", "ACTION"}, schema.NoAction},
	{[]string{"RESTRICT"}, schema.Restrict},
	{[]string{"SET", "NULL"}, schema.SetNull},
	{[]string{"CASCADE"}, schema.Cascade},
}

// statement parses one top-level statement. The alternatives are
// dispatched on their anchor keywords; "--" comment lines are the
// fallback and become first-class Comment statements, unlike the "//"
// and "/* */" forms the lexer throws away.
func (p *parser) statement() (schema.Statement, error) {
	switch {
	case p.keywords("CREATE", "EXTENSION"):
		return p.createExtension()
	case p.keywords("CREATE", "TABLE"):
		return p.createTable()
	case p.keywords("CREATE", "TYPE"):
		return p.createEnumType()
	case p.keywords("ALTER", "TABLE"):
		return p.addConstraint()
	case strings.HasPrefix(p.src[p.pos:], "--"):
		return p.comment(), nil
	}
	return nil, p.fail("a statement")
}

func (p *parser) comment() *schema.Comment {
	p.pos += 2
	start := p.pos
	for !p.eof() && p.src[p.pos] != '\n' {
		p.pos++
	}
	return &schema.Comment{Content: p.src[start:p.pos]}
}

func (p *parser) createExtension() (schema.Statement, error) {
	p.keywords("IF", "NOT", "EXISTS")
	name, err := p.quotedName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	// IfNotExists is recorded as true whether or not the clause was
	// written; see schema.CreateExtension.
	return &schema.CreateExtension{Name: name, IfNotExists: true}, nil
}

func (p *parser) createTable() (schema.Statement, error) {
	// An optional "public." qualifier is accepted and dropped. The
	// match is speculative so a table named public_x still parses.
	p.keywords("public", ".")
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var columns []schema.Column
	if !p.keyword(")") {
		for {
			col, err := p.column()
			if err != nil {
				return nil, err
			}
			columns = append(columns, col)
			if !p.keyword(",") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	return &schema.CreateTable{Name: name, Columns: columns}, nil
}

// column parses one column definition. The trailing clauses are each
// optional but their order is fixed: DEFAULT, PRIMARY KEY, NOT NULL,
// UNIQUE.
func (p *parser) column() (schema.Column, error) {
	name, err := p.identifier()
	if err != nil {
		return schema.Column{}, err
	}
	typ, err := p.sqlType()
	if err != nil {
		return schema.Column{}, err
	}
	col := schema.Column{Name: name, Type: typ}
	if p.keyword("DEFAULT") {
		col.Default, err = p.expression()
		if err != nil {
			return schema.Column{}, err
		}
	}
	col.PrimaryKey = p.keywords("PRIMARY", "KEY")
	col.NotNull = p.keywords("NOT", "NULL")
	col.Unique = p.keyword("UNIQUE")
	return col, nil
}

// sqlType tries the fixed type keywords in order, then falls back to
// reading an arbitrary identifier as a custom type name.
func (p *parser) sqlType() (schema.PostgresType, error) {
	for _, t := range typeKeywords {
		if p.keywords(t.words...) {
			return schema.PostgresType{Kind: t.kind}, nil
		}
	}
	name, err := p.word()
	if err != nil {
		return schema.PostgresType{}, p.fail("a column type")
	}
	return schema.CustomType(name), nil
}

// expression parses a DEFAULT value: a single-quoted text literal, a
// function call or a bare identifier. A leading quote commits to the
// text form; otherwise one identifier read decides between call and
// variable.
func (p *parser) expression() (schema.Expression, error) {
	if !p.eof() && p.src[p.pos] == '\'' {
		v, err := p.text()
		if err != nil {
			return nil, err
		}
		return &schema.TextExpression{Value: v}, nil
	}
	name, err := p.word()
	if err != nil {
		return nil, p.fail("an expression")
	}
	if !p.keyword("(") {
		return &schema.VarExpression{Name: name}, nil
	}
	var args []schema.Expression
	if !p.keyword(")") {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.keyword(",") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	return &schema.CallExpression{Function: name, Args: args}, nil
}

func (p *parser) createEnumType() (schema.Statement, error) {
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if !p.keywords("AS", "ENUM") {
		return nil, p.fail(`"AS ENUM"`)
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var values []string
	if !p.keyword(")") {
		for {
			v, err := p.text()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			if !p.keyword(",") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	return &schema.CreateEnumType{Name: name, Values: values}, nil
}

func (p *parser) addConstraint() (schema.Statement, error) {
	table, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if !p.keywords("ADD", "CONSTRAINT") {
		return nil, p.fail(`"ADD CONSTRAINT"`)
	}
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	constraint, err := p.foreignKey()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	return &schema.AddConstraint{
		TableName:      table,
		ConstraintName: name,
		Constraint:     constraint,
	}, nil
}

func (p *parser) foreignKey() (schema.Constraint, error) {
	if !p.keywords("FOREIGN", "KEY") {
		return nil, p.fail(`"FOREIGN KEY"`)
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	column, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if !p.keyword("REFERENCES") {
		return nil, p.fail(`"REFERENCES"`)
	}
	refTable, err := p.identifier()
	if err != nil {
		return nil, err
	}
	fk := &schema.ForeignKeyConstraint{ColumnName: column, ReferenceTable: refTable}
	if p.keyword("(") {
		refColumn, err := p.identifier()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		fk.ReferenceColumn = &refColumn
	}
	if p.keywords("ON", "DELETE") {
		action, err := p.onDelete()
		if err != nil {
			return nil, err
		}
		fk.OnDelete = &action
	}
	return fk, nil
}

func (p *parser) onDelete() (schema.OnDelete, error) {
	for _, a := range onDeleteActions {
		if p.keywords(a.words...) {
			return a.action, nil
		}
	}
	return 0, p.fail("a referential action")
}
