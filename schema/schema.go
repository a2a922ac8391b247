// Package schema defines the statement tree produced by parsing a
// schema definition file. Values are built once by the parser and never
// mutated afterwards.
package schema

// Statement is a single top-level schema statement.
type Statement interface {
	statementNode()
}

// CreateExtension is a CREATE EXTENSION statement. IfNotExists is
// recorded as true whether or not the clause appeared in the source;
// the compiler always emits it.
type CreateExtension struct {
	Name        string
	IfNotExists bool
}

// CreateTable is a CREATE TABLE statement with its column definitions
// in source order.
type CreateTable struct {
	Name    string
	Columns []Column
}

// CreateEnumType is a CREATE TYPE ... AS ENUM statement.
type CreateEnumType struct {
	Name   string
	Values []string
}

// AddConstraint is an ALTER TABLE ... ADD CONSTRAINT statement.
type AddConstraint struct {
	TableName      string
	ConstraintName string
	Constraint     Constraint
}

// Comment is a top-level "--" line. Content is everything after the
// dashes up to the end of the line, kept verbatim.
type Comment struct {
	Content string
}

func (*CreateExtension) statementNode() {}
func (*CreateTable) statementNode()     {}
func (*CreateEnumType) statementNode()  {}
func (*AddConstraint) statementNode()   {}
func (*Comment) statementNode()         {}

// Column is one column definition inside a CREATE TABLE statement.
// Default is nil when the column has no DEFAULT clause.
type Column struct {
	Name       string
	Type       PostgresType
	Default    Expression
	PrimaryKey bool
	NotNull    bool
	Unique     bool
}

// TypeKind identifies one of the recognized column types.
type TypeKind int

const (
	PUUID TypeKind = iota
	PText
	PBigInt
	PInt
	PBoolean
	PTimestamp
	PReal
	PDouble
	PDate
	PBinary
	PTime
	PCustom
)

// PostgresType is a column type. Name is set only for PCustom and
// carries the type name as written in the source.
type PostgresType struct {
	Kind TypeKind
	Name string
}

// CustomType returns the PostgresType for an unrecognized type name.
func CustomType(name string) PostgresType {
	return PostgresType{Kind: PCustom, Name: name}
}

// String returns the SQL spelling of the type.
func (t PostgresType) String() string {
	switch t.Kind {
	case PUUID:
		return "UUID"
	case PText:
		return "TEXT"
	case PBigInt:
		return "BIGINT"
	case PInt:
		return "INT"
	case PBoolean:
		return "BOOLEAN"
	case PTimestamp:
		return "TIMESTAMP WITH TIME ZONE"
	case PReal:
		return "REAL"
	case PDouble:
		return "DOUBLE PRECISION"
	case PDate:
		return "DATE"
	case PBinary:
		return "BINARY"
	case PTime:
		return "TIME"
	case PCustom:
		return t.Name
	}
	return ""
}

// Expression is a scalar expression, used for column DEFAULT values.
type Expression interface {
	expressionNode()
}

// VarExpression is a bare identifier, e.g. null.
type VarExpression struct {
	Name string
}

// CallExpression is a function call, e.g. uuid_generate_v4().
type CallExpression struct {
	Function string
	Args     []Expression
}

// TextExpression is a single-quoted string literal.
type TextExpression struct {
	Value string
}

func (*VarExpression) expressionNode()  {}
func (*CallExpression) expressionNode() {}
func (*TextExpression) expressionNode() {}

// Constraint is the body of an ALTER TABLE ... ADD CONSTRAINT
// statement.
type Constraint interface {
	constraintNode()
}

// ForeignKeyConstraint is a FOREIGN KEY ... REFERENCES constraint.
// ReferenceColumn and OnDelete are nil when the respective clause was
// not written.
type ForeignKeyConstraint struct {
	ColumnName      string
	ReferenceTable  string
	ReferenceColumn *string
	OnDelete        *OnDelete
}

func (*ForeignKeyConstraint) constraintNode() {}

// OnDelete is a referential action for ON DELETE clauses.
type OnDelete int

const (
	NoAction OnDelete = iota
	Restrict
	SetNull
	Cascade
)

// String returns the SQL spelling of the action.
func (d OnDelete) String() string {
	switch d {
	case NoAction:
		return "NO ACTION"
	case Restrict:
		return "RESTRICT"
	case SetNull:
		return "SET NULL"
	case Cascade:
		return "CASCADE"
	}
	return ""
}
