// Package fixtures derives a mutable working model from the parsed
// statement tree and generates seed rows for it.
package fixtures

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/forkkit/ihp/schema"
)

type Table struct {
	Name        string
	Columns     []*Column
	PrimaryKey  []string
	Unique      [][]string
	ForeignKeys []*ForeignKey

	// RowsCount is the "-- count: N" hint, 0 when none was given.
	RowsCount int
}

type Column struct {
	Name    string
	Type    schema.PostgresType
	NotNull bool
	Unique  bool

	// EnumValues is set for columns whose custom type names a
	// CREATE TYPE ... AS ENUM statement.
	EnumValues []string
}

type ForeignKey struct {
	Column    string
	RefTable  *Table
	RefColumn string
}

// countHintReg extracts N from a "-- count: N" comment line.
var countHintReg = regexp.MustCompile(`^\s*count:\s*(0|[1-9]\d{0,4})\s*$`)

// Tables builds the working model from a statement sequence. Enum
// values are bound onto matching custom-typed columns and foreign key
// constraints are resolved to table pointers; a constraint naming an
// unknown table is an error. A "-- count: N" comment immediately
// before a CREATE TABLE sets that table's RowsCount.
func Tables(stmts []schema.Statement) ([]*Table, error) {
	enums := map[string][]string{}
	for _, stmt := range stmts {
		if e, ok := stmt.(*schema.CreateEnumType); ok {
			enums[e.Name] = e.Values
		}
	}

	var tables []*Table
	byName := map[string]*Table{}
	rowsCount := 0
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *schema.Comment:
			if m := countHintReg.FindStringSubmatch(s.Content); m != nil {
				rowsCount, _ = strconv.Atoi(m[1])
				continue
			}
		case *schema.CreateTable:
			table := &Table{Name: s.Name, RowsCount: rowsCount}
			for _, col := range s.Columns {
				c := &Column{
					Name:    col.Name,
					Type:    col.Type,
					NotNull: col.NotNull,
					Unique:  col.Unique,
				}
				if col.Type.Kind == schema.PCustom {
					c.EnumValues = enums[col.Type.Name]
				}
				if col.PrimaryKey {
					table.PrimaryKey = append(table.PrimaryKey, col.Name)
				}
				if col.Unique {
					table.Unique = append(table.Unique, []string{col.Name})
				}
				table.Columns = append(table.Columns, c)
			}
			tables = append(tables, table)
			byName[table.Name] = table
		case *schema.AddConstraint:
			table, ok := byName[s.TableName]
			if !ok {
				return nil, fmt.Errorf("constraint %s: table %s not found", s.ConstraintName, s.TableName)
			}
			fk, ok := s.Constraint.(*schema.ForeignKeyConstraint)
			if !ok {
				continue
			}
			ref, ok := byName[fk.ReferenceTable]
			if !ok {
				return nil, fmt.Errorf("constraint %s: table %s not found", s.ConstraintName, fk.ReferenceTable)
			}
			table.ForeignKeys = append(table.ForeignKeys, &ForeignKey{
				Column:    fk.ColumnName,
				RefTable:  ref,
				RefColumn: referenceColumn(fk, ref),
			})
		}
		rowsCount = 0
	}

	return tables, nil
}

// referenceColumn resolves the referenced column of a foreign key: the
// one written in the constraint, else the referenced table's primary
// key, else "id".
func referenceColumn(fk *schema.ForeignKeyConstraint, ref *Table) string {
	if fk.ReferenceColumn != nil {
		return *fk.ReferenceColumn
	}
	if len(ref.PrimaryKey) > 0 {
		return ref.PrimaryKey[0]
	}
	return "id"
}
