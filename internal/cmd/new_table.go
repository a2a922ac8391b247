package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v2"

	"github.com/forkkit/ihp/compiler"
	"github.com/forkkit/ihp/schema"
)

// columnTypes is the fixed catalog offered by the type select, plus a
// free-form custom entry.
var columnTypes = []struct {
	Label string
	Kind  schema.TypeKind
}{
	{"UUID", schema.PUUID},
	{"TEXT", schema.PText},
	{"INT", schema.PInt},
	{"BIGINT", schema.PBigInt},
	{"BOOLEAN", schema.PBoolean},
	{"TIMESTAMP WITH TIME ZONE", schema.PTimestamp},
	{"REAL", schema.PReal},
	{"DOUBLE PRECISION", schema.PDouble},
	{"DATE", schema.PDate},
	{"BINARY", schema.PBinary},
	{"TIME", schema.PTime},
	{"custom ...", schema.PCustom},
}

func newTableCommand() *cli.Command {
	return &cli.Command{
		Name:  "new-table",
		Usage: "interactively define a table and append it to the schema file",
		Action: func(ctx *cli.Context) error {
			path := schemaFile(ctx)
			stmt, err := promptTable()
			if err != nil {
				return err
			}

			f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return err
			}
			defer f.Close()
			if _, err := fmt.Fprintf(f, "%s\n", compiler.CompileStatement(stmt)); err != nil {
				return err
			}
			fmt.Printf("added table %s to %s\n", stmt.Name, path)
			return nil
		},
	}
}

// promptTable collects a table definition. Every table starts from the
// IHP-style id column.
func promptTable() (*schema.CreateTable, error) {
	name, err := promptIdentifier("Table name")
	if err != nil {
		return nil, err
	}

	table := &schema.CreateTable{
		Name: name,
		Columns: []schema.Column{{
			Name:       "id",
			Type:       schema.PostgresType{Kind: schema.PUUID},
			Default:    &schema.CallExpression{Function: "uuid_generate_v4"},
			PrimaryKey: true,
			NotNull:    true,
		}},
	}

	for {
		col, done, err := promptColumn()
		if err != nil {
			return nil, err
		}
		if done {
			return table, nil
		}
		table.Columns = append(table.Columns, col)
	}
}

func promptColumn() (schema.Column, bool, error) {
	prompt := promptui.Prompt{Label: "Column name (empty to finish)"}
	name, err := prompt.Run()
	if err != nil {
		return schema.Column{}, false, err
	}
	if name == "" {
		return schema.Column{}, true, nil
	}

	items := make([]string, len(columnTypes))
	for i, t := range columnTypes {
		items[i] = t.Label
	}
	sel := promptui.Select{
		Label: "Column type",
		Items: items,
		Size:  len(items),
	}
	i, _, err := sel.Run()
	if err != nil {
		return schema.Column{}, false, err
	}

	col := schema.Column{Name: name, Type: schema.PostgresType{Kind: columnTypes[i].Kind}}
	if col.Type.Kind == schema.PCustom {
		custom, err := promptIdentifier("Type name")
		if err != nil {
			return schema.Column{}, false, err
		}
		col.Type = schema.CustomType(custom)
	}

	notNull := promptui.Select{
		Label: "NOT NULL",
		Items: []string{"yes", "no"},
	}
	_, choose, err := notNull.Run()
	if err != nil {
		return schema.Column{}, false, err
	}
	col.NotNull = choose == "yes"

	return col, false, nil
}

func promptIdentifier(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if s == "" {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		},
	}
	return prompt.Run()
}
