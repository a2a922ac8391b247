// Package cmd wires the command line surface.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/forkkit/ihp/compiler"
	"github.com/forkkit/ihp/db"
	"github.com/forkkit/ihp/fixtures"
	"github.com/forkkit/ihp/parser"
)

const defaultSchemaFile = "Application/Schema.sql"

func Init() error {
	app := &cli.App{
		Name:        "ihp-schema",
		Usage:       "ihp-schema <command> [schema file]",
		Description: "parse, format, apply and seed PostgreSQL schema files",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			checkCommand(),
			formatCommand(),
			applyCommand(),
			seedCommand(),
			newTableCommand(),
		},
	}
	return app.Run(os.Args)
}

// schemaFile returns the schema file argument, defaulting to the IHP
// project layout.
func schemaFile(ctx *cli.Context) string {
	if ctx.Args().Len() > 0 {
		return ctx.Args().First()
	}
	return defaultSchemaFile
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "parse a schema file and report the first syntax error",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "cross-check the compiled statements with a full PostgreSQL parser",
			},
		},
		Action: func(ctx *cli.Context) error {
			path := schemaFile(ctx)
			stmts, err := parser.ParseFile(path)
			if err != nil {
				return err
			}
			if ctx.Bool("verify") {
				if err := compiler.Verify(stmts); err != nil {
					return err
				}
			}
			fmt.Printf("%s: %d statements\n", path, len(stmts))
			return nil
		},
	}
}

func formatCommand() *cli.Command {
	return &cli.Command{
		Name:  "format",
		Usage: "rewrite a schema file in canonical form",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the result to a file instead of stdout",
			},
		},
		Action: func(ctx *cli.Context) error {
			stmts, err := parser.ParseFile(schemaFile(ctx))
			if err != nil {
				return err
			}
			result := compiler.Compile(stmts)
			if output := ctx.String("output"); output != "" {
				return os.WriteFile(output, []byte(result), 0644)
			}
			fmt.Print(result)
			return nil
		},
	}
}

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "execute a schema file against a database",
		Flags: []cli.Flag{
			databaseURLFlag(),
		},
		Action: func(ctx *cli.Context) error {
			stmts, err := parser.ParseFile(schemaFile(ctx))
			if err != nil {
				return err
			}
			pool, err := db.Connect(ctx.String("database-url"))
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := db.Apply(pool, stmts); err != nil {
				return err
			}
			log.Info("schema applied")
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "fill the tables of a schema file with generated rows",
		Flags: []cli.Flag{
			databaseURLFlag(),
			&cli.IntFlag{
				Name:  "rows",
				Usage: "rows per table when the schema has no count hint",
				Value: 100,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print the generated SQL instead of executing it",
			},
		},
		Action: func(ctx *cli.Context) error {
			stmts, err := parser.ParseFile(schemaFile(ctx))
			if err != nil {
				return err
			}
			tables, err := fixtures.Tables(stmts)
			if err != nil {
				return err
			}
			order, err := fixtures.Order(tables)
			if err != nil {
				return err
			}
			rows := ctx.Int("rows")
			if ctx.Bool("dry-run") {
				inserts, err := fixtures.Plan(order, rows)
				if err != nil {
					return err
				}
				for _, ins := range inserts {
					fmt.Printf("%s;\n", ins.SQL)
				}
				return nil
			}
			pool, err := db.Connect(ctx.String("database-url"))
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := fixtures.Seed(pool, order, rows); err != nil {
				return err
			}
			log.Info("successfully generated data")
			return nil
		},
	}
}

func databaseURLFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "database-url",
		Usage:    "PostgreSQL connection string",
		EnvVars:  []string{"DATABASE_URL"},
		Required: true,
	}
}
