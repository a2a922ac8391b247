package fixtures

import (
	"context"
	"fmt"
	"math/rand"
	"reflect"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
	log "github.com/sirupsen/logrus"
)

const maxTriesCount = 10

// Insert is one generated INSERT batch, one per table.
type Insert struct {
	Table string
	SQL   string
	Args  []interface{}
}

// Plan generates the INSERT batches for tables, which must already be
// in dependency order. rows is the per-table row count used when a
// table carries no "-- count: N" hint. Foreign key cells sample rows
// generated for the referenced table earlier in the plan.
func Plan(tables []*Table, rows int) ([]Insert, error) {
	data := map[*Table]map[string][]interface{}{}
	inserts := make([]Insert, 0, len(tables))
	for _, table := range tables {
		if len(table.Columns) == 0 {
			continue
		}
		ins, err := plan(table, rows, data)
		if err != nil {
			return nil, err
		}
		inserts = append(inserts, ins)
	}
	return inserts, nil
}

func plan(table *Table, rows int, data map[*Table]map[string][]interface{}) (Insert, error) {
	stmt := sq.Insert(table.Name)
	for _, column := range table.Columns {
		stmt = stmt.Columns(column.Name)
	}

	// The primary key counts as one more unique column set.
	ucs := table.Unique
	if len(table.PrimaryKey) > 0 {
		ucs = append(ucs, table.PrimaryKey)
	}

	count := table.RowsCount
	if count == 0 {
		count = rows
	}

	prevValues := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		generated := false
		for try := 0; try < maxTriesCount; try++ {
			rowMap := make(map[string]interface{}, len(table.Columns))
			for _, fk := range table.ForeignKeys {
				refRows := data[fk.RefTable][fk.RefColumn]
				if len(refRows) == 0 {
					return Insert{}, fmt.Errorf("table %s has no generated %s values", fk.RefTable.Name, fk.RefColumn)
				}
				rowMap[fk.Column] = refRows[rand.Intn(len(refRows))]
			}

			row := make([]interface{}, 0, len(table.Columns))
			for _, column := range table.Columns {
				if _, ok := rowMap[column.Name]; !ok {
					rowMap[column.Name] = column.GenerateValue()
				}
				row = append(row, rowMap[column.Name])
			}

			if duplicates(rowMap, prevValues, ucs) {
				continue
			}

			stmt = stmt.Values(row...)
			prevValues = append(prevValues, rowMap)
			generated = true
			break
		}
		if !generated {
			return Insert{}, fmt.Errorf("unable to generate unique row for table %s", table.Name)
		}
	}

	sql, args, err := stmt.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return Insert{}, err
	}

	data[table] = map[string][]interface{}{}
	for _, value := range prevValues {
		for column, val := range value {
			data[table][column] = append(data[table][column], val)
		}
	}

	return Insert{Table: table.Name, SQL: sql, Args: args}, nil
}

// duplicates reports whether rowMap collides with a previous row on
// any of the unique column sets.
func duplicates(rowMap map[string]interface{}, prevValues []map[string]interface{}, ucs [][]string) bool {
	for _, uc := range ucs {
		for _, prev := range prevValues {
			equal := true
			for _, column := range uc {
				if !reflect.DeepEqual(prev[column], rowMap[column]) {
					equal = false
					break
				}
			}
			if equal {
				return true
			}
		}
	}
	return false
}

// Seed generates and executes the INSERT batches, one transaction per
// table.
func Seed(pool *pgxpool.Pool, tables []*Table, rows int) error {
	inserts, err := Plan(tables, rows)
	if err != nil {
		return err
	}

	for _, ins := range inserts {
		log.Debugf("seeding table %s", ins.Table)
		tx, err := pool.Begin(context.Background())
		if err != nil {
			return fmt.Errorf("unable to begin transaction: %w", err)
		}
		if _, err := tx.Exec(context.Background(), ins.SQL, ins.Args...); err != nil {
			if errR := tx.Rollback(context.Background()); errR != nil {
				return fmt.Errorf("unable to rollback transaction: %w", errR)
			}
			return fmt.Errorf("unable to execute query: %w", err)
		}
		if err := tx.Commit(context.Background()); err != nil {
			return fmt.Errorf("unable to commit transaction: %w", err)
		}
	}

	return nil
}
