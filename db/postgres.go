// Package db holds the PostgreSQL connection and schema push logic.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/forkkit/ihp/compiler"
	"github.com/forkkit/ihp/schema"
)

// Connect opens a connection pool and pings it.
func Connect(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// Apply compiles every non-comment statement and executes the sequence
// inside a single transaction, so a failing statement leaves the
// database untouched.
func Apply(pool *pgxpool.Pool, stmts []schema.Statement) error {
	tx, err := pool.Begin(context.Background())
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}

	for _, stmt := range stmts {
		if _, ok := stmt.(*schema.Comment); ok {
			continue
		}
		expr := compiler.CompileStatement(stmt)
		log.Debugf("applying: %s", expr)
		if _, err := tx.Exec(context.Background(), expr); err != nil {
			if errR := tx.Rollback(context.Background()); errR != nil {
				return fmt.Errorf("unable to rollback transaction: %w", errR)
			}
			return fmt.Errorf("unable to execute statement %q: %w", expr, err)
		}
	}

	if err := tx.Commit(context.Background()); err != nil {
		return fmt.Errorf("unable to commit transaction: %w", err)
	}

	return nil
}
