// Package storage provides functionality for persisting and retrieving IronPulse data.
// This file handles the general database interface and the key/value schema.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ironpulse/local-app/internal/log"
)

// DBDriver represents the type of database driver
type DBDriver string

const (
	SQLite DBDriver = "sqlite"
	Memory DBDriver = "memory"
)

// ErrNoTransaction is returned by Commit and Rollback outside a transaction
var ErrNoTransaction = errors.New("no active transaction")

// Database is a keyed blob store with single-level transactions
type Database interface {
	Open(dataSourceName string) error
	Close() error
	Begin() error
	Commit() error
	Rollback() error
	InitSchema() error
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// NewDatabase creates a new Database instance based on the specified driver
func NewDatabase(driver DBDriver, logger *log.Logger) (Database, error) {
	switch driver {
	case SQLite:
		return &SQLiteDatabase{BaseDatabase: BaseDatabase{logger: logger}}, nil
	case Memory:
		return NewMemoryDatabase(logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// BaseDatabase provides the transaction and query plumbing shared by SQL drivers
type BaseDatabase struct {
	db     *sql.DB
	tx     *sql.Tx
	logger *log.Logger
}

// Begin starts a new transaction
func (b *BaseDatabase) Begin() error {
	if b.tx != nil {
		return fmt.Errorf("transaction already active")
	}
	tx, err := b.db.Begin()
	if err != nil {
		b.logger.Error(context.Background(), "Failed to begin transaction", log.Fields{"error": err})
		return err
	}
	b.tx = tx
	b.logger.Debug(context.Background(), "Transaction started", nil)
	return nil
}

// Commit commits the current transaction
func (b *BaseDatabase) Commit() error {
	if b.tx == nil {
		b.logger.Error(context.Background(), "No active transaction to commit", nil)
		return ErrNoTransaction
	}
	err := b.tx.Commit()
	b.tx = nil
	if err != nil {
		b.logger.Error(context.Background(), "Failed to commit transaction", log.Fields{"error": err})
		return err
	}
	b.logger.Debug(context.Background(), "Transaction committed", nil)
	return nil
}

// Rollback rolls back the current transaction
func (b *BaseDatabase) Rollback() error {
	if b.tx == nil {
		b.logger.Error(context.Background(), "No active transaction to rollback", nil)
		return ErrNoTransaction
	}
	err := b.tx.Rollback()
	b.tx = nil
	if err != nil {
		b.logger.Error(context.Background(), "Failed to rollback transaction", log.Fields{"error": err})
		return err
	}
	b.logger.Debug(context.Background(), "Transaction rolled back", nil)
	return nil
}

// exec executes a statement, inside the current transaction when there is one
func (b *BaseDatabase) exec(query string, args ...interface{}) (sql.Result, error) {
	b.logger.Debug(context.Background(), "Executing query", log.Fields{"query": query})
	if b.tx != nil {
		return b.tx.Exec(query, args...)
	}
	return b.db.Exec(query, args...)
}

// queryRow runs a single row query, inside the current transaction when there is one
func (b *BaseDatabase) queryRow(query string, args ...interface{}) *sql.Row {
	if b.tx != nil {
		return b.tx.QueryRow(query, args...)
	}
	return b.db.QueryRow(query, args...)
}

// InitSchema initializes the database schema
func (b *BaseDatabase) InitSchema() error {
	b.logger.Info(context.Background(), "Initializing database schema", nil)

	_, err := b.exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated DATETIME NOT NULL
		);
	`)
	if err != nil {
		b.logger.Error(context.Background(), "Failed to create tables", log.Fields{"error": err})
		return fmt.Errorf("failed to create tables: %w", err)
	}
	b.logger.Info(context.Background(), "Database schema initialized successfully", nil)
	return nil
}

// validateDBDriver checks if the provided driver is supported
func validateDBDriver(driver string) (DBDriver, error) {
	switch DBDriver(driver) {
	case SQLite:
		return SQLite, nil
	case Memory:
		return Memory, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
