package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateDatabase creates a new, empty game collection.
func (s *Store) CreateDatabase(ctx context.Context, database string) error {
	if database == "" {
		return newError(IssueDatabaseNotFound, database, fmt.Errorf("empty database name"))
	}
	_, err := s.db.ExecContext(ctx, "INSERT INTO database (name) VALUES (?)", database)
	if isUniqueConstraintError(err) {
		return newError(IssueDatabaseAlreadyExists, database, nil)
	}
	if err != nil {
		return newError(IssueIO, database, fmt.Errorf("create database: %w", err))
	}
	return nil
}

// DeleteDatabase removes a collection with all its games, backups and
// favorites in one transaction.
func (s *Store) DeleteDatabase(ctx context.Context, database string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := databaseID(ctx, tx, database)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM database WHERE ID=?", id); err != nil {
			return newError(IssueIO, database, fmt.Errorf("delete database: %w", err))
		}
		return nil
	})
}

// RenameDatabase changes a collection's name, keeping games, backups and
// favorites attached.
func (s *Store) RenameDatabase(ctx context.Context, oldName, newName string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := databaseID(ctx, tx, oldName)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "UPDATE database SET name=? WHERE ID=?", newName, id)
		if isUniqueConstraintError(err) {
			return newError(IssueDatabaseAlreadyExists, newName, nil)
		}
		if err != nil {
			return newError(IssueIO, oldName, fmt.Errorf("rename database: %w", err))
		}
		return nil
	})
}

// RecreateDatabase empties an existing collection, keeping its identity (and
// therefore its backups).
func (s *Store) RecreateDatabase(ctx context.Context, database string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := databaseID(ctx, tx, database)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM game WHERE IDDB=?", id); err != nil {
			return newError(IssueIO, database, fmt.Errorf("recreate database: %w", err))
		}
		return nil
	})
}

// GetDatabases returns all collection names sorted by name.
func (s *Store) GetDatabases(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM database ORDER BY name")
	if err != nil {
		return nil, newError(IssueIO, "", fmt.Errorf("list databases: %w", err))
	}
	defer rows.Close()

	var databases []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, newError(IssueIO, "", fmt.Errorf("scan database name: %w", err))
		}
		databases = append(databases, name)
	}
	if err := rows.Err(); err != nil {
		return nil, newError(IssueIO, "", err)
	}
	return databases, nil
}
