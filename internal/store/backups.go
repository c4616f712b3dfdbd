package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"msxcat/internal/model"
)

// maxDatabaseBackups is the per-collection cap on retained snapshots.
const maxDatabaseBackups = 10

const backupTimeFormat = time.RFC3339Nano

const backupGamesStatement = `INSERT INTO game_backup (` + gameFieldColumns + `, IDDB) ` +
	`SELECT ` + gameFieldColumns + `, ? FROM game WHERE IDDB=?`

const restoreGamesStatement = `INSERT INTO game (` + gameFieldColumns + `, IDDB) ` +
	`SELECT ` + gameFieldColumns + `, ? FROM game_backup WHERE IDDB=?`

// BackupDatabase snapshots a collection's games under a (name, timestamp)
// record. At most maxDatabaseBackups snapshots are kept per collection;
// beyond that the backup is rejected.
func (s *Store) BackupDatabase(ctx context.Context, database string) (model.DatabaseBackup, error) {
	var backup model.DatabaseBackup
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		backup, err = backupDatabaseTx(ctx, tx, database)
		return err
	})
	return backup, err
}

func backupDatabaseTx(ctx context.Context, tx *sql.Tx, database string) (model.DatabaseBackup, error) {
	var backup model.DatabaseBackup

	id, err := databaseID(ctx, tx, database)
	if err != nil {
		return backup, err
	}

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(time) FROM database_backup WHERE IDDB=?", id).Scan(&count); err != nil {
		return backup, newError(IssueIO, database, fmt.Errorf("count backups: %w", err))
	}
	if count >= maxDatabaseBackups {
		return backup, newError(IssueDatabaseMaxBackupsReached, database, nil)
	}

	timestamp := time.Now().UTC()
	res, err := tx.ExecContext(ctx, "INSERT INTO database_backup (time, IDDB) VALUES (?, ?)",
		timestamp.Format(backupTimeFormat), id)
	if err != nil {
		return backup, newError(IssueIO, database, fmt.Errorf("insert backup record: %w", err))
	}
	backupID, err := res.LastInsertId()
	if err != nil {
		return backup, newError(IssueIO, database, fmt.Errorf("backup record id: %w", err))
	}

	if _, err := tx.ExecContext(ctx, backupGamesStatement, backupID, id); err != nil {
		return backup, newError(IssueIO, database, fmt.Errorf("copy games to backup: %w", err))
	}

	backup = model.DatabaseBackup{Database: database, Timestamp: timestamp}
	return backup, nil
}

// RestoreBackup replaces a collection's current games with the snapshot's
// games. The consumed snapshot record is removed as part of the restore.
func (s *Store) RestoreBackup(ctx context.Context, backup model.DatabaseBackup) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := databaseID(ctx, tx, backup.Database)
		if err != nil {
			return err
		}

		backupID, err := backupRecordID(ctx, tx, id, backup)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM game WHERE IDDB=?", id); err != nil {
			return newError(IssueIO, backup.Database, fmt.Errorf("clear current games: %w", err))
		}
		if _, err := tx.ExecContext(ctx, restoreGamesStatement, id, backupID); err != nil {
			return newError(IssueIO, backup.Database, fmt.Errorf("restore games: %w", err))
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM database_backup WHERE ID=?", backupID); err != nil {
			return newError(IssueIO, backup.Database, fmt.Errorf("drop restored backup: %w", err))
		}
		return nil
	})
}

// DeleteBackup drops one snapshot and its copied games.
func (s *Store) DeleteBackup(ctx context.Context, backup model.DatabaseBackup) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := databaseID(ctx, tx, backup.Database)
		if err != nil {
			return err
		}
		backupID, err := backupRecordID(ctx, tx, id, backup)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM database_backup WHERE ID=?", backupID); err != nil {
			return newError(IssueIO, backup.Database, fmt.Errorf("delete backup: %w", err))
		}
		return nil
	})
}

func backupRecordID(ctx context.Context, tx *sql.Tx, databaseID int64, backup model.DatabaseBackup) (int64, error) {
	var backupID int64
	err := tx.QueryRowContext(ctx, "SELECT ID FROM database_backup WHERE IDDB=? AND time=?",
		databaseID, backup.Timestamp.UTC().Format(backupTimeFormat)).Scan(&backupID)
	if err == sql.ErrNoRows {
		return 0, newError(IssueBackupNotFound, backup.Timestamp.Format(backupTimeFormat), nil)
	}
	if err != nil {
		return 0, newError(IssueIO, backup.Database, fmt.Errorf("get backup id: %w", err))
	}
	return backupID, nil
}

// GetBackups lists a collection's snapshots, oldest first.
func (s *Store) GetBackups(ctx context.Context, database string) ([]model.DatabaseBackup, error) {
	id, err := databaseID(ctx, s.db, database)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT time FROM database_backup WHERE IDDB=? ORDER BY time", id)
	if err != nil {
		return nil, newError(IssueIO, database, fmt.Errorf("list backups: %w", err))
	}
	defer rows.Close()

	var backups []model.DatabaseBackup
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, newError(IssueIO, database, fmt.Errorf("scan backup time: %w", err))
		}
		timestamp, err := time.Parse(backupTimeFormat, raw)
		if err != nil {
			return nil, newError(IssueIO, database, fmt.Errorf("parse backup time %q: %w", raw, err))
		}
		backups = append(backups, model.DatabaseBackup{Database: database, Timestamp: timestamp})
	}
	if err := rows.Err(); err != nil {
		return nil, newError(IssueIO, database, err)
	}
	return backups, nil
}
