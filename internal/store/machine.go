package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/didi/gendry/builder"
)

// UpdateMachine rewrites the machine field of every matching game row in one
// statement and returns the number of rows changed. Empty from and database
// narrow nothing, so the update then spans all collections. With backupFirst
// set, every affected collection is snapshotted inside the same transaction
// before the rewrite.
func (s *Store) UpdateMachine(ctx context.Context, to, from, database string, backupFirst bool) (int64, error) {
	var updated int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if backupFirst {
			databases, err := s.databasesToBackup(ctx, tx, from, database)
			if err != nil {
				return err
			}
			for _, name := range databases {
				if _, err := backupDatabaseTx(ctx, tx, name); err != nil {
					return err
				}
			}
		}

		where := map[string]interface{}{}
		if from != "" {
			where["machine"] = from
		}
		if database != "" {
			id, err := databaseID(ctx, tx, database)
			if err != nil {
				return err
			}
			where["IDDB"] = id
		}

		updateSQL, args, err := builder.BuildUpdate("game", where, map[string]interface{}{"machine": to})
		if err != nil {
			return newError(IssueIO, "", fmt.Errorf("build machine update: %w", err))
		}
		res, err := tx.ExecContext(ctx, updateSQL, args...)
		if err != nil {
			return newError(IssueIO, "", fmt.Errorf("update machine: %w", err))
		}
		updated, err = res.RowsAffected()
		if err != nil {
			return newError(IssueIO, "", fmt.Errorf("count updated rows: %w", err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *Store) databasesToBackup(ctx context.Context, tx *sql.Tx, from, database string) ([]string, error) {
	if database != "" {
		return []string{database}, nil
	}

	query := "SELECT DISTINCT database.name FROM database JOIN game ON database.ID=game.IDDB"
	var args []any
	if from != "" {
		query += " WHERE game.machine=?"
		args = append(args, from)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newError(IssueIO, "", fmt.Errorf("list affected databases: %w", err))
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
