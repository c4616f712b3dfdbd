package store

import (
	"context"
	"database/sql"
	"fmt"

	"msxcat/internal/model"
)

// AddFavorite marks a game as favorite. The game must exist; favoriting it
// twice is rejected.
func (s *Store) AddFavorite(ctx context.Context, gameName, database string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		gameID, err := gameRowID(ctx, tx, gameName, database)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "INSERT INTO favorite (IDGAME) VALUES (?)", gameID)
		if isUniqueConstraintError(err) {
			return newError(IssueFavoriteAlreadyExists, gameName, nil)
		}
		if err != nil {
			return newError(IssueIO, gameName, fmt.Errorf("add favorite: %w", err))
		}
		return nil
	})
}

// DeleteFavorite removes the favorite mark from a game.
func (s *Store) DeleteFavorite(ctx context.Context, gameName, database string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		gameID, err := gameRowID(ctx, tx, gameName, database)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM favorite WHERE IDGAME=?", gameID); err != nil {
			return newError(IssueIO, gameName, fmt.Errorf("delete favorite: %w", err))
		}
		return nil
	})
}

// GetFavorites returns every favorite as a (game, collection) pair sorted by
// game name.
func (s *Store) GetFavorites(ctx context.Context) ([]model.DatabaseItem, error) {
	const query = `SELECT game.name, database.name FROM favorite ` +
		`JOIN game ON game.ID=favorite.IDGAME ` +
		`JOIN database ON database.ID=game.IDDB ORDER BY game.name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, newError(IssueIO, "", fmt.Errorf("list favorites: %w", err))
	}
	defer rows.Close()

	var favorites []model.DatabaseItem
	for rows.Next() {
		var item model.DatabaseItem
		if err := rows.Scan(&item.GameName, &item.Database); err != nil {
			return nil, newError(IssueIO, "", fmt.Errorf("scan favorite: %w", err))
		}
		favorites = append(favorites, item)
	}
	if err := rows.Err(); err != nil {
		return nil, newError(IssueIO, "", err)
	}
	return favorites, nil
}

func gameRowID(ctx context.Context, q querier, gameName, database string) (int64, error) {
	id, err := databaseID(ctx, q, database)
	if err != nil {
		return 0, err
	}
	var gameID int64
	err = q.QueryRowContext(ctx, "SELECT ID FROM game WHERE name=? AND IDDB=?", gameName, id).Scan(&gameID)
	if err == sql.ErrNoRows {
		return 0, newError(IssueGameNotFound, gameName, nil)
	}
	if err != nil {
		return 0, newError(IssueIO, gameName, fmt.Errorf("get game id: %w", err))
	}
	return gameID, nil
}
