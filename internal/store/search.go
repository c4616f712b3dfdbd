package store

import (
	"context"
	"fmt"
	"strings"

	"msxcat/internal/model"
)

// Find searches all collections for games whose name contains the text
// (case-insensitive) or whose content hash contains it, capped at max rows.
func (s *Store) Find(ctx context.Context, text string, max int) ([]model.DatabaseItem, error) {
	const query = `SELECT game.name, database.name FROM database JOIN game ON database.ID=game.IDDB ` +
		`WHERE UPPER(game.name) LIKE UPPER(?) OR game.sha1 LIKE ? ORDER BY game.name LIMIT ?`

	pattern := "%" + text + "%"
	rows, err := s.db.QueryContext(ctx, query, pattern, strings.ToLower(pattern), max)
	if err != nil {
		return nil, newError(IssueIO, "", fmt.Errorf("find games: %w", err))
	}
	defer rows.Close()

	var matches []model.DatabaseItem
	for rows.Next() {
		var item model.DatabaseItem
		if err := rows.Scan(&item.GameName, &item.Database); err != nil {
			return nil, newError(IssueIO, "", fmt.Errorf("scan match: %w", err))
		}
		matches = append(matches, item)
	}
	if err := rows.Err(); err != nil {
		return nil, newError(IssueIO, "", err)
	}
	return matches, nil
}
