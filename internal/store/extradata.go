package store

import (
	"context"
	"database/sql"
	"fmt"

	"msxcat/internal/model"
)

const updateExtraFieldsStatement = `UPDATE game SET msx=?, msx2=?, msx2plus=?, turbo_r=?, ` +
	`psg=?, scc=?, scc_i=?, pcm=?, msx_music=?, msx_audio=?, moonsound=?, midi=?, ` +
	`genre1=?, genre2=?, msx_genid=?, screenshot_suffix=? WHERE name=? AND IDDB=?`

// GameRebuilder re-resolves a game's extra-data fields against a refreshed
// overlay snapshot, keeping all other fields.
type GameRebuilder interface {
	FromGameWithExtraData(game *model.Game, extra map[string]model.ExtraData) (*model.Game, bool)
}

// UpdateGameExtraData rebuilds the overlay-derived fields of every stored
// game from a fresh extra-data snapshot and returns how many rows actually
// changed. The whole sweep runs in one transaction.
func (s *Store) UpdateGameExtraData(ctx context.Context, rebuilder GameRebuilder, extra map[string]model.ExtraData) (int, error) {
	var updated int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		databases, err := databaseNames(ctx, tx)
		if err != nil {
			return err
		}

		for _, database := range databases {
			id, err := databaseID(ctx, tx, database)
			if err != nil {
				return err
			}
			games, err := gamesForDatabase(ctx, tx, id)
			if err != nil {
				return newError(IssueIO, database, err)
			}

			for _, game := range games {
				rebuilt, ok := rebuilder.FromGameWithExtraData(game, extra)
				if !ok || extraDataEqual(game, rebuilt) {
					continue
				}
				_, err := tx.ExecContext(ctx, updateExtraFieldsStatement,
					rebuilt.IsMSX, rebuilt.IsMSX2, rebuilt.IsMSX2Plus, rebuilt.IsTurboR,
					rebuilt.IsPSG, rebuilt.IsSCC, rebuilt.IsSCCI, rebuilt.IsPCM,
					rebuilt.IsMSXMUSIC, rebuilt.IsMSXAUDIO, rebuilt.IsMoonsound, rebuilt.IsMIDI,
					int(rebuilt.Genre1), int(rebuilt.Genre2), rebuilt.MSXGenID, rebuilt.ScreenshotSuffix,
					game.Name, id)
				if err != nil {
					return newError(IssueIO, game.Name, fmt.Errorf("update extra data: %w", err))
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func databaseNames(ctx context.Context, q querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT name FROM database ORDER BY name")
	if err != nil {
		return nil, newError(IssueIO, "", fmt.Errorf("list databases: %w", err))
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, newError(IssueIO, "", fmt.Errorf("scan database name: %w", err))
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, newError(IssueIO, "", err)
	}
	return names, nil
}

func gamesForDatabase(ctx context.Context, q querier, databaseID int64) ([]*model.Game, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+gameFieldColumns+" FROM game WHERE IDDB=? ORDER BY name", databaseID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []*model.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func extraDataEqual(a, b *model.Game) bool {
	return a.IsMSX == b.IsMSX && a.IsMSX2 == b.IsMSX2 &&
		a.IsMSX2Plus == b.IsMSX2Plus && a.IsTurboR == b.IsTurboR &&
		a.IsPSG == b.IsPSG && a.IsSCC == b.IsSCC && a.IsSCCI == b.IsSCCI && a.IsPCM == b.IsPCM &&
		a.IsMSXMUSIC == b.IsMSXMUSIC && a.IsMSXAUDIO == b.IsMSXAUDIO &&
		a.IsMoonsound == b.IsMoonsound && a.IsMIDI == b.IsMIDI &&
		a.Genre1 == b.Genre1 && a.Genre2 == b.Genre2 &&
		a.MSXGenID == b.MSXGenID && a.ScreenshotSuffix == b.ScreenshotSuffix
}
