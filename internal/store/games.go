package store

import (
	"context"
	"database/sql"
	"fmt"

	"msxcat/internal/model"
)

const gameFieldColumns = `name, info, machine, romA, extension_rom, romB, diskA, diskB, ` +
	`tape, harddisk, laserdisc, tcl_script, msx, msx2, msx2plus, turbo_r, ` +
	`psg, scc, scc_i, pcm, msx_music, msx_audio, moonsound, midi, ` +
	`genre1, genre2, msx_genid, screenshot_suffix, sha1, size, fdd_mode`

const insertGameStatement = `INSERT INTO game (` + gameFieldColumns + `, IDDB) ` +
	`VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const updateGameStatement = `UPDATE game SET name=?, info=?, machine=?, romA=?, extension_rom=?, romB=?, ` +
	`diskA=?, diskB=?, tape=?, harddisk=?, laserdisc=?, tcl_script=?, ` +
	`msx=?, msx2=?, msx2plus=?, turbo_r=?, psg=?, scc=?, scc_i=?, pcm=?, ` +
	`msx_music=?, msx_audio=?, moonsound=?, midi=?, genre1=?, genre2=?, ` +
	`msx_genid=?, screenshot_suffix=?, sha1=?, size=?, fdd_mode=? WHERE ID=?`

func gameFieldArgs(game *model.Game) []any {
	return []any{
		game.Name, game.Info, game.Machine, game.RomA, game.ExtensionRom, game.RomB,
		game.DiskA, game.DiskB, game.Tape, game.Harddisk, game.Laserdisc, game.TclScript,
		game.IsMSX, game.IsMSX2, game.IsMSX2Plus, game.IsTurboR,
		game.IsPSG, game.IsSCC, game.IsSCCI, game.IsPCM,
		game.IsMSXMUSIC, game.IsMSXAUDIO, game.IsMoonsound, game.IsMIDI,
		int(game.Genre1), int(game.Genre2), game.MSXGenID, game.ScreenshotSuffix,
		game.SHA1, game.Size, int(game.FDDMode),
	}
}

func scanGame(rows *sql.Rows) (*model.Game, error) {
	var p model.GameParams
	var genre1, genre2, fddMode int
	err := rows.Scan(
		&p.Name, &p.Info, &p.Machine, &p.RomA, &p.ExtensionRom, &p.RomB,
		&p.DiskA, &p.DiskB, &p.Tape, &p.Harddisk, &p.Laserdisc, &p.TclScript,
		&p.IsMSX, &p.IsMSX2, &p.IsMSX2Plus, &p.IsTurboR,
		&p.IsPSG, &p.IsSCC, &p.IsSCCI, &p.IsPCM,
		&p.IsMSXMUSIC, &p.IsMSXAUDIO, &p.IsMoonsound, &p.IsMIDI,
		&genre1, &genre2, &p.MSXGenID, &p.ScreenshotSuffix,
		&p.SHA1, &p.Size, &fddMode,
	)
	if err != nil {
		return nil, fmt.Errorf("scan game: %w", err)
	}
	p.Genre1 = model.GenreFromValue(genre1)
	p.Genre2 = model.GenreFromValue(genre2)
	p.FDDMode = model.FDDModeFromValue(fddMode)

	game, ok := model.NewGame(p)
	if !ok {
		return nil, fmt.Errorf("stored row has no identifying field")
	}
	return game, nil
}

// SaveGame inserts one game into a collection.
func (s *Store) SaveGame(ctx context.Context, game *model.Game, database string) error {
	return s.SaveGames(ctx, []*model.Game{game}, database)
}

// SaveGames inserts a batch of games into a collection inside one
// transaction. A duplicate name within the collection fails the whole batch
// with an already-exists error naming the offending game.
func (s *Store) SaveGames(ctx context.Context, games []*model.Game, database string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := databaseID(ctx, tx, database)
		if err != nil {
			return err
		}
		for _, game := range games {
			args := append(gameFieldArgs(game), id)
			if _, err := tx.ExecContext(ctx, insertGameStatement, args...); err != nil {
				if isUniqueConstraintError(err) {
					return newError(IssueGameAlreadyExists, game.Name, nil)
				}
				return newError(IssueIO, game.Name, fmt.Errorf("insert game: %w", err))
			}
		}
		return nil
	})
}

// UpdateGame replaces the row identified by oldGame's name with newGame's
// fields, keeping the row id so favorites stay attached.
func (s *Store) UpdateGame(ctx context.Context, oldGame, newGame *model.Game, database string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := databaseID(ctx, tx, database)
		if err != nil {
			return err
		}

		var gameID int64
		err = tx.QueryRowContext(ctx, "SELECT ID FROM game WHERE name=? AND IDDB=?", oldGame.Name, id).Scan(&gameID)
		if err == sql.ErrNoRows {
			return newError(IssueGameNotFound, oldGame.Name, nil)
		}
		if err != nil {
			return newError(IssueIO, oldGame.Name, fmt.Errorf("get game id: %w", err))
		}

		args := append(gameFieldArgs(newGame), gameID)
		if _, err := tx.ExecContext(ctx, updateGameStatement, args...); err != nil {
			if isUniqueConstraintError(err) {
				return newError(IssueGameAlreadyExists, newGame.Name, nil)
			}
			return newError(IssueIO, newGame.Name, fmt.Errorf("update game: %w", err))
		}
		return nil
	})
}

// DeleteGame removes one game from a collection; its favorite, if any, goes
// with it.
func (s *Store) DeleteGame(ctx context.Context, game *model.Game, database string) error {
	return s.DeleteGames(ctx, []*model.Game{game}, database)
}

// DeleteGames removes a batch of games from a collection in one transaction.
func (s *Store) DeleteGames(ctx context.Context, games []*model.Game, database string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := databaseID(ctx, tx, database)
		if err != nil {
			return err
		}
		for _, game := range games {
			if _, err := tx.ExecContext(ctx, "DELETE FROM game WHERE name=? AND IDDB=?", game.Name, id); err != nil {
				return newError(IssueIO, game.Name, fmt.Errorf("delete game: %w", err))
			}
		}
		return nil
	})
}

// GetGames returns all games of a collection sorted by name.
func (s *Store) GetGames(ctx context.Context, database string) ([]*model.Game, error) {
	id, err := databaseID(ctx, s.db, database)
	if err != nil {
		return nil, err
	}

	games, err := gamesForDatabase(ctx, s.db, id)
	if err != nil {
		return nil, newError(IssueIO, database, err)
	}
	return games, nil
}
