package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msxcat/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustGame(t *testing.T, p model.GameParams) *model.Game {
	t.Helper()
	game, ok := model.NewGame(p)
	require.True(t, ok)
	return game
}

func TestCreateDatabaseTwice(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	err := s.CreateDatabase(ctx, "games")
	require.Error(t, err)
	assert.True(t, IsAlreadyExists(err))
	assert.Equal(t, IssueDatabaseAlreadyExists, IssueOf(err))
}

func TestRecreateDatabaseNotFound(t *testing.T) {
	s := openTestStore(t)
	err := s.RecreateDatabase(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRecreateDatabaseClearsGames(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "One", RomA: "/r/one.rom"}), "games"))

	require.NoError(t, s.RecreateDatabase(ctx, "games"))
	games, err := s.GetGames(ctx, "games")
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestRenameDatabase(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "old"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Kept", RomA: "/r/kept.rom"}), "old"))
	require.NoError(t, s.RenameDatabase(ctx, "old", "new"))

	games, err := s.GetGames(ctx, "new")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Kept", games[0].Name)

	_, err = s.GetGames(ctx, "old")
	assert.True(t, IsNotFound(err))

	require.NoError(t, s.CreateDatabase(ctx, "taken"))
	err = s.RenameDatabase(ctx, "new", "taken")
	assert.True(t, IsAlreadyExists(err))
}

func TestSaveGamesDuplicateName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "A", RomA: "/r/a.rom"}), "games"))

	err := s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "A", RomA: "/r/other.rom"}), "games")
	require.Error(t, err)
	assert.Equal(t, IssueGameAlreadyExists, IssueOf(err))

	games, err := s.GetGames(ctx, "games")
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestSaveGamesBatchRollsBackOnDuplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Taken", RomA: "/r/taken.rom"}), "games"))

	batch := []*model.Game{
		mustGame(t, model.GameParams{Name: "Fresh", RomA: "/r/fresh.rom"}),
		mustGame(t, model.GameParams{Name: "Taken", RomA: "/r/dup.rom"}),
	}
	err := s.SaveGames(ctx, batch, "games")
	require.Error(t, err)

	games, err := s.GetGames(ctx, "games")
	require.NoError(t, err)
	require.Len(t, games, 1, "failed batch must not leave partial rows")
	assert.Equal(t, "Taken", games[0].Name)
}

func TestGameRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	saved := mustGame(t, model.GameParams{
		Name:             "Metal Gear",
		Info:             "http://example.invalid/1",
		Machine:          "Boosted_MSX2_EN",
		RomA:             "/roms/mg.rom",
		IsMSX2:           true,
		IsPSG:            true,
		IsSCC:            true,
		Genre1:           model.GenreAction,
		Genre2:           model.GenreAdventureAll,
		MSXGenID:         1382,
		SHA1:             "0123abcd",
		Size:             262144,
		ScreenshotSuffix: "-b",
		FDDMode:          model.FDDModeDisableBoth,
	})
	require.NoError(t, s.SaveGame(ctx, saved, "games"))

	games, err := s.GetGames(ctx, "games")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, saved, games[0])
}

func TestUpdateGameKeepsFavorite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	oldGame := mustGame(t, model.GameParams{Name: "Old Name", RomA: "/r/g.rom"})
	require.NoError(t, s.SaveGame(ctx, oldGame, "games"))
	require.NoError(t, s.AddFavorite(ctx, "Old Name", "games"))

	newGame := mustGame(t, model.GameParams{Name: "New Name", RomA: "/r/g.rom", Machine: "msx2"})
	require.NoError(t, s.UpdateGame(ctx, oldGame, newGame, "games"))

	favorites, err := s.GetFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "New Name", favorites[0].GameName)

	err = s.UpdateGame(ctx, oldGame, newGame, "games")
	assert.Equal(t, IssueGameNotFound, IssueOf(err))
}

func TestDeleteGameCascadesFavorite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	game := mustGame(t, model.GameParams{Name: "Fav", RomA: "/r/fav.rom"})
	require.NoError(t, s.SaveGame(ctx, game, "games"))
	require.NoError(t, s.AddFavorite(ctx, "Fav", "games"))

	require.NoError(t, s.DeleteGame(ctx, game, "games"))

	favorites, err := s.GetFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestAddFavoriteTwice(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Fav", RomA: "/r/fav.rom"}), "games"))

	require.NoError(t, s.AddFavorite(ctx, "Fav", "games"))
	err := s.AddFavorite(ctx, "Fav", "games")
	assert.Equal(t, IssueFavoriteAlreadyExists, IssueOf(err))

	err = s.AddFavorite(ctx, "Nope", "games")
	assert.Equal(t, IssueGameNotFound, IssueOf(err))
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Original", RomA: "/r/o.rom"}), "games"))

	backup, err := s.BackupDatabase(ctx, "games")
	require.NoError(t, err)
	assert.Equal(t, "games", backup.Database)

	require.NoError(t, s.RecreateDatabase(ctx, "games"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Replacement", RomA: "/r/n.rom"}), "games"))

	require.NoError(t, s.RestoreBackup(ctx, backup))

	games, err := s.GetGames(ctx, "games")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Original", games[0].Name)

	// a restored backup is consumed
	backups, err := s.GetBackups(ctx, "games")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestBackupLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	for i := 0; i < maxDatabaseBackups; i++ {
		_, err := s.BackupDatabase(ctx, "games")
		require.NoError(t, err)
	}

	_, err := s.BackupDatabase(ctx, "games")
	require.Error(t, err)
	assert.True(t, IsMaxBackupsReached(err))

	backups, err := s.GetBackups(ctx, "games")
	require.NoError(t, err)
	assert.Len(t, backups, maxDatabaseBackups)
}

func TestBackupMissingDatabase(t *testing.T) {
	s := openTestStore(t)
	_, err := s.BackupDatabase(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDeleteDatabaseRemovesEverything(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "G", RomA: "/r/g.rom"}), "games"))
	require.NoError(t, s.AddFavorite(ctx, "G", "games"))
	_, err := s.BackupDatabase(ctx, "games")
	require.NoError(t, err)

	require.NoError(t, s.DeleteDatabase(ctx, "games"))

	databases, err := s.GetDatabases(ctx)
	require.NoError(t, err)
	assert.Empty(t, databases)

	favorites, err := s.GetFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestUpdateMachine(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "first"))
	require.NoError(t, s.CreateDatabase(ctx, "second"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "A", RomA: "/r/a.rom", Machine: "old"}), "first"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "B", RomA: "/r/b.rom", Machine: "old"}), "second"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "C", RomA: "/r/c.rom", Machine: "other"}), "second"))

	updated, err := s.UpdateMachine(ctx, "new", "old", "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	games, err := s.GetGames(ctx, "second")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "new", games[0].Machine) // B
	assert.Equal(t, "other", games[1].Machine)
}

func TestUpdateMachineScopedToDatabase(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "first"))
	require.NoError(t, s.CreateDatabase(ctx, "second"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "A", RomA: "/r/a.rom", Machine: "old"}), "first"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "B", RomA: "/r/b.rom", Machine: "old"}), "second"))

	updated, err := s.UpdateMachine(ctx, "new", "", "first", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	// backupFirst snapshots the affected database inside the same tx
	backups, err := s.GetBackups(ctx, "first")
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	games, err := s.GetGames(ctx, "second")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "old", games[0].Machine)
}

func TestFind(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "first"))
	require.NoError(t, s.CreateDatabase(ctx, "second"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Metal Gear", RomA: "/r/mg.rom", SHA1: "aabbcc"}), "first"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Metal Gear 2", RomA: "/r/mg2.rom", SHA1: "ddeeff"}), "second"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Aleste", RomA: "/r/al.rom", SHA1: "112233"}), "second"))

	matches, err := s.Find(ctx, "metal", 10)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = s.Find(ctx, "metal", 1)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = s.Find(ctx, "ddee", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Metal Gear 2", matches[0].GameName)
}

type stubRebuilder struct{}

func (r stubRebuilder) FromGameWithExtraData(game *model.Game, extra map[string]model.ExtraData) (*model.Game, bool) {
	params := game.GameParams
	if data, ok := extra[game.SHA1]; ok {
		params.MSXGenID = data.MSXGenID
		params.IsMSX = data.IsMSX
		params.IsPSG = data.IsPSG
		params.Genre1 = data.Genre1
	}
	return model.NewGame(params)
}

func TestUpdateGameExtraData(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateDatabase(ctx, "games"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Known", RomA: "/r/k.rom", SHA1: "aa11"}), "games"))
	require.NoError(t, s.SaveGame(ctx, mustGame(t, model.GameParams{Name: "Unknown", RomA: "/r/u.rom", SHA1: "bb22"}), "games"))

	extra := map[string]model.ExtraData{
		"aa11": model.NewExtraData(7, 0b0001, 0b0000001, int(model.GenreAction), 0, ""),
	}

	updated, err := s.UpdateGameExtraData(ctx, stubRebuilder{}, extra)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	games, err := s.GetGames(ctx, "games")
	require.NoError(t, err)
	require.Len(t, games, 2)
	known := games[0] // sorted by name
	assert.Equal(t, "Known", known.Name)
	assert.True(t, known.IsMSX)
	assert.True(t, known.IsPSG)
	assert.Equal(t, 7, known.MSXGenID)
	assert.Equal(t, model.GenreAction, known.Genre1)

	// second sweep with the same snapshot changes nothing
	updated, err = s.UpdateGameExtraData(ctx, stubRebuilder{}, extra)
	require.NoError(t, err)
	assert.Zero(t, updated)
}
