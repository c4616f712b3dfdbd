package builder

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msxcat/internal/model"
)

const generationMSXURL = "http://www.generation-msx.nl/msxdb/softwareinfo/"

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func writeRom(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write rom: %v", err)
	}
	return path
}

func TestForScannedFileWithExtraData(t *testing.T) {
	extra := map[string]model.ExtraData{
		"abc123": model.NewExtraData(1065, 0b0011, 0b0000011, 31, 0, ""),
	}

	b := New(generationMSXURL)
	game, ok := b.ForScannedFile(ScannedFile{
		Name:    "Nemesis",
		Machine: "Boosted_MSX2_EN",
		Rom:     "/roms/nemesis.rom",
		SHA1:    "abc123",
		Size:    131072,
	}, extra)
	require.True(t, ok)

	assert.Equal(t, "Nemesis", game.Name)
	assert.Equal(t, generationMSXURL+"1065", game.Info)
	assert.Equal(t, 1065, game.MSXGenID)
	assert.True(t, game.IsMSX)
	assert.True(t, game.IsMSX2)
	assert.False(t, game.IsMSX2Plus)
	assert.False(t, game.IsTurboR)
	assert.True(t, game.IsPSG)
	assert.True(t, game.IsSCC)
	assert.False(t, game.IsSCCI)
	assert.Equal(t, model.GenreShootEmUpAll, game.Genre1)
	assert.Equal(t, model.GenreUnknown, game.Genre2)
}

func TestForScannedFileUnknownHash(t *testing.T) {
	b := New(generationMSXURL)
	game, ok := b.ForScannedFile(ScannedFile{
		Name: "Homebrew",
		Rom:  "/roms/homebrew.rom",
		SHA1: "ffff0000",
		Size: 16384,
	}, nil)
	require.True(t, ok)

	assert.Empty(t, game.Info)
	assert.Zero(t, game.MSXGenID)
	assert.False(t, game.IsMSX)
	assert.False(t, game.IsMSX2)
	assert.False(t, game.IsPSG)
	assert.Equal(t, model.GenreUnknown, game.Genre1)
	assert.Equal(t, model.GenreUnknown, game.Genre2)
}

func TestForUserInputFingerprintsMainFile(t *testing.T) {
	payload := []byte("user entered rom payload")
	romPath := writeRom(t, "game.rom", payload)

	b := New(generationMSXURL)
	game, ok := b.ForUserInput(UserInput{
		Name:    "My Game",
		Machine: "msx2",
		RomA:    romPath,
	}, nil)
	require.True(t, ok)

	assert.Equal(t, sha1Hex(payload), game.SHA1)
	assert.Equal(t, int64(len(payload)), game.Size)
}

func TestForUserInputScriptOnlySkipsFingerprint(t *testing.T) {
	b := New(generationMSXURL)
	game, ok := b.ForUserInput(UserInput{
		Name:   "Scripted",
		Script: "/scripts/launch.tcl",
	}, nil)
	require.True(t, ok)

	assert.Empty(t, game.SHA1)
	assert.Zero(t, game.Size)
}

func TestForUserInputNoFields(t *testing.T) {
	b := New(generationMSXURL)
	game, ok := b.ForUserInput(UserInput{}, nil)
	assert.False(t, ok)
	assert.Nil(t, game)
}

func TestForImportedDataMissingFile(t *testing.T) {
	b := New(generationMSXURL)
	game, ok := b.ForImportedData(ImportedData{
		Name: "Gone",
		RomA: filepath.Join(t.TempDir(), "missing.rom"),
	}, nil)
	assert.False(t, ok)
	assert.Nil(t, game)
}

func TestForImportedDataExistingFile(t *testing.T) {
	payload := []byte("imported rom payload")
	romPath := writeRom(t, "imported.rom", payload)

	b := New(generationMSXURL)
	game, ok := b.ForImportedData(ImportedData{
		Name: "Imported",
		RomA: romPath,
	}, nil)
	require.True(t, ok)

	assert.Equal(t, sha1Hex(payload), game.SHA1)
	assert.Equal(t, int64(len(payload)), game.Size)
}

func TestFromGameWithExtraData(t *testing.T) {
	original, ok := model.NewGame(model.GameParams{
		Name:    "Refresh Me",
		Info:    "some notes",
		Machine: "msx1",
		RomA:    "/roms/refresh.rom",
		SHA1:    "cafe01",
		Size:    32768,
	})
	require.True(t, ok)

	extra := map[string]model.ExtraData{
		"cafe01": model.NewExtraData(42, 0b0001, 0b0000001, 5, 0, "-a"),
	}

	b := New(generationMSXURL)
	rebuilt, ok := b.FromGameWithExtraData(original, extra)
	require.True(t, ok)

	assert.Equal(t, "Refresh Me", rebuilt.Name)
	assert.Equal(t, "some notes", rebuilt.Info, "stored info is kept on refresh")
	assert.Equal(t, 42, rebuilt.MSXGenID)
	assert.True(t, rebuilt.IsMSX)
	assert.True(t, rebuilt.IsPSG)
	assert.Equal(t, "-a", rebuilt.ScreenshotSuffix)
}
