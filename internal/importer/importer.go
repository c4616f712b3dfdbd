// Package importer migrates blueMSX Launcher flat-file databases into the
// catalog store.
package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/xxxsen/common/logutil"

	"msxcat/internal/builder"
	"msxcat/internal/extradata"
	"msxcat/internal/media"
	"msxcat/internal/model"
	"msxcat/internal/store"
)

// Action is the user's answer to a replace-existing-database prompt.
type Action int

const (
	ActionYes Action = iota
	ActionYesAll
	ActionNo
	ActionNoAll
	ActionCancel
)

// ActionDecider answers whether an existing database should be replaced by
// the imported one. The All variants apply to every later conflict in the
// same run without further prompting.
type ActionDecider interface {
	Decide(database string) Action
}

// blueMSX Launcher database rows are pipe-separated; these are the field
// positions the migration reads.
const (
	fieldName         = 0
	fieldRomA         = 1
	fieldRomB         = 2
	fieldDiskA        = 3
	fieldDiskB        = 4
	fieldInfo         = 6
	fieldTape         = 11
	fieldExtensionRom = 13
	fieldHarddisk     = 15
)

// Importer migrates one or more blueMSX database files, one collection per
// file, named after the file's stem.
type Importer struct {
	store       *store.Store
	gameBuilder *builder.Builder
	extraGetter *extradata.Getter
	machine     string
}

// New builds an Importer. machine is the profile assigned to every imported
// entry.
func New(s *store.Store, gameBuilder *builder.Builder, extraGetter *extradata.Getter, machine string) *Importer {
	return &Importer{
		store:       s,
		gameBuilder: gameBuilder,
		extraGetter: extraGetter,
		machine:     machine,
	}
}

// ImportDatabases migrates the given database files and returns the names of
// the collections that were imported. A conflict with an existing collection
// goes through the decider; a failed delete or create while replacing aborts
// the run with the store error.
func (i *Importer) ImportDatabases(ctx context.Context, paths []string, decider ActionDecider) ([]string, error) {
	logger := logutil.GetLogger(ctx)

	extraDataMap, err := i.extraGetter.ExtraData()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load extra data: %w", err)
	}

	existing, err := i.store.GetDatabases(ctx)
	if err != nil {
		return nil, err
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		existingSet[name] = struct{}{}
	}

	var imported []string
	var sticky Action = -1
	for _, path := range paths {
		database := media.Stem(path)

		if _, conflict := existingSet[database]; conflict {
			action := sticky
			if action != ActionYesAll && action != ActionNoAll {
				action = decider.Decide(database)
				if action == ActionYesAll || action == ActionNoAll {
					sticky = action
				}
			}

			switch action {
			case ActionYes, ActionYesAll:
				if err := i.store.DeleteDatabase(ctx, database); err != nil {
					return imported, err
				}
			case ActionNo, ActionNoAll:
				continue
			case ActionCancel:
				return imported, nil
			}
		}

		ok, err := i.migrate(ctx, path, database, extraDataMap)
		if err != nil {
			return imported, err
		}
		if ok {
			imported = append(imported, database)
		} else {
			logger.Warn("import source not readable, skipped", zap.String("path", path))
		}
	}
	return imported, nil
}

// migrate reads one blueMSX database file and persists its entries as a new
// collection. A missing source file is reported as ok=false, not an error.
func (i *Importer) migrate(ctx context.Context, path, database string, extraDataMap map[string]model.ExtraData) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("open import source %s: %w", path, err)
	}
	defer f.Close()

	var games []*model.Game
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")

		game, ok := i.gameBuilder.ForImportedData(builder.ImportedData{
			Name:         rowField(parts, fieldName),
			Info:         rowField(parts, fieldInfo),
			Machine:      i.machine,
			RomA:         rowField(parts, fieldRomA),
			RomB:         rowField(parts, fieldRomB),
			ExtensionRom: mapExtensionRom(rowField(parts, fieldExtensionRom)),
			DiskA:        rowField(parts, fieldDiskA),
			DiskB:        rowField(parts, fieldDiskB),
			Tape:         rowField(parts, fieldTape),
			Harddisk:     rowField(parts, fieldHarddisk),
		}, extraDataMap)
		if !ok {
			// entry references a missing media file
			continue
		}
		games = append(games, game)
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("read import source %s: %w", path, err)
	}

	if err := i.store.CreateDatabase(ctx, database); err != nil {
		return false, err
	}
	if err := i.store.SaveGames(ctx, games, database); err != nil {
		return false, err
	}
	return true, nil
}

func rowField(parts []string, index int) string {
	if index >= len(parts) {
		return ""
	}
	return strings.TrimSpace(parts[index])
}

// mapExtensionRom translates a blueMSX extension name to its openMSX
// equivalent; unknown extensions are dropped.
func mapExtensionRom(extensionRom string) string {
	switch extensionRom {
	case "scc", "scc+", "fmpac":
		return extensionRom
	case "sunriseide":
		return "ide"
	case "fmpak":
		return "pac"
	default:
		return ""
	}
}
