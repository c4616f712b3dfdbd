// Package scan walks media directories and turns every recognized file into
// a persisted catalog entry.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/xxxsen/common/logutil"

	"msxcat/internal/builder"
	"msxcat/internal/catalog"
	"msxcat/internal/extradata"
	"msxcat/internal/fingerprint"
	"msxcat/internal/media"
	"msxcat/internal/model"
	"msxcat/internal/store"
)

const nameCollisionSeparator = "__"

// extensionRomIDE is attached to entries launched from an IDE hard-disk image.
const extensionRomIDE = "ide"

// Request carries the parameters of one scan invocation.
type Request struct {
	Paths           []string
	TraverseSubDirs bool
	Database        string
	NewDatabase     bool
	Append          bool
	BackupFirst     bool
	Machine         string
	SearchROM       bool
	SearchDisk      bool
	SearchTape      bool
	SearchHarddisk  bool
	SearchLaserdisc bool
	NameFromCatalog bool
}

// Scanner runs scans against one store, reference catalog and extra-data
// overlay. A Scanner is not safe for concurrent scans; run one at a time.
type Scanner struct {
	store       *store.Store
	catalogData *catalog.Data
	gameBuilder *builder.Builder
	extraGetter *extradata.Getter

	// per-invocation state
	req           Request
	extraDataMap  map[string]model.ExtraData
	catalogByHash map[string]model.RepositoryGame
	games         []*model.Game
	seenNames     map[string]struct{}
	seenHashes    map[string]struct{}
}

// New builds a Scanner.
func New(s *store.Store, catalogData *catalog.Data, gameBuilder *builder.Builder, extraGetter *extradata.Getter) *Scanner {
	return &Scanner{
		store:       s,
		catalogData: catalogData,
		gameBuilder: gameBuilder,
		extraGetter: extraGetter,
	}
}

// Scan runs one scan invocation and returns the number of files that became
// persisted entries. Collection lifecycle preconditions (create, backup,
// recreate) abort the whole invocation; unreadable single files are skipped.
// The context is checked between files.
func (s *Scanner) Scan(ctx context.Context, req Request) (int, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("database", req.Database))

	s.req = req
	s.games = nil
	s.seenNames = make(map[string]struct{})
	s.seenHashes = make(map[string]struct{})

	extraDataMap, err := s.extraGetter.ExtraData()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("load extra data: %w", err)
	}
	s.extraDataMap = extraDataMap

	if req.NewDatabase {
		if err := s.store.CreateDatabase(ctx, req.Database); err != nil {
			return 0, err
		}
	} else {
		if req.BackupFirst {
			if _, err := s.store.BackupDatabase(ctx, req.Database); err != nil {
				return 0, err
			}
		}
		if !req.Append {
			if err := s.store.RecreateDatabase(ctx, req.Database); err != nil {
				return 0, err
			}
		}

		saved, err := s.store.GetGames(ctx, req.Database)
		if err != nil {
			return 0, err
		}
		for _, game := range saved {
			s.seenNames[game.Name] = struct{}{}
			s.seenHashes[game.SHA1] = struct{}{}
		}
	}

	if req.NameFromCatalog {
		s.catalogByHash, err = s.catalogData.RepositoryInfo()
		if err != nil {
			return 0, fmt.Errorf("load reference catalog: %w", err)
		}
	} else {
		s.catalogByHash = nil
	}

	total := 0
	for _, path := range req.Paths {
		found, err := s.traverse(ctx, path, true)
		if err != nil {
			return 0, err
		}
		total += found
	}

	if err := s.store.SaveGames(ctx, s.games, req.Database); err != nil {
		return 0, err
	}

	logger.Info("scan finished", zap.Int("total_found", total), zap.Int("paths", len(req.Paths)))
	return total, nil
}

func (s *Scanner) traverse(ctx context.Context, path string, firstCall bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		// unreadable entry, skip
		return 0, nil
	}

	if !info.IsDir() {
		return s.processFile(path, info.Size()), nil
	}
	if !firstCall && !s.req.TraverseSubDirs {
		return 0, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, nil
	}

	total := 0
	for _, entry := range entries {
		found, err := s.traverse(ctx, filepath.Join(path, entry.Name()), false)
		if err != nil {
			return 0, err
		}
		total += found
	}
	return total, nil
}

func (s *Scanner) processFile(path string, size int64) int {
	switch media.Classify(path) {
	case media.TypeArchive:
		entryName, fp, ok := fingerprint.ArchiveEntry(path)
		if !ok {
			return 0
		}
		return s.processCandidate(entryName, path, fp)
	case media.TypeOther:
		return 0
	default:
		f, err := os.Open(path)
		if err != nil {
			return 0
		}
		defer f.Close()

		sha1Code, _, err := fingerprint.Reader(f)
		if err != nil {
			return 0
		}
		return s.processCandidate(path, path, fingerprint.Fingerprint{SHA1: sha1Code, Size: size})
	}
}

// processCandidate slots one classified file. classifyName is the name whose
// extension decides the media type (for archives: the payload entry's name);
// storedPath is the path recorded on the entry (always the on-disk file).
func (s *Scanner) processCandidate(classifyName, storedPath string, fp fingerprint.Fingerprint) int {
	scanned := builder.ScannedFile{
		Machine: s.req.Machine,
		SHA1:    fp.SHA1,
		Size:    fp.Size,
	}

	switch media.Classify(classifyName) {
	case media.TypeRom:
		if !s.req.SearchROM {
			return 0
		}
		scanned.Rom = storedPath
	case media.TypeDisk:
		if !s.req.SearchDisk {
			return 0
		}
		if fp.Size <= media.MaxDiskFileSize {
			scanned.Disk = storedPath
		} else {
			// an oversized .dsk is really a hard-disk image
			scanned.Harddisk = storedPath
			scanned.ExtensionRom = extensionRomIDE
		}
	case media.TypeTape:
		if !s.req.SearchTape {
			return 0
		}
		scanned.Tape = storedPath
	case media.TypeHarddisk:
		if !s.req.SearchHarddisk {
			return 0
		}
		scanned.Harddisk = storedPath
		scanned.ExtensionRom = extensionRomIDE
	case media.TypeLaserdisc:
		if !s.req.SearchLaserdisc {
			return 0
		}
		scanned.Laserdisc = storedPath
	default:
		return 0
	}

	if _, seen := s.seenHashes[fp.SHA1]; seen {
		return 0
	}

	scanned.Name = s.adjustedName(s.gameName(classifyName, fp.SHA1))

	game, ok := s.gameBuilder.ForScannedFile(scanned, s.extraDataMap)
	if !ok {
		return 0
	}

	s.games = append(s.games, game)
	s.seenNames[game.Name] = struct{}{}
	s.seenHashes[fp.SHA1] = struct{}{}
	return 1
}

// gameName resolves a display name: the reference catalog title when enabled
// and known, the filename stem otherwise.
func (s *Scanner) gameName(path, sha1Code string) string {
	if s.catalogByHash != nil {
		if repositoryGame, ok := s.catalogByHash[sha1Code]; ok && repositoryGame.Title != "" {
			return repositoryGame.Title
		}
	}
	return media.Stem(path)
}

// adjustedName appends "__N" until the name is unused within this scan and
// the pre-existing rows of the target collection.
func (s *Scanner) adjustedName(name string) string {
	adjusted := name
	for counter := 1; ; counter++ {
		if _, taken := s.seenNames[adjusted]; !taken {
			return adjusted
		}
		adjusted = name + nameCollisionSeparator + strconv.Itoa(counter)
	}
}
