// Package catalog reads the openMSX software database XML files and merges
// them into hash-keyed reference metadata for scanned media.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"msxcat/internal/model"
)

// Source names one software database XML file. Sources are consulted in the
// order they were passed to NewData.
type Source struct {
	Name string
	Path string
}

// RomSource points at the ROM software database next to the machines
// directory of an openMSX installation.
func RomSource(machinesDir string) Source {
	return Source{Name: "rom", Path: filepath.Join(filepath.Dir(machinesDir), "softwaredb.xml")}
}

// TapeSource points at the tape software database of an openMSX installation.
func TapeSource(machinesDir string) Source {
	return Source{Name: "tape", Path: filepath.Join(filepath.Dir(machinesDir), "softwaredb-tapes.xml")}
}

// Data merges one or more software database sources. Every configured source
// must be present and parseable: silently dropping reference metadata would
// corrupt scan enrichment. An installation without software databases is
// represented by an empty source list, not by missing files.
type Data struct {
	sources []Source
}

// NewData builds a Data over the given ordered sources.
func NewData(sources ...Source) *Data {
	return &Data{sources: sources}
}

// RepositoryInfo returns the hash-keyed metadata of all sources merged into
// one map. Earlier sources win on conflicting hashes.
func (d *Data) RepositoryInfo() (map[string]model.RepositoryGame, error) {
	merged := make(map[string]model.RepositoryGame)
	for _, source := range d.sources {
		f, err := os.Open(source.Path)
		if err != nil {
			return nil, fmt.Errorf("open software database %s: %w", source.Path, err)
		}

		entries, err := parseRepositoryInfo(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse software database %s: %w", source.Path, err)
		}
		for sha1Code, game := range entries {
			if _, ok := merged[sha1Code]; !ok {
				merged[sha1Code] = game
			}
		}
	}
	return merged, nil
}

// DumpCodes returns every hash belonging to the same software entry as the
// given hash. The lookup stops at the first source with a match: re-dumps of
// one title live in a single database file. Unknown hashes yield an empty
// set.
func (d *Data) DumpCodes(sha1Code string) (map[string]struct{}, error) {
	for _, source := range d.sources {
		f, err := os.Open(source.Path)
		if err != nil {
			return nil, fmt.Errorf("open software database %s: %w", source.Path, err)
		}

		codes, err := parseDumpCodes(f, sha1Code)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse software database %s: %w", source.Path, err)
		}
		if len(codes) > 0 {
			return codes, nil
		}
	}
	return map[string]struct{}{}, nil
}

// GameInfo returns the full record for one hash, including the per-dump
// attributes, or nil when no source knows the hash.
func (d *Data) GameInfo(sha1Code string) (*model.RepositoryGame, error) {
	for _, source := range d.sources {
		f, err := os.Open(source.Path)
		if err != nil {
			return nil, fmt.Errorf("open software database %s: %w", source.Path, err)
		}

		game, err := parseGameInfo(f, sha1Code)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse software database %s: %w", source.Path, err)
		}
		if game != nil {
			return game, nil
		}
	}
	return nil, nil
}
