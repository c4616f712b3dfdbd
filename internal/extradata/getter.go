// Package extradata loads the locally shipped extra-data overlay: a
// line-oriented file mapping content hashes to Generation-MSX ids,
// generation/sound capability masks, genres and screenshot suffixes.
package extradata

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"msxcat/internal/fingerprint"
	"msxcat/internal/model"
)

const (
	extraDataFilename = "extra-data.dat"
	commentPrefix     = "--"
	recordMarker      = '#'
	versionPrefix     = "-- Version "
	defaultVersion    = "0.0"
)

// Getter reads the overlay file and caches the parsed snapshot keyed by the
// file's own SHA-1, so the file is re-parsed only when its content changes.
// The returned maps are shared immutable snapshots; callers must not mutate
// them.
type Getter struct {
	path string

	mu         sync.Mutex
	cachedHash string
	cached     map[string]model.ExtraData
}

// NewGetter builds a Getter for the extra-data file inside dataDir.
func NewGetter(dataDir string) *Getter {
	return &Getter{path: filepath.Join(dataDir, extraDataFilename)}
}

// ExtraData returns the hash-keyed overlay snapshot. A missing overlay file
// is an error: callers that asked for overlay data must be able to tell
// "no file" apart from "file with no matching entries".
func (g *Getter) ExtraData() (map[string]model.ExtraData, error) {
	fileFingerprint, ok := fingerprint.File(g.path)
	if !ok {
		return nil, fmt.Errorf("extra-data file %s: %w", g.path, os.ErrNotExist)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if fileFingerprint.SHA1 == g.cachedHash && g.cached != nil {
		return g.cached, nil
	}

	entries, err := g.parseFile()
	if err != nil {
		return nil, err
	}
	g.cachedHash = fileFingerprint.SHA1
	g.cached = entries
	return entries, nil
}

// FileVersion returns the version recorded in the overlay's comment block,
// or "0.0" when the file carries none.
func (g *Getter) FileVersion() (string, error) {
	f, err := os.Open(g.path)
	if err != nil {
		return "", fmt.Errorf("open extra-data file: %w", err)
	}
	defer f.Close()

	var versionLine string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, versionPrefix) {
			versionLine = line
			continue
		}
		if versionLine != "" {
			// End of the version block; the last version line wins.
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read extra-data file: %w", err)
	}

	if versionLine == "" {
		return defaultVersion, nil
	}
	rest := versionLine[len(versionPrefix):]
	if idx := strings.IndexByte(rest, ' '); idx > 0 {
		return rest[:idx], nil
	}
	return defaultVersion, nil
}

func (g *Getter) parseFile() (map[string]model.ExtraData, error) {
	f, err := os.Open(g.path)
	if err != nil {
		return nil, fmt.Errorf("open extra-data file: %w", err)
	}
	defer f.Close()

	entries := make(map[string]model.ExtraData)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, commentPrefix) || line[0] != recordMarker {
			continue
		}
		msxGenID := atoi(line[1:])

		if !scanner.Scan() {
			break
		}
		entry := parseEntry(msxGenID, scanner.Text())

		if !scanner.Scan() {
			break
		}
		for _, sha1Code := range strings.Split(scanner.Text(), "|") {
			if sha1Code != "" {
				entries[sha1Code] = entry
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read extra-data file: %w", err)
	}
	return entries, nil
}

// parseEntry decodes the "generations,soundChips,genre1|genre2,suffix" line
// that follows each record marker. The suffix field is optional.
func parseEntry(msxGenID int, line string) model.ExtraData {
	fields := strings.SplitN(line, ",", 4)
	var generations, soundChips, genre1, genre2 int
	var suffix string

	if len(fields) > 0 {
		generations = atoi(fields[0])
	}
	if len(fields) > 1 {
		soundChips = atoi(fields[1])
	}
	if len(fields) > 2 {
		genres := strings.SplitN(fields[2], "|", 2)
		genre1 = atoi(genres[0])
		if len(genres) > 1 {
			genre2 = atoi(genres[1])
		}
	}
	if len(fields) > 3 {
		suffix = fields[3]
	}

	return model.NewExtraData(msxGenID, generations, soundChips, genre1, genre2, suffix)
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
