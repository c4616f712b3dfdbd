// Package builder constructs Game entities from the various data sources
// (manual entry, legacy imports, media scans) and applies extra-data
// enrichment keyed by content hash.
package builder

import (
	"strconv"

	"msxcat/internal/fingerprint"
	"msxcat/internal/model"
)

// Builder funnels every construction path through one core that resolves
// extra-data flags and, when asked, synthesizes the Generation-MSX info URL.
type Builder struct {
	generationMSXURL string
}

// New builds a Builder. The URL is the Generation-MSX software page prefix to
// which a catalog id gets appended.
func New(generationMSXURL string) *Builder {
	return &Builder{generationMSXURL: generationMSXURL}
}

// UserInput carries the fields of a manual add or edit.
type UserInput struct {
	Name         string
	Info         string
	Machine      string
	RomA         string
	RomB         string
	ExtensionRom string
	DiskA        string
	DiskB        string
	Tape         string
	Harddisk     string
	Laserdisc    string
	Script       string
}

// ImportedData carries the fields read from a legacy launcher database.
type ImportedData struct {
	Name         string
	Info         string
	Machine      string
	RomA         string
	RomB         string
	ExtensionRom string
	DiskA        string
	DiskB        string
	Tape         string
	Harddisk     string
}

// ScannedFile carries one classified file from a media scan. The fingerprint
// was already computed during the scan pass and is never recomputed here.
type ScannedFile struct {
	Name         string
	Machine      string
	Rom          string
	ExtensionRom string
	Disk         string
	Tape         string
	Harddisk     string
	Laserdisc    string
	SHA1         string
	Size         int64
}

type coreInput struct {
	name          string
	info          string
	useCatalogURL bool
	machine       string
	romA          string
	romB          string
	extensionRom  string
	diskA         string
	diskB         string
	tape          string
	harddisk      string
	laserdisc     string
	script        string
	sha1          string
	size          int64
}

// ForUserInput builds a Game from manually entered fields. The main media
// file is fingerprinted here; a pure-script entry skips fingerprinting. The
// second return is false when no identifying field was supplied.
func (b *Builder) ForUserInput(in UserInput, extra map[string]model.ExtraData) (*model.Game, bool) {
	var sha1Code string
	var size int64
	mainFile := model.MainFile(in.RomA, in.RomB, in.DiskA, in.DiskB, in.Tape, in.Harddisk, in.Laserdisc, "")
	if mainFile != "" {
		if fp, ok := fingerprint.File(mainFile); ok {
			sha1Code = fp.SHA1
			size = fp.Size
		}
	}

	return b.build(coreInput{
		name:         in.Name,
		info:         in.Info,
		machine:      in.Machine,
		romA:         in.RomA,
		romB:         in.RomB,
		extensionRom: in.ExtensionRom,
		diskA:        in.DiskA,
		diskB:        in.DiskB,
		tape:         in.Tape,
		harddisk:     in.Harddisk,
		laserdisc:    in.Laserdisc,
		script:       in.Script,
		sha1:         sha1Code,
		size:         size,
	}, extra)
}

// ForImportedData builds a Game from legacy import fields. Imported entries
// must reference an existing media file; when the main file cannot be
// fingerprinted no Game is produced.
func (b *Builder) ForImportedData(in ImportedData, extra map[string]model.ExtraData) (*model.Game, bool) {
	mainFile := model.MainFile(in.RomA, in.RomB, in.DiskA, in.DiskB, in.Tape, in.Harddisk, "", "")
	if mainFile == "" {
		return nil, false
	}
	fp, ok := fingerprint.File(mainFile)
	if !ok {
		return nil, false
	}

	return b.build(coreInput{
		name:         in.Name,
		info:         in.Info,
		machine:      in.Machine,
		romA:         in.RomA,
		romB:         in.RomB,
		extensionRom: in.ExtensionRom,
		diskA:        in.DiskA,
		diskB:        in.DiskB,
		tape:         in.Tape,
		harddisk:     in.Harddisk,
		sha1:         fp.SHA1,
		size:         fp.Size,
	}, extra)
}

// ForScannedFile builds a Game from one scanned media file. The info field
// is synthesized from the Generation-MSX URL when the hash matches an
// extra-data entry.
func (b *Builder) ForScannedFile(in ScannedFile, extra map[string]model.ExtraData) (*model.Game, bool) {
	return b.build(coreInput{
		name:          in.Name,
		useCatalogURL: true,
		machine:       in.Machine,
		romA:          in.Rom,
		extensionRom:  in.ExtensionRom,
		diskA:         in.Disk,
		tape:          in.Tape,
		harddisk:      in.Harddisk,
		laserdisc:     in.Laserdisc,
		sha1:          in.SHA1,
		size:          in.Size,
	}, extra)
}

// FromGameWithExtraData rebuilds a Game keeping all stored fields and
// re-resolving the extra-data flags against a refreshed snapshot.
func (b *Builder) FromGameWithExtraData(game *model.Game, extra map[string]model.ExtraData) (*model.Game, bool) {
	return b.build(coreInput{
		name:         game.Name,
		info:         game.Info,
		machine:      game.Machine,
		romA:         game.RomA,
		romB:         game.RomB,
		extensionRom: game.ExtensionRom,
		diskA:        game.DiskA,
		diskB:        game.DiskB,
		tape:         game.Tape,
		harddisk:     game.Harddisk,
		laserdisc:    game.Laserdisc,
		script:       game.TclScript,
		sha1:         game.SHA1,
		size:         game.Size,
	}, extra)
}

func (b *Builder) build(in coreInput, extra map[string]model.ExtraData) (*model.Game, bool) {
	params := model.GameParams{
		Name:         in.name,
		Info:         in.info,
		Machine:      in.machine,
		RomA:         in.romA,
		RomB:         in.romB,
		ExtensionRom: in.extensionRom,
		DiskA:        in.diskA,
		DiskB:        in.diskB,
		Tape:         in.tape,
		Harddisk:     in.harddisk,
		Laserdisc:    in.laserdisc,
		TclScript:    in.script,
		SHA1:         in.sha1,
		Size:         in.size,
		Genre1:       model.GenreUnknown,
		Genre2:       model.GenreUnknown,
	}

	if data, ok := extra[in.sha1]; ok {
		params.MSXGenID = data.MSXGenID
		if in.useCatalogURL {
			params.Info = b.generationMSXURL + strconv.Itoa(data.MSXGenID)
		}
		params.IsMSX = data.IsMSX
		params.IsMSX2 = data.IsMSX2
		params.IsMSX2Plus = data.IsMSX2Plus
		params.IsTurboR = data.IsTurboR
		params.IsPSG = data.IsPSG
		params.IsSCC = data.IsSCC
		params.IsSCCI = data.IsSCCI
		params.IsPCM = data.IsPCM
		params.IsMSXMUSIC = data.IsMSXMUSIC
		params.IsMSXAUDIO = data.IsMSXAUDIO
		params.IsMoonsound = data.IsMoonsound
		params.IsMIDI = data.IsMIDI
		params.ScreenshotSuffix = data.ScreenshotSuffix
		params.Genre1 = data.Genre1
		params.Genre2 = data.Genre2
	}

	return model.NewGame(params)
}
