package model

import "strings"

// FDDMode controls how many floppy drives the emulated machine exposes when
// a game is launched.
type FDDMode int

const (
	FDDModeEnableBoth FDDMode = iota
	FDDModeDisableSecond
	FDDModeDisableBoth
)

// FDDModeFromValue maps a stored numeric value back to an FDDMode. Unknown
// values fall back to FDDModeEnableBoth.
func FDDModeFromValue(value int) FDDMode {
	switch FDDMode(value) {
	case FDDModeDisableSecond, FDDModeDisableBoth:
		return FDDMode(value)
	default:
		return FDDModeEnableBoth
	}
}

// GameParams carries every attribute a Game can be created from. Empty
// strings mean "not set".
type GameParams struct {
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
	TclScript    string

	IsMSX      bool
	IsMSX2     bool
	IsMSX2Plus bool
	IsTurboR   bool

	IsPSG       bool
	IsSCC       bool
	IsSCCI      bool
	IsPCM       bool
	IsMSXMUSIC  bool
	IsMSXAUDIO  bool
	IsMoonsound bool
	IsMIDI      bool

	Genre1 Genre
	Genre2 Genre

	MSXGenID         int
	SHA1             string
	Size             int64
	ScreenshotSuffix string
	FDDMode          FDDMode
}

// Game is one catalog entry. Instances are built once through NewGame and
// never mutated afterwards; edits replace the whole row.
type Game struct {
	GameParams
}

// NewGame validates the params and returns the built game. The second return
// value is false when no identifying field (name, media slot or script) was
// set, which callers treat as "no entity", not as an error.
func NewGame(p GameParams) (*Game, bool) {
	trimStrings(&p)
	if p.Name == "" && p.RomA == "" && p.RomB == "" &&
		p.DiskA == "" && p.DiskB == "" &&
		p.Tape == "" && p.Harddisk == "" && p.Laserdisc == "" && p.TclScript == "" {
		return nil, false
	}
	return &Game{GameParams: p}, true
}

// MainFile returns the first set media field in launch-priority order:
// ROM A, ROM B, disk A, disk B, tape, hard disk, laserdisc, script. Empty
// string when the game has no file at all.
func (g *Game) MainFile() string {
	return MainFile(g.RomA, g.RomB, g.DiskA, g.DiskB, g.Tape, g.Harddisk, g.Laserdisc, g.TclScript)
}

// MainFile picks the first non-empty candidate in launch-priority order.
func MainFile(romA, romB, diskA, diskB, tape, harddisk, laserdisc, script string) string {
	for _, candidate := range []string{romA, romB, diskA, diskB, tape, harddisk, laserdisc, script} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func trimStrings(p *GameParams) {
	p.Name = strings.TrimSpace(p.Name)
	p.Info = strings.TrimSpace(p.Info)
	p.Machine = strings.TrimSpace(p.Machine)
	p.RomA = strings.TrimSpace(p.RomA)
	p.RomB = strings.TrimSpace(p.RomB)
	p.ExtensionRom = strings.TrimSpace(p.ExtensionRom)
	p.DiskA = strings.TrimSpace(p.DiskA)
	p.DiskB = strings.TrimSpace(p.DiskB)
	p.Tape = strings.TrimSpace(p.Tape)
	p.Harddisk = strings.TrimSpace(p.Harddisk)
	p.Laserdisc = strings.TrimSpace(p.Laserdisc)
	p.TclScript = strings.TrimSpace(p.TclScript)
	p.SHA1 = strings.TrimSpace(p.SHA1)
	p.ScreenshotSuffix = strings.TrimSpace(p.ScreenshotSuffix)
}
