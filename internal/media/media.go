// Package media classifies files on disk into the media families openMSX
// can launch, based on their extension.
package media

import (
	"path/filepath"
	"strings"
)

// Type is the media family a file belongs to.
type Type int

const (
	TypeOther Type = iota
	TypeRom
	TypeDisk
	TypeTape
	TypeHarddisk
	TypeLaserdisc
	TypeArchive
)

// MaxDiskFileSize is the largest file size (720KB double density image) still
// treated as a floppy disk; larger .dsk files are hard disk images.
const MaxDiskFileSize = 737280

var (
	romExtensions       = map[string]struct{}{"ri": {}, "rom": {}, "col": {}}
	diskExtensions      = map[string]struct{}{"di1": {}, "di2": {}, "dmk": {}, "dsk": {}, "xsa": {}}
	tapeExtensions      = map[string]struct{}{"cas": {}, "wav": {}}
	harddiskExtensions  = map[string]struct{}{"dsk": {}, "hdd": {}}
	laserdiscExtensions = map[string]struct{}{"ogv": {}}
	archiveExtensions   = map[string]struct{}{"zip": {}, "gz": {}, "7z": {}, "rar": {}}
)

// Classify returns the media family for the given file name. A name matching
// both the disk and harddisk sets (.dsk) classifies as disk; callers decide
// on promotion to harddisk by size.
func Classify(name string) Type {
	ext := extension(name)
	switch {
	case isIn(ext, romExtensions):
		return TypeRom
	case isIn(ext, diskExtensions):
		return TypeDisk
	case isIn(ext, tapeExtensions):
		return TypeTape
	case isIn(ext, harddiskExtensions):
		return TypeHarddisk
	case isIn(ext, laserdiscExtensions):
		return TypeLaserdisc
	case isIn(ext, archiveExtensions):
		return TypeArchive
	default:
		return TypeOther
	}
}

func IsRom(name string) bool       { return isIn(extension(name), romExtensions) }
func IsDisk(name string) bool      { return isIn(extension(name), diskExtensions) }
func IsTape(name string) bool      { return isIn(extension(name), tapeExtensions) }
func IsHarddisk(name string) bool  { return isIn(extension(name), harddiskExtensions) }
func IsLaserdisc(name string) bool { return isIn(extension(name), laserdiscExtensions) }
func IsArchive(name string) bool   { return isIn(extension(name), archiveExtensions) }

// Stem returns the file name without directory and extension, the default
// display name for a scanned file.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func isIn(ext string, set map[string]struct{}) bool {
	_, ok := set[ext]
	return ok
}
