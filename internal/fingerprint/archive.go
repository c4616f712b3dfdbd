package fingerprint

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/nwaples/rardecode/v2"
)

// ArchiveEntry fingerprints the first non-directory entry of a single-payload
// archive container and returns the entry's stored name, so callers can
// classify the payload by its own extension. Any malformed or empty container
// reports false: one bad archive must not abort a whole-tree scan.
func ArchiveEntry(path string) (string, Fingerprint, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return zipEntry(path)
	case ".gz":
		return gzipEntry(path)
	case ".7z":
		return sevenZipEntry(path)
	case ".rar":
		return rarEntry(path)
	default:
		return "", Fingerprint{}, false
	}
}

func zipEntry(path string) (string, Fingerprint, bool) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", Fingerprint{}, false
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", Fingerprint{}, false
		}
		defer rc.Close()

		sha1Code, size, err := Reader(rc)
		if err != nil {
			return "", Fingerprint{}, false
		}
		return f.Name, Fingerprint{SHA1: sha1Code, Size: size}, true
	}
	return "", Fingerprint{}, false
}

func gzipEntry(path string) (string, Fingerprint, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", Fingerprint{}, false
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", Fingerprint{}, false
	}
	defer gz.Close()

	sha1Code, size, err := Reader(gz)
	if err != nil {
		return "", Fingerprint{}, false
	}

	// gzip carries no mandatory member name; fall back to the container
	// name minus its .gz suffix.
	name := gz.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return name, Fingerprint{SHA1: sha1Code, Size: size}, true
}

func sevenZipEntry(path string) (string, Fingerprint, bool) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return "", Fingerprint{}, false
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", Fingerprint{}, false
		}
		defer rc.Close()

		sha1Code, size, err := Reader(rc)
		if err != nil {
			return "", Fingerprint{}, false
		}
		return f.Name, Fingerprint{SHA1: sha1Code, Size: size}, true
	}
	return "", Fingerprint{}, false
}

func rarEntry(path string) (string, Fingerprint, bool) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return "", Fingerprint{}, false
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err != nil {
			return "", Fingerprint{}, false
		}
		if header.IsDir {
			continue
		}
		sha1Code, size, err := Reader(r)
		if err != nil {
			return "", Fingerprint{}, false
		}
		return header.Name, Fingerprint{SHA1: sha1Code, Size: size}, true
	}
}
