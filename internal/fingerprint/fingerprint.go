// Package fingerprint computes the content identity of a media file: the
// SHA-1 of its bytes plus its byte size. Single-payload archive containers
// (zip, gz, 7z, rar) are unwrapped so the fingerprint describes the payload,
// not the container.
package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"

	"msxcat/internal/media"
)

// Fingerprint is the content identity of one media file.
type Fingerprint struct {
	SHA1 string
	Size int64
}

// File fingerprints the file at path. The second return value is false when
// the file does not exist, cannot be read, or is a malformed archive; a
// missing file is an expected condition during scans, not an error.
func File(path string) (Fingerprint, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Fingerprint{}, false
	}

	if media.IsArchive(path) {
		_, fp, ok := ArchiveEntry(path)
		return fp, ok
	}

	f, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, false
	}
	defer f.Close()

	sha1Code, _, err := Reader(f)
	if err != nil {
		return Fingerprint{}, false
	}
	return Fingerprint{SHA1: sha1Code, Size: info.Size()}, true
}

// Reader hashes a byte stream to completion, returning the hex SHA-1 and the
// number of bytes consumed.
func Reader(r io.Reader) (string, int64, error) {
	hasher := sha1.New()
	n, err := io.Copy(hasher, r)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(hasher.Sum(nil)), n, nil
}
