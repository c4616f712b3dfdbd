package app

import (
	"errors"
	"os"
)

// isMissingOverlay reports whether an extra-data load failed only because no
// overlay file is installed.
func isMissingOverlay(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
