package model

import "time"

// DatabaseBackup identifies a point-in-time snapshot of one collection.
// Two backups are the same snapshot only when both fields match.
type DatabaseBackup struct {
	Database  string
	Timestamp time.Time
}

// DatabaseItem addresses one game inside one collection; it is the key used
// by favorites and search results.
type DatabaseItem struct {
	GameName string
	Database string
}
