package store

import (
	"errors"
	"fmt"
)

// Issue classifies a store failure so callers can branch without matching on
// message text.
type Issue int

const (
	IssueIO Issue = iota
	IssueDatabaseNotFound
	IssueDatabaseAlreadyExists
	IssueDatabaseMaxBackupsReached
	IssueBackupNotFound
	IssueGameNotFound
	IssueGameAlreadyExists
	IssueFavoriteAlreadyExists
)

func (i Issue) String() string {
	switch i {
	case IssueDatabaseNotFound:
		return "database not found"
	case IssueDatabaseAlreadyExists:
		return "database already exists"
	case IssueDatabaseMaxBackupsReached:
		return "database max backups reached"
	case IssueBackupNotFound:
		return "backup not found"
	case IssueGameNotFound:
		return "game not found"
	case IssueGameAlreadyExists:
		return "game already exists"
	case IssueFavoriteAlreadyExists:
		return "favorite already exists"
	default:
		return "io error"
	}
}

// Error is the only error type the store surfaces. Raw database/sql errors
// never escape; they are wrapped here with an issue code and, when useful,
// the name of the subject (database, game, backup timestamp).
type Error struct {
	Issue   Issue
	Subject string
	cause   error
}

func newError(issue Issue, subject string, cause error) *Error {
	return &Error{Issue: issue, Subject: subject, cause: cause}
}

func (e *Error) Error() string {
	msg := e.Issue.String()
	if e.Subject != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Subject)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IssueOf extracts the issue code from an error chain, IssueIO when the error
// did not originate in the store.
func IssueOf(err error) Issue {
	var se *Error
	if errors.As(err, &se) {
		return se.Issue
	}
	return IssueIO
}

// IsNotFound reports whether the error says a database, game or backup was
// missing where its existence was a precondition.
func IsNotFound(err error) bool {
	switch IssueOf(err) {
	case IssueDatabaseNotFound, IssueGameNotFound, IssueBackupNotFound:
		return true
	}
	return false
}

// IsAlreadyExists reports whether the error says a duplicate database, game
// or favorite creation was attempted.
func IsAlreadyExists(err error) bool {
	switch IssueOf(err) {
	case IssueDatabaseAlreadyExists, IssueGameAlreadyExists, IssueFavoriteAlreadyExists:
		return true
	}
	return false
}

// IsMaxBackupsReached reports whether a backup was rejected because the
// per-database backup limit is hit.
func IsMaxBackupsReached(err error) bool {
	return IssueOf(err) == IssueDatabaseMaxBackupsReached
}
