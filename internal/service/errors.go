package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("already exists")
	ErrInUse               = errors.New("in use")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// RuleError carries a user-facing message for one of the sentinel kinds.
type RuleError struct {
	Kind error
	Msg  string
}

func (e *RuleError) Error() string { return e.Msg }

func (e *RuleError) Unwrap() error { return e.Kind }

func validation(msg string) error { return &RuleError{Kind: ErrValidation, Msg: msg} }
func conflict(msg string) error   { return &RuleError{Kind: ErrConflict, Msg: msg} }
func inUse(msg string) error      { return &RuleError{Kind: ErrInUse, Msg: msg} }
func notFound(msg string) error   { return &RuleError{Kind: ErrNotFound, Msg: msg} }
func forbidden(msg string) error  { return &RuleError{Kind: ErrForbidden, Msg: msg} }

// lookup turns a missing row into a not-found rule error and passes
// anything else through.
func lookup(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(msg)
	}
	return err
}

// duplicate reports unique-index violations as the same conflict the
// pre-write guard would have returned.
func duplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict(msg)
	}
	return err
}

// Message returns the user-facing text of a rule error, or "" for anything else.
func Message(err error) string {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Msg
	}
	return ""
}
