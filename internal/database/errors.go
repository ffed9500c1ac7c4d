package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

const (
	codeCheckViolation      = "23514"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
	codeUniqueViolation     = "23505"
)

// ErrDuplicate is returned when a unique column already holds the value.
var ErrDuplicate = errors.New("record already exists")

// mapError turns driver errors the engine cares about into its sentinels and
// returns everything else untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return thread.ErrPostNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeCheckViolation:
		switch pgErr.ConstraintName {
		case constraintQuota:
			return thread.ErrQuotaExceeded
		case constraintAuthorReply:
			return thread.ErrNotAuthorized
		case "comments_one_participant":
			return thread.ErrInvalidParticipant
		}
	case codeForeignKeyViolation, codeInvalidText:
		// Malformed ids cannot name a row, so they read as missing.
		return thread.ErrPostNotFound
	case codeUniqueViolation:
		return ErrDuplicate
	}
	return err
}
