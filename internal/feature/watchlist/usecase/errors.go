// Package usecase implements the business logic for the watchlist feature.
package usecase

import "errors"

var (
	// ErrAlreadyTracked is returned by the repository when inserting a
	// (user, cik) pair that already exists.
	ErrAlreadyTracked = errors.New("company already tracked")
)
