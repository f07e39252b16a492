package service

import "errors"

// Service-level errors
var (
	// ErrNotConfirmed is returned when a destructive operation (reset
	// session, clear history, clear bookmarks) is requested without the
	// explicit confirmation flag. Nothing is changed.
	ErrNotConfirmed = errors.New("destructive action not confirmed")

	// ErrNoCurrentQuestion is returned when an action that needs a
	// current question (bookmark toggle) runs with none on display.
	ErrNoCurrentQuestion = errors.New("no current question")

	// ErrUnknownPack is returned when a pack operation names an id that
	// is not in the registry and nothing usable remains after filtering.
	ErrUnknownPack = errors.New("unknown pack id")
)
