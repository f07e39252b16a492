// Package store defines the persistence boundary for the four durable
// per-user records: settings, history, bookmarks, and the active pack
// selection. Each record owns exactly one key; there is no cross-record
// transactionality.
//
// Reads fail soft: a missing or unreadable record yields the documented
// default, never an error, so corrupt stored state can at worst lose
// itself. Writes report errors normally.
package store

import (
	"context"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
)

// Storage keys for the four records. Implementations must keep these
// independent; a crash between two writes may leave them inconsistent,
// which is accepted.
const (
	KeySettings    = "settings"
	KeyHistory     = "history"
	KeyBookmarks   = "bookmarks"
	KeyActivePacks = "active_packs"
)

// StateStore is the durable key-value store behind the quiz session.
type StateStore interface {
	// Settings returns the persisted settings, or domain.DefaultSettings()
	// when absent or unreadable.
	Settings(ctx context.Context) domain.Settings
	SaveSettings(ctx context.Context, s domain.Settings) error

	// History returns the append-only answer log in append order;
	// empty when absent or unreadable.
	History(ctx context.Context) []domain.AnswerRecord
	AppendHistory(ctx context.Context, rec domain.AnswerRecord) error
	ClearHistory(ctx context.Context) error

	// Bookmarks returns the bookmarked question ids; empty when absent
	// or unreadable.
	Bookmarks(ctx context.Context) []string
	SaveBookmarks(ctx context.Context, ids []string) error

	// ActivePacks returns the persisted pack selection; nil when absent
	// or unreadable, which callers treat as "all known packs".
	ActivePacks(ctx context.Context) []string
	SaveActivePacks(ctx context.Context, ids []string) error

	Close() error
}
