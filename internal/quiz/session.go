package quiz

import (
	"errors"
	"math/rand"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
)

// Session state errors
var (
	// ErrSessionComplete is returned when an answer action is attempted
	// with no current question (position past the end, or empty set).
	ErrSessionComplete = errors.New("session complete")

	// ErrAlreadyAnswered is returned when the current question is
	// submitted a second time before advancing.
	ErrAlreadyAnswered = errors.New("current question already answered")
)

// Session is the navigation and scoring state machine. It owns the working
// bank, the filtered view over it, the traversal order and position, and
// the session counters.
//
// Session is not safe for concurrent use; the owning service serializes
// access so every transition runs to completion before the next.
type Session struct {
	bank     []domain.Question
	filtered []domain.Question
	order    []int
	idx      int

	correct   int
	incorrect int
	streak    int

	criteria Criteria
	answered bool
	shuffle  bool
	rng      *rand.Rand
}

// NewSession returns an empty session. A nil rng falls back to a
// time-seeded source on first shuffle; tests inject a deterministic one.
func NewSession(rng *rand.Rand) *Session {
	return &Session{rng: rng, order: []int{}}
}

// SetShuffle controls whether future reorders shuffle. It does not
// reorder by itself: settings affect future behavior only.
func (s *Session) SetShuffle(on bool) {
	s.shuffle = on
}

// SetBank replaces the working bank (pack rebuild), refilters, reorders
// and returns to position 0. Counters are deliberately kept: changing
// packs or filters is a view change, not a score reset.
func (s *Session) SetBank(bank []domain.Question, bookmarks map[string]bool) {
	s.bank = bank
	s.rebuild(bookmarks)
}

// SetCriteria replaces the filter criteria and rebuilds the view.
func (s *Session) SetCriteria(c Criteria, bookmarks map[string]bool) {
	s.criteria = c
	s.rebuild(bookmarks)
}

// Refilter recomputes the filtered set against the current criteria.
// Used when the bookmark set changes while the bookmark-only filter is
// active.
func (s *Session) Refilter(bookmarks map[string]bool) {
	s.rebuild(bookmarks)
}

// rebuild recomputes filtered set and traversal order together so their
// length invariant is never observable broken.
func (s *Session) rebuild(bookmarks map[string]bool) {
	s.filtered = Filter(s.bank, s.criteria, bookmarks)
	s.order = Reorder(len(s.filtered), s.shuffle, s.rng)
	s.idx = 0
	s.answered = false
}

// Current returns the question at the current position, or nil when the
// session is complete or the filtered set is empty.
func (s *Session) Current() *domain.Question {
	if s.idx >= len(s.order) {
		return nil
	}
	return &s.filtered[s.order[s.idx]]
}

// Complete reports whether the position has moved past the last question.
// An empty filtered set is complete from the start.
func (s *Session) Complete() bool {
	return s.idx >= len(s.order)
}

// Submit grades the selected choice against the current question and
// updates the counters. After a successful submit the question is locked
// until Advance; reveal remains allowed.
func (s *Session) Submit(selected int) (*Verdict, error) {
	q := s.Current()
	if q == nil {
		return nil, ErrSessionComplete
	}
	if s.answered {
		return nil, ErrAlreadyAnswered
	}

	v, err := Evaluate(q, selected)
	if err != nil {
		return nil, err
	}

	if v.IsCorrect {
		s.correct++
		s.streak++
	} else {
		s.incorrect++
		s.streak = 0
	}
	s.answered = true

	return v, nil
}

// Reveal returns the answer and notes for the current question without
// touching counters. Valid with or without a prior selection.
func (s *Session) Reveal() (*Verdict, error) {
	q := s.Current()
	if q == nil {
		return nil, ErrSessionComplete
	}
	return Reveal(q), nil
}

// Advance moves to the next position; reaching the end of the order
// enters the complete state.
func (s *Session) Advance() {
	if s.idx < len(s.order) {
		s.idx++
	}
	s.answered = false
}

// Reset zeroes the counters and returns to position 0 without reshuffling.
// The confirmation gate for this destructive action lives in the caller.
func (s *Session) Reset() {
	s.correct = 0
	s.incorrect = 0
	s.streak = 0
	s.idx = 0
	s.answered = false
}

// Reshuffle re-permutes the traversal order over the unchanged filtered
// set and returns to position 0. It shuffles regardless of the shuffle
// setting: a manual reshuffle is an explicit request.
func (s *Session) Reshuffle() {
	s.order = Reorder(len(s.filtered), true, s.rng)
	s.idx = 0
	s.answered = false
}

// Criteria returns the active filter criteria.
func (s *Session) Criteria() Criteria { return s.criteria }

// Answered reports whether the current question has been submitted.
func (s *Session) Answered() bool { return s.answered }

// Position returns the zero-based current position. Equal to Total when
// the session is complete.
func (s *Session) Position() int { return s.idx }

// Total returns the number of questions in the traversal order, which
// always equals the filtered set size.
func (s *Session) Total() int { return len(s.order) }

// BankSize returns the working bank size before filtering.
func (s *Session) BankSize() int { return len(s.bank) }

// Bank returns the working bank for listing views. Callers must not
// mutate the returned slice.
func (s *Session) Bank() []domain.Question { return s.bank }

// Stats returns the session counters: correct, incorrect, streak.
func (s *Session) Stats() (correct, incorrect, streak int) {
	return s.correct, s.incorrect, s.streak
}
