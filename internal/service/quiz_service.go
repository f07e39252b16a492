// Package service owns the live quiz session and wires the pure engine to
// pack loading and persistence. A single mutex serializes every state
// transition, so each session mutation runs to completion before the next
// begins.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/packstore"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/platform/logger"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/quiz"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/store"
)

// PackSource is the slice of packstore.Store the service depends on.
type PackSource interface {
	quiz.Loader
	Packs() []packstore.Pack
	IDs() []string
	Known(id string) bool
	LoadAll(ctx context.Context, ids []string)
	RefreshAll(ctx context.Context, ids []string)
}

// Verify the concrete pack store satisfies the dependency.
var _ PackSource = (*packstore.Store)(nil)

// QuizService owns one quiz.Session together with the durable state
// around it: settings, bookmarks, history and the active pack selection.
type QuizService struct {
	mu      sync.Mutex
	session *quiz.Session
	packs   PackSource
	state   store.StateStore

	settings    domain.Settings
	bookmarks   []string
	activePacks []string

	// generation guards pack rebuilds: a load that finishes after a
	// newer rebuild started is discarded instead of overwriting it.
	generation uint64

	debounce *Debouncer
	logger   *slog.Logger
}

// New creates a QuizService. The tag-filter debounce interval comes from
// config; a zero interval applies tag filters synchronously. A nil rng
// gives time-seeded shuffles; tests inject a deterministic one.
func New(
	packs PackSource,
	state store.StateStore,
	tagDebounce time.Duration,
	rng *rand.Rand,
	log *slog.Logger,
) *QuizService {
	if packs == nil {
		panic("packs cannot be nil")
	}
	if state == nil {
		panic("state cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &QuizService{
		session:  quiz.NewSession(rng),
		packs:    packs,
		state:    state,
		settings: domain.DefaultSettings(),
		debounce: NewDebouncer(tagDebounce),
		logger:   log.With(slog.String("component", "quiz_service")),
	}
}

// Init restores persisted state and builds the first working bank. All
// stored records read fail-soft, so a corrupt store still initializes to
// a usable default session.
func (s *QuizService) Init(ctx context.Context) error {
	s.mu.Lock()

	s.settings = s.state.Settings(ctx)
	s.bookmarks = s.state.Bookmarks(ctx)
	s.session.SetShuffle(s.settings.Shuffle)

	ids := s.resolveActiveLocked(s.state.ActivePacks(ctx))
	s.activePacks = ids
	s.persistActivePacksLocked(ctx)
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	s.packs.LoadAll(ctx, ids)
	bank := quiz.Assemble(ctx, ids, s.packs)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		s.session.SetBank(bank, s.bookmarkSetLocked())
	}

	s.logger.Info("session initialized",
		slog.Int("packs", len(ids)),
		slog.Int("questions", len(bank)))
	return nil
}

// View returns the current observable session state.
func (s *QuizService) View(ctx context.Context) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Submit grades the player's selection on the current question, updates
// the counters and, when history persistence is enabled, appends a
// snapshot record to the history log.
func (s *QuizService) Submit(ctx context.Context, selected int) (SessionView, *quiz.Verdict, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.session.Current()
	verdict, err := s.session.Submit(selected)
	if err != nil {
		return s.viewLocked(), nil, err
	}

	if s.settings.Persist {
		rec := domain.NewAnswerRecord(*q, selected, verdict.IsCorrect, time.Now())
		if err := s.state.AppendHistory(ctx, rec); err != nil {
			// The verdict stands even if the log write fails; losing one
			// history row beats losing the answer feedback.
			log.Warn("failed to append history record",
				slog.String("question_id", q.ID),
				slog.String("error", err.Error()))
		}
	}

	return s.viewLocked(), verdict, nil
}

// Reveal returns the answer payload for the current question without
// grading anything.
func (s *QuizService) Reveal(ctx context.Context) (*quiz.Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Reveal()
}

// Advance moves to the next question.
func (s *QuizService) Advance(ctx context.Context) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Advance()
	return s.viewLocked()
}

// Reshuffle re-permutes the current filtered set and restarts from the
// top, keeping the counters.
func (s *QuizService) Reshuffle(ctx context.Context) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Reshuffle()
	return s.viewLocked()
}

// Reset zeroes the counters and position. It is destructive and requires
// confirm; without it nothing changes.
func (s *QuizService) Reset(ctx context.Context, confirm bool) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirm {
		return s.viewLocked(), ErrNotConfirmed
	}
	s.session.Reset()
	return s.viewLocked(), nil
}

// SetFilters updates the filter criteria. Domain and bookmark-only
// changes apply immediately; a pure tag-query change is debounced, since
// it arrives per keystroke.
func (s *QuizService) SetFilters(ctx context.Context, c quiz.Criteria) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.session.Criteria()
	tagOnly := c.Domain == prev.Domain &&
		c.BookmarkedOnly == prev.BookmarkedOnly &&
		c.TagQuery != prev.TagQuery

	// The deferred callback re-acquires the mutex, so it must only go
	// through the debouncer when the run is actually deferred. With a
	// zero interval the tag change applies inline like any other.
	if tagOnly && !s.debounce.Immediate() {
		s.debounce.Trigger(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.session.SetCriteria(c, s.bookmarkSetLocked())
		})
		return s.viewLocked()
	}

	s.debounce.Cancel()
	s.session.SetCriteria(c, s.bookmarkSetLocked())
	return s.viewLocked()
}

// FlushFilters applies a pending debounced tag-filter change immediately.
func (s *QuizService) FlushFilters() {
	s.debounce.Flush()
}

// ToggleBookmark flips the bookmark on the current question and persists
// the set. While the bookmark-only filter is active the filtered set is
// recomputed, since the mutation changes the predicate.
func (s *QuizService) ToggleBookmark(ctx context.Context) (SessionView, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.session.Current()
	if q == nil {
		return s.viewLocked(), false, ErrNoCurrentQuestion
	}

	found := -1
	for i, id := range s.bookmarks {
		if id == q.ID {
			found = i
			break
		}
	}
	if found >= 0 {
		s.bookmarks = append(s.bookmarks[:found], s.bookmarks[found+1:]...)
	} else {
		s.bookmarks = append(s.bookmarks, q.ID)
	}

	if err := s.state.SaveBookmarks(ctx, s.bookmarks); err != nil {
		log.Warn("failed to persist bookmarks", slog.String("error", err.Error()))
	}

	if s.session.Criteria().BookmarkedOnly {
		s.session.Refilter(s.bookmarkSetLocked())
	}

	return s.viewLocked(), found < 0, nil
}

// Bookmarks returns the bookmarked question ids in bookmark order.
func (s *QuizService) Bookmarks(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// ClearBookmarks empties the bookmark set. Destructive; requires confirm.
func (s *QuizService) ClearBookmarks(ctx context.Context, confirm bool) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirm {
		return s.viewLocked(), ErrNotConfirmed
	}

	s.bookmarks = []string{}
	if err := s.state.SaveBookmarks(ctx, s.bookmarks); err != nil {
		return s.viewLocked(), err
	}

	if s.session.Criteria().BookmarkedOnly {
		s.session.Refilter(s.bookmarkSetLocked())
	}
	return s.viewLocked(), nil
}

// History returns the persisted answer log in append order.
func (s *QuizService) History(ctx context.Context) []domain.AnswerRecord {
	return s.state.History(ctx)
}

// ClearHistory wipes the answer log. Destructive; requires confirm.
func (s *QuizService) ClearHistory(ctx context.Context, confirm bool) error {
	if !confirm {
		return ErrNotConfirmed
	}
	return s.state.ClearHistory(ctx)
}

// Settings returns the current settings.
func (s *QuizService) Settings(ctx context.Context) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings persists new settings. They apply prospectively: the
// shuffle flag changes the next reorder, not the current order, and the
// persist flag changes only future submissions.
func (s *QuizService) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.session.SetShuffle(settings.Shuffle)
	return s.state.SaveSettings(ctx, settings)
}

// PackViews returns the registry with activation state and cached sizes.
func (s *QuizService) PackViews(ctx context.Context) []PackView {
	s.mu.Lock()
	active := make(map[string]bool, len(s.activePacks))
	for _, id := range s.activePacks {
		active[id] = true
	}
	s.mu.Unlock()

	packs := s.packs.Packs()
	views := make([]PackView, len(packs))
	for i, p := range packs {
		views[i] = PackView{
			ID:     p.ID,
			Label:  p.Label,
			Active: active[p.ID],
		}
		if active[p.ID] {
			views[i].Questions = len(s.packs.Load(ctx, p.ID))
		}
	}
	return views
}

// SelectPacks activates the given pack selection and rebuilds the working
// bank. Naming an unregistered pack is an error; an empty selection falls
// back to every registered pack. The rebuild is guarded by a generation
// counter: if another rebuild starts while this one is loading, the stale
// result is discarded.
func (s *QuizService) SelectPacks(ctx context.Context, ids []string) (SessionView, error) {
	for _, id := range ids {
		if !s.packs.Known(id) {
			return s.View(ctx), fmt.Errorf("%w: %q", ErrUnknownPack, id)
		}
	}
	return s.rebuild(ctx, ids, false)
}

// RefreshPacks re-fetches the active packs from their sources, bypassing
// all caches, and rebuilds the working bank from the fresh content.
func (s *QuizService) RefreshPacks(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	ids := make([]string, len(s.activePacks))
	copy(ids, s.activePacks)
	s.mu.Unlock()
	return s.rebuild(ctx, ids, true)
}

func (s *QuizService) rebuild(ctx context.Context, ids []string, refresh bool) (SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	ids = s.resolveActiveLocked(ids)
	s.activePacks = ids
	s.persistActivePacksLocked(ctx)
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	// Pack loads run outside the lock so a slow fetch never blocks
	// answer/advance actions on the current session.
	if refresh {
		s.packs.RefreshAll(ctx, ids)
	} else {
		s.packs.LoadAll(ctx, ids)
	}
	bank := quiz.Assemble(ctx, ids, s.packs)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Debug("discarding stale pack rebuild",
			slog.Uint64("generation", gen),
			slog.Uint64("current", s.generation))
		return s.viewLocked(), nil
	}

	s.session.SetBank(bank, s.bookmarkSetLocked())
	log.Info("working bank rebuilt",
		slog.Int("packs", len(ids)),
		slog.Int("questions", len(bank)),
		slog.Bool("refresh", refresh))
	return s.viewLocked(), nil
}

// BankEntries returns the bank listing view over the full working bank,
// optionally restricted to bookmarked questions.
func (s *QuizService) BankEntries(ctx context.Context, bookmarkedOnly bool) []BankEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmarks := s.bookmarkSetLocked()
	bank := s.session.Bank()
	entries := make([]BankEntry, 0, len(bank))
	for i := range bank {
		q := &bank[i]
		if bookmarkedOnly && !bookmarks[q.ID] {
			continue
		}
		entries = append(entries, BankEntry{
			ID:         q.ID,
			Stem:       q.Stem,
			Answer:     q.AnswerText(),
			Rationale:  q.Rationale,
			Domain:     q.Domain,
			Tags:       q.Tags,
			Bookmarked: bookmarks[q.ID],
		})
	}
	return entries
}

// resolveActiveLocked filters unknown pack ids out of a requested
// selection, falling back to every registered pack when nothing usable
// remains (absent, invalid, or fully unknown selections all land there).
func (s *QuizService) resolveActiveLocked(ids []string) []string {
	known := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.packs.Known(id) {
			known = append(known, id)
		}
	}
	if len(known) == 0 {
		return s.packs.IDs()
	}
	return known
}

func (s *QuizService) persistActivePacksLocked(ctx context.Context) {
	if err := s.state.SaveActivePacks(ctx, s.activePacks); err != nil {
		s.logger.Warn("failed to persist active packs",
			slog.String("error", err.Error()))
	}
}

func (s *QuizService) bookmarkSetLocked() map[string]bool {
	set := make(map[string]bool, len(s.bookmarks))
	for _, id := range s.bookmarks {
		set[id] = true
	}
	return set
}

func (s *QuizService) viewLocked() SessionView {
	correct, incorrect, streak := s.session.Stats()

	view := SessionView{
		Position:    s.session.Position(),
		Total:       s.session.Total(),
		Correct:     correct,
		Incorrect:   incorrect,
		Streak:      streak,
		Complete:    s.session.Complete(),
		Answered:    s.session.Answered(),
		Filters:     s.session.Criteria(),
		Domains:     quiz.Domains(s.session.Bank()),
		ActivePacks: append([]string(nil), s.activePacks...),
		BankSize:    s.session.BankSize(),
	}

	if q := s.session.Current(); q != nil {
		view.Question = &QuestionView{
			ID:      q.ID,
			Stem:    q.Stem,
			Choices: q.Choices,
			Domain:  q.Domain,
			Tags:    q.Tags,
		}
		view.Position = s.session.Position() + 1
		view.Bookmarked = s.bookmarkSetLocked()[q.ID]
	}

	return view
}
