// Package packstore fetches and caches question packs. Pack loads fail
// soft: a broken or unreachable pack degrades to an empty question list
// and a log entry, never an error to the caller, so one bad pack cannot
// abort assembly of the others.
package packstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
)

// Pack describes one registered question bank: a stable id, a display
// label for the settings view, and the URL of its JSON file.
type Pack struct {
	ID    string
	Label string
	URL   string
}

// Store holds the pack registry and an in-memory cache of loaded packs.
// Safe for concurrent use.
type Store struct {
	packs  []Pack
	byID   map[string]Pack
	client *http.Client
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string][]domain.Question
}

// New creates a Store over the given registry. A nil client falls back to
// http.DefaultClient; no request timeout is imposed, matching the
// fetch-until-settled loading model.
func New(packs []Pack, client *http.Client, logger *slog.Logger) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	byID := make(map[string]Pack, len(packs))
	for _, p := range packs {
		byID[p.ID] = p
	}

	return &Store{
		packs:  packs,
		byID:   byID,
		client: client,
		logger: logger.With(slog.String("component", "packstore")),
		now:    time.Now,
		cache:  make(map[string][]domain.Question),
	}
}

// Packs returns the registry in registration order.
func (s *Store) Packs() []Pack {
	return s.packs
}

// Known reports whether a pack id is registered.
func (s *Store) Known(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// IDs returns all registered pack ids in registration order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.packs))
	for i, p := range s.packs {
		ids[i] = p.ID
	}
	return ids
}

// Load returns the questions of a pack, serving from the in-memory cache
// when possible. Unknown ids and failed loads yield an empty slice.
func (s *Store) Load(ctx context.Context, id string) []domain.Question {
	s.mu.RLock()
	cached, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return cached
	}
	return s.Refresh(ctx, id)
}

// Refresh fetches a pack from its source, bypassing both the in-memory
// cache and any transport-level cache, so edited bank files show up on an
// explicit reload.
func (s *Store) Refresh(ctx context.Context, id string) []domain.Question {
	pack, ok := s.byID[id]
	if !ok {
		s.logger.Warn("ignoring unknown pack id", slog.String("pack_id", id))
		return []domain.Question{}
	}

	questions, err := s.fetch(ctx, pack)
	if err != nil {
		// Fail soft: the pack degrades to empty and loading of the
		// other packs continues.
		s.logger.Error("pack load failed",
			slog.String("pack_id", id),
			slog.String("error", err.Error()))
		questions = []domain.Question{}
	}

	s.mu.Lock()
	s.cache[id] = questions
	s.mu.Unlock()

	return questions
}

// LoadAll loads the given packs concurrently and returns only after every
// load has settled to content-or-empty. A slow or failing pack does not
// block the others beyond the joint wait.
func (s *Store) LoadAll(ctx context.Context, ids []string) {
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.Load(ctx, id)
		}(id)
	}
	wg.Wait()
}

// RefreshAll re-fetches the given packs concurrently, bypassing caches.
func (s *Store) RefreshAll(ctx context.Context, ids []string) {
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.Refresh(ctx, id)
		}(id)
	}
	wg.Wait()
}

// fetch retrieves and decodes one pack file. Invalid questions are
// dropped individually so a single malformed entry does not sink the
// whole pack.
func (s *Store) fetch(ctx context.Context, pack Pack) ([]domain.Question, error) {
	u, err := url.Parse(pack.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid pack URL: %w", err)
	}

	// Cache-busting query parameter, plus no-store, so intermediaries
	// never serve a stale bank.
	q := u.Query()
	q.Set("v", fmt.Sprintf("%d", s.now().UnixNano()))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pack request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pack fetch failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pack fetch returned status %d", resp.StatusCode)
	}

	var raw []domain.Question
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode pack JSON: %w", err)
	}

	questions := make([]domain.Question, 0, len(raw))
	for i := range raw {
		if err := raw[i].Validate(); err != nil {
			s.logger.Warn("dropping invalid question",
				slog.String("pack_id", pack.ID),
				slog.String("question_id", raw[i].ID),
				slog.String("error", err.Error()))
			continue
		}
		questions = append(questions, raw[i])
	}

	s.logger.Debug("pack loaded",
		slog.String("pack_id", pack.ID),
		slog.Int("questions", len(questions)))

	return questions, nil
}
