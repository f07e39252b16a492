package service

import (
	"context"
	"sync"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/packstore"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/store"
)

// fakeState is an in-memory StateStore for service tests.
type fakeState struct {
	mu          sync.Mutex
	settings    *domain.Settings
	history     []domain.AnswerRecord
	bookmarks   []string
	activePacks []string

	appendErr error
}

var _ store.StateStore = (*fakeState)(nil)

func newFakeState() *fakeState { return &fakeState{} }

func (f *fakeState) Settings(ctx context.Context) domain.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settings == nil {
		return domain.DefaultSettings()
	}
	return *f.settings
}

func (f *fakeState) SaveSettings(ctx context.Context, s domain.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = &s
	return nil
}

func (f *fakeState) History(ctx context.Context) []domain.AnswerRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.AnswerRecord, len(f.history))
	copy(out, f.history)
	return out
}

func (f *fakeState) AppendHistory(ctx context.Context, rec domain.AnswerRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.history = append(f.history, rec)
	return nil
}

func (f *fakeState) ClearHistory(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = nil
	return nil
}

func (f *fakeState) Bookmarks(ctx context.Context) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.bookmarks))
	copy(out, f.bookmarks)
	return out
}

func (f *fakeState) SaveBookmarks(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookmarks = append([]string(nil), ids...)
	return nil
}

func (f *fakeState) ActivePacks(ctx context.Context) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.activePacks...)
}

func (f *fakeState) SaveActivePacks(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activePacks = append([]string(nil), ids...)
	return nil
}

func (f *fakeState) Close() error { return nil }

// fakePacks is an in-memory PackSource. An optional gate channel makes
// loads block, for exercising the stale-rebuild guard.
type fakePacks struct {
	registry []packstore.Pack
	content  map[string][]domain.Question

	mu       sync.Mutex
	gate     chan struct{}
	entered  chan struct{}
	refreshy int
}

var _ PackSource = (*fakePacks)(nil)

func newFakePacks(content map[string][]domain.Question, order ...string) *fakePacks {
	registry := make([]packstore.Pack, len(order))
	for i, id := range order {
		registry[i] = packstore.Pack{ID: id, Label: id}
	}
	return &fakePacks{registry: registry, content: content}
}

func (f *fakePacks) Packs() []packstore.Pack { return f.registry }

func (f *fakePacks) IDs() []string {
	ids := make([]string, len(f.registry))
	for i, p := range f.registry {
		ids[i] = p.ID
	}
	return ids
}

func (f *fakePacks) Known(id string) bool {
	for _, p := range f.registry {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (f *fakePacks) Load(ctx context.Context, id string) []domain.Question {
	f.mu.Lock()
	gate := f.gate
	entered := f.entered
	f.mu.Unlock()
	if entered != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		<-gate
	}
	return f.content[id]
}

func (f *fakePacks) LoadAll(ctx context.Context, ids []string) {
	for _, id := range ids {
		f.Load(ctx, id)
	}
}

func (f *fakePacks) RefreshAll(ctx context.Context, ids []string) {
	f.mu.Lock()
	f.refreshy++
	f.mu.Unlock()
	f.LoadAll(ctx, ids)
}

func (f *fakePacks) setGate(gate, entered chan struct{}) {
	f.mu.Lock()
	f.gate = gate
	f.entered = entered
	f.mu.Unlock()
}

func (f *fakePacks) refreshCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshy
}
