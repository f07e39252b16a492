package packstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
)

func packJSON(ids ...string) []byte {
	questions := make([]domain.Question, len(ids))
	for i, id := range ids {
		questions[i] = domain.Question{
			ID:      id,
			Stem:    "stem " + id,
			Choices: []string{"a", "b"},
		}
	}
	raw, _ := json.Marshal(questions)
	return raw
}

func TestLoadFetchesAndCaches(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.NotEmpty(t, r.URL.Query().Get("v"), "cache-busting parameter missing")
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		_, _ = w.Write(packJSON("q1", "q2"))
	}))
	defer srv.Close()

	store := New([]Pack{{ID: "p1", Label: "Pack 1", URL: srv.URL + "/p1.json"}}, srv.Client(), nil)

	questions := store.Load(context.Background(), "p1")
	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].ID)

	// Second load is served from cache.
	store.Load(context.Background(), "p1")
	assert.Equal(t, int32(1), hits.Load())
}

func TestRefreshBypassesCache(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			_, _ = w.Write(packJSON("q1"))
			return
		}
		_, _ = w.Write(packJSON("q1", "q2", "q3"))
	}))
	defer srv.Close()

	store := New([]Pack{{ID: "p1", URL: srv.URL}}, srv.Client(), nil)

	require.Len(t, store.Load(context.Background(), "p1"), 1)
	assert.Len(t, store.Refresh(context.Background(), "p1"), 3)

	// The refreshed content replaces the cache.
	assert.Len(t, store.Load(context.Background(), "p1"), 3)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFailedPackDegradesToEmptyWithoutBlockingOthers(t *testing.T) {
	t.Parallel()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(packJSON("q1", "q2"))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	store := New([]Pack{
		{ID: "good", URL: good.URL},
		{ID: "bad", URL: bad.URL},
	}, nil, nil)

	store.LoadAll(context.Background(), []string{"good", "bad"})

	assert.Len(t, store.Load(context.Background(), "good"), 2)
	assert.Empty(t, store.Load(context.Background(), "bad"))
}

func TestMalformedJSONDegradesToEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	store := New([]Pack{{ID: "p1", URL: srv.URL}}, srv.Client(), nil)
	assert.Empty(t, store.Load(context.Background(), "p1"))
}

func TestUnreachableHostDegradesToEmpty(t *testing.T) {
	t.Parallel()

	store := New([]Pack{{ID: "p1", URL: "http://127.0.0.1:1/nope.json"}}, nil, nil)
	assert.Empty(t, store.Load(context.Background(), "p1"))
}

func TestUnknownPackIDYieldsEmpty(t *testing.T) {
	t.Parallel()

	store := New(nil, nil, nil)
	assert.Empty(t, store.Load(context.Background(), "ghost"))
	assert.False(t, store.Known("ghost"))
}

func TestInvalidQuestionsAreDropped(t *testing.T) {
	t.Parallel()

	questions := []domain.Question{
		{ID: "ok", Stem: "s", Choices: []string{"a", "b"}, AnswerIndex: 0},
		{ID: "bad", Stem: "s", Choices: []string{"a", "b"}, AnswerIndex: 9},
		{ID: "", Stem: "s", Choices: []string{"a", "b"}},
	}
	raw, err := json.Marshal(questions)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	store := New([]Pack{{ID: "p1", URL: srv.URL}}, srv.Client(), nil)
	loaded := store.Load(context.Background(), "p1")
	require.Len(t, loaded, 1)
	assert.Equal(t, "ok", loaded[0].ID)
}

func TestRegistryAccessors(t *testing.T) {
	t.Parallel()

	store := New([]Pack{
		{ID: "set26", Label: "Oct 26"},
		{ID: "set27", Label: "Oct 27"},
	}, nil, nil)

	assert.Equal(t, []string{"set26", "set27"}, store.IDs())
	assert.True(t, store.Known("set27"))
	require.Len(t, store.Packs(), 2)
	assert.Equal(t, "Oct 26", store.Packs()[0].Label)
}
