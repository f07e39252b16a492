package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
)

// sessionBank builds n questions whose answer is always choice 0.
func sessionBank(n int) []domain.Question {
	bank := make([]domain.Question, n)
	for i := range bank {
		bank[i] = domain.Question{
			ID:      string(rune('a' + i)),
			Stem:    "stem",
			Choices: []string{"right", "wrong"},
		}
	}
	return bank
}

func newActiveSession(t *testing.T, n int) *Session {
	t.Helper()
	s := NewSession(nil)
	s.SetBank(sessionBank(n), nil)
	require.Equal(t, n, s.Total())
	return s
}

func TestEmptySessionIsCompleteNotCrashing(t *testing.T) {
	t.Parallel()

	s := NewSession(nil)
	assert.True(t, s.Complete())
	assert.Nil(t, s.Current())

	_, err := s.Submit(0)
	assert.ErrorIs(t, err, ErrSessionComplete)
	_, err = s.Reveal()
	assert.ErrorIs(t, err, ErrSessionComplete)

	// Advancing past the end of an empty order stays in place.
	s.Advance()
	assert.True(t, s.Complete())
}

func TestStreakSequence(t *testing.T) {
	t.Parallel()

	s := newActiveSession(t, 4)

	answers := []int{0, 0, 1, 0} // correct, correct, incorrect, correct
	for _, sel := range answers {
		_, err := s.Submit(sel)
		require.NoError(t, err)
		s.Advance()
	}

	correct, incorrect, streak := s.Stats()
	assert.Equal(t, 3, correct)
	assert.Equal(t, 1, incorrect)
	assert.Equal(t, 1, streak)
	assert.True(t, s.Complete())
}

func TestSubmitTwiceIsRejected(t *testing.T) {
	t.Parallel()

	s := newActiveSession(t, 2)

	_, err := s.Submit(0)
	require.NoError(t, err)

	_, err = s.Submit(0)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)

	// Advance unlocks the next question.
	s.Advance()
	_, err = s.Submit(1)
	assert.NoError(t, err)
}

func TestSubmitNoSelectionLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	s := newActiveSession(t, 2)

	_, err := s.Submit(-1)
	assert.ErrorIs(t, err, ErrNoSelection)

	correct, incorrect, streak := s.Stats()
	assert.Zero(t, correct)
	assert.Zero(t, incorrect)
	assert.Zero(t, streak)
	assert.False(t, s.Answered())
}

func TestRevealDoesNotAffectCounters(t *testing.T) {
	t.Parallel()

	s := newActiveSession(t, 2)

	v, err := s.Reveal()
	require.NoError(t, err)
	assert.Equal(t, 0, v.CorrectIndex)

	correct, incorrect, _ := s.Stats()
	assert.Zero(t, correct)
	assert.Zero(t, incorrect)

	// Reveal stays available after a submit.
	_, err = s.Submit(0)
	require.NoError(t, err)
	_, err = s.Reveal()
	assert.NoError(t, err)
}

func TestResetZeroesCountersAndPositionWithoutReordering(t *testing.T) {
	t.Parallel()

	s := newActiveSession(t, 3)
	_, err := s.Submit(1)
	require.NoError(t, err)
	s.Advance()

	s.Reset()

	correct, incorrect, streak := s.Stats()
	assert.Zero(t, correct)
	assert.Zero(t, incorrect)
	assert.Zero(t, streak)
	assert.Equal(t, 0, s.Position())
	assert.False(t, s.Complete())
}

func TestRebuildResetsPositionButKeepsCounters(t *testing.T) {
	t.Parallel()

	s := newActiveSession(t, 3)
	_, err := s.Submit(0)
	require.NoError(t, err)
	s.Advance()

	s.SetBank(sessionBank(5), nil)

	correct, _, streak := s.Stats()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 1, streak)
	assert.Equal(t, 0, s.Position())
	assert.Equal(t, 5, s.Total())
}

func TestSetCriteriaKeepsCounters(t *testing.T) {
	t.Parallel()

	bank := testBank()
	s := NewSession(nil)
	s.SetBank(bank, nil)
	_, err := s.Submit(0)
	require.NoError(t, err)

	s.SetCriteria(Criteria{Domain: "Cardiac"}, nil)

	correct, _, _ := s.Stats()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 2, s.Total())
	assert.Equal(t, 0, s.Position())
	assert.False(t, s.Answered())
}

func TestOrderLengthAlwaysMatchesFiltered(t *testing.T) {
	t.Parallel()

	s := NewSession(nil)
	s.SetBank(testBank(), nil)
	assert.Equal(t, 4, s.Total())

	s.SetCriteria(Criteria{Domain: "Renal"}, nil)
	assert.Equal(t, 1, s.Total())

	s.SetCriteria(Criteria{Domain: "NoSuchDomain"}, nil)
	assert.Equal(t, 0, s.Total())
	assert.True(t, s.Complete())
}

func TestReshuffleResetsPositionKeepsCountersAndLength(t *testing.T) {
	t.Parallel()

	s := newActiveSession(t, 10)
	_, err := s.Submit(1)
	require.NoError(t, err)
	s.Advance()

	s.Reshuffle()

	_, incorrect, _ := s.Stats()
	assert.Equal(t, 1, incorrect)
	assert.Equal(t, 0, s.Position())
	assert.Equal(t, 10, s.Total())
	assert.False(t, s.Answered())
}

func TestAdvanceThroughToComplete(t *testing.T) {
	t.Parallel()

	s := newActiveSession(t, 2)
	assert.NotNil(t, s.Current())

	s.Advance()
	assert.NotNil(t, s.Current())
	assert.False(t, s.Complete())

	s.Advance()
	assert.Nil(t, s.Current())
	assert.True(t, s.Complete())
	assert.Equal(t, s.Total(), s.Position())
}

func TestBookmarkMutationRefilter(t *testing.T) {
	t.Parallel()

	s := NewSession(nil)
	s.SetBank(testBank(), map[string]bool{"Q2": true})
	s.SetCriteria(Criteria{BookmarkedOnly: true}, map[string]bool{"Q2": true})
	require.Equal(t, 1, s.Total())

	// Bookmark removed while the bookmark-only filter is active: the
	// filtered set must follow immediately.
	s.Refilter(map[string]bool{})
	assert.Equal(t, 0, s.Total())
	assert.True(t, s.Complete())
}

func TestShuffleSettingAppliesToNextRebuildOnly(t *testing.T) {
	t.Parallel()

	s := newActiveSession(t, 50)
	s.SetShuffle(true)

	// Current order was built unshuffled and stays ascending.
	assert.Equal(t, 0, s.Position())
	first := s.Current()
	require.NotNil(t, first)
	assert.Equal(t, "a", first.ID)
}
