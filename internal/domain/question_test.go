package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() Question {
	return Question{
		ID:          "Q1",
		Stem:        "What?",
		Choices:     []string{"a", "b", "c"},
		AnswerIndex: 2,
	}
}

func TestQuestionValidate(t *testing.T) {
	t.Parallel()

	q := validQuestion()
	assert.NoError(t, q.Validate())

	q = validQuestion()
	q.ID = "  "
	assert.ErrorIs(t, q.Validate(), ErrQuestionIDEmpty)

	q = validQuestion()
	q.Stem = ""
	assert.ErrorIs(t, q.Validate(), ErrQuestionStemEmpty)

	q = validQuestion()
	q.Choices = []string{"only one"}
	assert.ErrorIs(t, q.Validate(), ErrNotEnoughChoices)

	q = validQuestion()
	q.AnswerIndex = 3
	assert.ErrorIs(t, q.Validate(), ErrAnswerIndexOutOfRange)

	q = validQuestion()
	q.AnswerIndex = -1
	assert.ErrorIs(t, q.Validate(), ErrAnswerIndexOutOfRange)
}

func TestQuestionDecodesPackFormat(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "Q7",
		"stem": "Pick one",
		"choices": ["x", "y"],
		"answerIndex": 1,
		"domain": "Cardiac",
		"tags": ["ECG", "Pharm"],
		"rationale": "why",
		"wrongAnswerNotes": {"x": "not x"}
	}`

	var q Question
	require.NoError(t, json.Unmarshal([]byte(raw), &q))
	assert.Equal(t, "Q7", q.ID)
	assert.Equal(t, 1, q.AnswerIndex)
	assert.Equal(t, "y", q.AnswerText())
	assert.Equal(t, "not x", q.WrongAnswerNotes["x"])
	assert.NoError(t, q.Validate())
}

func TestNewAnswerRecordSnapshots(t *testing.T) {
	t.Parallel()

	q := validQuestion()
	at := time.Date(2025, 10, 26, 12, 0, 0, 0, time.FixedZone("x", 3600))

	rec := NewAnswerRecord(q, 1, false, at)

	assert.NotEqual(t, rec.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, q.ID, rec.QuestionID)
	assert.Equal(t, q.Stem, rec.Stem)
	assert.Equal(t, 1, rec.Selected)
	assert.Equal(t, 2, rec.CorrectIndex)
	assert.False(t, rec.Correct)
	assert.Equal(t, time.UTC, rec.Time.Location())

	// The snapshot must not alias the question's choices.
	rec.Choices[0] = "mutated"
	assert.Equal(t, "a", q.Choices[0])
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	assert.True(t, s.Shuffle)
	assert.True(t, s.Persist)
	assert.True(t, s.Dark)
}
