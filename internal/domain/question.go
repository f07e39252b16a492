package domain

import (
	"errors"
	"strings"
)

// Question-specific validation errors
var (
	// ErrQuestionIDEmpty is returned when a question has no id. The id is
	// the bookmark and history key, so a question without one is unusable.
	ErrQuestionIDEmpty = errors.New("question id cannot be empty")

	// ErrQuestionStemEmpty is returned when a question has no stem text.
	ErrQuestionStemEmpty = errors.New("question stem cannot be empty")

	// ErrNotEnoughChoices is returned when a question has fewer than two choices.
	ErrNotEnoughChoices = errors.New("question must have at least two choices")

	// ErrAnswerIndexOutOfRange is returned when answerIndex does not point
	// at one of the question's choices.
	ErrAnswerIndexOutOfRange = errors.New("answer index out of range")
)

// Question is a single multiple-choice item as it appears in a pack file.
// Questions are immutable once loaded; the session layer only ever reads them.
//
// The JSON field names match the pack file format, which is shared with the
// browser frontend.
type Question struct {
	ID          string   `json:"id"`
	Stem        string   `json:"stem"`
	Choices     []string `json:"choices"`
	AnswerIndex int      `json:"answerIndex"`
	Domain      string   `json:"domain,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Rationale   string   `json:"rationale,omitempty"`

	// WrongAnswerNotes maps a distractor to its "why wrong" explanation.
	// Existing packs are inconsistent about the key: some use the choice
	// letter ("A", "B", ...), others the full choice text. Lookups must
	// try the letter first and fall back to the text (see quiz.Evaluate).
	WrongAnswerNotes map[string]string `json:"wrongAnswerNotes,omitempty"`
}

// Validate checks that the question satisfies the pack-format invariants.
// Returns the first violated invariant as a sentinel error.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return ErrQuestionIDEmpty
	}

	if strings.TrimSpace(q.Stem) == "" {
		return ErrQuestionStemEmpty
	}

	if len(q.Choices) < 2 {
		return ErrNotEnoughChoices
	}

	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
		return ErrAnswerIndexOutOfRange
	}

	return nil
}

// AnswerText returns the text of the correct choice.
// The question must have passed Validate.
func (q *Question) AnswerText() string {
	return q.Choices[q.AnswerIndex]
}
