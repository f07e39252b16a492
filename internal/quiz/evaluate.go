package quiz

import (
	"errors"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
)

// Evaluation errors
var (
	// ErrNoSelection is returned when an answer is submitted without a
	// choice having been picked. The presentation layer is expected to
	// block submission and prompt the user instead of defaulting.
	ErrNoSelection = errors.New("no choice selected")

	// ErrChoiceOutOfRange is returned when the selected index does not
	// point at one of the question's choices.
	ErrChoiceOutOfRange = errors.New("selected choice out of range")
)

// WrongNote is the "why wrong" explanation for a single distractor,
// carried in original choice order.
type WrongNote struct {
	Index  int    `json:"index"`
	Choice string `json:"choice"`
	Note   string `json:"note,omitempty"`
}

// Verdict is the feedback payload produced by evaluating or revealing a
// question. Graded is false for reveal-only verdicts, where IsCorrect is
// meaningless.
type Verdict struct {
	Graded       bool        `json:"graded"`
	IsCorrect    bool        `json:"isCorrect"`
	CorrectIndex int         `json:"correctIndex"`
	CorrectLabel string      `json:"correctLabel"`
	Rationale    string      `json:"rationale,omitempty"`
	WrongNotes   []WrongNote `json:"wrongNotes,omitempty"`
}

// ChoiceLabel returns the display letter for a choice index ("A", "B", ...).
func ChoiceLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// Evaluate grades a selected choice against the question's answer key.
// A negative selection means nothing was picked and yields ErrNoSelection.
func Evaluate(q *domain.Question, selected int) (*Verdict, error) {
	if selected < 0 {
		return nil, ErrNoSelection
	}
	if selected >= len(q.Choices) {
		return nil, ErrChoiceOutOfRange
	}

	v := feedback(q)
	v.Graded = true
	v.IsCorrect = selected == q.AnswerIndex
	return v, nil
}

// Reveal builds the same feedback payload without grading a selection.
// It never touches counters or history; callers decide what to do with it.
func Reveal(q *domain.Question) *Verdict {
	return feedback(q)
}

func feedback(q *domain.Question) *Verdict {
	return &Verdict{
		CorrectIndex: q.AnswerIndex,
		CorrectLabel: ChoiceLabel(q.AnswerIndex),
		Rationale:    q.Rationale,
		WrongNotes:   wrongNotes(q),
	}
}

// wrongNotes resolves the explanation for every distractor in original
// choice order, skipping the correct choice. Pack files key the notes
// either by choice letter or by full choice text; the letter wins when
// both are present.
func wrongNotes(q *domain.Question) []WrongNote {
	if len(q.WrongAnswerNotes) == 0 {
		return nil
	}

	notes := make([]WrongNote, 0, len(q.Choices)-1)
	for i, choice := range q.Choices {
		if i == q.AnswerIndex {
			continue
		}

		note, ok := q.WrongAnswerNotes[ChoiceLabel(i)]
		if !ok {
			note = q.WrongAnswerNotes[choice]
		}

		notes = append(notes, WrongNote{Index: i, Choice: choice, Note: note})
	}
	return notes
}
