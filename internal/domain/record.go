package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnswerRecord is one entry in the append-only history log. Stem, choices
// and rationale are snapshotted at answer time so the history stays
// meaningful even if the underlying pack file changes later.
type AnswerRecord struct {
	ID           uuid.UUID `json:"recordId"`
	QuestionID   string    `json:"id"`
	Stem         string    `json:"stem"`
	Choices      []string  `json:"choices"`
	Selected     int       `json:"selected"`
	CorrectIndex int       `json:"correctIndex"`
	Correct      bool      `json:"correct"`
	Rationale    string    `json:"rationale,omitempty"`
	Time         time.Time `json:"time"`
}

// NewAnswerRecord snapshots a question together with the user's answer.
// The timestamp is normalized to UTC.
func NewAnswerRecord(q Question, selected int, correct bool, at time.Time) AnswerRecord {
	choices := make([]string, len(q.Choices))
	copy(choices, q.Choices)

	return AnswerRecord{
		ID:           uuid.New(),
		QuestionID:   q.ID,
		Stem:         q.Stem,
		Choices:      choices,
		Selected:     selected,
		CorrectIndex: q.AnswerIndex,
		Correct:      correct,
		Rationale:    q.Rationale,
		Time:         at.UTC(),
	}
}
