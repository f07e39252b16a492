package service

import (
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/quiz"
)

// QuestionView is the current question as shown to the player. It
// deliberately omits the answer key, rationale and notes; those arrive
// only through submit/reveal verdicts.
type QuestionView struct {
	ID      string   `json:"id"`
	Stem    string   `json:"stem"`
	Choices []string `json:"choices"`
	Domain  string   `json:"domain,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// SessionView is the full observable session state. The presentation
// adapter re-renders from it after every call; it never reaches into the
// engine directly.
type SessionView struct {
	Question    *QuestionView `json:"question"`
	Position    int           `json:"position"`
	Total       int           `json:"total"`
	Correct     int           `json:"correct"`
	Incorrect   int           `json:"incorrect"`
	Streak      int           `json:"streak"`
	Complete    bool          `json:"complete"`
	Answered    bool          `json:"answered"`
	Bookmarked  bool          `json:"bookmarked"`
	Filters     quiz.Criteria `json:"filters"`
	Domains     []string      `json:"domains"`
	ActivePacks []string      `json:"activePacks"`
	BankSize    int           `json:"bankSize"`
}

// PackView is one registry entry with its activation state, for the
// settings pack controls.
type PackView struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Active    bool   `json:"active"`
	Questions int    `json:"questions"`
}

// BankEntry is one row of the bank listing view, answer included: the
// bank tab is a study reference, not a test surface.
type BankEntry struct {
	ID         string   `json:"id"`
	Stem       string   `json:"stem"`
	Answer     string   `json:"answer"`
	Rationale  string   `json:"rationale,omitempty"`
	Domain     string   `json:"domain,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Bookmarked bool     `json:"bookmarked"`
}
