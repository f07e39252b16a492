// Package domain contains the core entities of the quiz player: questions
// as loaded from pack files, persisted user settings, and history records.
// Types here carry no behavior beyond validation and construction; the
// session mechanics live in internal/quiz.
package domain
