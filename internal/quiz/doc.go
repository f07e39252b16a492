// Package quiz implements the core quiz engine: bank assembly from active
// packs, domain/tag/bookmark filtering, traversal ordering (identity or
// Fisher-Yates shuffled), answer evaluation with dual-keyed distractor
// notes, and the session state machine that ties them together.
//
// Everything in this package is pure state manipulation with no I/O;
// persistence and pack fetching are wired in by internal/service.
package quiz
