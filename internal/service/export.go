package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// exportHeader defines the CSV column order for history exports.
var exportHeader = []string{"id", "time", "stem", "selected", "correctIndex", "correct"}

// ExportHistoryCSV writes the answer history as CSV. encoding/csv handles
// the quoting, so stems containing commas or quotes round-trip cleanly
// through spreadsheet tools.
func (s *QuizService) ExportHistoryCSV(ctx context.Context, w io.Writer) error {
	records := s.state.History(ctx)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.QuestionID,
			r.Time.UTC().Format(time.RFC3339),
			r.Stem,
			strconv.Itoa(r.Selected),
			strconv.Itoa(r.CorrectIndex),
			strconv.FormatBool(r.Correct),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
