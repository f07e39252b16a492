package quiz

import (
	"strings"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
)

// AllDomains is the domain criterion that matches every question.
const AllDomains = "All"

// Criteria is the active filter over the working bank. The zero value
// (empty domain treated as AllDomains, empty tag query, bookmarks off)
// matches everything.
type Criteria struct {
	Domain         string `json:"domain"`
	TagQuery       string `json:"tags"`
	BookmarkedOnly bool   `json:"bookmarkedOnly"`
}

// terms splits the tag query on commas, trimming and lowercasing each
// term and dropping empties. An empty result means "match all".
func (c Criteria) terms() []string {
	raw := strings.Split(c.TagQuery, ",")
	terms := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// Matches reports whether a single question satisfies the criteria.
// Domain matching is exact and case-sensitive; tag matching is an
// OR-of-substrings, case-insensitive, over the query terms.
func (c Criteria) Matches(q *domain.Question, bookmarks map[string]bool) bool {
	if c.Domain != "" && c.Domain != AllDomains && q.Domain != c.Domain {
		return false
	}

	if terms := c.terms(); len(terms) > 0 && !tagsMatch(q.Tags, terms) {
		return false
	}

	if c.BookmarkedOnly && !bookmarks[q.ID] {
		return false
	}

	return true
}

func tagsMatch(tags, terms []string) bool {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}

// Filter derives the filtered set from the working bank, preserving the
// bank's relative order. The result is always a subset of bank.
func Filter(bank []domain.Question, c Criteria, bookmarks map[string]bool) []domain.Question {
	filtered := make([]domain.Question, 0, len(bank))
	for i := range bank {
		if c.Matches(&bank[i], bookmarks) {
			filtered = append(filtered, bank[i])
		}
	}
	return filtered
}
