package quiz

import (
	"context"
	"sort"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
)

// Loader yields the questions for one pack id. Implemented by
// packstore.Store; loads fail soft, so an unknown or broken pack simply
// contributes nothing.
type Loader interface {
	Load(ctx context.Context, packID string) []domain.Question
}

// Assemble concatenates the contents of the active packs into one working
// bank, in the order the ids are given and in original order within each
// pack. Pure function of its inputs.
func Assemble(ctx context.Context, activeIDs []string, loader Loader) []domain.Question {
	var bank []domain.Question
	for _, id := range activeIDs {
		bank = append(bank, loader.Load(ctx, id)...)
	}
	return bank
}

// Domains returns the sorted set of non-empty domain labels present in
// the bank, for populating the domain filter dropdown.
func Domains(bank []domain.Question) []string {
	seen := make(map[string]bool)
	var domains []string
	for i := range bank {
		d := bank[i].Domain
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}
