package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/nations-league/internal/domain/match"
)

type MatchRepository struct {
	mu          sync.RWMutex
	matchesByID map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	matchesByID := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		matchesByID[item.ID] = item.Clone()
	}

	return &MatchRepository{matchesByID: matchesByID}
}

func (r *MatchRepository) Get(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matchesByID[id]
	if !ok {
		return match.Match{}, false, nil
	}

	return item.Clone(), true, nil
}

// List returns all matches in bracket order: quarterfinals first, then
// semifinals, then the final, each round by match number.
func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matchesByID))
	for _, item := range r.matchesByID {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if match.RoundOrder(out[i].Round) != match.RoundOrder(out[j].Round) {
			return match.RoundOrder(out[i].Round) < match.RoundOrder(out[j].Round)
		}
		return out[i].Number < out[j].Number
	})

	return out, nil
}

func (r *MatchRepository) Put(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matchesByID[item.ID] = item.Clone()

	return nil
}

func (r *MatchRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.matchesByID, id)

	return nil
}
