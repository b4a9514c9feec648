package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/nations-league/internal/domain/player"
	"github.com/riskibarqy/nations-league/internal/domain/team"
)

type TeamRepository struct {
	mu             sync.RWMutex
	teamsByCountry map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	teamsByCountry := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		teamsByCountry[item.Country] = item
	}

	return &TeamRepository{teamsByCountry: teamsByCountry}
}

func (r *TeamRepository) GetByCountry(_ context.Context, country string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teamsByCountry[country]
	if !ok {
		return team.Team{}, false, nil
	}

	return cloneTeam(item), true, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teamsByCountry))
	for _, item := range r.teamsByCountry {
		out = append(out, cloneTeam(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })

	return out, nil
}

func (r *TeamRepository) Put(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teamsByCountry[item.Country] = cloneTeam(item)

	return nil
}

// cloneTeam deep-copies the roster so callers cannot mutate stored
// state through the returned slice.
func cloneTeam(item team.Team) team.Team {
	out := item
	out.Players = make([]player.Player, len(item.Players))
	for i, p := range item.Players {
		copied := p
		copied.Ratings = make(map[player.Position]int, len(p.Ratings))
		for pos, rating := range p.Ratings {
			copied.Ratings[pos] = rating
		}
		out.Players[i] = copied
	}
	return out
}
