package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
)

// TopScorer is one row of the tournament scorer chart.
type TopScorer struct {
	Player string
	Team   string
	Goals  int
}

type ScorerService struct {
	matchRepo match.Repository
	logger    *logging.Logger
}

func NewScorerService(matchRepo match.Repository, logger *logging.Logger) *ScorerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScorerService{matchRepo: matchRepo, logger: logger}
}

// GetTopScorers aggregates goal events across all completed matches,
// keyed by player and team, descending by goals. Ties break
// alphabetically so the chart is stable.
func (s *ScorerService) GetTopScorers(ctx context.Context) ([]TopScorer, error) {
	ctx, span := startUsecaseSpan(ctx, "ScorerService.GetTopScorers")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	type key struct{ player, team string }
	tally := map[key]int{}
	for _, m := range matches {
		if m.Status != match.StatusCompleted {
			continue
		}
		for _, g := range m.GoalScorers {
			tally[key{player: g.Player, team: g.Team}]++
		}
	}

	out := make([]TopScorer, 0, len(tally))
	for k, goals := range tally {
		out = append(out, TopScorer{Player: k.player, Team: k.team, Goals: goals})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		if out[i].Player != out[j].Player {
			return out[i].Player < out[j].Player
		}
		return out[i].Team < out[j].Team
	})

	return out, nil
}
