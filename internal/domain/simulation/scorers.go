package simulation

import (
	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/player"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

// AttributeScorers assigns each goal a scorer and a minute. Scorers are
// drawn from the attacking and midfield players, falling back to the
// whole squad when a roster has none; a player can score more than
// once. Minutes are uniform in [1, 90].
func AttributeScorers(rng random.Source, t team.Team, goals int) []match.Goal {
	if goals <= 0 {
		return nil
	}

	pool := t.PotentialScorers()
	if len(pool) == 0 {
		pool = t.Players
	}
	if len(pool) == 0 {
		return nil
	}

	out := make([]match.Goal, 0, goals)
	for i := 0; i < goals; i++ {
		out = append(out, match.Goal{
			Player: pool[rng.Intn(len(pool))].Name,
			Team:   t.Country,
			Minute: rng.Intn(match.MinuteMax) + 1,
		})
	}
	return out
}

func anyTaker(rng random.Source, players []player.Player) string {
	if len(players) == 0 {
		return ""
	}
	return players[rng.Intn(len(players))].Name
}
