package simulation

import (
	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

const (
	regulationRounds = 5
	maxRounds        = 10
	conversionRate   = 0.7
)

// ResolveShootout settles a drawn match on penalties. Both sides take
// five regulation kicks; if still level the shootout enters sudden
// death, one kick per side per round, ending as soon as a round leaves
// the tallies apart. Takers are drawn uniformly from the squad and may
// kick more than once. Round ten is a hard cap: a shootout still level
// there is re-taken as a decider where exactly one side converts.
func ResolveShootout(rng random.Source, team1, team2 team.Team) match.Shootout {
	s := match.Shootout{}

	for round := 1; round <= maxRounds; round++ {
		suddenDeath := round > regulationRounds
		s.Rounds = round

		kick1 := match.KickAttempt{
			Player:      anyTaker(rng, team1.Players),
			Team:        team1.Country,
			Scored:      rng.Float64() < conversionRate,
			SuddenDeath: suddenDeath,
		}
		kick2 := match.KickAttempt{
			Player:      anyTaker(rng, team2.Players),
			Team:        team2.Country,
			Scored:      rng.Float64() < conversionRate,
			SuddenDeath: suddenDeath,
		}

		if round == maxRounds && kick1.Scored == kick2.Scored {
			// Final-round decider: force a miss on one side.
			if rng.Intn(2) == 0 {
				kick1.Scored, kick2.Scored = true, false
			} else {
				kick1.Scored, kick2.Scored = false, true
			}
		}

		s.Team1Kicks = append(s.Team1Kicks, kick1)
		s.Team2Kicks = append(s.Team2Kicks, kick2)
		if kick1.Scored {
			s.Score.Team1++
		}
		if kick2.Scored {
			s.Score.Team2++
		}

		if round >= regulationRounds && s.Score.Team1 != s.Score.Team2 {
			break
		}
	}

	if s.Score.Team1 > s.Score.Team2 {
		s.Winner = team1.Country
	} else {
		s.Winner = team2.Country
	}
	return s
}
