package simulation

import (
	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

// Outcome is the full result of playing one knockout match.
type Outcome struct {
	Score    match.Score
	Goals    []match.Goal
	Shootout *match.Shootout
	Winner   match.Winner
}

// Play resolves a match between two teams: it rolls the full-time
// score, attributes scorers, and settles a draw on penalties. Knockout
// matches always produce a winner.
func Play(rng random.Source, team1, team2 team.Team) Outcome {
	goals1, goals2 := GenerateScore(rng, team1.Rating, team2.Rating)

	out := Outcome{Score: match.Score{Team1: goals1, Team2: goals2}}
	out.Goals = append(out.Goals, AttributeScorers(rng, team1, goals1)...)
	out.Goals = append(out.Goals, AttributeScorers(rng, team2, goals2)...)

	switch {
	case goals1 > goals2:
		out.Winner = match.Winner{Country: team1.Country, WonBy: match.WonByNormal}
	case goals2 > goals1:
		out.Winner = match.Winner{Country: team2.Country, WonBy: match.WonByNormal}
	default:
		shootout := ResolveShootout(rng, team1, team2)
		out.Shootout = &shootout
		out.Winner = match.Winner{Country: shootout.Winner, WonBy: match.WonByPenalties}
	}
	return out
}
