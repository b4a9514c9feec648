package usecase

import (
	"fmt"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/nations-league/internal/domain/match"
)

// FallbackCommentary renders a deterministic templated match report.
// It is used whenever the commentary generator is absent, fails, or
// returns empty output.
func FallbackCommentary(m match.Match) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	score := match.Score{}
	if m.Score != nil {
		score = *m.Score
	}

	fmt.Fprintf(buf, "%s %d-%d %s.", m.Team1.Country, score.Team1, score.Team2, m.Team2.Country)

	for _, g := range m.GoalScorers {
		fmt.Fprintf(buf, " %d' %s scores for %s.", g.Minute, g.Player, g.Team)
	}

	if m.Winner != nil {
		fmt.Fprintf(buf, " Full time: %s advance.", m.Winner.Country)
		if m.Winner.WonBy == match.WonByPenalties && m.Shootout != nil {
			fmt.Fprintf(buf, " Penalties: %s hold their nerve, %d-%d after %d rounds.",
				m.Shootout.Winner, m.Shootout.Score.Team1, m.Shootout.Score.Team2, m.Shootout.Rounds)
		}
	}

	return buf.String()
}
