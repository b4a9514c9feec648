package bracket

import (
	"fmt"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

// TeamCount is the number of registered teams a knockout draw needs.
const TeamCount = 8

// Build draws a single-elimination bracket from exactly TeamCount
// teams: a random shuffle pairs neighbours into the quarterfinals,
// while the semifinals and final start locked with placeholder slots
// until their feeder matches complete.
func Build(rng random.Source, teams []team.Team) ([]match.Match, error) {
	if len(teams) != TeamCount {
		return nil, fmt.Errorf("bracket needs exactly %d teams, got %d", TeamCount, len(teams))
	}

	drawn := append([]team.Team(nil), teams...)
	rng.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})

	matches := make([]match.Match, 0, 7)
	for i := 0; i < 4; i++ {
		matches = append(matches, match.Match{
			ID:        fmt.Sprintf("QF%d", i+1),
			Round:     match.RoundQuarterFinal,
			Number:    i + 1,
			Team1:     match.Slot{Country: drawn[2*i].Country},
			Team2:     match.Slot{Country: drawn[2*i+1].Country},
			Status:    match.StatusPending,
			NextMatch: fmt.Sprintf("SF%d", i/2+1),
		})
	}

	for i := 0; i < 2; i++ {
		matches = append(matches, match.Match{
			ID:        fmt.Sprintf("SF%d", i+1),
			Round:     match.RoundSemiFinal,
			Number:    i + 1,
			Team1:     match.Slot{Country: match.PlaceholderCountry},
			Team2:     match.Slot{Country: match.PlaceholderCountry},
			Status:    match.StatusLocked,
			NextMatch: "FINAL",
			DependsOn: []string{fmt.Sprintf("QF%d", 2*i+1), fmt.Sprintf("QF%d", 2*i+2)},
		})
	}

	matches = append(matches, match.Match{
		ID:        "FINAL",
		Round:     match.RoundFinal,
		Number:    1,
		Team1:     match.Slot{Country: match.PlaceholderCountry},
		Team2:     match.Slot{Country: match.PlaceholderCountry},
		Status:    match.StatusLocked,
		DependsOn: []string{"SF1", "SF2"},
	})

	return matches, nil
}

// SlotIndex locates the completed match within the next match's feeder
// list: index 0 advances the winner into the first slot, index 1 into
// the second.
func SlotIndex(next match.Match, completedID string) (int, bool) {
	for i, dep := range next.DependsOn {
		if dep == completedID {
			return i, true
		}
	}
	return 0, false
}
