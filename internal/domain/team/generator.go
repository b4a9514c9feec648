package team

import (
	"time"

	"github.com/riskibarqy/nations-league/internal/domain/player"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

// Generate builds a team with a full generated squad: SquadSize players
// with unique names, uniformly random positions, and one randomly
// assigned captain.
func Generate(rng random.Source, country, manager, createdBy string) (Team, error) {
	t := Team{
		Country:   country,
		Manager:   manager,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return Team{}, err
	}

	usedNames := make(map[string]struct{}, SquadSize)
	t.Players = make([]player.Player, 0, SquadSize)
	for i := 0; i < SquadSize; i++ {
		name := player.RandomName(rng)
		for {
			if _, taken := usedNames[name]; !taken {
				break
			}
			name = player.RandomName(rng)
		}
		usedNames[name] = struct{}{}

		t.Players = append(t.Players, player.Generate(rng, name, player.RandomPosition(rng)))
	}

	t.Players[rng.Intn(SquadSize)].IsCaptain = true
	t.RecomputeRating()

	if err := t.ValidateSquad(); err != nil {
		return Team{}, err
	}

	return t, nil
}
