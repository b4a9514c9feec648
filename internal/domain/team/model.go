package team

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/nations-league/internal/domain/player"
)

// SquadSize is the fixed roster size of a registered national team.
const SquadSize = 23

var ErrSquadFull = errors.New("squad is full")

// Team is a registered national side. Country doubles as the document
// key in the store, so it is unique across the tournament.
type Team struct {
	Country   string
	Manager   string
	CreatedBy string
	Players   []player.Player
	Rating    int
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.Country == "" {
		return fmt.Errorf("team country is required")
	}
	if t.Manager == "" {
		return fmt.Errorf("team manager is required")
	}

	return nil
}

// ValidateSquad checks the finalized-roster invariants: exactly
// SquadSize valid players with exactly one captain.
func (t Team) ValidateSquad() error {
	if len(t.Players) != SquadSize {
		return fmt.Errorf("squad must have exactly %d players, got %d", SquadSize, len(t.Players))
	}

	captains := 0
	for _, p := range t.Players {
		if err := p.Validate(); err != nil {
			return err
		}
		if p.IsCaptain {
			captains++
		}
	}
	if captains != 1 {
		return fmt.Errorf("squad must have exactly one captain, got %d", captains)
	}

	return nil
}

// AddPlayer appends to the roster and recomputes the team rating.
func (t *Team) AddPlayer(p player.Player) error {
	if len(t.Players) >= SquadSize {
		return fmt.Errorf("%w: max %d players", ErrSquadFull, SquadSize)
	}

	t.Players = append(t.Players, p)
	t.RecomputeRating()
	return nil
}

// RecomputeRating caches the rounded mean of the squad's overall
// ratings on the team. Called whenever the roster changes.
func (t *Team) RecomputeRating() {
	if len(t.Players) == 0 {
		t.Rating = 0
		return
	}

	sum := 0
	for _, p := range t.Players {
		sum += p.OverallRating()
	}
	t.Rating = (sum + len(t.Players)/2) / len(t.Players)
}

func (t Team) Captain() (player.Player, bool) {
	for _, p := range t.Players {
		if p.IsCaptain {
			return p, true
		}
	}
	return player.Player{}, false
}

func (t Team) PlayersByPosition(position player.Position) []player.Player {
	out := make([]player.Player, 0, len(t.Players))
	for _, p := range t.Players {
		if p.Position == position {
			out = append(out, p)
		}
	}
	return out
}

// PotentialScorers returns the attacking and midfield players, the
// preferred pool for goal attribution.
func (t Team) PotentialScorers() []player.Player {
	out := make([]player.Player, 0, len(t.Players))
	for _, p := range t.Players {
		if p.Position == player.PositionAttacker || p.Position == player.PositionMidfielder {
			out = append(out, p)
		}
	}
	return out
}
