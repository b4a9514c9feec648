package player

import "fmt"

// Position represents football position categories used across squads
// and the match engine.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "MD"
	PositionAttacker   Position = "AT"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionAttacker:   {},
}

// Player is one squad member. Ratings hold one value per position
// category; everything except the captain flag is immutable after
// generation.
type Player struct {
	Name      string
	Position  Position
	IsCaptain bool
	Ratings   map[Position]int
}

// OverallRating is the rounded mean of the four position ratings.
func (p Player) OverallRating() int {
	if len(p.Ratings) == 0 {
		return 0
	}

	sum := 0
	for _, rating := range p.Ratings {
		sum += rating
	}
	return roundDiv(sum, len(p.Ratings))
}

func (p Player) Rating(position Position) int {
	return p.Ratings[position]
}

// CanPlay reports whether the player is effective at the given position.
func (p Player) CanPlay(position Position) bool {
	return p.Ratings[position] >= 50
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if len(p.Ratings) != len(AllPositions) {
		return fmt.Errorf("player %s must have exactly %d position ratings, got %d", p.Name, len(AllPositions), len(p.Ratings))
	}
	for position, rating := range p.Ratings {
		if _, ok := AllPositions[position]; !ok {
			return fmt.Errorf("player %s has rating for unknown position %s", p.Name, position)
		}
		if rating < 0 || rating > 100 {
			return fmt.Errorf("player %s rating for %s out of range: %d", p.Name, position, rating)
		}
	}

	return nil
}

// roundDiv is integer round-half-up division for non-negative inputs.
func roundDiv(sum, n int) int {
	return (sum + n/2) / n
}
