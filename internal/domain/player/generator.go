package player

import (
	"math"

	"github.com/riskibarqy/nations-league/internal/platform/random"
)

const (
	naturalRatingMin = 50
	naturalRatingMax = 100
	offRatingMin     = 0
	offRatingMax     = 50

	// Exponents skew the draw: <1 biases high, >1 biases low.
	naturalRatingWeight = 0.8
	offRatingWeight     = 2.0
)

// Generate produces a player with ratings rolled from the given source.
// The natural position draws from a high-biased [50,100] distribution,
// the other three from a low-biased [0,50] one.
func Generate(rng random.Source, name string, position Position) Player {
	ratings := make(map[Position]int, len(AllPositions))
	for _, candidate := range orderedPositions {
		if candidate == position {
			ratings[candidate] = weightedRandom(rng, naturalRatingMin, naturalRatingMax, naturalRatingWeight)
			continue
		}
		ratings[candidate] = weightedRandom(rng, offRatingMin, offRatingMax, offRatingWeight)
	}

	return Player{
		Name:     name,
		Position: position,
		Ratings:  ratings,
	}
}

// RandomPosition picks a position uniformly.
func RandomPosition(rng random.Source) Position {
	return orderedPositions[rng.Intn(len(orderedPositions))]
}

var orderedPositions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionAttacker,
}

func weightedRandom(rng random.Source, min, max int, weight float64) int {
	span := float64(max - min + 1)
	return int(math.Floor(math.Pow(rng.Float64(), weight)*span)) + min
}
