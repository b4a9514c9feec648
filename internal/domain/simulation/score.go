package simulation

import (
	"math"

	"github.com/riskibarqy/nations-league/internal/platform/random"
)

// DefaultRating stands in for a team whose rating is missing or was
// never computed.
const DefaultRating = 50

const goalScale = 3

// GenerateScore rolls a full-time score weighted by the relative team
// ratings. Each side's goals come from an independent uniform draw
// shifted by its share of the combined rating, so stronger teams score
// more on average but upsets stay possible.
func GenerateScore(rng random.Source, rating1, rating2 int) (int, int) {
	r1 := normalizeRating(rating1)
	r2 := normalizeRating(rating2)
	total := float64(r1 + r2)

	goals1 := rollGoals(rng, float64(r1)/total)
	goals2 := rollGoals(rng, float64(r2)/total)
	return goals1, goals2
}

func rollGoals(rng random.Source, ratingShare float64) int {
	raw := (rng.Float64() + ratingShare) * goalScale
	if raw < 0 {
		raw = 0
	}
	return int(math.Round(raw))
}

func normalizeRating(rating int) int {
	if rating <= 0 {
		return DefaultRating
	}
	return rating
}
