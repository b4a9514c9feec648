package player

import (
	"testing"

	"github.com/riskibarqy/nations-league/internal/platform/random"
)

func TestGenerateRatingBounds(t *testing.T) {
	t.Parallel()

	rng := random.New(1)
	for i := 0; i < 200; i++ {
		p := Generate(rng, RandomName(rng), RandomPosition(rng))

		for pos, rating := range p.Ratings {
			if pos == p.Position {
				if rating < naturalRatingMin || rating > naturalRatingMax {
					t.Fatalf("natural rating %d for %s out of [%d, %d]", rating, pos, naturalRatingMin, naturalRatingMax)
				}
				continue
			}
			if rating < offRatingMin || rating > offRatingMax {
				t.Fatalf("off-position rating %d for %s out of [%d, %d]", rating, pos, offRatingMin, offRatingMax)
			}
		}
	}
}

func TestGenerateCoversAllPositions(t *testing.T) {
	t.Parallel()

	rng := random.New(7)
	p := Generate(rng, "Test Player", PositionMidfielder)

	if len(p.Ratings) != len(AllPositions) {
		t.Fatalf("got %d ratings, want %d", len(p.Ratings), len(AllPositions))
	}
	if p.Name != "Test Player" || p.Position != PositionMidfielder {
		t.Fatalf("unexpected identity: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("generated player invalid: %v", err)
	}
}

func TestRandomPositionDistribution(t *testing.T) {
	t.Parallel()

	rng := random.New(3)
	seen := map[Position]int{}
	for i := 0; i < 400; i++ {
		seen[RandomPosition(rng)]++
	}
	for pos := range AllPositions {
		if seen[pos] == 0 {
			t.Fatalf("position %s never drawn", pos)
		}
	}
}

func TestRandomNameFromPools(t *testing.T) {
	t.Parallel()

	rng := random.New(11)
	for i := 0; i < 50; i++ {
		name := RandomName(rng)
		if name == "" {
			t.Fatal("empty generated name")
		}
	}
}
