package team

import (
	"errors"
	"testing"

	"github.com/riskibarqy/nations-league/internal/domain/player"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

func fullSquad(t *testing.T) Team {
	t.Helper()

	rng := random.New(99)
	generated, err := Generate(rng, "Kenya", "A. Manager", "user-1")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return generated
}

func TestAddPlayerRejectsOverfullSquad(t *testing.T) {
	t.Parallel()

	squad := fullSquad(t)
	rng := random.New(5)
	extra := player.Generate(rng, "Extra Player", player.PositionAttacker)

	if err := squad.AddPlayer(extra); !errors.Is(err, ErrSquadFull) {
		t.Fatalf("AddPlayer() error = %v, want ErrSquadFull", err)
	}
}

func TestRecomputeRating(t *testing.T) {
	t.Parallel()

	squad := fullSquad(t)
	want := 0
	for _, p := range squad.Players {
		want += p.OverallRating()
	}
	want = (want + len(squad.Players)/2) / len(squad.Players)

	squad.RecomputeRating()
	if squad.Rating != want {
		t.Fatalf("Rating = %d, want %d", squad.Rating, want)
	}
}

func TestValidateSquadCaptainCount(t *testing.T) {
	t.Parallel()

	squad := fullSquad(t)
	for i := range squad.Players {
		squad.Players[i].IsCaptain = false
	}
	if err := squad.ValidateSquad(); err == nil {
		t.Fatal("expected error without a captain")
	}

	squad.Players[0].IsCaptain = true
	squad.Players[1].IsCaptain = true
	if err := squad.ValidateSquad(); err == nil {
		t.Fatal("expected error with two captains")
	}
}

func TestPotentialScorers(t *testing.T) {
	t.Parallel()

	squad := fullSquad(t)
	for _, p := range squad.PotentialScorers() {
		if p.Position != player.PositionAttacker && p.Position != player.PositionMidfielder {
			t.Fatalf("unexpected position %s in scorer pool", p.Position)
		}
	}
}
