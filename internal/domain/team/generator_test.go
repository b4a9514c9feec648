package team

import (
	"testing"

	"github.com/riskibarqy/nations-league/internal/platform/random"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	rng := random.New(42)
	generated, err := Generate(rng, "Brazil", "Carlos Dunga", "user-1")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(generated.Players) != SquadSize {
		t.Fatalf("squad size = %d, want %d", len(generated.Players), SquadSize)
	}

	captains := 0
	names := map[string]struct{}{}
	for _, p := range generated.Players {
		if p.IsCaptain {
			captains++
		}
		if _, dup := names[p.Name]; dup {
			t.Fatalf("duplicate player name %q", p.Name)
		}
		names[p.Name] = struct{}{}
	}
	if captains != 1 {
		t.Fatalf("captains = %d, want 1", captains)
	}

	if generated.Rating < 0 || generated.Rating > 100 {
		t.Fatalf("team rating %d out of range", generated.Rating)
	}
	if generated.CreatedBy != "user-1" {
		t.Fatalf("CreatedBy = %q", generated.CreatedBy)
	}
	if generated.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set")
	}
}

func TestGenerateRejectsMissingFields(t *testing.T) {
	t.Parallel()

	rng := random.New(1)

	if _, err := Generate(rng, "", "Some Manager", "user-1"); err == nil {
		t.Fatal("expected error for missing country")
	}
	if _, err := Generate(rng, "Ghana", "", "user-1"); err == nil {
		t.Fatal("expected error for missing manager")
	}
}
