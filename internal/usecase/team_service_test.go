package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/random"
	"github.com/riskibarqy/nations-league/internal/usecase"
)

func TestCreateTeam(t *testing.T) {
	t.Parallel()

	svc := usecase.NewTeamService(memory.NewTeamRepository(nil), random.New(1), logging.NewNop())

	created, err := svc.CreateTeam(context.Background(), usecase.CreateTeamInput{
		Country:   "kenya",
		Manager:   "Benni McCarthy",
		CreatedBy: "admin-01",
	})
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}

	if created.Country != "Kenya" {
		t.Fatalf("country = %q, want canonical %q", created.Country, "Kenya")
	}
	if len(created.Players) != team.SquadSize {
		t.Fatalf("squad size = %d, want %d", len(created.Players), team.SquadSize)
	}
	if created.Rating <= 0 {
		t.Fatalf("rating = %d, want positive", created.Rating)
	}
}

func TestCreateTeamDuplicateCountry(t *testing.T) {
	t.Parallel()

	svc := usecase.NewTeamService(memory.NewTeamRepository(nil), random.New(1), logging.NewNop())

	input := usecase.CreateTeamInput{Country: "Ghana", Manager: "Otto Addo", CreatedBy: "admin-01"}
	if _, err := svc.CreateTeam(context.Background(), input); err != nil {
		t.Fatalf("first CreateTeam() error = %v", err)
	}

	input.Country = "ghana"
	if _, err := svc.CreateTeam(context.Background(), input); !errors.Is(err, usecase.ErrAlreadyExists) {
		t.Fatalf("second CreateTeam() error = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateTeamValidation(t *testing.T) {
	t.Parallel()

	svc := usecase.NewTeamService(memory.NewTeamRepository(nil), random.New(1), logging.NewNop())

	tests := []struct {
		name  string
		input usecase.CreateTeamInput
	}{
		{name: "missing country", input: usecase.CreateTeamInput{Manager: "M. Name", CreatedBy: "admin-01"}},
		{name: "bad country characters", input: usecase.CreateTeamInput{Country: "K3ny4!", Manager: "M. Name", CreatedBy: "admin-01"}},
		{name: "missing manager", input: usecase.CreateTeamInput{Country: "Kenya", CreatedBy: "admin-01"}},
		{name: "missing creator", input: usecase.CreateTeamInput{Country: "Kenya", Manager: "M. Name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := svc.CreateTeam(context.Background(), tt.input); !errors.Is(err, usecase.ErrInvalidInput) {
				t.Fatalf("CreateTeam() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCountTeams(t *testing.T) {
	t.Parallel()

	teams, err := memory.SeedTeams(random.New(7))
	if err != nil {
		t.Fatalf("SeedTeams() error = %v", err)
	}
	svc := usecase.NewTeamService(memory.NewTeamRepository(teams), random.New(1), logging.NewNop())

	count, err := svc.CountTeams(context.Background())
	if err != nil {
		t.Fatalf("CountTeams() error = %v", err)
	}
	if count != len(teams) {
		t.Fatalf("count = %d, want %d", count, len(teams))
	}
}
