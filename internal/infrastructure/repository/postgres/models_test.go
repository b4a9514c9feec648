package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

func TestMatchDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	completedAt := time.Date(2026, 6, 12, 20, 45, 0, 0, time.UTC)
	original := match.Match{
		ID:     "SF1",
		Round:  match.RoundSemiFinal,
		Number: 1,
		Team1:  match.Slot{Country: "Kenya"},
		Team2:  match.Slot{Country: "Mali"},
		Status: match.StatusCompleted,
		Score:  &match.Score{Team1: 1, Team2: 1},
		GoalScorers: []match.Goal{
			{Player: "Brian Otieno", Team: "Kenya", Minute: 23},
			{Player: "Amara Conte", Team: "Mali", Minute: 67},
		},
		Winner: &match.Winner{Country: "Mali", WonBy: match.WonByPenalties},
		Shootout: &match.Shootout{
			Team1Kicks: []match.KickAttempt{{Player: "Brian Otieno", Team: "Kenya", Scored: true}},
			Team2Kicks: []match.KickAttempt{{Player: "Amara Conte", Team: "Mali", Scored: true, SuddenDeath: true}},
			Score:      match.Score{Team1: 4, Team2: 5},
			Winner:     "Mali",
			Rounds:     6,
		},
		Commentary:     "A semifinal for the ages.",
		SimulationType: match.SimulationPlayed,
		NextMatch:      "FINAL",
		DependsOn:      []string{"QF1", "QF2"},
		CompletedAt:    &completedAt,
	}

	decoded := decodeMatch(encodeMatch(original))

	if decoded.ID != original.ID || decoded.Round != original.Round || decoded.Status != original.Status {
		t.Fatalf("identity mismatch: %+v", decoded)
	}
	if *decoded.Score != *original.Score {
		t.Fatalf("score = %+v", decoded.Score)
	}
	if len(decoded.GoalScorers) != 2 || decoded.GoalScorers[1] != original.GoalScorers[1] {
		t.Fatalf("goals = %+v", decoded.GoalScorers)
	}
	if *decoded.Winner != *original.Winner {
		t.Fatalf("winner = %+v", decoded.Winner)
	}
	if decoded.Shootout.Winner != "Mali" || decoded.Shootout.Rounds != 6 {
		t.Fatalf("shootout = %+v", decoded.Shootout)
	}
	if !decoded.Shootout.Team2Kicks[0].SuddenDeath {
		t.Fatal("sudden-death flag lost")
	}
	if decoded.NextMatch != "FINAL" || len(decoded.DependsOn) != 2 {
		t.Fatalf("graph links lost: %+v", decoded)
	}
	if decoded.CompletedAt == nil || !decoded.CompletedAt.Equal(completedAt) {
		t.Fatalf("completedAt = %v", decoded.CompletedAt)
	}
}

func TestTeamDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	original, err := team.Generate(random.New(4), "Senegal", "Pape Thiaw", "admin-01")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	decoded := decodeTeam(encodeTeam(original))

	if decoded.Country != original.Country || decoded.Rating != original.Rating {
		t.Fatalf("identity mismatch: %+v", decoded)
	}
	if len(decoded.Players) != len(original.Players) {
		t.Fatalf("squad size %d, want %d", len(decoded.Players), len(original.Players))
	}
	captain, ok := decoded.Captain()
	if !ok {
		t.Fatal("captain lost in round trip")
	}
	wantCaptain, _ := original.Captain()
	if captain.Name != wantCaptain.Name {
		t.Fatalf("captain = %q, want %q", captain.Name, wantCaptain.Name)
	}
	if decoded.Players[0].Ratings[decoded.Players[0].Position] != original.Players[0].Ratings[original.Players[0].Position] {
		t.Fatal("ratings lost in round trip")
	}
}
