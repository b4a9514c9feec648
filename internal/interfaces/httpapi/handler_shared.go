package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/player"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/domain/tournament"
	"github.com/riskibarqy/nations-league/internal/usecase"
)

type createTeamRequest struct {
	Country string `json:"country" validate:"required,max=56"`
	Manager string `json:"manager" validate:"required,max=60"`
}

type teamDTO struct {
	Country   string      `json:"country"`
	Manager   string      `json:"manager"`
	CreatedBy string      `json:"createdBy,omitempty"`
	Rating    int         `json:"rating"`
	Players   []playerDTO `json:"players"`
	CreatedAt string      `json:"createdAt,omitempty"`
}

type playerDTO struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	Rating    int    `json:"rating"`
	IsCaptain bool   `json:"isCaptain,omitempty"`
}

type teamCountDTO struct {
	Count int `json:"count"`
}

type matchDTO struct {
	ID             string       `json:"id"`
	Round          string       `json:"round"`
	Number         int          `json:"number"`
	Team1          string       `json:"team1"`
	Team2          string       `json:"team2"`
	Status         string       `json:"status"`
	Score          *scoreDTO    `json:"score,omitempty"`
	GoalScorers    []goalDTO    `json:"goalScorers,omitempty"`
	Winner         *winnerDTO   `json:"winner,omitempty"`
	Shootout       *shootoutDTO `json:"penaltyShootout,omitempty"`
	Commentary     string       `json:"commentary,omitempty"`
	SimulationType string       `json:"simulationType,omitempty"`
	NextMatch      string       `json:"nextMatch,omitempty"`
	DependsOn      []string     `json:"dependsOn,omitempty"`
	CompletedAt    string       `json:"completedAt,omitempty"`
}

type scoreDTO struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

type goalDTO struct {
	Player string `json:"player"`
	Team   string `json:"team"`
	Minute int    `json:"minute"`
}

type winnerDTO struct {
	Country string `json:"country"`
	WonBy   string `json:"wonBy"`
}

type shootoutDTO struct {
	Team1Kicks []kickDTO `json:"team1Kicks"`
	Team2Kicks []kickDTO `json:"team2Kicks"`
	Score      scoreDTO  `json:"score"`
	Winner     string    `json:"winner"`
	Rounds     int       `json:"rounds"`
}

type kickDTO struct {
	Player      string `json:"player"`
	Team        string `json:"team"`
	Scored      bool   `json:"scored"`
	SuddenDeath bool   `json:"suddenDeath,omitempty"`
}

type tournamentStatusDTO struct {
	Phase        string `json:"phase"`
	CurrentRound string `json:"currentRound,omitempty"`
	TeamsCount   int    `json:"teamsCount"`
	Champion     string `json:"champion,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	ResetAt      string `json:"resetAt,omitempty"`
}

type startTournamentDTO struct {
	Started    bool       `json:"started"`
	Matches    []matchDTO `json:"matches,omitempty"`
	TeamsCount int        `json:"teamsCount"`
}

type topScorerDTO struct {
	Player string `json:"player"`
	Team   string `json:"team"`
	Goals  int    `json:"goals"`
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	players := make([]playerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, playerToDTO(p))
	}

	return teamDTO{
		Country:   v.Country,
		Manager:   v.Manager,
		CreatedBy: v.CreatedBy,
		Rating:    v.Rating,
		Players:   players,
		CreatedAt: formatOptionalTime(&v.CreatedAt),
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		Name:      p.Name,
		Position:  string(p.Position),
		Rating:    p.OverallRating(),
		IsCaptain: p.IsCaptain,
	}
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	dto := matchDTO{
		ID:             v.ID,
		Round:          string(v.Round),
		Number:         v.Number,
		Team1:          v.Team1.Country,
		Team2:          v.Team2.Country,
		Status:         string(v.Status),
		Commentary:     v.Commentary,
		SimulationType: string(v.SimulationType),
		NextMatch:      v.NextMatch,
		DependsOn:      append([]string(nil), v.DependsOn...),
		CompletedAt:    formatOptionalTime(v.CompletedAt),
	}

	if v.Score != nil {
		dto.Score = &scoreDTO{Team1: v.Score.Team1, Team2: v.Score.Team2}
	}
	if len(v.GoalScorers) > 0 {
		goals := make([]goalDTO, 0, len(v.GoalScorers))
		for _, g := range v.GoalScorers {
			goals = append(goals, goalDTO(g))
		}
		dto.GoalScorers = goals
	}
	if v.Winner != nil {
		dto.Winner = &winnerDTO{Country: v.Winner.Country, WonBy: string(v.Winner.WonBy)}
	}
	if v.Shootout != nil {
		dto.Shootout = shootoutToDTO(v.Shootout)
	}

	return dto
}

func shootoutToDTO(v *match.Shootout) *shootoutDTO {
	return &shootoutDTO{
		Team1Kicks: kicksToDTO(v.Team1Kicks),
		Team2Kicks: kicksToDTO(v.Team2Kicks),
		Score:      scoreDTO{Team1: v.Score.Team1, Team2: v.Score.Team2},
		Winner:     v.Winner,
		Rounds:     v.Rounds,
	}
}

func kicksToDTO(kicks []match.KickAttempt) []kickDTO {
	out := make([]kickDTO, 0, len(kicks))
	for _, kick := range kicks {
		out = append(out, kickDTO(kick))
	}
	return out
}

func matchesToDTO(ctx context.Context, matches []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchToDTO(ctx, m))
	}
	return out
}

func statusToDTO(ctx context.Context, v tournament.State) tournamentStatusDTO {
	ctx, span := startSpan(ctx, "httpapi.statusToDTO")
	defer span.End()

	return tournamentStatusDTO{
		Phase:        string(v.Phase),
		CurrentRound: v.CurrentRound,
		TeamsCount:   v.TeamsCount,
		Champion:     v.Champion,
		CreatedAt:    formatOptionalTime(v.CreatedAt),
		ResetAt:      formatOptionalTime(v.ResetAt),
	}
}

func topScorersToDTO(scorers []usecase.TopScorer) []topScorerDTO {
	out := make([]topScorerDTO, 0, len(scorers))
	for _, s := range scorers {
		out = append(out, topScorerDTO(s))
	}
	return out
}

func formatOptionalTime(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
