package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/nations-league/internal/domain/bracket"
	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/domain/tournament"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

type TournamentService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	stateRepo tournament.Repository
	rng       random.Source
	logger    *logging.Logger
	now       func() time.Time
}

func NewTournamentService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	stateRepo tournament.Repository,
	rng random.Source,
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TournamentService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		stateRepo: stateRepo,
		rng:       rng,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateBracket draws the knockout bracket. It reports false without
// an error when the field is not ready: fewer or more than eight teams,
// or a bracket that already exists.
func (s *TournamentService) GenerateBracket(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "TournamentService.GenerateBracket")
	defer span.End()

	existing, err := s.matchRepo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list matches: %w", err)
	}
	if len(existing) > 0 {
		s.logger.WarnContext(ctx, "bracket already generated", "matches", len(existing))
		return false, nil
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) != bracket.TeamCount {
		s.logger.WarnContext(ctx, "team count not ready for draw",
			"teams", len(teams),
			"required", bracket.TeamCount,
		)
		return false, nil
	}

	matches, err := bracket.Build(s.rng, teams)
	if err != nil {
		return false, fmt.Errorf("build bracket: %w", err)
	}

	for _, m := range matches {
		if err := s.matchRepo.Put(ctx, m); err != nil {
			return false, fmt.Errorf("put match %s: %w", m.ID, err)
		}
	}

	now := s.now().UTC()
	state := tournament.State{
		Phase:      tournament.PhaseReady,
		TeamsCount: len(teams),
		CreatedAt:  &now,
	}
	if err := s.stateRepo.Put(ctx, state); err != nil {
		return false, fmt.Errorf("put tournament state: %w", err)
	}

	s.logger.InfoContext(ctx, "bracket generated", "matches", len(matches), "teams", len(teams))

	return true, nil
}

// ResetBracket deletes all match documents and keeps the registered
// teams, so the field can be redrawn.
func (s *TournamentService) ResetBracket(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "TournamentService.ResetBracket")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	for _, m := range matches {
		if err := s.matchRepo.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("delete match %s: %w", m.ID, err)
		}
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}

	now := s.now().UTC()
	state := tournament.State{
		Phase:      tournament.PhaseReset,
		TeamsCount: len(teams),
		ResetAt:    &now,
	}
	if err := s.stateRepo.Put(ctx, state); err != nil {
		return fmt.Errorf("put tournament state: %w", err)
	}

	s.logger.InfoContext(ctx, "bracket reset", "deleted_matches", len(matches))

	return nil
}

// Status composes the stored tournament record with live counters: team
// count, the earliest round still in play, and the champion once the
// final completes.
func (s *TournamentService) Status(ctx context.Context) (tournament.State, error) {
	ctx, span := startUsecaseSpan(ctx, "TournamentService.Status")
	defer span.End()

	state, found, err := s.stateRepo.Get(ctx)
	if err != nil {
		return tournament.State{}, fmt.Errorf("get tournament state: %w", err)
	}
	if !found {
		state = tournament.State{Phase: tournament.PhaseNotStarted}
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return tournament.State{}, fmt.Errorf("list teams: %w", err)
	}
	state.TeamsCount = len(teams)

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return tournament.State{}, fmt.Errorf("list matches: %w", err)
	}

	state.CurrentRound = currentRound(matches)
	for _, m := range matches {
		if m.ID == "FINAL" && m.Status == match.StatusCompleted && m.Winner != nil {
			state.Champion = m.Winner.Country
		}
	}

	return state, nil
}

// currentRound is the earliest round with an unfinished match, or the
// final's round name once everything is decided.
func currentRound(matches []match.Match) string {
	if len(matches) == 0 {
		return ""
	}

	current := ""
	best := 0
	allDone := true
	for _, m := range matches {
		if m.Status == match.StatusCompleted {
			continue
		}
		allDone = false
		if order := match.RoundOrder(m.Round); current == "" || order < best {
			current = string(m.Round)
			best = order
		}
	}
	if allDone {
		return string(match.RoundFinal)
	}

	return current
}
