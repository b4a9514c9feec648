package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/nations-league/internal/domain/bracket"
	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/simulation"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/domain/user"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

// CommentaryGenerator produces narrative text for a completed match.
// Implementations may fail or return empty output; the service falls
// back to a deterministic template in both cases.
type CommentaryGenerator interface {
	MatchCommentary(ctx context.Context, m match.Match) (string, error)
}

// ResultNotifier delivers a completed match result to the given
// recipient addresses.
type ResultNotifier interface {
	SendResult(ctx context.Context, m match.Match, recipients []string) error
}

type MatchService struct {
	teamRepo   team.Repository
	matchRepo  match.Repository
	userRepo   user.Repository
	rng        random.Source
	commentary CommentaryGenerator
	notifier   ResultNotifier
	logger     *logging.Logger
	now        func() time.Time
	locks      keyedMutex
}

func NewMatchService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	userRepo user.Repository,
	rng random.Source,
	commentary CommentaryGenerator,
	notifier ResultNotifier,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		userRepo:   userRepo,
		rng:        rng,
		commentary: commentary,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) GetMatch(ctx context.Context, rawID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.GetMatch")
	defer span.End()

	id, err := match.NormalizeID(rawID)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m, found, err := s.matchRepo.Get(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, id)
	}

	return m, nil
}

func (s *MatchService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.ListMatches")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return matches, nil
}

// SimulateMatch resolves a pending match instantly without commentary.
func (s *MatchService) SimulateMatch(ctx context.Context, rawID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.SimulateMatch")
	defer span.End()

	return s.resolve(ctx, rawID, match.SimulationQuick)
}

// PlayMatch resolves a pending match and attaches commentary, falling
// back to a templated report when the generator fails or returns
// nothing.
func (s *MatchService) PlayMatch(ctx context.Context, rawID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.PlayMatch")
	defer span.End()

	return s.resolve(ctx, rawID, match.SimulationPlayed)
}

// SimulateAll plays out every remaining match round by round. Matches
// within a round run concurrently on a worker pool; rounds run in
// bracket order so winners have propagated before the next round
// starts.
func (s *MatchService) SimulateAll(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.SimulateAll")
	defer span.End()

	rounds := []match.Round{match.RoundQuarterFinal, match.RoundSemiFinal, match.RoundFinal}
	for _, round := range rounds {
		matches, err := s.matchRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list matches: %w", err)
		}

		pending := make([]string, 0, 4)
		for _, m := range matches {
			if m.Round == round && m.Playable() {
				pending = append(pending, m.ID)
			}
		}
		if len(pending) == 0 {
			continue
		}

		if err := s.simulateRound(ctx, pending); err != nil {
			return nil, err
		}
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return matches, nil
}

func (s *MatchService) simulateRound(ctx context.Context, ids []string) error {
	pool, err := ants.NewPool(len(ids))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	errs := make(chan error, len(ids))

	var workers sync.WaitGroup
	for _, id := range ids {
		id := id
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if _, err := s.SimulateMatch(ctx, id); err != nil {
				errs <- fmt.Errorf("simulate %s: %w", id, err)
			}
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit match to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(errs)

	for err := range errs {
		return err
	}

	return nil
}

// resolve is the single path that completes a match: it rolls the
// outcome, writes the full updated document, and advances the winner.
// The per-match lock makes the pending check and the completion write
// atomic, so a second resolve of the same match fails cleanly.
func (s *MatchService) resolve(ctx context.Context, rawID string, simType match.SimulationType) (match.Match, error) {
	id, err := match.NormalizeID(rawID)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	unlock := s.locks.lock(id)
	defer unlock()

	m, found, err := s.matchRepo.Get(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, id)
	}
	if m.Status != match.StatusPending {
		return match.Match{}, fmt.Errorf("%w: match %s is %s, not pending", ErrInvalidState, id, m.Status)
	}
	if !m.Playable() {
		return match.Match{}, fmt.Errorf("%w: match %s is missing a team", ErrInvalidState, id)
	}

	team1, err := s.lookupTeam(ctx, m.Team1.Country)
	if err != nil {
		return match.Match{}, err
	}
	team2, err := s.lookupTeam(ctx, m.Team2.Country)
	if err != nil {
		return match.Match{}, err
	}

	outcome := simulation.Play(s.rng, team1, team2)

	now := s.now().UTC()
	m.Score = &outcome.Score
	m.GoalScorers = outcome.Goals
	m.SortGoals()
	m.Winner = &outcome.Winner
	m.Shootout = outcome.Shootout
	m.Status = match.StatusCompleted
	m.SimulationType = simType
	m.CompletedAt = &now

	if simType == match.SimulationPlayed {
		m.Commentary = s.buildCommentary(ctx, m)
	}

	if err := s.matchRepo.Put(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("put match: %w", err)
	}

	s.logger.InfoContext(ctx, "match completed",
		"match_id", m.ID,
		"score", fmt.Sprintf("%d-%d", outcome.Score.Team1, outcome.Score.Team2),
		"winner", outcome.Winner.Country,
		"won_by", string(outcome.Winner.WonBy),
		"simulation_type", string(simType),
	)

	if err := s.advanceWinner(ctx, m); err != nil {
		return match.Match{}, err
	}

	s.notifyResult(ctx, m)

	return m, nil
}

func (s *MatchService) lookupTeam(ctx context.Context, country string) (team.Team, error) {
	item, found, err := s.teamRepo.GetByCountry(ctx, country)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team %s: %w", country, err)
	}
	if !found {
		// A slot can reference a team whose document was removed;
		// the engine falls back to the default rating and an empty
		// scorer pool.
		return team.Team{Country: country}, nil
	}

	return item, nil
}

// advanceWinner writes the winner into the next match's slot and
// unlocks it once both feeder matches are done. Completion order does
// not matter: each feeder fills its own slot, and the last one flips
// locked to pending.
func (s *MatchService) advanceWinner(ctx context.Context, completed match.Match) error {
	if completed.NextMatch == "" {
		return nil
	}

	unlock := s.locks.lock(completed.NextMatch)
	defer unlock()

	next, found, err := s.matchRepo.Get(ctx, completed.NextMatch)
	if err != nil {
		return fmt.Errorf("get next match: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: next match %s", ErrNotFound, completed.NextMatch)
	}

	slot, ok := bracket.SlotIndex(next, completed.ID)
	if !ok {
		return fmt.Errorf("%w: match %s does not feed %s", ErrInvalidState, completed.ID, next.ID)
	}

	winner := match.Slot{Country: completed.Winner.Country}
	if slot == 0 {
		next.Team1 = winner
	} else {
		next.Team2 = winner
	}

	ready := true
	for _, dep := range next.DependsOn {
		feeder, found, err := s.matchRepo.Get(ctx, dep)
		if err != nil {
			return fmt.Errorf("get feeder match %s: %w", dep, err)
		}
		if !found || feeder.Status != match.StatusCompleted {
			ready = false
			break
		}
	}
	if ready && next.Status == match.StatusLocked {
		next.Status = match.StatusPending
	}

	if err := s.matchRepo.Put(ctx, next); err != nil {
		return fmt.Errorf("put next match: %w", err)
	}

	s.logger.InfoContext(ctx, "winner advanced",
		"from", completed.ID,
		"to", next.ID,
		"winner", completed.Winner.Country,
		"unlocked", ready,
	)

	return nil
}

// notifyResult mails both countries' representatives. Delivery is best
// effort: failures are logged and never fail the resolution.
func (s *MatchService) notifyResult(ctx context.Context, m match.Match) {
	if s.notifier == nil || s.userRepo == nil {
		return
	}

	recipients := make([]string, 0, 4)
	for _, country := range []string{m.Team1.Country, m.Team2.Country} {
		reps, err := s.userRepo.ListByCountry(ctx, country)
		if err != nil {
			s.logger.WarnContext(ctx, "list representatives failed", "country", country, "error", err)
			continue
		}
		for _, rep := range reps {
			recipients = append(recipients, rep.Email)
		}
	}
	if len(recipients) == 0 {
		return
	}

	if err := s.notifier.SendResult(ctx, m, recipients); err != nil {
		s.logger.WarnContext(ctx, "result notification failed",
			"match_id", m.ID,
			"recipients", len(recipients),
			"error", err,
		)
	}
}

func (s *MatchService) buildCommentary(ctx context.Context, m match.Match) string {
	if s.commentary != nil {
		text, err := s.commentary.MatchCommentary(ctx, m)
		if err != nil {
			s.logger.WarnContext(ctx, "commentary generation failed", "match_id", m.ID, "error", err)
		} else if text != "" {
			return text
		}
	}

	return FallbackCommentary(m)
}

// keyedMutex hands out one mutex per match id.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
