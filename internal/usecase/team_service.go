package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

// CreateTeamInput is the incoming payload for team registration.
type CreateTeamInput struct {
	Country   string
	Manager   string
	CreatedBy string
}

type TeamService struct {
	teamRepo team.Repository
	rng      random.Source
	logger   *logging.Logger
}

func NewTeamService(teamRepo team.Repository, rng random.Source, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo: teamRepo,
		rng:      rng,
		logger:   logger,
	}
}

// CreateTeam registers a country with a freshly generated squad. The
// country doubles as the document key, so a second registration for the
// same country fails.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.CreateTeam")
	defer span.End()

	input.Country = canonicalCountry(input.Country)
	input.Manager = strings.TrimSpace(input.Manager)
	input.CreatedBy = strings.TrimSpace(input.CreatedBy)

	if err := validateCountry(input.Country); err != nil {
		return team.Team{}, err
	}
	if err := validateManager(input.Manager); err != nil {
		return team.Team{}, err
	}
	if input.CreatedBy == "" {
		return team.Team{}, fmt.Errorf("%w: creator id is required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByCountry(ctx, input.Country)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by country: %w", err)
	}
	if exists {
		return team.Team{}, fmt.Errorf("%w: country %s is already registered", ErrAlreadyExists, input.Country)
	}

	generated, err := team.Generate(s.rng, input.Country, input.Manager, input.CreatedBy)
	if err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Put(ctx, generated); err != nil {
		return team.Team{}, fmt.Errorf("put team: %w", err)
	}

	s.logger.InfoContext(ctx, "team registered",
		"country", generated.Country,
		"manager", generated.Manager,
		"rating", generated.Rating,
		"created_by", generated.CreatedBy,
	)

	return generated, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

func (s *TeamService) CountTeams(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.CountTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list teams: %w", err)
	}

	return len(teams), nil
}
