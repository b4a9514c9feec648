package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/nations-league/internal/config"
	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/domain/tournament"
	"github.com/riskibarqy/nations-league/internal/domain/user"
	"github.com/riskibarqy/nations-league/internal/infrastructure/account/firegate"
	"github.com/riskibarqy/nations-league/internal/infrastructure/commentary/gemini"
	"github.com/riskibarqy/nations-league/internal/infrastructure/notify/smtpmail"
	"github.com/riskibarqy/nations-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nations-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/nations-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/random"
	"github.com/riskibarqy/nations-league/internal/platform/resilience"
	"github.com/riskibarqy/nations-league/internal/usecase"
)

type repositories struct {
	teams      team.Repository
	matches    match.Repository
	tournament tournament.Repository
	users      user.Repository
}

// NewHTTPServer wires repositories, external collaborators, and the HTTP
// router into a ready-to-run server. The returned cleanup releases the
// database handle when postgres is configured; it is a no-op otherwise.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, nil, fmt.Errorf("http listen address is empty")
	}

	rng := random.NewSeeded()
	if cfg.RandomSeed != 0 {
		rng = random.New(cfg.RandomSeed)
	}

	repos, cleanup, err := buildRepositories(cfg, rng, logger)
	if err != nil {
		return nil, nil, err
	}

	verifier := firegate.NewClient(firegate.ClientConfig{
		BaseURL:    cfg.FiregateBaseURL,
		APIKey:     cfg.FiregateAPIKey,
		Timeout:    cfg.FiregateTimeout,
		MaxRetries: cfg.FiregateMaxRetries,
		CacheTTL:   cfg.FiregateCacheTTL,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FiregateCircuitEnabled,
			FailureThreshold: cfg.FiregateCircuitFailureCount,
			OpenTimeout:      cfg.FiregateCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FiregateCircuitHalfOpenMax,
		},
	})

	var commentary usecase.CommentaryGenerator
	if cfg.GeminiEnabled {
		commentary = gemini.NewClient(gemini.ClientConfig{
			BaseURL:    cfg.GeminiBaseURL,
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			Timeout:    cfg.GeminiTimeout,
			MaxRetries: cfg.GeminiMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GeminiCircuitEnabled,
				FailureThreshold: cfg.GeminiCircuitFailureCount,
				OpenTimeout:      cfg.GeminiCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GeminiCircuitHalfOpenMax,
			},
		})
	}

	var notifier usecase.ResultNotifier
	if cfg.SMTPEnabled {
		notifier = smtpmail.NewNotifier(smtpmail.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			Logger:   logger,
		})
	}

	teamService := usecase.NewTeamService(repos.teams, rng, logger)
	tournamentService := usecase.NewTournamentService(repos.teams, repos.matches, repos.tournament, rng, logger)
	matchService := usecase.NewMatchService(repos.teams, repos.matches, repos.users, rng, commentary, notifier, logger)
	scorerService := usecase.NewScorerService(repos.matches, logger)

	handler := httpapi.NewHandler(teamService, tournamentService, matchService, scorerService, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return srv, cleanup, nil
}

func buildRepositories(cfg config.Config, rng random.Source, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.UsePostgres() {
		db, err := postgres.Open(cfg.DBURL)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("using postgres document store")
		return repositories{
			teams:      postgres.NewTeamRepository(db),
			matches:    postgres.NewMatchRepository(db),
			tournament: postgres.NewTournamentRepository(db),
			users:      postgres.NewUserRepository(db),
		}, db.Close, nil
	}

	var (
		teams []team.Team
		users []user.User
	)
	if cfg.SeedDemoData {
		seeded, err := memory.SeedTeams(rng)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("seed demo teams: %w", err)
		}
		teams = seeded
		users = memory.SeedUsers()
		logger.Info("seeded demo data", "teams", len(teams), "users", len(users))
	}
	logger.Info("using in-memory store", "seeded", cfg.SeedDemoData)

	return repositories{
		teams:      memory.NewTeamRepository(teams),
		matches:    memory.NewMatchRepository(nil),
		tournament: memory.NewTournamentRepository(),
		users:      memory.NewUserRepository(users),
	}, func() error { return nil }, nil
}
