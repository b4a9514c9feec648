package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/nations-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nations-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/random"
	"github.com/riskibarqy/nations-league/internal/usecase"
)

// Seeds the postgres document store with the eight demo federations and
// their representative accounts. Existing teams are left untouched so the
// command is safe to re-run. With -simulate it also generates a bracket
// and plays the whole tournament out.
func main() {
	overwrite := flag.Bool("overwrite", false, "replace teams that already exist")
	simulate := flag.Bool("simulate", false, "generate a bracket and simulate every match")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	rng := random.NewSeeded()
	if raw := strings.TrimSpace(os.Getenv("RANDOM_SEED")); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("parse RANDOM_SEED: %v", err)
		}
		rng = random.New(seed)
	}

	db, err := postgres.Open(dbURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	teamRepo := postgres.NewTeamRepository(db)
	userRepo := postgres.NewUserRepository(db)

	teams, err := memory.SeedTeams(rng)
	if err != nil {
		log.Fatalf("generate demo teams: %v", err)
	}

	created, skipped := 0, 0
	for _, t := range teams {
		if !*overwrite {
			_, exists, err := teamRepo.GetByCountry(ctx, t.Country)
			if err != nil {
				log.Fatalf("check team %s: %v", t.Country, err)
			}
			if exists {
				skipped++
				continue
			}
		}
		if err := teamRepo.Put(ctx, t); err != nil {
			log.Fatalf("store team %s: %v", t.Country, err)
		}
		created++
	}

	for _, u := range memory.SeedUsers() {
		if err := userRepo.Put(ctx, u); err != nil {
			log.Fatalf("store user %s: %v", u.ID, err)
		}
	}

	log.Printf("seed complete: %d team(s) created, %d skipped", created, skipped)

	if !*simulate {
		return
	}

	logger := logging.NewNop()
	matchRepo := postgres.NewMatchRepository(db)
	stateRepo := postgres.NewTournamentRepository(db)

	tournamentSvc := usecase.NewTournamentService(teamRepo, matchRepo, stateRepo, rng, logger)
	matchSvc := usecase.NewMatchService(teamRepo, matchRepo, userRepo, rng, nil, nil, logger)

	started, err := tournamentSvc.GenerateBracket(ctx)
	if err != nil {
		log.Fatalf("generate bracket: %v", err)
	}
	if !started {
		log.Fatal("bracket not generated (need exactly 8 teams and no existing bracket)")
	}

	matches, err := matchSvc.SimulateAll(ctx)
	if err != nil {
		log.Fatalf("simulate tournament: %v", err)
	}

	for _, m := range matches {
		if m.Score == nil || m.Winner == nil {
			log.Printf("%-5s %s vs %s (unresolved)", m.ID, m.Team1.Country, m.Team2.Country)
			continue
		}
		log.Printf("%-5s %s %d-%d %s -> %s", m.ID, m.Team1.Country, m.Score.Team1, m.Score.Team2, m.Team2.Country, m.Winner.Country)
	}
}
