package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/random"
	"github.com/riskibarqy/nations-league/internal/usecase"
)

type stubCommentary struct {
	text string
	err  error
}

func (s stubCommentary) MatchCommentary(context.Context, match.Match) (string, error) {
	return s.text, s.err
}

type recordingNotifier struct {
	sent []string
	err  error
}

func (n *recordingNotifier) SendResult(_ context.Context, m match.Match, recipients []string) error {
	n.sent = append(n.sent, fmt.Sprintf("%s->%s", m.ID, strings.Join(recipients, ",")))
	return n.err
}

func startedBracket(t *testing.T) fixtures {
	t.Helper()

	f := seededFixtures(t, 8)
	svc := f.tournamentService()
	if ok, err := svc.GenerateBracket(context.Background()); err != nil || !ok {
		t.Fatalf("draw: ok=%v err=%v", ok, err)
	}
	return f
}

func (f fixtures) matchService(commentary usecase.CommentaryGenerator, notifier usecase.ResultNotifier) *usecase.MatchService {
	return usecase.NewMatchService(f.teamRepo, f.matchRepo, f.userRepo, random.New(23), commentary, notifier, logging.NewNop())
}

func TestSimulateMatchCompletesQuarterfinal(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	svc := f.matchService(nil, nil)

	resolved, err := svc.SimulateMatch(context.Background(), "qf1")
	if err != nil {
		t.Fatalf("SimulateMatch() error = %v", err)
	}

	if resolved.Status != match.StatusCompleted {
		t.Fatalf("status = %s, want completed", resolved.Status)
	}
	if resolved.Score == nil || resolved.Winner == nil || resolved.CompletedAt == nil {
		t.Fatalf("incomplete result: %+v", resolved)
	}
	if resolved.SimulationType != match.SimulationQuick {
		t.Fatalf("simulation type = %q", resolved.SimulationType)
	}
	if len(resolved.GoalScorers) != resolved.Score.Team1+resolved.Score.Team2 {
		t.Fatalf("%d scorer events for a %d-%d score",
			len(resolved.GoalScorers), resolved.Score.Team1, resolved.Score.Team2)
	}
	for i := 1; i < len(resolved.GoalScorers); i++ {
		if resolved.GoalScorers[i-1].Minute > resolved.GoalScorers[i].Minute {
			t.Fatalf("goals out of minute order: %+v", resolved.GoalScorers)
		}
	}
	if resolved.Commentary != "" {
		t.Fatal("quick simulation should not carry commentary")
	}

	stored, found, err := f.matchRepo.Get(context.Background(), "QF1")
	if err != nil || !found {
		t.Fatalf("stored match missing: found=%v err=%v", found, err)
	}
	if stored.Status != match.StatusCompleted {
		t.Fatal("completion not persisted")
	}
}

func TestSimulateMatchRejectsDoubleResolve(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	svc := f.matchService(nil, nil)

	if _, err := svc.SimulateMatch(context.Background(), "QF1"); err != nil {
		t.Fatalf("first resolve error = %v", err)
	}
	if _, err := svc.SimulateMatch(context.Background(), "QF1"); !errors.Is(err, usecase.ErrInvalidState) {
		t.Fatalf("second resolve error = %v, want ErrInvalidState", err)
	}
}

func TestSimulateMatchRejectsLockedMatch(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	svc := f.matchService(nil, nil)

	if _, err := svc.SimulateMatch(context.Background(), "SF1"); !errors.Is(err, usecase.ErrInvalidState) {
		t.Fatalf("locked resolve error = %v, want ErrInvalidState", err)
	}
	if _, err := svc.SimulateMatch(context.Background(), "FINAL"); !errors.Is(err, usecase.ErrInvalidState) {
		t.Fatalf("locked final resolve error = %v, want ErrInvalidState", err)
	}
}

func TestSimulateMatchIDValidation(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	svc := f.matchService(nil, nil)

	if _, err := svc.SimulateMatch(context.Background(), "QF9"); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("bad id error = %v, want ErrInvalidInput", err)
	}
}

func TestGetMatchNotFound(t *testing.T) {
	t.Parallel()

	f := seededFixtures(t, 8)
	svc := f.matchService(nil, nil)

	if _, err := svc.GetMatch(context.Background(), "QF1"); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("GetMatch() error = %v, want ErrNotFound", err)
	}
}

func TestWinnerPropagationUnlocksWhenBothFeedersComplete(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	svc := f.matchService(nil, nil)
	ctx := context.Background()

	first, err := svc.SimulateMatch(ctx, "QF1")
	if err != nil {
		t.Fatalf("QF1 error = %v", err)
	}

	sf1, _, _ := f.matchRepo.Get(ctx, "SF1")
	if sf1.Status != match.StatusLocked {
		t.Fatalf("SF1 unlocked with one feeder done: %s", sf1.Status)
	}
	if sf1.Team1.Country != first.Winner.Country {
		t.Fatalf("SF1 slot 1 = %q, want %q", sf1.Team1.Country, first.Winner.Country)
	}
	if !sf1.Team2.IsPlaceholder() {
		t.Fatalf("SF1 slot 2 filled early: %q", sf1.Team2.Country)
	}

	second, err := svc.SimulateMatch(ctx, "QF2")
	if err != nil {
		t.Fatalf("QF2 error = %v", err)
	}

	sf1, _, _ = f.matchRepo.Get(ctx, "SF1")
	if sf1.Status != match.StatusPending {
		t.Fatalf("SF1 status = %s, want pending", sf1.Status)
	}
	if sf1.Team2.Country != second.Winner.Country {
		t.Fatalf("SF1 slot 2 = %q, want %q", sf1.Team2.Country, second.Winner.Country)
	}
}

func TestWinnerPropagationOutOfOrder(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	svc := f.matchService(nil, nil)
	ctx := context.Background()

	// Complete the feeders in reverse order: slots must still land in
	// the positions the draw fixed for them.
	second, err := svc.SimulateMatch(ctx, "QF4")
	if err != nil {
		t.Fatalf("QF4 error = %v", err)
	}
	first, err := svc.SimulateMatch(ctx, "QF3")
	if err != nil {
		t.Fatalf("QF3 error = %v", err)
	}

	sf2, _, _ := f.matchRepo.Get(ctx, "SF2")
	if sf2.Status != match.StatusPending {
		t.Fatalf("SF2 status = %s, want pending", sf2.Status)
	}
	if sf2.Team1.Country != first.Winner.Country {
		t.Fatalf("SF2 slot 1 = %q, want QF3 winner %q", sf2.Team1.Country, first.Winner.Country)
	}
	if sf2.Team2.Country != second.Winner.Country {
		t.Fatalf("SF2 slot 2 = %q, want QF4 winner %q", sf2.Team2.Country, second.Winner.Country)
	}
}

func TestPlayMatchUsesGeneratedCommentary(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	svc := f.matchService(stubCommentary{text: "What a night in the quarterfinals."}, nil)

	resolved, err := svc.PlayMatch(context.Background(), "QF1")
	if err != nil {
		t.Fatalf("PlayMatch() error = %v", err)
	}
	if resolved.SimulationType != match.SimulationPlayed {
		t.Fatalf("simulation type = %q", resolved.SimulationType)
	}
	if resolved.Commentary != "What a night in the quarterfinals." {
		t.Fatalf("commentary = %q", resolved.Commentary)
	}
}

func TestPlayMatchFallsBackWhenCommentaryFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		stub stubCommentary
	}{
		{name: "generator error", stub: stubCommentary{err: errors.New("upstream down")}},
		{name: "empty output", stub: stubCommentary{text: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := startedBracket(t)
			svc := f.matchService(tt.stub, nil)

			resolved, err := svc.PlayMatch(context.Background(), "QF1")
			if err != nil {
				t.Fatalf("PlayMatch() error = %v", err)
			}
			if resolved.Commentary == "" {
				t.Fatal("no fallback commentary")
			}
			if !strings.Contains(resolved.Commentary, resolved.Winner.Country) {
				t.Fatalf("fallback %q does not mention winner %q", resolved.Commentary, resolved.Winner.Country)
			}
		})
	}
}

func TestNotifierFailureDoesNotFailResolution(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	notifier := &recordingNotifier{err: errors.New("smtp refused")}
	svc := f.matchService(nil, notifier)

	resolved, err := svc.SimulateMatch(context.Background(), "QF1")
	if err != nil {
		t.Fatalf("SimulateMatch() error = %v", err)
	}
	if resolved.Status != match.StatusCompleted {
		t.Fatal("resolution did not complete")
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(notifier.sent))
	}
}

func TestNotifierReceivesRepresentativeEmails(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	notifier := &recordingNotifier{}
	svc := f.matchService(nil, notifier)

	if _, err := svc.SimulateMatch(context.Background(), "QF1"); err != nil {
		t.Fatalf("SimulateMatch() error = %v", err)
	}
	if len(notifier.sent) != 1 || !strings.Contains(notifier.sent[0], "@") {
		t.Fatalf("unexpected notifications: %v", notifier.sent)
	}
}

func TestSimulateAllCrownsChampion(t *testing.T) {
	t.Parallel()

	f := startedBracket(t)
	svc := f.matchService(nil, nil)

	matches, err := svc.SimulateAll(context.Background())
	if err != nil {
		t.Fatalf("SimulateAll() error = %v", err)
	}
	if len(matches) != 7 {
		t.Fatalf("got %d matches, want 7", len(matches))
	}

	for _, m := range matches {
		if m.Status != match.StatusCompleted {
			t.Fatalf("match %s left %s", m.ID, m.Status)
		}
		if m.Winner == nil {
			t.Fatalf("match %s has no winner", m.ID)
		}
	}

	final := matches[len(matches)-1]
	if final.ID != "FINAL" {
		t.Fatalf("last listed match is %s, want FINAL", final.ID)
	}
	if final.Winner.Country == "" || final.Winner.Country == match.PlaceholderCountry {
		t.Fatalf("champion = %q", final.Winner.Country)
	}
}

func TestTopScorersRanking(t *testing.T) {
	t.Parallel()

	matchRepo := memory.NewMatchRepository([]match.Match{
		{
			ID: "QF1", Round: match.RoundQuarterFinal, Number: 1, Status: match.StatusCompleted,
			GoalScorers: []match.Goal{
				{Player: "Amara Conte", Team: "Mali", Minute: 12},
				{Player: "Amara Conte", Team: "Mali", Minute: 55},
				{Player: "Brian Otieno", Team: "Kenya", Minute: 70},
			},
		},
		{
			ID: "QF2", Round: match.RoundQuarterFinal, Number: 2, Status: match.StatusCompleted,
			GoalScorers: []match.Goal{
				{Player: "Amara Conte", Team: "Mali", Minute: 8},
				{Player: "Kwame Mensah", Team: "Ghana", Minute: 33},
			},
		},
		{
			ID: "QF3", Round: match.RoundQuarterFinal, Number: 3, Status: match.StatusPending,
			GoalScorers: []match.Goal{{Player: "Ghost Goal", Team: "Egypt", Minute: 1}},
		},
	})
	svc := usecase.NewScorerService(matchRepo, logging.NewNop())

	scorers, err := svc.GetTopScorers(context.Background())
	if err != nil {
		t.Fatalf("GetTopScorers() error = %v", err)
	}

	if len(scorers) != 3 {
		t.Fatalf("got %d rows, want 3 (pending matches excluded): %+v", len(scorers), scorers)
	}
	if scorers[0].Player != "Amara Conte" || scorers[0].Goals != 3 {
		t.Fatalf("top scorer = %+v, want Amara Conte with 3", scorers[0])
	}
	for i := 1; i < len(scorers); i++ {
		if scorers[i-1].Goals < scorers[i].Goals {
			t.Fatalf("rows not descending: %+v", scorers)
		}
	}
}
