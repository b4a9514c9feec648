package smtpmail

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
)

func completedMatch() match.Match {
	return match.Match{
		ID:     "QF1",
		Round:  match.RoundQuarterFinal,
		Team1:  match.Slot{Country: "Kenya"},
		Team2:  match.Slot{Country: "Mali"},
		Status: match.StatusCompleted,
		Score:  &match.Score{Team1: 2, Team2: 1},
		GoalScorers: []match.Goal{
			{Player: "Brian Otieno", Team: "Kenya", Minute: 12},
			{Player: "Amara Conte", Team: "Mali", Minute: 40},
			{Player: "David Kimani", Team: "Kenya", Minute: 77},
		},
		Winner: &match.Winner{Country: "Kenya", WonBy: match.WonByNormal},
	}
}

func TestSendResult(t *testing.T) {
	t.Parallel()

	var gotTo []string
	var gotMsg string

	n := NewNotifier(Config{Host: "localhost", Port: 2525, From: "league@example.com", Logger: logging.NewNop()})
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if addr != "localhost:2525" || from != "league@example.com" {
			t.Fatalf("unexpected addr=%q from=%q", addr, from)
		}
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	recipients := []string{"federation@kenya.example", "federation@mali.example"}
	if err := n.SendResult(context.Background(), completedMatch(), recipients); err != nil {
		t.Fatalf("SendResult() error = %v", err)
	}

	if len(gotTo) != 2 {
		t.Fatalf("sent to %v, want both representatives", gotTo)
	}
	for _, want := range []string{"Kenya", "Mali", "2 - 1", "Brian Otieno", "77'"} {
		if !strings.Contains(gotMsg, want) {
			t.Fatalf("message missing %q:\n%s", want, gotMsg)
		}
	}
	if !strings.Contains(gotMsg, "Subject: Quarter-Final: Kenya 2-1 Mali") {
		t.Fatalf("unexpected subject line:\n%s", gotMsg)
	}
}

func TestSendResultPenalties(t *testing.T) {
	t.Parallel()

	m := completedMatch()
	m.Score = &match.Score{Team1: 1, Team2: 1}
	m.Winner = &match.Winner{Country: "Mali", WonBy: match.WonByPenalties}
	m.Shootout = &match.Shootout{Score: match.Score{Team1: 3, Team2: 4}, Winner: "Mali", Rounds: 5}

	var gotMsg string
	n := NewNotifier(Config{Host: "localhost", Port: 2525, From: "league@example.com", Logger: logging.NewNop()})
	n.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	}

	if err := n.SendResult(context.Background(), m, []string{"federation@mali.example"}); err != nil {
		t.Fatalf("SendResult() error = %v", err)
	}
	if !strings.Contains(gotMsg, "on penalties (3-4)") {
		t.Fatalf("penalties line missing:\n%s", gotMsg)
	}
}

func TestSendResultRejectsUnfinishedMatch(t *testing.T) {
	t.Parallel()

	n := NewNotifier(Config{Host: "localhost", Port: 2525, From: "league@example.com", Logger: logging.NewNop()})
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send called for unfinished match")
		return nil
	}

	m := completedMatch()
	m.Winner = nil
	if err := n.SendResult(context.Background(), m, []string{"federation@kenya.example"}); err == nil {
		t.Fatal("expected error for unfinished match")
	}
}
