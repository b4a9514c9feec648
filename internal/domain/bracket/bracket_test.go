package bracket

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

func eightTeams() []team.Team {
	countries := []string{"Kenya", "Mali", "Ghana", "Senegal", "Nigeria", "Morocco", "Egypt", "Tunisia"}
	teams := make([]team.Team, 0, len(countries))
	for _, country := range countries {
		teams = append(teams, team.Team{Country: country, Manager: "M", Rating: 50})
	}
	return teams
}

func TestBuildRejectsWrongTeamCount(t *testing.T) {
	t.Parallel()

	rng := random.New(1)
	if _, err := Build(rng, nil); err == nil {
		t.Fatal("Build with no teams should fail")
	}
	if _, err := Build(rng, eightTeams()[:7]); err == nil {
		t.Fatal("Build with 7 teams should fail")
	}
	if _, err := Build(rng, append(eightTeams(), team.Team{Country: "Algeria"})); err == nil {
		t.Fatal("Build with 9 teams should fail")
	}
}

func TestBuildShape(t *testing.T) {
	t.Parallel()

	rng := random.New(42)
	matches, err := Build(rng, eightTeams())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(matches) != 7 {
		t.Fatalf("got %d matches, want 7", len(matches))
	}

	byID := map[string]match.Match{}
	for _, m := range matches {
		byID[m.ID] = m
	}

	seen := map[string]struct{}{}
	for i := 1; i <= 4; i++ {
		qf, ok := byID[fmt.Sprintf("QF%d", i)]
		if !ok {
			t.Fatalf("missing QF%d", i)
		}
		if qf.Status != match.StatusPending {
			t.Fatalf("%s status = %s, want pending", qf.ID, qf.Status)
		}
		if qf.Round != match.RoundQuarterFinal {
			t.Fatalf("%s round = %s", qf.ID, qf.Round)
		}
		wantNext := fmt.Sprintf("SF%d", (i+1)/2)
		if qf.NextMatch != wantNext {
			t.Fatalf("%s next = %s, want %s", qf.ID, qf.NextMatch, wantNext)
		}
		for _, country := range []string{qf.Team1.Country, qf.Team2.Country} {
			if _, dup := seen[country]; dup {
				t.Fatalf("country %s drawn twice", country)
			}
			seen[country] = struct{}{}
		}
	}
	if len(seen) != TeamCount {
		t.Fatalf("quarterfinals cover %d teams, want %d", len(seen), TeamCount)
	}

	for id, wantDeps := range map[string][]string{
		"SF1":   {"QF1", "QF2"},
		"SF2":   {"QF3", "QF4"},
		"FINAL": {"SF1", "SF2"},
	} {
		m, ok := byID[id]
		if !ok {
			t.Fatalf("missing %s", id)
		}
		if m.Status != match.StatusLocked {
			t.Fatalf("%s status = %s, want locked", m.ID, m.Status)
		}
		if !m.Team1.IsPlaceholder() || !m.Team2.IsPlaceholder() {
			t.Fatalf("%s slots should be placeholders", m.ID)
		}
		if len(m.DependsOn) != 2 || m.DependsOn[0] != wantDeps[0] || m.DependsOn[1] != wantDeps[1] {
			t.Fatalf("%s deps = %v, want %v", m.ID, m.DependsOn, wantDeps)
		}
	}

	if byID["SF1"].NextMatch != "FINAL" || byID["SF2"].NextMatch != "FINAL" {
		t.Fatal("semifinals must feed the final")
	}
	if byID["FINAL"].NextMatch != "" {
		t.Fatal("final must not have a next match")
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	teams := eightTeams()
	want := make([]string, len(teams))
	for i, tm := range teams {
		want[i] = tm.Country
	}

	if _, err := Build(random.New(7), teams); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for i, tm := range teams {
		if tm.Country != want[i] {
			t.Fatalf("input slice reordered at %d: %s != %s", i, tm.Country, want[i])
		}
	}
}

func TestSlotIndex(t *testing.T) {
	t.Parallel()

	next := match.Match{ID: "SF1", DependsOn: []string{"QF1", "QF2"}}

	if idx, ok := SlotIndex(next, "QF1"); !ok || idx != 0 {
		t.Fatalf("SlotIndex(QF1) = %d, %v", idx, ok)
	}
	if idx, ok := SlotIndex(next, "QF2"); !ok || idx != 1 {
		t.Fatalf("SlotIndex(QF2) = %d, %v", idx, ok)
	}
	if _, ok := SlotIndex(next, "QF3"); ok {
		t.Fatal("SlotIndex(QF3) should miss")
	}
}
