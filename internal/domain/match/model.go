package match

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

type Status string

const (
	StatusLocked    Status = "locked"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type Round string

const (
	RoundQuarterFinal Round = "Quarter-Final"
	RoundSemiFinal    Round = "Semi-Final"
	RoundFinal        Round = "Final"
)

type WinMethod string

const (
	WonByNormal    WinMethod = "normal"
	WonByPenalties WinMethod = "penalties"
)

type SimulationType string

const (
	SimulationNone   SimulationType = ""
	SimulationQuick  SimulationType = "simulated"
	SimulationPlayed SimulationType = "played"
)

// PlaceholderCountry fills a slot whose prerequisite match has not
// completed yet.
const PlaceholderCountry = "TBD"

const (
	MinuteMin = 1
	MinuteMax = 90
)

var (
	ErrMinuteOutOfRange = errors.New("goal minute out of range")
	ErrInvalidID        = errors.New("invalid match id")
)

var idPattern = regexp.MustCompile(`^(QF[1-4]|SF[1-2]|FINAL)$`)

// NormalizeID upper-cases and validates a match identifier.
func NormalizeID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// RoundOrder gives the bracket ordering for listings: quarterfinals,
// then semifinals, then the final.
func RoundOrder(r Round) int {
	switch r {
	case RoundQuarterFinal:
		return 1
	case RoundSemiFinal:
		return 2
	case RoundFinal:
		return 3
	default:
		return 4
	}
}

// Slot is one of the two team positions in a match. Country is the team
// document key, or PlaceholderCountry before propagation.
type Slot struct {
	Country string
}

func (s Slot) IsPlaceholder() bool {
	return s.Country == "" || s.Country == PlaceholderCountry
}

type Score struct {
	Team1 int
	Team2 int
}

// Goal is one scorer event. A match's goal list is kept sorted
// ascending by minute.
type Goal struct {
	Player string
	Team   string
	Minute int
}

type Winner struct {
	Country string
	WonBy   WinMethod
}

// KickAttempt is a single penalty kick in a shootout ledger.
type KickAttempt struct {
	Player      string
	Team        string
	Scored      bool
	SuddenDeath bool
}

// Shootout is the full penalty record of a drawn match.
type Shootout struct {
	Team1Kicks []KickAttempt
	Team2Kicks []KickAttempt
	Score      Score
	Winner     string
	Rounds     int
}

// Match is one node of the knockout bracket.
type Match struct {
	ID             string
	Round          Round
	Number         int
	Team1          Slot
	Team2          Slot
	Status         Status
	Score          *Score
	GoalScorers    []Goal
	Winner         *Winner
	Shootout       *Shootout
	Commentary     string
	SimulationType SimulationType
	NextMatch      string
	DependsOn      []string
	CompletedAt    *time.Time
}

// Playable reports whether the match can be resolved: both slots hold
// real teams and the match is pending.
func (m Match) Playable() bool {
	return m.Status == StatusPending && !m.Team1.IsPlaceholder() && !m.Team2.IsPlaceholder()
}

// AddGoal inserts a scorer event keeping the list sorted by minute.
func (m *Match) AddGoal(g Goal) error {
	if g.Minute < MinuteMin || g.Minute > MinuteMax {
		return fmt.Errorf("%w: %d", ErrMinuteOutOfRange, g.Minute)
	}

	m.GoalScorers = append(m.GoalScorers, g)
	m.SortGoals()
	return nil
}

// SortGoals restores the ascending-by-minute ordering invariant.
func (m *Match) SortGoals() {
	sort.SliceStable(m.GoalScorers, func(i, j int) bool {
		return m.GoalScorers[i].Minute < m.GoalScorers[j].Minute
	})
}

// Clone returns a deep copy safe to hand across repository boundaries.
func (m Match) Clone() Match {
	copied := m
	copied.GoalScorers = append([]Goal(nil), m.GoalScorers...)
	copied.DependsOn = append([]string(nil), m.DependsOn...)
	if m.Score != nil {
		score := *m.Score
		copied.Score = &score
	}
	if m.Winner != nil {
		winner := *m.Winner
		copied.Winner = &winner
	}
	if m.Shootout != nil {
		shootout := *m.Shootout
		shootout.Team1Kicks = append([]KickAttempt(nil), m.Shootout.Team1Kicks...)
		shootout.Team2Kicks = append([]KickAttempt(nil), m.Shootout.Team2Kicks...)
		copied.Shootout = &shootout
	}
	if m.CompletedAt != nil {
		completedAt := *m.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return copied
}
