package postgres

import (
	"time"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/domain/player"
	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/domain/tournament"
	"github.com/riskibarqy/nations-league/internal/domain/user"
)

// Each entity is stored as one JSONB document keyed by its natural id.
// The document payloads below are the stable wire shape of those
// columns; the table models carry the keys and bookkeeping columns.

type teamTableModel struct {
	Country   string    `db:"country"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type matchTableModel struct {
	ID        string    `db:"id"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

type tournamentTableModel struct {
	ID        int16     `db:"id"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

type userTableModel struct {
	ID      string `db:"id"`
	Country string `db:"country"`
	Payload []byte `db:"payload"`
}

type playerDocument struct {
	Name      string         `json:"name"`
	Position  string         `json:"position"`
	IsCaptain bool           `json:"isCaptain"`
	Ratings   map[string]int `json:"ratings"`
}

type teamDocument struct {
	Country   string           `json:"country"`
	Manager   string           `json:"manager"`
	CreatedBy string           `json:"createdBy"`
	Players   []playerDocument `json:"players"`
	Rating    int              `json:"rating"`
	CreatedAt time.Time        `json:"createdAt"`
}

type goalDocument struct {
	Player string `json:"player"`
	Team   string `json:"team"`
	Minute int    `json:"minute"`
}

type winnerDocument struct {
	Country string `json:"country"`
	WonBy   string `json:"wonBy"`
}

type kickDocument struct {
	Player      string `json:"player"`
	Team        string `json:"team"`
	Scored      bool   `json:"scored"`
	SuddenDeath bool   `json:"suddenDeath"`
}

type shootoutDocument struct {
	Team1Kicks []kickDocument `json:"team1Kicks"`
	Team2Kicks []kickDocument `json:"team2Kicks"`
	Score1     int            `json:"score1"`
	Score2     int            `json:"score2"`
	Winner     string         `json:"winner"`
	Rounds     int            `json:"rounds"`
}

type matchDocument struct {
	ID             string            `json:"id"`
	Round          string            `json:"round"`
	Number         int               `json:"number"`
	Team1          string            `json:"team1"`
	Team2          string            `json:"team2"`
	Status         string            `json:"status"`
	Score1         *int              `json:"score1,omitempty"`
	Score2         *int              `json:"score2,omitempty"`
	GoalScorers    []goalDocument    `json:"goalScorers,omitempty"`
	Winner         *winnerDocument   `json:"winner,omitempty"`
	Shootout       *shootoutDocument `json:"shootout,omitempty"`
	Commentary     string            `json:"commentary,omitempty"`
	SimulationType string            `json:"simulationType,omitempty"`
	NextMatch      string            `json:"nextMatch,omitempty"`
	DependsOn      []string          `json:"dependsOn,omitempty"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
}

type tournamentDocument struct {
	Phase     string     `json:"phase"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	ResetAt   *time.Time `json:"resetAt,omitempty"`
}

type userDocument struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Country     string `json:"country,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

func encodeTeam(item team.Team) teamDocument {
	players := make([]playerDocument, 0, len(item.Players))
	for _, p := range item.Players {
		ratings := make(map[string]int, len(p.Ratings))
		for pos, rating := range p.Ratings {
			ratings[string(pos)] = rating
		}
		players = append(players, playerDocument{
			Name:      p.Name,
			Position:  string(p.Position),
			IsCaptain: p.IsCaptain,
			Ratings:   ratings,
		})
	}

	return teamDocument{
		Country:   item.Country,
		Manager:   item.Manager,
		CreatedBy: item.CreatedBy,
		Players:   players,
		Rating:    item.Rating,
		CreatedAt: item.CreatedAt,
	}
}

func decodeTeam(doc teamDocument) team.Team {
	players := make([]player.Player, 0, len(doc.Players))
	for _, p := range doc.Players {
		ratings := make(map[player.Position]int, len(p.Ratings))
		for pos, rating := range p.Ratings {
			ratings[player.Position(pos)] = rating
		}
		players = append(players, player.Player{
			Name:      p.Name,
			Position:  player.Position(p.Position),
			IsCaptain: p.IsCaptain,
			Ratings:   ratings,
		})
	}

	return team.Team{
		Country:   doc.Country,
		Manager:   doc.Manager,
		CreatedBy: doc.CreatedBy,
		Players:   players,
		Rating:    doc.Rating,
		CreatedAt: doc.CreatedAt,
	}
}

func encodeMatch(item match.Match) matchDocument {
	doc := matchDocument{
		ID:             item.ID,
		Round:          string(item.Round),
		Number:         item.Number,
		Team1:          item.Team1.Country,
		Team2:          item.Team2.Country,
		Status:         string(item.Status),
		Commentary:     item.Commentary,
		SimulationType: string(item.SimulationType),
		NextMatch:      item.NextMatch,
		DependsOn:      item.DependsOn,
		CompletedAt:    item.CompletedAt,
	}

	if item.Score != nil {
		score1, score2 := item.Score.Team1, item.Score.Team2
		doc.Score1, doc.Score2 = &score1, &score2
	}
	for _, g := range item.GoalScorers {
		doc.GoalScorers = append(doc.GoalScorers, goalDocument(g))
	}
	if item.Winner != nil {
		doc.Winner = &winnerDocument{Country: item.Winner.Country, WonBy: string(item.Winner.WonBy)}
	}
	if item.Shootout != nil {
		shootout := shootoutDocument{
			Score1: item.Shootout.Score.Team1,
			Score2: item.Shootout.Score.Team2,
			Winner: item.Shootout.Winner,
			Rounds: item.Shootout.Rounds,
		}
		for _, kick := range item.Shootout.Team1Kicks {
			shootout.Team1Kicks = append(shootout.Team1Kicks, kickDocument(kick))
		}
		for _, kick := range item.Shootout.Team2Kicks {
			shootout.Team2Kicks = append(shootout.Team2Kicks, kickDocument(kick))
		}
		doc.Shootout = &shootout
	}

	return doc
}

func decodeMatch(doc matchDocument) match.Match {
	item := match.Match{
		ID:             doc.ID,
		Round:          match.Round(doc.Round),
		Number:         doc.Number,
		Team1:          match.Slot{Country: doc.Team1},
		Team2:          match.Slot{Country: doc.Team2},
		Status:         match.Status(doc.Status),
		Commentary:     doc.Commentary,
		SimulationType: match.SimulationType(doc.SimulationType),
		NextMatch:      doc.NextMatch,
		DependsOn:      doc.DependsOn,
		CompletedAt:    doc.CompletedAt,
	}

	if doc.Score1 != nil && doc.Score2 != nil {
		item.Score = &match.Score{Team1: *doc.Score1, Team2: *doc.Score2}
	}
	for _, g := range doc.GoalScorers {
		item.GoalScorers = append(item.GoalScorers, match.Goal(g))
	}
	if doc.Winner != nil {
		item.Winner = &match.Winner{Country: doc.Winner.Country, WonBy: match.WinMethod(doc.Winner.WonBy)}
	}
	if doc.Shootout != nil {
		shootout := match.Shootout{
			Score:  match.Score{Team1: doc.Shootout.Score1, Team2: doc.Shootout.Score2},
			Winner: doc.Shootout.Winner,
			Rounds: doc.Shootout.Rounds,
		}
		for _, kick := range doc.Shootout.Team1Kicks {
			shootout.Team1Kicks = append(shootout.Team1Kicks, match.KickAttempt(kick))
		}
		for _, kick := range doc.Shootout.Team2Kicks {
			shootout.Team2Kicks = append(shootout.Team2Kicks, match.KickAttempt(kick))
		}
		item.Shootout = &shootout
	}

	return item
}

func encodeTournament(item tournament.State) tournamentDocument {
	return tournamentDocument{
		Phase:     string(item.Phase),
		CreatedAt: item.CreatedAt,
		ResetAt:   item.ResetAt,
	}
}

func decodeTournament(doc tournamentDocument) tournament.State {
	return tournament.State{
		Phase:     tournament.Phase(doc.Phase),
		CreatedAt: doc.CreatedAt,
		ResetAt:   doc.ResetAt,
	}
}

func encodeUser(item user.User) userDocument {
	return userDocument{
		ID:          item.ID,
		Email:       item.Email,
		Role:        string(item.Role),
		Country:     item.Country,
		DisplayName: item.DisplayName,
	}
}

func decodeUser(doc userDocument) user.User {
	return user.User{
		ID:          doc.ID,
		Email:       doc.Email,
		Role:        user.Role(doc.Role),
		Country:     doc.Country,
		DisplayName: doc.DisplayName,
	}
}
