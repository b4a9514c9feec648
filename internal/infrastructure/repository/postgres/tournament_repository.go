package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nations-league/internal/domain/tournament"
)

// The tournament state is a singleton row with a fixed id.
const tournamentRowID = int16(1)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Get(ctx context.Context) (tournament.State, bool, error) {
	var row tournamentTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT id, payload, updated_at FROM tournament_state WHERE id = $1`, tournamentRowID)
	if isNotFound(err) {
		return tournament.State{}, false, nil
	}
	if err != nil {
		return tournament.State{}, false, fmt.Errorf("select tournament state: %w", err)
	}

	var doc tournamentDocument
	if err := sonic.Unmarshal(row.Payload, &doc); err != nil {
		return tournament.State{}, false, fmt.Errorf("decode tournament document: %w", err)
	}

	return decodeTournament(doc), true, nil
}

func (r *TournamentRepository) Put(ctx context.Context, item tournament.State) error {
	payload, err := sonic.Marshal(encodeTournament(item))
	if err != nil {
		return fmt.Errorf("encode tournament document: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tournament_state (id, payload, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		tournamentRowID, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert tournament state: %w", err)
	}

	return nil
}
