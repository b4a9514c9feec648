package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nations-league/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByCountry(ctx context.Context, country string) (team.Team, bool, error) {
	var row teamTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT country, payload, created_at, updated_at FROM teams WHERE country = $1`, country)
	if isNotFound(err) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, fmt.Errorf("select team by country: %w", err)
	}

	var doc teamDocument
	if err := sonic.Unmarshal(row.Payload, &doc); err != nil {
		return team.Team{}, false, fmt.Errorf("decode team document country=%s: %w", country, err)
	}

	return decodeTeam(doc), true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT country, payload, created_at, updated_at FROM teams ORDER BY country`); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		var doc teamDocument
		if err := sonic.Unmarshal(row.Payload, &doc); err != nil {
			return nil, fmt.Errorf("decode team document country=%s: %w", row.Country, err)
		}
		out = append(out, decodeTeam(doc))
	}

	return out, nil
}

func (r *TeamRepository) Put(ctx context.Context, item team.Team) error {
	payload, err := sonic.Marshal(encodeTeam(item))
	if err != nil {
		return fmt.Errorf("encode team document country=%s: %w", item.Country, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO teams (country, payload, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (country) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		item.Country, payload, item.CreatedAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert team country=%s: %w", item.Country, err)
	}

	return nil
}
