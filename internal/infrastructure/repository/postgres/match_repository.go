package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nations-league/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Get(ctx context.Context, id string) (match.Match, bool, error) {
	var row matchTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT id, payload, updated_at FROM matches WHERE id = $1`, id)
	if isNotFound(err) {
		return match.Match{}, false, nil
	}
	if err != nil {
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}

	var doc matchDocument
	if err := sonic.Unmarshal(row.Payload, &doc); err != nil {
		return match.Match{}, false, fmt.Errorf("decode match document id=%s: %w", id, err)
	}

	return decodeMatch(doc), true, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT id, payload, updated_at FROM matches`); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		var doc matchDocument
		if err := sonic.Unmarshal(row.Payload, &doc); err != nil {
			return nil, fmt.Errorf("decode match document id=%s: %w", row.ID, err)
		}
		out = append(out, decodeMatch(doc))
	}

	sort.Slice(out, func(i, j int) bool {
		if match.RoundOrder(out[i].Round) != match.RoundOrder(out[j].Round) {
			return match.RoundOrder(out[i].Round) < match.RoundOrder(out[j].Round)
		}
		return out[i].Number < out[j].Number
	})

	return out, nil
}

func (r *MatchRepository) Put(ctx context.Context, item match.Match) error {
	payload, err := sonic.Marshal(encodeMatch(item))
	if err != nil {
		return fmt.Errorf("encode match document id=%s: %w", item.ID, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO matches (id, payload, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		item.ID, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert match id=%s: %w", item.ID, err)
	}

	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete match id=%s: %w", id, err)
	}

	return nil
}
