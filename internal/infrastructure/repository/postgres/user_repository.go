package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nations-league/internal/domain/user"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	var row userTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT id, country, payload FROM users WHERE id = $1`, id)
	if isNotFound(err) {
		return user.User{}, false, nil
	}
	if err != nil {
		return user.User{}, false, fmt.Errorf("select user by id: %w", err)
	}

	return decodeUserRow(row)
}

// ListByCountry uses the extracted country column, so the notification
// path does not scan every user document.
func (r *UserRepository) ListByCountry(ctx context.Context, country string) ([]user.User, error) {
	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT id, country, payload FROM users WHERE country = $1 ORDER BY id`, country); err != nil {
		return nil, fmt.Errorf("select users by country: %w", err)
	}

	return decodeUserRows(rows)
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT id, country, payload FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	return decodeUserRows(rows)
}

func (r *UserRepository) Put(ctx context.Context, item user.User) error {
	payload, err := sonic.Marshal(encodeUser(item))
	if err != nil {
		return fmt.Errorf("encode user document id=%s: %w", item.ID, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (id, country, payload)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET country = EXCLUDED.country, payload = EXCLUDED.payload`,
		item.ID, item.Country, payload)
	if err != nil {
		return fmt.Errorf("upsert user id=%s: %w", item.ID, err)
	}

	return nil
}

func decodeUserRow(row userTableModel) (user.User, bool, error) {
	var doc userDocument
	if err := sonic.Unmarshal(row.Payload, &doc); err != nil {
		return user.User{}, false, fmt.Errorf("decode user document id=%s: %w", row.ID, err)
	}
	return decodeUser(doc), true, nil
}

func decodeUserRows(rows []userTableModel) ([]user.User, error) {
	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		var doc userDocument
		if err := sonic.Unmarshal(row.Payload, &doc); err != nil {
			return nil, fmt.Errorf("decode user document id=%s: %w", row.ID, err)
		}
		out = append(out, decodeUser(doc))
	}
	return out, nil
}
