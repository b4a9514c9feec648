package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/nations-league/internal/domain/user"
)

type UserRepository struct {
	mu        sync.RWMutex
	usersByID map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	usersByID := make(map[string]user.User, len(users))
	for _, item := range users {
		usersByID[item.ID] = item
	}

	return &UserRepository{usersByID: usersByID}
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.usersByID[id]
	if !ok {
		return user.User{}, false, nil
	}

	return item, true, nil
}

func (r *UserRepository) ListByCountry(_ context.Context, country string) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, 2)
	for _, item := range r.usersByID {
		if item.Country == country {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.usersByID))
	for _, item := range r.usersByID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *UserRepository) Put(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.usersByID[item.ID] = item

	return nil
}
