package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/nations-league/internal/domain/tournament"
)

type TournamentRepository struct {
	mu    sync.RWMutex
	state tournament.State
	set   bool
}

func NewTournamentRepository() *TournamentRepository {
	return &TournamentRepository{}
}

func (r *TournamentRepository) Get(_ context.Context) (tournament.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.set {
		return tournament.State{}, false, nil
	}

	return r.state, true, nil
}

func (r *TournamentRepository) Put(_ context.Context, item tournament.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = item
	r.set = true

	return nil
}
