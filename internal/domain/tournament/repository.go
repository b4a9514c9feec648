package tournament

import "context"

// Repository persists the singleton tournament state document.
type Repository interface {
	Get(ctx context.Context) (State, bool, error)
	Put(ctx context.Context, item State) error
}
