package match

import "context"

// Repository describes match persistence needs from use cases. Matches
// are documents keyed by bracket id (QF1..FINAL); Put always writes the
// whole record.
type Repository interface {
	Get(ctx context.Context, id string) (Match, bool, error)
	List(ctx context.Context) ([]Match, error)
	Put(ctx context.Context, item Match) error
	Delete(ctx context.Context, id string) error
}
