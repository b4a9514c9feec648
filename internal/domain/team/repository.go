package team

import "context"

// Repository describes team persistence needs from use cases. Teams are
// documents keyed by country.
type Repository interface {
	GetByCountry(ctx context.Context, country string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	Put(ctx context.Context, item Team) error
}
