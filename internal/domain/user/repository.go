package user

import "context"

// Repository holds registered accounts. ListByCountry serves the
// result-notification path, which mails a country's representatives.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, bool, error)
	ListByCountry(ctx context.Context, country string) ([]User, error)
	List(ctx context.Context) ([]User, error)
	Put(ctx context.Context, item User) error
}
