package holiday

import "context"

type Repository interface {
	// List returns all holiday markers, fixed-date and recurring.
	List(ctx context.Context) ([]Holiday, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
}
