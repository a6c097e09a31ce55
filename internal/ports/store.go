package ports

import (
	"context"

	"github.com/cinegate/cinegate/internal/domain"
)

// ContentStore is the remote content store: a pair of deployed
// functions owning persistence. The gateway never stores content
// itself.
type ContentStore interface {
	// List fetches the whole catalog in one shot.
	List(ctx context.Context) ([]domain.Content, error)
	// Create submits a new record and returns it with its assigned id.
	Create(ctx context.Context, rec domain.NewContent) (domain.Content, error)
}
