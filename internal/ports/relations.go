package ports

import (
	"context"

	"github.com/Vovarama1992/cloudmedia/internal/models"
	"github.com/jackc/pgx/v5"
)

// RelationCallback attaches a freshly persisted media record to some other
// domain entity. It runs inside the save transaction and gets the transaction
// handle, so its writes commit or roll back together with the record.
type RelationCallback func(ctx context.Context, tx pgx.Tx, media *models.MediaRecord, opts UploadOptions) error

// Registry maps relation keys to callbacks. Populate it at startup, before
// the server accepts traffic; lookups are read-only after that.
type Registry struct {
	callbacks map[string]RelationCallback
}

func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[string]RelationCallback)}
}

func (r *Registry) Register(key string, cb RelationCallback) {
	r.callbacks[key] = cb
}

func (r *Registry) Resolve(key string) (RelationCallback, bool) {
	cb, ok := r.callbacks[key]
	return cb, ok
}
