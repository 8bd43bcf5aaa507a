package store

import (
	"context"

	"github.com/mkarev/go-user-service/internal/config"
	"github.com/mkarev/go-user-service/internal/logger"
)

// Repositories aggregates all persistence-layer components of the service.
type Repositories struct {
	UserRepository UserRepository
}

// NewRepositories connects to the configured PostgreSQL database, applies
// pending migrations, and constructs all repositories.
func NewRepositories(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Repositories, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Repositories{
		UserRepository: NewUserRepository(db, log),
	}, nil
}
