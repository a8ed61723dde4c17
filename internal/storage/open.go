package storage

import (
	"context"

	"github.com/kulshreya03/NewsAggregatorAws/internal/config"
)

// Open returns the store selected by cfg.StoreBackend together with a
// function releasing its resources.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pg, err := OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case config.BackendDynamoDB:
		dyn, err := NewDynamoStoreFromConfig(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return dyn, func() error { return nil }, nil
	default:
		return nil, nil, config.ErrUnknownStoreBackend
	}
}
