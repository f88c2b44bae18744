package db

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
)

// Settings returns the stored settings with the given keys, or all of them.
func (r *Repository) Settings(ctx context.Context, keys ...string) ([]Setting, error) {
	var settings []Setting
	query := r.db.ModelContext(ctx, &settings)
	if len(keys) > 0 {
		query = query.Where(`"t"."key" IN (?)`, pg.In(keys))
	}

	if err := query.OrderExpr(`"t"."key" ASC`).Select(); err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	return settings, nil
}

func (r *Repository) UpsertSettings(ctx context.Context, settings []Setting) error {
	if len(settings) == 0 {
		return nil
	}

	_, err := r.db.ModelContext(ctx, &settings).
		OnConflict(`("key") DO UPDATE`).
		Set(`"value" = EXCLUDED."value"`).
		Set(`"updatedAt" = EXCLUDED."updatedAt"`).
		Set(`"updatedBy" = EXCLUDED."updatedBy"`).
		Insert()
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	return nil
}
