package newsportal

import (
	"context"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/db"
)

var backgroundKeys = []string{SettingBgImageURL, SettingBgColor, SettingBgOpacity}

// Background returns the site background, defaults filled in.
func (m *Manager) Background(ctx context.Context) (Background, error) {
	return cached(ctx, m, "background", func() (Background, error) {
		list, err := m.db.Settings(ctx, backgroundKeys...)
		if err != nil {
			return Background{}, m.storageErr(ctx, "settings", err)
		}

		return NewBackground(list), nil
	})
}

func (m *Manager) UpdateBackground(ctx context.Context, p access.Principal, patch BackgroundPatch) (Background, error) {
	if err := access.Check(p, access.ActionUpdate, access.Resource{Kind: access.KindSetting}); err != nil {
		return Background{}, err
	}

	patch.normalize()
	if err := patch.Validate(); err != nil {
		return Background{}, err
	}

	settings := backgroundSettings(patch, p.ID, m.now())
	if len(settings) > 0 {
		err := m.inTx(ctx, "update background", func(tx *db.Repository) error {
			return tx.UpsertSettings(ctx, settings)
		})
		if err != nil {
			return Background{}, err
		}

		m.invalidate(ctx)
		m.logger.InfoContext(ctx, "background updated", "principalId", p.ID, "keys", len(settings))
	}

	list, err := m.db.Settings(ctx, backgroundKeys...)
	if err != nil {
		return Background{}, m.storageErr(ctx, "settings", err)
	}

	return NewBackground(list), nil
}
