package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/auth"
	"github.com/finansync/finansync-api/internal/config"
	settingctl "github.com/finansync/finansync-api/internal/db/controller/setting"
	"github.com/finansync/finansync-api/internal/db/models"
)

// seed creates the configured catalog settings that do not exist yet and,
// if the user table is empty, the admin user.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	for _, s := range cfg.Seed.Settings {
		typeCode, ok := models.ParseTypeCode(s.Type)
		if !ok {
			return fmt.Errorf("%w: %s (setting %s)", settingctl.ErrUnknownTypeCode, s.Type, s.Name)
		}

		created, err := settingctl.Ensure(db.WithContext(ctx), s.Name, typeCode, s.DefaultValue)
		if err != nil {
			return fmt.Errorf("setting %s: %w", s.Name, err)
		}

		if created {
			log.Info().Str("setting", s.Name).Str("type", string(typeCode)).Msg("seeded catalog setting")
		}
	}

	if cfg.Seed.AdminUserName == "" {
		return nil
	}

	provider := auth.NewLocalProvider(db)

	count, err := provider.CountUsers(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	user, err := provider.CreateUser(ctx, auth.NewUser{
		UserName: cfg.Seed.AdminUserName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		return err
	}

	log.Warn().Str("user", user.UserName).Msg("created initial admin user, change its password")

	return nil
}
