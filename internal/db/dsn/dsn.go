// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/finansync/finansync-api/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
func Create(dbCfg *config.DB) string {
	switch dbCfg.GormEngine {
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			dbCfg.Host,
			dbCfg.Port,
			dbCfg.User,
			dbCfg.Password,
			dbCfg.Name,
		)

		if dbCfg.Extras != "" {
			out += " " + dbCfg.Extras
		}

		return out
	case config.EngineSQLite:
		if dbCfg.Extras == "" {
			return dbCfg.Name
		}

		sep := "?"
		if strings.Contains(dbCfg.Name, "?") {
			sep = "&"
		}

		return dbCfg.Name + sep + dbCfg.Extras
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			dbCfg.User,
			dbCfg.Password,
			dbCfg.Host,
			dbCfg.Port,
			dbCfg.Name,
			dbCfg.Extras,
		)
	}
}
