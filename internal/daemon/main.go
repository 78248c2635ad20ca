// Package daemon assembles database, seed data and web service of the API server.
package daemon

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/config"
	"github.com/finansync/finansync-api/internal/db"
	"github.com/finansync/finansync-api/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start serves the API on Webserver.Port until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Msg("starting http server")

	return d.webService.Start(addr)
}

// Web returns the web service.
func (d *Daemon) Web() *web.Service {
	return d.webService
}

// New opens and migrates the database, applies the seed and creates the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	conn, err := db.Open(&cfg.DB)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(conn); err != nil {
		return nil, err
	}

	if err = seed(context.Background(), cfg, conn); err != nil {
		return nil, errors.Wrap(err, "failed to seed database")
	}

	webService, err := web.New(cfg, conn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create web service")
	}

	return &Daemon{
		cfg:        cfg,
		db:         conn,
		webService: webService,
	}, nil
}
