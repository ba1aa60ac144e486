package social

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gotp/internal/pkg/clock"
	"github.com/shandysiswandi/gotp/internal/pkg/config"
	"github.com/shandysiswandi/gotp/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotp/internal/pkg/idempotency"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/jwt"
	"github.com/shandysiswandi/gotp/internal/pkg/messaging"
	"github.com/shandysiswandi/gotp/internal/pkg/router"
	"github.com/shandysiswandi/gotp/internal/pkg/uid"
	"github.com/shandysiswandi/gotp/internal/pkg/validator"
	"github.com/shandysiswandi/gotp/internal/social/entity"
	"github.com/shandysiswandi/gotp/internal/social/inbound"
	"github.com/shandysiswandi/gotp/internal/social/outbound/cache"
	"github.com/shandysiswandi/gotp/internal/social/outbound/db"
	"github.com/shandysiswandi/gotp/internal/social/outbound/mq"
	"github.com/shandysiswandi/gotp/internal/social/usecase"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	CacheConn   *redis.Client              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Idempotency idempotency.Guard          `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Providers:   providersFromConfig(dep.Config),
		RepoDB:      db.NewDB(dep.DBConn, dep.Instrument),
		RepoCache:   cache.NewCache(dep.CacheConn, dep.Instrument),
		RepoMsg:     mq.NewMessaging(dep.Messaging, dep.Instrument),
		Idempotency: dep.Idempotency,
		Validator:   dep.Validator,
		Config:      dep.Config,
		UUID:        dep.UUID,
		UID:         dep.UID,
		Clock:       dep.Clock,
		JWT:         dep.JWT,
		Instrument:  dep.Instrument,
		Goroutine:   dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

func providersFromConfig(cfg config.Config) []*usecase.Provider {
	var providers []*usecase.Provider

	for _, id := range []string{entity.ProviderGoogle, entity.ProviderGithub} {
		pc := usecase.ProviderConfig{
			ClientID:     cfg.GetString("modules.social." + id + ".client_id"),
			ClientSecret: cfg.GetString("modules.social." + id + ".client_secret"),
			RedirectURL:  cfg.GetString("modules.social." + id + ".redirect_url"),
		}
		if pc.ClientID == "" {
			continue
		}

		switch id {
		case entity.ProviderGoogle:
			providers = append(providers, usecase.NewGoogleProvider(pc))
		case entity.ProviderGithub:
			providers = append(providers, usecase.NewGithubProvider(pc))
		}
	}

	return providers
}
