package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/gotp/internal/pkg/clock"
	"github.com/shandysiswandi/gotp/internal/pkg/config"
	"github.com/shandysiswandi/gotp/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotp/internal/pkg/idempotency"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/jwt"
	"github.com/shandysiswandi/gotp/internal/pkg/uid"
	"github.com/shandysiswandi/gotp/internal/pkg/validator"
	"github.com/shandysiswandi/gotp/internal/social/entity"
	"go.opentelemetry.io/otel/trace"
)

type UserLoginEvent struct {
	UserID     int64
	Identifier string
	Method     string
	LoginAt    time.Time
}

type repoMessaging interface {
	PublishUserLogin(ctx context.Context, msg UserLoginEvent) error
}

type repoCache interface {
	SaveState(ctx context.Context, state, provider string, ttl time.Duration) error
	TakeState(ctx context.Context, state string) (string, error)
	SaveProviderToken(ctx context.Context, userID int64, provider string, token []byte, ttl time.Duration) error
}

type repoDB interface {
	UpsertUserByEmail(ctx context.Context, id int64, email string) (*entity.User, error)
}

type Usecase struct {
	providers map[string]*Provider
	repoDB    repoDB
	repoCache repoCache
	repoMsg   repoMessaging
	idemp     idempotency.Guard
	validator validator.Validator
	cfg       config.Config
	uuid      uid.StringID
	uid       uid.NumberID
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

type Dependency struct {
	Providers   []*Provider
	RepoDB      repoDB
	RepoCache   repoCache
	RepoMsg     repoMessaging
	Idempotency idempotency.Guard
	Validator   validator.Validator
	Config      config.Config
	UUID        uid.StringID
	UID         uid.NumberID
	Clock       clock.Clocker
	JWT         jwt.JWT
	Instrument  instrument.Instrumentation
	Goroutine   *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	providers := make(map[string]*Provider, len(dep.Providers))
	for _, p := range dep.Providers {
		providers[p.ID()] = p
	}

	return &Usecase{
		providers: providers,
		repoDB:    dep.RepoDB,
		repoCache: dep.RepoCache,
		repoMsg:   dep.RepoMsg,
		idemp:     dep.Idempotency,
		validator: dep.Validator,
		cfg:       dep.Config,
		uuid:      dep.UUID,
		uid:       dep.UID,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("social.usecase").Start(ctx, name)
}
