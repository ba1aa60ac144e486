package otp

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gotp/internal/otp/inbound"
	"github.com/shandysiswandi/gotp/internal/otp/outbound/cache"
	"github.com/shandysiswandi/gotp/internal/otp/outbound/db"
	"github.com/shandysiswandi/gotp/internal/otp/outbound/mq"
	"github.com/shandysiswandi/gotp/internal/otp/usecase"
	"github.com/shandysiswandi/gotp/internal/pkg/clock"
	"github.com/shandysiswandi/gotp/internal/pkg/config"
	"github.com/shandysiswandi/gotp/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotp/internal/pkg/hash"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/jwt"
	"github.com/shandysiswandi/gotp/internal/pkg/mail"
	"github.com/shandysiswandi/gotp/internal/pkg/messaging"
	"github.com/shandysiswandi/gotp/internal/pkg/mfa"
	"github.com/shandysiswandi/gotp/internal/pkg/otpcode"
	"github.com/shandysiswandi/gotp/internal/pkg/router"
	"github.com/shandysiswandi/gotp/internal/pkg/smsgateway"
	"github.com/shandysiswandi/gotp/internal/pkg/totp"
	"github.com/shandysiswandi/gotp/internal/pkg/uid"
	"github.com/shandysiswandi/gotp/internal/pkg/validator"
)

type Dependency struct {
	DBConn       *pgxpool.Pool              `validate:"required"`
	CacheConn    *redis.Client              `validate:"required"`
	Goroutine    *goroutine.Manager         `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Gateways     *smsgateway.Manager        `validate:"required"`
	Messaging    messaging.Publisher        `validate:"required"`
	Mailer       mail.Mail                  `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UID          uid.NumberID               `validate:"required"`
	HMAC         hash.Hash                  `validate:"required"`
	Argon2ID     hash.Hash                  `validate:"required"`
	MFAEncryptor mfa.Encryptor              `validate:"required"`
	Codes        otpcode.Generator          `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Totp         totp.OTP                   `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
	JWT          jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoCache := cache.NewCache(dep.CacheConn, dep.Instrument)
	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	engine := usecase.NewEngine(
		repoCache,
		dep.HMAC,
		dep.Codes,
		dep.Clock,
		dep.Config.GetMinute("modules.otp.code_ttl_minutes"),
		dep.Config.GetSecond("modules.otp.resend_cooldown_seconds"),
	)

	uc := usecase.New(usecase.Dependency{
		Engine:       engine,
		RepoDB:       repoDB,
		RepoCache:    repoCache,
		RepoMsg:      repoMsg,
		Gateways:     dep.Gateways,
		Mailer:       dep.Mailer,
		Validator:    dep.Validator,
		Config:       dep.Config,
		Argon2ID:     dep.Argon2ID,
		MFAEncryptor: dep.MFAEncryptor,
		UID:          dep.UID,
		Totp:         dep.Totp,
		Clock:        dep.Clock,
		JWT:          dep.JWT,
		Instrument:   dep.Instrument,
		Goroutine:    dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, router.NewAPIKeyMiddleware(uc.AuthenticateAPIKey))

	return nil
}
