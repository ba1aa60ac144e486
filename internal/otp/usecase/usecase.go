package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/clock"
	"github.com/shandysiswandi/gotp/internal/pkg/config"
	"github.com/shandysiswandi/gotp/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotp/internal/pkg/hash"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/jwt"
	"github.com/shandysiswandi/gotp/internal/pkg/mail"
	"github.com/shandysiswandi/gotp/internal/pkg/mfa"
	"github.com/shandysiswandi/gotp/internal/pkg/smsgateway"
	"github.com/shandysiswandi/gotp/internal/pkg/totp"
	"github.com/shandysiswandi/gotp/internal/pkg/uid"
	"github.com/shandysiswandi/gotp/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OTPSentEvent struct {
	Identifier string
	Channel    string
	Gateway    string
	SentAt     time.Time
}

type UserLoginEvent struct {
	UserID     int64
	Identifier string
	Method     string
	LoginAt    time.Time
}

type repoMessaging interface {
	PublishOTPSent(ctx context.Context, msg OTPSentEvent) error
	PublishUserLogin(ctx context.Context, msg UserLoginEvent) error
}

type repoCache interface {
	SaveOTP(ctx context.Context, identifier string, rec entity.OTPRecord, ttl time.Duration) error
	GetOTP(ctx context.Context, identifier string) (*entity.OTPRecord, error)
	DeleteOTP(ctx context.Context, identifier string) error
	DeleteOTPIfMatch(ctx context.Context, identifier string, rec entity.OTPRecord) (bool, error)

	SavePendingTOTP(ctx context.Context, userID int64, secret []byte, ttl time.Duration) error
	GetPendingTOTP(ctx context.Context, userID int64) ([]byte, error)
	DeletePendingTOTP(ctx context.Context, userID int64) error
}

type repoDB interface {
	GetUserByPhone(ctx context.Context, phone string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	UpsertUserByPhone(ctx context.Context, id int64, phone string) (*entity.User, error)
	UpsertUserByEmail(ctx context.Context, id int64, email string) (*entity.User, error)
	SaveUserTOTPSecret(ctx context.Context, userID int64, secret []byte) error

	GetAPIKeyByPublicKey(ctx context.Context, publicKey string) (*entity.APIKey, error)
	TouchAPIKeyLastUsed(ctx context.Context, id int64) error
}

// smsSender is the slice of the gateway manager the usecase needs.
type smsSender interface {
	SendOTP(ctx context.Context, phone, code string) error
	RenderMessage(code string) string
	Available() []smsgateway.Descriptor
	ActiveIDs() (primary string, backup string)
}

type Usecase struct {
	engine       *Engine
	repoDB       repoDB
	repoCache    repoCache
	repoMsg      repoMessaging
	gateways     smsSender
	mailer       mail.Mail
	validator    validator.Validator
	cfg          config.Config
	argon2id     hash.Hash
	mfaEncryptor mfa.Encryptor
	uid          uid.NumberID
	totp         totp.OTP
	clock        clock.Clocker
	jwt          jwt.JWT
	ins          instrument.Instrumentation
	goroutine    *goroutine.Manager
}

type Dependency struct {
	Engine       *Engine
	RepoDB       repoDB
	RepoCache    repoCache
	RepoMsg      repoMessaging
	Gateways     smsSender
	Mailer       mail.Mail
	Validator    validator.Validator
	Config       config.Config
	Argon2ID     hash.Hash
	MFAEncryptor mfa.Encryptor
	UID          uid.NumberID
	Totp         totp.OTP
	Clock        clock.Clocker
	JWT          jwt.JWT
	Instrument   instrument.Instrumentation
	Goroutine    *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		engine:       dep.Engine,
		repoDB:       dep.RepoDB,
		repoCache:    dep.RepoCache,
		repoMsg:      dep.RepoMsg,
		gateways:     dep.Gateways,
		mailer:       dep.Mailer,
		validator:    dep.Validator,
		cfg:          dep.Config,
		argon2id:     dep.Argon2ID,
		mfaEncryptor: dep.MFAEncryptor,
		uid:          dep.UID,
		totp:         dep.Totp,
		clock:        dep.Clock,
		jwt:          dep.JWT,
		ins:          dep.Instrument,
		goroutine:    dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otp.usecase").Start(ctx, name)
}
