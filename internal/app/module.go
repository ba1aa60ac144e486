package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gotp/internal/otp"
	"github.com/shandysiswandi/gotp/internal/social"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.otp.enabled") {
		if err := otp.New(otp.Dependency{
			DBConn:       a.dbConn,
			CacheConn:    a.cacheConn,
			Goroutine:    a.goroutine,
			Router:       a.router,
			Gateways:     a.gateways,
			Messaging:    a.messaging,
			Mailer:       a.mail,
			Config:       a.config,
			Instrument:   a.ins,
			UID:          a.uid,
			HMAC:         a.hmac,
			Argon2ID:     a.argon2id,
			MFAEncryptor: a.mfaEncryptor,
			Codes:        a.codes,
			Clock:        a.clock,
			Totp:         a.totp,
			Validator:    a.validator,
			JWT:          a.jwt,
		}); err != nil {
			slog.Error("failed to init module otp", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.social.enabled") {
		if err := social.New(social.Dependency{
			DBConn:      a.dbConn,
			CacheConn:   a.cacheConn,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Messaging:   a.messaging,
			Idempotency: a.idemp,
			Config:      a.config,
			Instrument:  a.ins,
			UUID:        a.uuid,
			UID:         a.uid,
			Clock:       a.clock,
			Validator:   a.validator,
			JWT:         a.jwt,
		}); err != nil {
			slog.Error("failed to init module social", "error", err)
			os.Exit(1)
		}
	}
}
