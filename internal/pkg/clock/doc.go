// Package clock abstracts the current time behind a one-method interface.
//
// Code expiry, resend cooldowns, and TOTP windows all hang off wall time,
// so usecases take a Clocker instead of calling time.Now directly and tests
// drive them with a fake that advances on demand.
package clock
