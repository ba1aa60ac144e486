// Package mail defines the contract for sending email.
//
// Verification codes addressed to an email identifier go out through the
// Mail interface, so usecases stay independent of the delivery mechanism.
// The SMTP implementation in this package is the default.
package mail
