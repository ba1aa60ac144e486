// Package validator wraps struct validation behind a small interface.
//
// The v10 implementation registers the domain rules the request models
// rely on, such as otpcode for numeric verification codes and iranphone
// for Iranian mobile numbers, and translates failures into per-field
// messages the HTTP envelope can return.
package validator
