// Package jwt issues and verifies the access tokens handed out after a
// successful code or social login.
//
// It carries a typed Claims payload (user id plus the identifier that was
// verified), an HS512 signer, and context helpers the HTTP middleware uses
// to stash authenticated claims per request.
package jwt
