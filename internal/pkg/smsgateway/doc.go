// Package smsgateway provides a uniform interface over SMS provider APIs and
// a manager that delivers one-time codes with primary/backup failover.
//
// Each provider adapter owns its wire contract (endpoint, payload shape, and
// success marker) and converts every transport or protocol failure into a
// returned error. The manager never retries a single adapter; the only
// redundancy mechanism is falling over to the configured backup gateway.
package smsgateway
