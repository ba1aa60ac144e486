// Package messaging provides a broker-agnostic event publisher.
//
// The service only emits events (code sent, login succeeded); it never
// consumes, so the surface is a single Publisher interface with pluggable
// backends for Kafka, NATS, NSQ and Google Pub/Sub. The backend is selected
// by driver name through NewFromDriver.
package messaging
