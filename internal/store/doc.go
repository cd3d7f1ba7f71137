// Package store defines the persistence interfaces and sentinel errors for
// the workspace engine. Implementations live in internal/platform/postgres.
package store
