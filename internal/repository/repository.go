// Package repository declares the storage contracts the services depend on.
//
// The only durable state in SkillSync is one serialized Session User per
// browsing session, so the contract is a small key/value interface. Backends
// live in sub-packages (sqlite, postgres, redis, memory) and are chosen in
// config; the session package never imports a concrete backend.
package repository

import (
	"context"
)

// SessionRepository stores opaque session records by key.
//
// Load returns an error wrapping apperror.ErrNotFound when the key is absent.
// Delete of an absent key is not an error. Concurrent Saves to the same key
// are last-write-wins.
type SessionRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
