// Package session owns the Session User of a browsing session.
//
// A Manager is shared by the whole process. Each request opens a Store bound
// to the session key carried by its cookie; the Store loads the persisted
// record on open and writes every mutation through to the repository before
// returning. Two requests mutating the same key race, and the last write wins.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/identity"
	"github.com/sakif/skillsync/internal/model"
	"github.com/sakif/skillsync/internal/repository"
)

// KeyPrefix namespaces session records in the repository.
const KeyPrefix = "skillsync_user:"

// ErrNoSession is returned by Update when nobody is signed in.
var ErrNoSession = apperror.Unauthorized("Please sign in to continue")

type Manager struct {
	repo     repository.SessionRepository
	resolver *identity.Resolver
	delay    time.Duration
	validate func(*model.User) error
	logger   *slog.Logger
}

type Option func(*Manager)

// WithDelay makes Login and Register pause for d before building the record.
// The pause is abandoned when the request context ends.
func WithDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

// WithValidator checks every merged record before Update persists it.
func WithValidator(validate func(*model.User) error) Option {
	return func(m *Manager) { m.validate = validate }
}

func NewManager(repo repository.SessionRepository, resolver *identity.Resolver, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolver exposes the identity resolver the manager builds records with.
func (m *Manager) Resolver() *identity.Resolver {
	return m.resolver
}

// Open returns a Store for key with its persisted user already loaded.
func (m *Manager) Open(ctx context.Context, key string) *Store {
	s := &Store{m: m, key: key}
	s.Initialize(ctx)
	return s
}

func (m *Manager) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return nil
	}
	t := time.NewTimer(m.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Store is the per-request view of one session.
type Store struct {
	m   *Manager
	key string

	mu   sync.Mutex
	user *model.User
}

func (s *Store) Key() string {
	return s.key
}

func (s *Store) storageKey() string {
	return KeyPrefix + s.key
}

// Initialize replaces the in-memory user with the persisted one. A missing,
// unreadable or malformed record leaves the session signed out.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil

	data, err := s.m.repo.Load(ctx, s.storageKey())
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.m.logger.Warn("session record unavailable",
				slog.String("session", s.key),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	u, err := decodeRecord(data)
	if err != nil {
		s.m.logger.Warn("ignoring unreadable session record",
			slog.String("session", s.key),
			slog.String("error", err.Error()),
		)
		return
	}
	s.user = u
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Login replaces whatever session exists with the profile resolved from email.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	if err := s.m.wait(ctx); err != nil {
		return nil, err
	}
	u := s.m.resolver.Resolve(email, password)
	if err := s.replace(ctx, u); err != nil {
		return nil, fmt.Errorf("session: login: %w", err)
	}
	s.m.logger.Info("user signed in",
		slog.String("session", s.key),
		slog.String("role", string(u.Role)),
	)
	return u.Clone(), nil
}

// Register signs in a freshly built account. Duplicate emails are not checked.
func (s *Store) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	if err := s.m.wait(ctx); err != nil {
		return nil, err
	}
	u := s.m.resolver.NewAccount(reg)
	if err := s.replace(ctx, u); err != nil {
		return nil, fmt.Errorf("session: register: %w", err)
	}
	s.m.logger.Info("user registered",
		slog.String("session", s.key),
		slog.String("userID", u.ID),
	)
	return u.Clone(), nil
}

// Logout deletes the persisted record and clears the in-memory user.
// Logging out of an empty session is not an error.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.m.repo.Delete(ctx, s.storageKey()); err != nil {
		return fmt.Errorf("session: logout: %w", err)
	}
	s.user = nil
	return nil
}

// Update merges patch into the current user. Keys are the user's JSON field
// names; keys not present in the patch keep their value, and slices are
// replaced wholesale. An unknown key or a value of the wrong type is a
// validation error and nothing is written.
func (s *Store) Update(ctx context.Context, patch map[string]any) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, ErrNoSession
	}

	merged, err := merge(s.user, patch)
	if err != nil {
		return nil, err
	}
	if s.m.validate != nil {
		if err := s.m.validate(merged); err != nil {
			return nil, err
		}
	}
	if err := s.persist(ctx, merged); err != nil {
		return nil, fmt.Errorf("session: update: %w", err)
	}
	s.user = merged
	return merged.Clone(), nil
}

func (s *Store) replace(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, u); err != nil {
		return err
	}
	s.user = u
	return nil
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context, u *model.User) error {
	data, err := encodeRecord(u)
	if err != nil {
		return err
	}
	return s.m.repo.Save(ctx, s.storageKey(), data)
}

// merge overlays patch onto the JSON form of u and decodes the result into a
// fresh User, so the original is never touched.
func merge(u *model.User, patch map[string]any) (*model.User, error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("session: encoding user: %w", err)
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("session: decoding user: %w", err)
	}

	for k, v := range patch {
		if _, ok := fields[k]; !ok {
			return nil, apperror.ValidationFailed(k, "Unknown profile field")
		}
		fields[k] = v
	}

	out := new(model.User)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("session: building decoder: %w", err)
	}
	if err := dec.Decode(fields); err != nil {
		return nil, apperror.ValidationFailed("", fmt.Sprintf("Invalid profile update: %v", err))
	}
	if !out.Role.Valid() {
		return nil, apperror.ValidationFailed("role", "Unknown role")
	}
	return out, nil
}
