// Package session holds the client's login state: the auth token and the
// user profile it belongs to.
//
// A Store is created per process (or per test) and injected into the
// services. Every mutation writes through to a kv.Repository before the
// in-memory pair is replaced, and the pair is always swapped as a unit.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/scholarhub/internal/client/metrics"
	"github.com/dmitrijs2005/scholarhub/internal/client/models"
	"github.com/dmitrijs2005/scholarhub/internal/client/repositories/kv"
	"github.com/dmitrijs2005/scholarhub/internal/common"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Snapshot is a consistent copy of the session at one point in time.
type Snapshot struct {
	Token         string
	User          *models.Profile
	Authenticated bool
	Admin         bool
	Loading       bool
}

type Store struct {
	repo    kv.Repository
	logger  logging.Logger
	metrics metrics.Recorder

	writeMu sync.Mutex

	mu      sync.RWMutex
	token   string
	user    *models.Profile
	loading bool
	seq     uint64

	subsMu sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int

	// Snapshots wait in queue until the single draining caller delivers
	// them; anything older than delivered is dropped.
	queueMu   sync.Mutex
	queue     []pending
	draining  bool
	delivered uint64
}

type pending struct {
	seq  uint64
	snap Snapshot
}

type Option func(*Store)

func WithRecorder(r metrics.Recorder) Option {
	return func(s *Store) { s.metrics = r }
}

// New returns an empty store backed by repo. Call Load to pick up a
// previously persisted session.
func New(repo kv.Repository, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		repo:    repo,
		logger:  logger,
		metrics: metrics.Nop{},
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted token and profile. Missing, unreadable or
// malformed entries leave the corresponding field empty.
func (s *Store) Load(ctx context.Context) {
	var token string
	if b, err := s.repo.Get(ctx, common.TokenKey); err != nil {
		s.logger.Warn(ctx, "cannot read stored token", "error", err)
	} else {
		token = string(b)
	}

	var user *models.Profile
	if b, err := s.repo.Get(ctx, common.UserKey); err != nil {
		s.logger.Warn(ctx, "cannot read stored user", "error", err)
	} else if len(b) > 0 {
		var p models.Profile
		if err := json.Unmarshal(b, &p); err != nil {
			s.logger.Warn(ctx, "stored user is malformed, ignoring", "error", err)
		} else {
			user = &p
		}
	}

	s.mu.Lock()
	s.token, s.user = token, user
	snap, seq := s.stampLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
}

func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// User returns a copy of the current profile.
func (s *Store) User() (*models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

// AuthHeaders returns the Authorization header for the current token, or
// an empty map when there is none.
func (s *Store) AuthHeaders() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + s.token}
}

// SetAuth persists token and user in one transaction and then replaces the
// in-memory pair. On a storage error memory is left as it was.
func (s *Store) SetAuth(ctx context.Context, token string, user *models.Profile) error {
	var userJSON []byte
	var u *models.Profile
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		userJSON = b
		cp := *user
		u = &cp
	}

	snap, seq, err := s.commit(ctx, token, u, func(ctx context.Context, tx kv.Repository) error {
		if err := tx.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		if userJSON == nil {
			return tx.Delete(ctx, common.UserKey)
		}
		return tx.Set(ctx, common.UserKey, userJSON)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.metrics.RecordSessionEvent(metrics.EventSessionSet)
	s.notify(snap, seq)
	return nil
}

// ClearAuth removes both entries from storage and empties the session.
func (s *Store) ClearAuth(ctx context.Context) error {
	return s.clear(ctx, metrics.EventSessionCleared)
}

// Expire is ClearAuth for a session the server no longer accepts.
func (s *Store) Expire(ctx context.Context) error {
	return s.clear(ctx, metrics.EventSessionExpired)
}

func (s *Store) clear(ctx context.Context, event string) error {
	snap, seq, err := s.commit(ctx, "", nil, func(ctx context.Context, tx kv.Repository) error {
		return tx.Delete(ctx, common.TokenKey, common.UserKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.metrics.RecordSessionEvent(event)
	s.notify(snap, seq)
	return nil
}

// commit runs write in a storage transaction and, if it succeeds, installs
// token and user. writeMu keeps storage and memory in the same order when
// mutations overlap.
func (s *Store) commit(ctx context.Context, token string, user *models.Profile, write func(context.Context, kv.Repository) error) (Snapshot, uint64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.WithTx(ctx, write); err != nil {
		return Snapshot{}, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = token, user
	snap, seq := s.stampLocked()
	return snap, seq, nil
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	snap, seq := s.stampLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// stampLocked numbers the current state for delivery. Callers hold mu for
// writing.
func (s *Store) stampLocked() (Snapshot, uint64) {
	s.seq++
	return s.snapshotLocked(), s.seq
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Token:         s.token,
		Authenticated: s.token != "",
		Admin:         s.user.IsAdmin(),
		Loading:       s.loading,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Subscribe registers fn to be called with the new snapshot after every
// change. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

// notify delivers snap to subscribers in stamp order. If another caller is
// already delivering, snap is queued for it and notify returns at once;
// this also covers subscribers that mutate the store from a callback.
func (s *Store) notify(snap Snapshot, seq uint64) {
	s.queueMu.Lock()
	s.queue = append(s.queue, pending{seq: seq, snap: snap})
	if s.draining {
		s.queueMu.Unlock()
		return
	}
	s.draining = true

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		if next.seq <= s.delivered {
			continue
		}
		s.delivered = next.seq
		s.queueMu.Unlock()

		s.deliver(next.snap)

		s.queueMu.Lock()
	}
	s.draining = false
	s.queueMu.Unlock()
}

func (s *Store) deliver(snap Snapshot) {
	s.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// ExpiresAt reads the exp claim of the current token. The signature is not
// checked; the server remains the authority.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token, ok := s.Token()
	if !ok {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsExpired reports whether the token carries an exp claim at or before
// now. Tokens without one never expire locally.
func (s *Store) IsExpired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !now.Before(exp)
}
