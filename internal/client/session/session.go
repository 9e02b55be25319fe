// Package session is the single source of truth for "who is logged in and
// with what credential". The four session fields are persisted in the local
// metadata table and reloaded at startup; all four are written and cleared
// together, so no reader can ever observe a partial session.
package session

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmhodges/clock"

	"github.com/amparo-app/amparo-cli/internal/client/repositories/metadata"
	"github.com/amparo-app/amparo-cli/internal/dbx"
	"github.com/amparo-app/amparo-cli/internal/logging"
)

// Persisted metadata keys.
const (
	keyUsername = "username"
	keyAge      = "age"
	keyCity     = "city"
	keyToken    = "token"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Session is the client-held record of the authenticated user. Token is
// non-empty iff Username is non-empty.
type Session struct {
	Username string
	Age      int
	City     string
	Token    string
}

// Store persists the session and exposes a read-after-write consistent
// in-memory snapshot to all consumers.
type Store struct {
	db  *sql.DB
	clk clock.Clock
	log logging.Logger

	mu  sync.RWMutex
	cur *Session // nil when logged out
}

func NewStore(db *sql.DB, clk clock.Clock, log logging.Logger) *Store {
	return &Store{db: db, clk: clk, log: log}
}

func (s *Store) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Load restores the persisted session. Any storage failure, any missing
// field, or an expired bearer token leaves the store logged out; partial
// sessions are never honored.
func (s *Store) Load(ctx context.Context) {
	values, err := s.repo(s.db).List(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored session, starting logged out", "error", err)
		s.setCurrent(nil)
		return
	}

	username := values[keyUsername]
	ageStr := values[keyAge]
	city := values[keyCity]
	token := values[keyToken]

	if username == "" || ageStr == "" || city == "" || token == "" {
		s.setCurrent(nil)
		return
	}

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		s.log.Warn(ctx, "stored session is corrupt, starting logged out", "error", err)
		s.setCurrent(nil)
		return
	}

	if tokenExpired(token, s.clk.Now()) {
		s.log.Info(ctx, "stored credential has expired, starting logged out", "username", username)
		s.setCurrent(nil)
		return
	}

	s.setCurrent(&Session{Username: username, Age: age, City: city, Token: token})
}

// Login persists all four session fields in a single transaction, then swaps
// the in-memory snapshot. On any write failure nothing changes, durably or in
// memory, and the error is returned to the caller.
func (s *Store) Login(ctx context.Context, sess Session) error {
	if sess.Username == "" || sess.Token == "" {
		return errors.New("session requires username and token")
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyUsername, sess.Username); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyAge, strconv.Itoa(sess.Age)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyCity, sess.City); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, sess.Token)
	})
	if err != nil {
		return err
	}

	s.setCurrent(&sess)
	return nil
}

// Logout clears all four fields from durable storage and memory. Storage
// failures are surfaced; in that case the in-memory session is kept so the
// caller can retry rather than end up with memory and disk disagreeing.
func (s *Store) Logout(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		for _, key := range []string{keyUsername, keyAge, keyCity, keyToken} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.setCurrent(nil)
	return nil
}

// Update rewrites the mutable profile fields. The token is never touched.
func (s *Store) Update(ctx context.Context, age int, city string) error {
	s.mu.RLock()
	cur := s.cur
	s.mu.RUnlock()
	if cur == nil {
		return ErrNotLoggedIn
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyAge, strconv.Itoa(age)); err != nil {
			return err
		}
		return repo.Set(ctx, keyCity, city)
	})
	if err != nil {
		return err
	}

	next := *cur
	next.Age = age
	next.City = city
	s.setCurrent(&next)
	return nil
}

// Current returns a copy of the session and whether anyone is logged in.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return Session{}, false
	}
	return *s.cur, true
}

func (s *Store) setCurrent(sess *Session) {
	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens and JWTs without an exp claim are treated as not expired;
// signature verification is the backend's job.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
