/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/session"
	"github.com/jackc/pgx/v5"
)

// DefaultSessionLifetime is how long an idle UI session is kept.
const DefaultSessionLifetime = 24 * time.Hour

// SessionConfig contains options for the PostgreSQL session store.
type SessionConfig struct {
	// Lifetime is how long a session may go unused before it is recycled.
	Lifetime time.Duration
}

// SessionStore keeps UI sessions (flash messages) in the ui_sessions table.
type SessionStore struct {
	lifetime time.Duration
	encoder  session.Encoder
	decoder  session.Decoder
}

// SessionIniter returns the session.Initer for the PostgreSQL session store.
// It accepts an optional SessionConfig.
func SessionIniter() session.Initer {
	return func(_ context.Context, args ...interface{}) (session.Store, error) {
		var config SessionConfig

		for _, arg := range args {
			switch v := arg.(type) {
			case nil:
			case SessionConfig:
				config = v
			default:
				return nil, errInvalidSessionConfig
			}
		}

		if config.Lifetime <= 0 {
			config.Lifetime = DefaultSessionLifetime
		}

		return &SessionStore{
			lifetime: config.Lifetime,
			encoder:  session.GobEncoder,
			decoder:  session.GobDecoder,
		}, nil
	}
}

// Exist reports whether an unexpired session with the given ID exists.
func (s *SessionStore) Exist(ctx context.Context, sid string) bool {
	if pool == nil {
		return false
	}

	var exists bool

	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ui_sessions WHERE id = $1 AND expires_at > NOW())`,
		sid,
	).Scan(&exists)

	return err == nil && exists
}

// Read returns the session with the given ID, or a fresh one under that ID
// when it is missing, expired or unreadable.
func (s *SessionStore) Read(ctx context.Context, sid string) (session.Session, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	// The session middleware sets the cookie itself.
	idWriter := func(http.ResponseWriter, *http.Request, string) {}

	var data []byte

	err := pool.QueryRow(ctx,
		`SELECT data FROM ui_sessions WHERE id = $1 AND expires_at > NOW()`,
		sid,
	).Scan(&data)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if len(data) == 0 {
		return session.NewBaseSession(sid, s.encoder, idWriter), nil
	}

	values, err := s.decoder(data)
	if err != nil {
		logger.Warn("Discarding undecodable session", "error", err)
		return session.NewBaseSession(sid, s.encoder, idWriter), nil
	}

	return session.NewBaseSessionWithData(sid, s.encoder, idWriter, values), nil
}

// Destroy deletes the session with the given ID.
func (s *SessionStore) Destroy(ctx context.Context, sid string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if _, err := pool.Exec(ctx, `DELETE FROM ui_sessions WHERE id = $1`, sid); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// Touch extends the expiry of the session with the given ID.
func (s *SessionStore) Touch(ctx context.Context, sid string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if _, err := pool.Exec(ctx,
		`UPDATE ui_sessions SET expires_at = $1 WHERE id = $2`,
		time.Now().Add(s.lifetime),
		sid,
	); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}

	return nil
}

// Save persists the session.
func (s *SessionStore) Save(ctx context.Context, sess session.Session) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	data, err := sess.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO ui_sessions (id, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at`,
		sess.ID(),
		data,
		time.Now().Add(s.lifetime),
	); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GC removes expired sessions.
func (s *SessionStore) GC(ctx context.Context) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	tag, err := pool.Exec(ctx, `DELETE FROM ui_sessions WHERE expires_at < NOW()`)
	if err != nil {
		return fmt.Errorf("failed to collect expired sessions: %w", err)
	}

	if n := tag.RowsAffected(); n > 0 {
		logger.Debug("Removed expired sessions", "count", n)
	}

	return nil
}
