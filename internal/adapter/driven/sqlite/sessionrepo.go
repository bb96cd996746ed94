package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/adalabs/parent-dashboard/internal/domain/model"
	"github.com/adalabs/parent-dashboard/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port
// interface. The OAuth token pair is encrypted with AES-256-GCM before
// write and decrypted after read; everything else is stored as-is.
type SessionRepo struct {
	db  *DB
	key []byte
}

// NewSessionRepo creates a new SessionRepo. key must be 32 bytes for
// AES-256-GCM.
func NewSessionRepo(db *DB, key []byte) (*SessionRepo, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("session encryption key must be 32 bytes, got %d", len(key))
	}
	return &SessionRepo{db: db, key: key}, nil
}

// Create persists a new session. A missing ID is filled with a random
// UUID and a zero CreatedAt with the current time.
func (r *SessionRepo) Create(ctx context.Context, session model.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	access, err := r.encrypt(session.Tokens.AccessToken)
	if err != nil {
		return fmt.Errorf("encrypt access token: %w", err)
	}
	refresh, err := r.encrypt(session.Tokens.RefreshToken)
	if err != nil {
		return fmt.Errorf("encrypt refresh token: %w", err)
	}

	const query = `INSERT INTO sessions
		(id, token, account_id, email, name, avatar_url, access_token, refresh_token, token_expires_at, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.Writer.ExecContext(ctx, query,
		session.ID,
		session.Token,
		session.Account.ID,
		session.Account.Email,
		session.Account.Name,
		session.Account.AvatarURL,
		access,
		refresh,
		formatNullableTime(session.Tokens.Expiry),
		formatTime(createdAt),
		formatTime(session.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("create session %s: %w", session.ID, err)
	}

	return nil
}

// GetByToken retrieves the session for the given cookie token. Returns
// nil, nil if no session exists for that token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	const query = `SELECT id, token, account_id, email, name, avatar_url, access_token, refresh_token, token_expires_at, created_at, expires_at
		FROM sessions WHERE token = ?`

	session, err := r.scanSession(r.db.Reader.QueryRowContext(ctx, query, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return session, nil
}

// UpdateTokens replaces the stored token pair after a refresh. Returns
// ErrSessionNotFound if the session no longer exists.
func (r *SessionRepo) UpdateTokens(ctx context.Context, token string, tokens model.TokenPair) error {
	access, err := r.encrypt(tokens.AccessToken)
	if err != nil {
		return fmt.Errorf("encrypt access token: %w", err)
	}
	refresh, err := r.encrypt(tokens.RefreshToken)
	if err != nil {
		return fmt.Errorf("encrypt refresh token: %w", err)
	}

	const query = `UPDATE sessions SET access_token = ?, refresh_token = ?, token_expires_at = ? WHERE token = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, access, refresh, formatNullableTime(tokens.Expiry), token)
	if err != nil {
		return fmt.Errorf("update session tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update session tokens: %w", driven.ErrSessionNotFound)
	}

	return nil
}

// Delete removes the session for the given cookie token. Deleting an
// unknown token is a no-op.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions whose expiry is before now and reports
// how many were removed.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at < ?`

	result, err := r.db.Writer.ExecContext(ctx, query, formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	return rows, nil
}

func (r *SessionRepo) scanSession(s scanner) (*model.Session, error) {
	var session model.Session
	var access, refresh string
	var tokenExpiresAt sql.NullString
	var createdAt, expiresAt string

	err := s.Scan(
		&session.ID,
		&session.Token,
		&session.Account.ID,
		&session.Account.Email,
		&session.Account.Name,
		&session.Account.AvatarURL,
		&access,
		&refresh,
		&tokenExpiresAt,
		&createdAt,
		&expiresAt,
	)
	if err != nil {
		return nil, err
	}

	if session.Tokens.AccessToken, err = r.decrypt(access); err != nil {
		return nil, fmt.Errorf("decrypt access token: %w", err)
	}
	if session.Tokens.RefreshToken, err = r.decrypt(refresh); err != nil {
		return nil, fmt.Errorf("decrypt refresh token: %w", err)
	}

	if tokenExpiresAt.Valid {
		if session.Tokens.Expiry, err = parseTime(tokenExpiresAt.String); err != nil {
			return nil, fmt.Errorf("parse token_expires_at: %w", err)
		}
	}
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if session.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, fmt.Errorf("parse expires_at: %w", err)
	}

	return &session, nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a
// base64-encoded string containing the nonce (12 bytes) prepended to the
// ciphertext. Empty plaintext is stored as an empty string so absent
// refresh tokens stay recognizably absent.
func (r *SessionRepo) encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *SessionRepo) decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
