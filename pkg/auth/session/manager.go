package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/angelmondragon/stockledger-backend/pkg/config"
	redisclient "github.com/angelmondragon/stockledger-backend/pkg/redis"
)

const refreshTokenBytes = 32

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(accessID string) string
}

// record is the JSON value kept per access id. Only a hash of the refresh
// token is stored.
type record struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"token_hash"`
}

// Grant is a freshly issued access id and refresh token pair.
type Grant struct {
	AccessID     string
	RefreshToken string
	UserID       uuid.UUID
}

// Manager handles refresh token creation, storage, and rotation.
type Manager struct {
	store sessionStore
	ttl   time.Duration
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return newManager(client, cfg)
}

func newManager(store sessionStore, cfg config.JWTConfig) (*Manager, error) {
	ttl := cfg.RefreshTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("refresh token ttl must be positive")
	}
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl <= accessTTL {
		return nil, fmt.Errorf("refresh token ttl (%s) must exceed access token ttl (%s)", ttl, accessTTL)
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// Start opens a session for userID and returns the access id to embed as the
// JWT jti along with its refresh token.
func (m *Manager) Start(ctx context.Context, userID uuid.UUID) (Grant, error) {
	if userID == uuid.Nil {
		return Grant{}, fmt.Errorf("user id is required")
	}
	return m.issue(ctx, userID)
}

// Rotate consumes the session behind oldAccessID and opens a new one. The old
// session is gone afterwards even when the provided token does not match.
func (m *Manager) Rotate(ctx context.Context, oldAccessID, provided string) (Grant, error) {
	if strings.TrimSpace(oldAccessID) == "" || strings.TrimSpace(provided) == "" {
		return Grant{}, ErrInvalidRefreshToken
	}

	raw, err := m.store.GetDel(ctx, m.store.SessionKey(oldAccessID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return Grant{}, ErrInvalidRefreshToken
		}
		return Grant{}, err
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Grant{}, ErrInvalidRefreshToken
	}
	if subtle.ConstantTimeCompare([]byte(rec.TokenHash), []byte(hashToken(provided))) != 1 {
		return Grant{}, ErrInvalidRefreshToken
	}

	return m.issue(ctx, rec.UserID)
}

// Revoke deletes the refresh mapping tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.store.SessionKey(accessID))
}

// HasSession reports whether the provided access ID still has an active refresh session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	if _, err := m.store.Get(ctx, m.store.SessionKey(accessID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *Manager) issue(ctx context.Context, userID uuid.UUID) (Grant, error) {
	token, err := generateRefreshToken()
	if err != nil {
		return Grant{}, err
	}
	payload, err := json.Marshal(record{UserID: userID, TokenHash: hashToken(token)})
	if err != nil {
		return Grant{}, err
	}
	accessID := uuid.NewString()
	if err := m.store.Set(ctx, m.store.SessionKey(accessID), payload, m.ttl); err != nil {
		return Grant{}, err
	}
	return Grant{AccessID: accessID, RefreshToken: token, UserID: userID}, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
