package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"freelancer-server/internal/shared/redis"
)

// RevocationStore tracks refresh tokens invalidated before their natural
// expiry (logout). Entries live in Redis only as long as the token itself
// would. With no Redis client the store is a no-op: tokens then simply age
// out on their expiry window.
type RevocationStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRevocationStore(client *redis.Client, logger *slog.Logger) *RevocationStore {
	logger.Debug("Initializing token revocation store", "redis_available", client != nil)

	return &RevocationStore{
		client: client,
		logger: logger,
	}
}

func revocationKey(tokenID string) string {
	return "auth:revoked:" + tokenID
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.client == nil {
		s.logger.Debug("Redis unavailable, skipping refresh token revocation")
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, revocationKey(tokenID), "1", ttl).Err(); err != nil {
		s.logger.Error("Failed to revoke refresh token", "error", err)
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.logger.Info("Refresh token revoked", "expires_in", ttl.Round(time.Second))
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.client == nil || tokenID == "" {
		return false, nil
	}

	n, err := s.client.Exists(ctx, revocationKey(tokenID)).Result()
	if err != nil {
		s.logger.Error("Failed to check token revocation", "error", err)
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return n > 0, nil
}
