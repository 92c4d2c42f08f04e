package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// tokenBytes is the amount of randomness in each token.
const tokenBytes = 32

// MemoryTokenStore keeps tokens in process memory. Tokens never expire and
// are not revoked; restarting the process invalidates all of them.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]uuid.UUID
	random io.Reader // Injectable for testing
	logger *slog.Logger
}

// Ensure MemoryTokenStore implements TokenStore interface
var _ TokenStore = (*MemoryTokenStore)(nil)

// NewMemoryTokenStore creates an empty token store.
func NewMemoryTokenStore(logger *slog.Logger) *MemoryTokenStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryTokenStore{
		tokens: make(map[string]uuid.UUID),
		random: rand.Reader,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

// Issue implements TokenStore.Issue
func (s *MemoryTokenStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(s.random, buf); err != nil {
		log.Error("failed to read random bytes for token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()

	log.Debug("token issued", slog.String("user_id", userID.String()))
	return token, nil
}

// Resolve implements TokenStore.Resolve
func (s *MemoryTokenStore) Resolve(_ context.Context, token string) (uuid.UUID, bool) {
	if token == "" {
		return uuid.Nil, false
	}

	s.mu.RLock()
	userID, ok := s.tokens[token]
	s.mu.RUnlock()

	return userID, ok
}

// Len returns the number of live tokens.
func (s *MemoryTokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
