package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore registra los jti de refresh tokens vigentes y su
// dueño. Un jti ausente cuenta como revocado: la rotación en JWTService
// depende de eso para invalidar el token usado.
type RefreshTokenStore interface {
	Store(jti, userID string, ttl time.Duration) error
	Exists(jti string) (bool, error)
	Revoke(jti string) error
}

// refreshGrant es la entrada viva de un refresh token emitido.
type refreshGrant struct {
	userID    string
	expiresAt time.Time
}

// memoryRefreshTokenStore alcanza para despliegues de un solo proceso y
// para tests; con redis configurado se usa la variante persistente.
type memoryRefreshTokenStore struct {
	mu     sync.Mutex
	grants map[string]refreshGrant
}

func NewMemoryRefreshTokenStore() RefreshTokenStore {
	return &memoryRefreshTokenStore{grants: make(map[string]refreshGrant)}
}

func (s *memoryRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked()
	s.grants[jti] = refreshGrant{
		userID:    userID,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *memoryRefreshTokenStore) Exists(jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	grant, ok := s.grants[jti]
	if !ok {
		return false, nil
	}
	if time.Now().UTC().After(grant.expiresAt) {
		delete(s.grants, jti)
		return false, nil
	}
	return true, nil
}

func (s *memoryRefreshTokenStore) Revoke(jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants, jti)
	return nil
}

// purgeExpiredLocked saca grants vencidos para que el mapa no acumule
// sesiones abandonadas entre reinicios de ciclo largo. Requiere el lock.
func (s *memoryRefreshTokenStore) purgeExpiredLocked() {
	now := time.Now().UTC()
	for jti, grant := range s.grants {
		if now.After(grant.expiresAt) {
			delete(s.grants, jti)
		}
	}
}

const (
	refreshKeyPrefix    = "babyguard:refresh:"
	refreshStoreTimeout = 500 * time.Millisecond
)

// redisRefreshTokenStore guarda el jti con el user id como valor; el TTL
// de la key expira el grant sin trabajo de limpieza propio.
type redisRefreshTokenStore struct {
	client *redis.Client
}

func NewRedisRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	if client == nil {
		return nil
	}
	return &redisRefreshTokenStore{client: client}
}

func (s *redisRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), refreshStoreTimeout)
	defer cancel()
	return s.client.Set(ctx, refreshKeyPrefix+jti, userID, ttl).Err()
}

func (s *redisRefreshTokenStore) Exists(jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), refreshStoreTimeout)
	defer cancel()
	_, err := s.client.Get(ctx, refreshKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisRefreshTokenStore) Revoke(jti string) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), refreshStoreTimeout)
	defer cancel()
	return s.client.Del(ctx, refreshKeyPrefix+jti).Err()
}
