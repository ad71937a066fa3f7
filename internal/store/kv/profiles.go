// Package kv хранит PIN-коды пользователей в redis или в памяти процесса.
package kv

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/logger"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store"
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"strconv"
	"sync"
)

const pinPrefix = "alexa:pin:"

var ErrInvalidPIN = errors.New("pin must be four digits")

// Profiles реализует store.ProfileStore поверх redis.
type Profiles struct {
	client *redis.Client
}

func NewProfiles(client *redis.Client) *Profiles {
	return &Profiles{client: client}
}

func (p *Profiles) PIN(ctx context.Context, userID int64) (string, error) {
	pin, err := p.client.Get(ctx, pinKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get pin: %w", err)
	}
	return pin, nil
}

// SetPIN с пустым pin снимает защиту.
func (p *Profiles) SetPIN(ctx context.Context, userID int64, pin string) error {
	if pin == "" {
		return p.client.Del(ctx, pinKey(userID)).Err()
	}
	if !store.ValidPIN(pin) {
		return ErrInvalidPIN
	}
	if err := p.client.Set(ctx, pinKey(userID), pin, 0).Err(); err != nil {
		return fmt.Errorf("set pin: %w", err)
	}
	return nil
}

func pinKey(userID int64) string {
	return pinPrefix + strconv.FormatInt(userID, 10)
}

// MemoryProfiles используется, когда redis не настроен.
type MemoryProfiles struct {
	mu   sync.RWMutex
	pins map[int64]string
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{pins: map[int64]string{}}
}

func (m *MemoryProfiles) PIN(_ context.Context, userID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pins[userID], nil
}

func (m *MemoryProfiles) SetPIN(_ context.Context, userID int64, pin string) error {
	if pin != "" && !store.ValidPIN(pin) {
		return ErrInvalidPIN
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if pin == "" {
		delete(m.pins, userID)
		return nil
	}
	m.pins[userID] = pin
	return nil
}

// New использует память только без redis. Настроенный, но недоступный redis
// остаётся хранилищем: ошибки чтения PIN закрывают доступ, а не открывают его.
func New(ctx context.Context, client *redis.Client) store.ProfileStore {
	if client == nil {
		return NewMemoryProfiles()
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Warn("redis is unavailable, pin checks will fail until it recovers", zap.Error(err))
	}
	return NewProfiles(client)
}
