package redis

import (
	"context"
	"time"

	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
)

// NoOpCache используется, когда Redis не настроен: записи отбрасываются,
// чтения всегда дают промах.
type NoOpCache struct{}

func (NoOpCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (NoOpCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (NoOpCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	return apperrors.ErrNotFound
}

func (NoOpCache) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}
