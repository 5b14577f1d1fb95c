package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	"github.com/yourusername/quiz-maker/internal/domain/repository"
)

// Issuer записывается в поле iss каждого токена сессии
const Issuer = "quiz-maker"

// revokedKeyPrefix - префикс ключей отозванных сессий в кеше
const revokedKeyPrefix = "session:revoked:"

var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenInvalid   = errors.New("token validation failed")
	ErrTokenRevoked   = errors.New("token has been revoked")
)

// SessionClaims содержит данные сессии, подписанные HS256.
// Идентификатор сессии хранится в RegisteredClaims.ID (jti).
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService выдает и проверяет токены сессий
type JWTService struct {
	secret []byte
	ttl    time.Duration
	// Хранилище отозванных jti. NoOpCache отключает отзыв на сервере.
	revoked repository.CacheRepository
	now     func() time.Time
}

// NewJWTService создает сервис сессий
func NewJWTService(secret string, ttl time.Duration, revoked repository.CacheRepository) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret key is required for JWTService")
	}
	if revoked == nil {
		return nil, fmt.Errorf("CacheRepository is required for JWTService")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}, nil
}

// TTL возвращает время жизни сессии
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken создает подписанный токен новой сессии
func (s *JWTService) GenerateToken(user *entity.User) (string, *SessionClaims, error) {
	if user == nil || user.ID == 0 {
		return "", nil, errors.New("cannot issue session for unsaved user")
	}
	jti, err := uuid.NewRandom()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := s.now()
	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Issuer:    Issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Printf("[JWT] Ошибка генерации токена для пользователя ID=%d: %v", user.ID, err)
		return "", nil, err
	}
	log.Printf("[JWT] Сессия %s выдана пользователю ID=%d", claims.ID, user.ID)
	return tokenString, claims, nil
}

// ParseToken проверяет подпись, срок действия и отзыв токена
func (s *JWTService) ParseToken(ctx context.Context, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrTokenMalformed
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return nil, ErrTokenExpired
			}
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == 0 || claims.ID == "" || claims.Issuer != Issuer {
		return nil, ErrTokenInvalid
	}

	revoked, err := s.revoked.Exists(ctx, revokedKeyPrefix+claims.ID)
	if err != nil {
		// Недоступный кеш не должен разлогинивать всех пользователей
		log.Printf("[JWT] Не удалось проверить отзыв сессии %s: %v", claims.ID, err)
	} else if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// RevokeToken помечает сессию отозванной до истечения ее срока действия
func (s *JWTService) RevokeToken(ctx context.Context, claims *SessionClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	remaining := s.ttl
	if claims.ExpiresAt != nil {
		remaining = claims.ExpiresAt.Time.Sub(s.now())
	}
	if remaining <= 0 {
		return nil
	}
	if err := s.revoked.Set(ctx, revokedKeyPrefix+claims.ID, "1", remaining); err != nil {
		return fmt.Errorf("failed to revoke session %s: %w", claims.ID, err)
	}
	log.Printf("[JWT] Сессия %s пользователя ID=%d отозвана", claims.ID, claims.UserID)
	return nil
}
