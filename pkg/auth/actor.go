package auth

import "context"

// Actor - пользователь текущей сессии
type Actor struct {
	ID          uint
	DisplayName string
}

// ActorFromClaims извлекает Actor из проверенного токена
func ActorFromClaims(claims *SessionClaims) Actor {
	return Actor{ID: claims.UserID, DisplayName: claims.Username}
}

type actorContextKey struct{}

// WithActor сохраняет пользователя сессии в context.Context запроса
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext возвращает пользователя сессии, если он есть
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok && actor.ID != 0
}
