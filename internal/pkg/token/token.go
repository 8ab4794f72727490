// Package token читает сроки действия bearer-токена без проверки подписи.
// Подпись проверяет backend; клиенту нужно лишь не отправлять заведомо истёкший токен.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrOpaqueToken = errors.New("token is not a JWT")

// ExpiresAt возвращает exp из JWT. Для непрозрачных токенов - ErrOpaqueToken,
// для JWT без exp - нулевое время.
func ExpiresAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if strings.Count(raw, ".") != 2 {
		return time.Time{}, ErrOpaqueToken
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, ErrOpaqueToken
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// Expired сообщает, истёк ли токен к моменту now. Непрозрачные токены
// и токены без exp считаются действующими до проверки на сервере.
func Expired(raw string, now time.Time) bool {
	exp, err := ExpiresAt(raw)
	if err != nil || exp.IsZero() {
		return false
	}
	return !now.Before(exp)
}
