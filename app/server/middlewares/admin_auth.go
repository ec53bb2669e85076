package middlewares

import (
	"context"
	"fmt"
	gojwt "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"net/http"
	"shinkwang-site/app/server/constants"
	"shinkwang-site/app/server/jwt"
	"strings"
)

const (
	tokenContextKey   = "user"
	sessionContextKey = "adminSession"
)

// RequireAdmin lets the request through only with a valid, unrevoked admin
// session token in the Authorization header or the session cookie.
func RequireAdmin(j *jwt.JWT, rdb *redis.Client, l *zap.Logger) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:  j.Key(),
		ContextKey:  tokenContextKey,
		TokenLookup: "header:Authorization:Bearer ,cookie:" + constants.AuthCookieName,
		ErrorHandler: func(c echo.Context, err error) error {
			l.Debug("admin token rejected", zap.Error(err))
			return unauthorized(c)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*gojwt.Token)
			if !ok {
				return unauthorized(c)
			}
			claims, ok := token.Claims.(gojwt.MapClaims)
			if !ok {
				return unauthorized(c)
			}
			session, err := jwt.SessionFromClaims(claims)
			if err != nil {
				return unauthorized(c)
			}

			revoked, err := IsRevoked(c.Request().Context(), rdb, session.ID)
			if err != nil {
				l.Error("failed to check session revocation", zap.String("jti", session.ID), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to verify session"})
			}
			if revoked {
				return unauthorized(c)
			}

			c.Set(sessionContextKey, session)
			return next(c)
		})
	}
}

// DetectAdmin marks the request as admin when it carries a valid session, and
// otherwise passes it on untouched.
func DetectAdmin(j *jwt.JWT, rdb *redis.Client, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := TokenFrom(c)
			if tokenString == "" {
				return next(c)
			}
			session, err := j.ParseSession(tokenString)
			if err != nil {
				return next(c)
			}
			revoked, err := IsRevoked(c.Request().Context(), rdb, session.ID)
			if err != nil {
				l.Error("failed to check session revocation", zap.String("jti", session.ID), zap.Error(err))
				return next(c)
			}
			if !revoked {
				c.Set(sessionContextKey, session)
			}
			return next(c)
		}
	}
}

// Session returns the admin session attached by RequireAdmin or DetectAdmin.
func Session(c echo.Context) (*jwt.Session, bool) {
	s, ok := c.Get(sessionContextKey).(*jwt.Session)
	return s, ok && s != nil
}

// TokenFrom pulls the raw token out of the bearer header, falling back to the cookie.
func TokenFrom(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if splits := strings.SplitN(authHeader, " ", 2); len(splits) == 2 && strings.EqualFold(splits[0], "bearer") {
		return strings.TrimSpace(splits[1])
	}
	if cookie, err := c.Cookie(constants.AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func IsRevoked(ctx context.Context, rdb *redis.Client, jti string) (bool, error) {
	n, err := rdb.Exists(ctx, fmt.Sprintf(constants.CacheKeyRevokedSession, jti)).Result()
	if err != nil {
		return false, fmt.Errorf("query revocation: %w", err)
	}
	return n > 0, nil
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Administrator session required"})
}

// HasSession reports whether r carries a valid, unrevoked admin session.
// Lookup failures count as no session.
func HasSession(j *jwt.JWT, rdb *redis.Client) func(*http.Request) bool {
	return func(r *http.Request) bool {
		var tokenString string
		if splits := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2); len(splits) == 2 && strings.EqualFold(splits[0], "bearer") {
			tokenString = strings.TrimSpace(splits[1])
		} else if cookie, err := r.Cookie(constants.AuthCookieName); err == nil {
			tokenString = cookie.Value
		}
		if tokenString == "" {
			return false
		}
		session, err := j.ParseSession(tokenString)
		if err != nil {
			return false
		}
		revoked, err := IsRevoked(r.Context(), rdb, session.ID)
		return err == nil && !revoked
	}
}
