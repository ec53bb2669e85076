package handlers

import (
	"fmt"
	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"shinkwang-site/app/server/constants"
	"shinkwang-site/app/server/jwt"
	"shinkwang-site/app/server/middlewares"
	"strings"
	"time"
)

type adminSessionRequest struct {
	Secret string `json:"secret" form:"secret"`
}

type adminSessionResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type adminStatusResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

// openSession checks secret and, when it matches, signs a new session and sets
// the cookie. ok is false on a wrong secret.
func (a *App) openSession(c echo.Context, secret string) (token string, s *jwt.Session, ok bool, err error) {
	if match, err := argon2id.ComparePasswordAndHash(secret, a.adminHash); err != nil {
		return "", nil, false, fmt.Errorf("check secret: %w", err)
	} else if !match {
		return "", nil, false, nil
	}

	s = jwt.NewSession(a.cfg.Security.SessionTTL)
	token, err = a.jwt.SignToken(s)
	if err != nil {
		return "", nil, false, fmt.Errorf("sign token: %w", err)
	}

	c.SetCookie(a.sessionCookie(token, time.Unix(s.Expires, 0)))

	return token, s, true, nil
}

// closeSession revokes whatever session the request carries and clears the cookie.
func (a *App) closeSession(c echo.Context) error {
	rctx := c.Request().Context()

	if tokenString := middlewares.TokenFrom(c); tokenString != "" {
		if s, err := a.jwt.ParseSession(tokenString); err == nil {
			// remember the jti until the token would expire on its own
			if ttl := time.Until(time.Unix(s.Expires, 0)); ttl > 0 {
				if err := a.rdb.Set(rctx, fmt.Sprintf(constants.CacheKeyRevokedSession, s.ID), 1, ttl).Err(); err != nil {
					return fmt.Errorf("revoke session: %w", err)
				}
			}
		}
	}

	c.SetCookie(a.sessionCookie("", time.Unix(0, 0)))

	return nil
}

func (a *App) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     constants.AuthCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   a.cfg.System.IsProd,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}

func (a *App) AdminSessionCreate(c echo.Context) error {
	var req adminSessionRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind admin session body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Missing secret")
	}

	if strings.TrimSpace(req.Secret) == "" {
		return a.er(c, http.StatusBadRequest, "Missing secret")
	}

	token, s, ok, err := a.openSession(c, req.Secret)
	if err != nil {
		a.l.Error("failed to open admin session", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if !ok {
		a.l.Info("admin secret rejected", zap.String("ip", c.RealIP()))
		return a.er(c, http.StatusUnauthorized, "Wrong secret")
	}

	return c.JSON(http.StatusOK, &adminSessionResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: s.Expires,
	})
}

func (a *App) AdminSessionStatus(c echo.Context) error {
	_, isAdmin := middlewares.Session(c)
	return c.JSON(http.StatusOK, &adminStatusResponse{IsAdmin: isAdmin})
}

func (a *App) AdminSessionDelete(c echo.Context) error {
	if err := a.closeSession(c); err != nil {
		a.l.Error("failed to close admin session", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, success)
}
