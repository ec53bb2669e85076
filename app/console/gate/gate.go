// Package gate tracks whether this installation is in administrator mode.
package gate

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"net/http"
	"shinkwang-site/app/console/client"
	"shinkwang-site/app/console/prefs"
	"sync"
)

type State int

const (
	Guest State = iota
	Admin
)

func (s State) String() string {
	if s == Admin {
		return "admin"
	}
	return "guest"
}

// ErrRejected means the server did not accept the secret.
var ErrRejected = errors.New("secret rejected")

// Authenticator is the part of the API client the gate needs.
type Authenticator interface {
	OpenSession(ctx context.Context, secret string) (*client.Session, error)
	CloseSession(ctx context.Context) error
	SetToken(token string)
}

type Gate struct {
	l     *zap.Logger
	auth  Authenticator
	prefs *prefs.Prefs

	mu    sync.Mutex
	state State
	subs  []func(State)
}

// New restores the last state from p and hands its token to auth.
func New(auth Authenticator, p *prefs.Prefs, l *zap.Logger) *Gate {
	g := &Gate{l: l, auth: auth, prefs: p}
	if p.Admin && p.Token != "" {
		g.state = Admin
		auth.SetToken(p.Token)
	}
	return g
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Subscribe registers fn to be called after every transition.
func (g *Gate) Subscribe(fn func(State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subs = append(g.subs, fn)
}

// Enter asks the server to accept secret. The gate only moves to Admin on
// acceptance; any failure leaves it where it was.
func (g *Gate) Enter(ctx context.Context, secret string) error {
	if secret == "" {
		return ErrRejected
	}

	s, err := g.auth.OpenSession(ctx, secret)
	if err != nil {
		switch client.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusBadRequest:
			return ErrRejected
		default:
			return fmt.Errorf("open admin session: %w", err)
		}
	}

	g.auth.SetToken(s.Token)
	g.prefs.Admin = true
	g.prefs.Token = s.Token
	g.transition(Admin)

	if err := g.prefs.Save(); err != nil {
		return fmt.Errorf("persist admin session: %w", err)
	}
	return nil
}

// Exit always returns to Guest. Revoking the token on the server is best-effort.
func (g *Gate) Exit(ctx context.Context) error {
	if err := g.auth.CloseSession(ctx); err != nil {
		g.l.Warn("failed to revoke admin session", zap.Error(err))
	}

	g.auth.SetToken("")
	g.prefs.Admin = false
	g.prefs.Token = ""
	g.transition(Guest)

	if err := g.prefs.Save(); err != nil {
		return fmt.Errorf("persist guest state: %w", err)
	}
	return nil
}

func (g *Gate) transition(to State) {
	g.mu.Lock()
	g.state = to
	subs := make([]func(State), len(g.subs))
	copy(subs, g.subs)
	g.mu.Unlock()

	for _, fn := range subs {
		fn(to)
	}
}
