package handlers

import (
	"context"
	"errors"
	"go.uber.org/zap"
	"shinkwang-site/app/console/gate"
)

func (a *App) AdminEnter(ctx context.Context, secret string) error {
	if a.gate.State() == gate.Admin {
		a.printf("이미 관리자 모드입니다.\n")
		return nil
	}

	if err := a.gate.Enter(ctx, secret); err != nil {
		if errors.Is(err, gate.ErrRejected) {
			a.printf("비밀번호가 올바르지 않습니다.\n")
		}
		return err
	}
	return nil
}

func (a *App) AdminExit(ctx context.Context) error {
	if a.gate.State() == gate.Guest {
		a.printf("관리자 모드가 아닙니다.\n")
		return nil
	}
	return a.gate.Exit(ctx)
}

// AdminStatus compares the local state with the server's view of the token.
// An admin session the server no longer honours is dropped locally.
func (a *App) AdminStatus(ctx context.Context) error {
	if a.gate.State() == gate.Guest {
		a.printf("현재 모드: 방문자\n")
		return nil
	}

	valid, err := a.api.SessionStatus(ctx)
	if err != nil {
		a.l.Warn("failed to check admin session", zap.Error(err))
		a.printf("현재 모드: 관리자 (서버 확인 실패)\n")
		return nil
	}
	if !valid {
		a.printf("관리자 세션이 만료되었습니다.\n")
		return a.gate.Exit(ctx)
	}

	a.printf("현재 모드: 관리자\n")
	return nil
}

// requireAdmin stops admin-only commands early instead of letting the server answer 401.
func (a *App) requireAdmin() error {
	if a.gate.State() != gate.Admin {
		return errNotAdmin
	}
	return nil
}

var errNotAdmin = errors.New("관리자 모드에서만 사용할 수 있습니다 (sgch admin enter)")
