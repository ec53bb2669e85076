package handlers

import (
	"bufio"
	"fmt"
	"go.uber.org/zap"
	"io"
	"shinkwang-site/app/console/client"
	"shinkwang-site/app/console/config"
	"shinkwang-site/app/console/gate"
	"shinkwang-site/app/console/prefs"
	"sync"
	"time"
)

type App struct {
	cfg   *config.Config
	l     *zap.Logger
	api   *client.Client
	prefs *prefs.Prefs
	gate  *gate.Gate

	out io.Writer
	in  *bufio.Reader

	history []ChatMessage

	lastContent map[string]string
	ticker      *time.Ticker
	stopChan    chan struct{}
	lock        sync.Mutex
}

func NewApp(cfg *config.Config, l *zap.Logger, api *client.Client, p *prefs.Prefs, in io.Reader, out io.Writer) *App {
	a := &App{
		cfg:   cfg,
		l:     l,
		api:   api,
		prefs: p,
		gate:  gate.New(api, p, l),
		out:   out,
		in:    bufio.NewReader(in),
	}
	a.gate.Subscribe(a.announceMode)
	return a
}

func (a *App) Gate() *gate.Gate { return a.gate }

func (a *App) announceMode(s gate.State) {
	if s == gate.Admin {
		a.printf("관리자 모드로 전환되었습니다.\n")
	} else {
		a.printf("관리자 모드가 해제되었습니다.\n")
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
