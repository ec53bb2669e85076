package handlers

import (
	"context"
	"go.uber.org/zap"
	"shinkwang-site/app/sections"
	"slices"
	"time"
)

// Watch re-fetches site content every WatchInterval and reports what changed,
// until ctx is done.
func (a *App) Watch(ctx context.Context) error {
	a.Start(ctx)
	<-ctx.Done()
	a.Stop()
	return nil
}

func (a *App) Start(ctx context.Context) {
	a.refresh(ctx)

	a.ticker = time.NewTicker(a.cfg.WatchInterval)
	a.stopChan = make(chan struct{})
	go a.loop(ctx)
}

func (a *App) loop(ctx context.Context) {
	for {
		select {
		case <-a.ticker.C:
			a.l.Debug("watch tick")
			a.refresh(ctx)
		case <-a.stopChan:
			a.l.Debug("stop watch loop")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) Stop() {
	a.ticker.Stop()
	close(a.stopChan)
}

// refresh returns the keys that changed since the previous fetch.
func (a *App) refresh(ctx context.Context) []string {
	// skip this round while the previous one is still running
	if !a.lock.TryLock() {
		return nil
	}
	defer a.lock.Unlock()

	content, err := a.api.Content(ctx)
	if err != nil {
		a.l.Error("failed to fetch content", zap.Error(err))
		return nil
	}

	if a.lastContent == nil {
		a.lastContent = content
		a.printf("[%s] %d개 항목을 불러왔습니다.\n", time.Now().Format("15:04:05"), len(content))
		return nil
	}

	changed := ChangedKeys(a.lastContent, content)
	a.lastContent = content
	for _, key := range changed {
		label := key
		if d, ok := sections.Lookup(key); ok {
			label = d.Label() + " (" + key + ")"
		}
		a.printf("[%s] 변경됨: %s\n", time.Now().Format("15:04:05"), label)
	}
	return changed
}

// ChangedKeys lists, sorted, every key whose value differs between prev and next.
func ChangedKeys(prev, next map[string]string) []string {
	var out []string
	for k, v := range next {
		if old, exist := prev[k]; !exist || old != v {
			out = append(out, k)
		}
	}
	for k := range prev {
		if _, exist := next[k]; !exist {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
