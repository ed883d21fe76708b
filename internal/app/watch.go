package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kobzarvs/qline/internal/logger"
)

const reloadDebounce = 100 * time.Millisecond

// watch posts a reload request when a .toml file next to the config file
// or in its theme directory changes. The reload itself happens on the
// main goroutine between lines.
func (a *App) watch(cfgPath string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(cfgPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	themeDir := filepath.Join(dir, "theme")
	if info, err := os.Stat(themeDir); err == nil && info.IsDir() {
		if err := watcher.Add(themeDir); err != nil {
			logger.Warn("theme directory not watched", "error", err)
		}
	}

	done := make(chan struct{})
	go a.watchLoop(watcher, done)
	return func() {
		close(done)
		_ = watcher.Close()
	}, nil
}

func (a *App) watchLoop(watcher *fsnotify.Watcher, done <-chan struct{}) {
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".toml" {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("config change", "path", ev.Name, "op", ev.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, a.requestReload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher", "error", err)
		}
	}
}

// requestReload records a pending reload; repeated requests coalesce.
func (a *App) requestReload() {
	select {
	case a.reload <- struct{}{}:
	default:
	}
}
