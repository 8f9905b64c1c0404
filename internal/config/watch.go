package config

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay absorbs the bursts of write events editors produce when
// saving a file.
const debounceDelay = 250 * time.Millisecond

// Watch reloads the config whenever the file at path changes and delivers
// each successfully validated result on the returned channel. The parent
// directory is watched so atomic rename-into-place saves are seen too.
// The returned stop function ends the watch and closes the channel.
func Watch(path string, logger *slog.Logger) (<-chan *Config, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	configs := make(chan *Config, 1)
	done := make(chan struct{})

	go func() {
		defer close(configs)

		var pending <-chan time.Time

		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				pending = time.After(debounceDelay)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watch error", "error", err)
			case <-pending:
				pending = nil

				cfg, err := LoadFromPath(path)
				if err != nil {
					logger.Warn("config reload rejected", "path", path, "error", err)
					continue
				}

				select {
				case configs <- cfg:
				default:
					// Drop the stale pending reload; the newest wins.
					select {
					case <-configs:
					default:
					}
					configs <- cfg
				}
				logger.Info("config reloaded", "path", path)
			}
		}
	}()

	stop := func() {
		close(done)
		watcher.Close()
	}
	return configs, stop, nil
}
