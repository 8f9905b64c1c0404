package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/deurzen/wzrd/internal/client"
	"github.com/deurzen/wzrd/internal/config"
	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/ipc"
	"github.com/deurzen/wzrd/internal/runtimepath"
	"github.com/deurzen/wzrd/internal/winsys"
	"github.com/deurzen/wzrd/internal/wm"
	"github.com/deurzen/wzrd/internal/x11"
	"github.com/deurzen/wzrd/internal/zone"
)

const ipcTimeout = 5 * time.Second

func runWM(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to config file")
	logLevel := fs.String("log-level", "", "override configured log level")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wzrd run [-config <path>] [-log-level <level>]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the window manager in the foreground.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	path := *configPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(level),
	}))

	conn, err := x11.Connect(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to display: %v\n", err)
		return 1
	}

	keyBindings, mouseBindings := buildBindings(cfg, conn, logger)

	defaultLayout, ok := wm.LayoutKindByName(cfg.DefaultLayout)
	if !ok {
		logger.Warn("unknown default layout", "layout", cfg.DefaultLayout)
	}

	model := wm.New(conn, wm.Config{
		WorkspaceNames:    cfg.Workspaces,
		DefaultLayout:     defaultLayout,
		GapSize:           cfg.GapSize,
		Margin:            marginPadding(cfg.Margin),
		FocusFollowsMouse: cfg.FocusFollowsMouse,
		IgnoredClasses:    cfg.IgnoredClasses,
		IgnoredInstances:  cfg.IgnoredInstances,
		KeyBindings:       keyBindings,
		MouseBindings:     mouseBindings,
		Logger:            logger,
	})

	handler := &modelHandler{
		model:      model,
		conn:       conn,
		configPath: path,
		logger:     logger,
	}

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		logger.Warn("IPC disabled", "error", err)
	} else {
		server := ipc.NewServer(socketPath, handler, logger)
		if err := server.Start(); err != nil {
			logger.Warn("IPC disabled", "error", err)
		} else {
			defer server.Stop()
		}
	}

	configs, stopWatch, err := config.Watch(path, logger)
	if err != nil {
		logger.Warn("config watch disabled", "error", err)
	} else {
		defer stopWatch()
		go func() {
			for cfg := range configs {
				handler.apply(cfg)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				logger.Info("received SIGHUP, reloading config")
				if err := handler.Reload(); err != nil {
					logger.Warn("config reload failed", "error", err)
				}
			case os.Interrupt, syscall.SIGTERM:
				model.Enqueue(func(m *wm.Model) { m.Exit() })
				return
			}
		}
	}()

	model.Run()
	return 0
}

func slogLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func marginPadding(margin config.Margin) geometry.Padding {
	return geometry.Padding{
		Left:   margin.Left,
		Right:  margin.Right,
		Top:    margin.Top,
		Bottom: margin.Bottom,
	}
}

// buildBindings translates the configured chord-to-action tables into the
// resolved binding tables the model grabs. Unknown actions and chords the
// display cannot resolve are skipped with a warning.
func buildBindings(cfg *config.Config, conn *x11.Connection, logger *slog.Logger) (wm.KeyBindings, wm.MouseBindings) {
	keyBindings := make(wm.KeyBindings, len(cfg.KeyBindings))
	for spec, name := range cfg.KeyBindings {
		chord, err := config.ParseKeyChord(spec)
		if err != nil {
			logger.Warn("invalid key chord", "chord", spec, "error", err)
			continue
		}

		action, ok := wm.ResolveKeyAction(name)
		if !ok {
			logger.Warn("unknown key action", "chord", spec, "action", name)
			continue
		}

		keyCode, ok := conn.ResolveKey(chord.Spec)
		if !ok {
			logger.Warn("unresolvable key chord", "chord", spec)
			continue
		}

		keyBindings[keyCode] = action
	}

	mouseBindings := make(wm.MouseBindings, len(cfg.MouseBindings))
	for spec, name := range cfg.MouseBindings {
		chord, err := config.ParseMouseChord(spec)
		if err != nil {
			logger.Warn("invalid mouse chord", "chord", spec, "error", err)
			continue
		}

		action, ok := wm.ResolveMouseAction(name)
		if !ok {
			logger.Warn("unknown mouse action", "chord", spec, "action", name)
			continue
		}

		mouseBindings[winsys.MouseInput{
			Target:    chord.Target,
			Button:    chord.Button,
			Modifiers: chord.Modifiers,
		}] = action
	}

	return keyBindings, mouseBindings
}

// modelHandler answers IPC commands by relaying them onto the model's
// event loop and waiting for the outcome.
type modelHandler struct {
	model      *wm.Model
	conn       *x11.Connection
	configPath string
	logger     *slog.Logger
}

func (h *modelHandler) do(f func(m *wm.Model) error) error {
	result := make(chan error, 1)
	h.model.Enqueue(func(m *wm.Model) {
		result <- f(m)
	})

	select {
	case err := <-result:
		return err
	case <-time.After(ipcTimeout):
		return errors.New("window manager did not respond")
	}
}

// apply pushes reloadable settings from cfg into the model.
func (h *modelHandler) apply(cfg *config.Config) {
	keyBindings, mouseBindings := buildBindings(cfg, h.conn, h.logger)
	h.model.Enqueue(func(m *wm.Model) {
		m.SetBindings(keyBindings, mouseBindings)
		m.SetIgnores(cfg.IgnoredClasses, cfg.IgnoredInstances)
		m.SetFocusFollowsMouse(cfg.FocusFollowsMouse)
	})
}

func (h *modelHandler) Reload() error {
	cfg, err := config.LoadFromPath(h.configPath)
	if err != nil {
		return err
	}
	h.apply(cfg)
	return nil
}

func (h *modelHandler) Status() (ipc.StatusData, error) {
	var status ipc.StatusData
	err := h.do(func(m *wm.Model) error {
		active := int(m.ActiveWorkspace())
		status.WorkspaceIndex = active
		status.ClientCount = m.ClientCount()
		for _, ws := range m.ReportWorkspaces() {
			if ws.Index == active {
				status.ActiveWorkspace = ws.Name
				status.ActiveLayout = ws.Layout
				break
			}
		}
		return nil
	})
	return status, err
}

func (h *modelHandler) Workspaces() ([]ipc.WorkspaceInfo, error) {
	var workspaces []ipc.WorkspaceInfo
	err := h.do(func(m *wm.Model) error {
		for _, ws := range m.ReportWorkspaces() {
			workspaces = append(workspaces, ipc.WorkspaceInfo{
				Index:       ws.Index,
				Name:        ws.Name,
				Layout:      ws.Layout,
				ClientCount: ws.Clients,
				Active:      ws.Active,
			})
		}
		return nil
	})
	return workspaces, err
}

func (h *modelHandler) ActivateWorkspace(workspace string) error {
	return h.do(func(m *wm.Model) error {
		reports := m.ReportWorkspaces()

		if number, err := strconv.Atoi(workspace); err == nil {
			if number < 1 || number > len(reports) {
				return fmt.Errorf("no workspace %d", number)
			}
			m.ActivateWorkspace(cycle.Index(number - 1))
			return nil
		}

		for _, ws := range reports {
			if ws.Name == workspace {
				m.ActivateWorkspace(cycle.Index(ws.Index))
				return nil
			}
		}
		return fmt.Errorf("no workspace named %q", workspace)
	})
}

func (h *modelHandler) SetLayout(layout string) error {
	kind, ok := wm.LayoutKindByName(layout)
	if !ok {
		return fmt.Errorf("unknown layout %q", layout)
	}
	return h.do(func(m *wm.Model) error {
		if err := m.SetLayout(kind); err != nil && !errors.Is(err, zone.ErrEarlyStop) {
			return err
		}
		return nil
	})
}

func (h *modelHandler) JumpClient(property, match, pattern string) error {
	var method client.MatchMethod
	switch match {
	case "", "equals":
		method = client.MatchEquals
	case "contains":
		method = client.MatchContains
	default:
		return fmt.Errorf("unknown match method %q", match)
	}

	var criterium wm.JumpCriterium
	switch property {
	case "name":
		criterium = wm.JumpByName(method, pattern)
	case "", "class":
		criterium = wm.JumpByClass(method, pattern)
	case "instance":
		criterium = wm.JumpByInstance(method, pattern)
	default:
		return fmt.Errorf("unknown property %q", property)
	}

	return h.do(func(m *wm.Model) error {
		m.JumpClient(criterium)
		return nil
	})
}
