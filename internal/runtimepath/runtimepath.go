// Package runtimepath resolves where the control socket of the running
// window manager lives for the current user and display.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir resolves the per-user runtime directory. XDG_RUNTIME_DIR wins when
// set, then an existing /run/user/<uid>, and /tmp/wzrd-runtime-<uid> is
// created as a last resort.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	dir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}

	dir = fmt.Sprintf("/tmp/wzrd-runtime-%d", uid)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create runtime dir: %w", err)
	}
	return dir, nil
}

// SocketPath resolves the control socket path. The socket name carries
// the display, so managers on :0 and :1 do not trample each other.
func SocketPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SocketName(os.Getenv("DISPLAY"))), nil
}

// SocketName derives the socket file name for display, falling back to a
// plain name when no display is known.
func SocketName(display string) string {
	display = strings.TrimPrefix(display, ":")
	if display == "" {
		return "wzrd.sock"
	}

	mangled := strings.Map(func(r rune) rune {
		if r == ':' || r == '/' {
			return '_'
		}
		return r
	}, display)

	return fmt.Sprintf("wzrd-%s.sock", mangled)
}
