package main

import (
	"log/slog"
	"testing"

	"github.com/deurzen/wzrd/internal/config"
)

func TestSlogLevel(t *testing.T) {
	cases := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := slogLevel(tc.name); got != tc.want {
			t.Errorf("slogLevel(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMarginPadding(t *testing.T) {
	padding := marginPadding(config.Margin{Left: 1, Right: 2, Top: 3, Bottom: 4})
	if padding.Left != 1 || padding.Right != 2 || padding.Top != 3 || padding.Bottom != 4 {
		t.Fatalf("unexpected padding: %+v", padding)
	}
}
