package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		t.Run(env, func(t *testing.T) {
			l, err := NewLogger(env)
			if err != nil {
				t.Fatalf("NewLogger(%q): %v", env, err)
			}
			if l == nil {
				t.Fatal("expected logger")
			}
		})
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info must be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn must be enabled")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestContextLogger(t *testing.T) {
	fallback := zap.NewNop()
	if got := FromContextOr(context.Background(), fallback); got != fallback {
		t.Error("expected fallback without a context logger")
	}

	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)
	if got := FromContext(ctx); got != l {
		t.Error("expected stored logger")
	}
	if got := FromContextOr(ctx, fallback); got != l {
		t.Error("expected stored logger over fallback")
	}
	if FromContext(context.Background()) == nil {
		t.Error("FromContext must never return nil")
	}
}

func TestNewLogger_ProdDefaultLevel(t *testing.T) {
	l, err := NewLogger("prod")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug must be disabled in prod")
	}
}
