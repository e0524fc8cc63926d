package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	Init()
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Fatalf("global level: got %v want %v", got, zerolog.DebugLevel)
	}
}

func TestInit_DefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	Init()
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Fatalf("global level: got %v want %v", got, zerolog.InfoLevel)
	}
}

func TestInit_BadLevelFallsBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouty")

	Init()
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Fatalf("global level: got %v want %v", got, zerolog.InfoLevel)
	}
}
