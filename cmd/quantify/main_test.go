package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/quantify/internal/cli"
	"github.com/rshade/quantify/internal/config"
)

func TestRun(t *testing.T) {
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), config.FileName))
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"--version"}, 0},
		{"conversion", []string{"convert", "1", "km", "m"}, 0},
		{"incompatible units", []string{"convert", "1", "kg", "m"}, 1},
		{"unknown command", []string{"teleport"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.args))
		})
	}
}

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		if version == "" {
			t.Error("expected version to be non-empty")
		}
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version)
		if root == nil {
			t.Error("expected root command to be non-nil")
		}
		if root.Use == "" {
			t.Error("expected root command to have a use string")
		}
	})
}
