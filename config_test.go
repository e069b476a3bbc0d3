package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveRoot(t *testing.T) {
	t.Run("Explicit", func(t *testing.T) {
		dir := t.TempDir()
		cfg := defaultConfig()
		cfg.Root = dir

		got, err := cfg.resolveRoot()
		if err != nil {
			t.Fatal(err)
		}
		want, _ := filepath.Abs(dir)
		if got != want {
			t.Errorf("resolveRoot = %q, want %q", got, want)
		}
	})

	t.Run("Executable", func(t *testing.T) {
		got, err := defaultConfig().resolveRoot()
		if err != nil {
			t.Fatal(err)
		}
		exe, _ := os.Executable()
		exe, _ = filepath.EvalSymlinks(exe)
		if got != filepath.Dir(exe) {
			t.Errorf("resolveRoot = %q, want %q", got, filepath.Dir(exe))
		}
	})

	t.Run("NotADirectory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "index.html")
		writeFile(t, filepath.Dir(file), "index.html", "x")
		cfg := defaultConfig()
		cfg.Root = file

		if _, err := cfg.resolveRoot(); err == nil {
			t.Error("expected an error for a file root")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("Overrides", func(t *testing.T) {
		t.Setenv(envRoot, "/srv/site")
		t.Setenv(envNoBrowser, "1")
		cfg := defaultConfig()
		cfg.Root = "/elsewhere"
		cfg.applyEnv()

		if cfg.Root != "/srv/site" {
			t.Errorf("Root = %q, want /srv/site", cfg.Root)
		}
		if cfg.OpenBrowser {
			t.Error("OpenBrowser = true, want false")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		t.Setenv(envRoot, "")
		t.Setenv(envNoBrowser, "")
		cfg := defaultConfig()
		cfg.applyEnv()

		if cfg.Root != "" {
			t.Errorf("Root = %q, want empty", cfg.Root)
		}
		if !cfg.OpenBrowser {
			t.Error("OpenBrowser = false, want true")
		}
	})
}
