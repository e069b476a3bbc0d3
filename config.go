package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultPort         = 8000
	defaultBrowserDelay = 1500 * time.Millisecond
	devtoolsBaseDir     = "/tmp"

	envRoot      = "DEVSERVER_ROOT"
	envNoBrowser = "DEVSERVER_NO_BROWSER"
)

type Config struct {
	Port         int
	Root         string
	BrowserDelay time.Duration
	OpenBrowser  bool

	// DevtoolsBaseDir is searched for Chrome profile directories holding a
	// DevToolsActivePort file.
	DevtoolsBaseDir string
}

func defaultConfig() Config {
	return Config{
		Port:            defaultPort,
		BrowserDelay:    defaultBrowserDelay,
		OpenBrowser:     true,
		DevtoolsBaseDir: devtoolsBaseDir,
	}
}

// applyEnv overrides cfg from the environment. A root set by the caller is
// kept unless DEVSERVER_ROOT is present.
func (cfg *Config) applyEnv() {
	if root, ok := os.LookupEnv(envRoot); ok && root != "" {
		cfg.Root = root
	}
	if v, ok := os.LookupEnv(envNoBrowser); ok && v != "" {
		cfg.OpenBrowser = false
	}
}

// resolveRoot returns the absolute document root, defaulting to the
// directory holding the running executable.
func (cfg Config) resolveRoot() (string, error) {
	root := cfg.Root
	if root == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		root = filepath.Dir(exe)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid document root %q: %w", root, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("document root: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("document root %q is not a directory", abs)
	}
	return abs, nil
}
