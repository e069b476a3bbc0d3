package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mafredri/cdp/devtool"
)

const (
	defaultDevtoolsHost    = "127.0.0.1:9222"
	devtoolsRequestTimeout = 5 * time.Second
)

// openInDevtools shows pageURL in a Chrome instance that runs with remote
// debugging enabled. A tab already showing the server is brought to front
// instead of opening a duplicate.
func openInDevtools(ctx context.Context, devtoolsURL, pageURL string) error {
	ctx, cancel := context.WithTimeout(ctx, devtoolsRequestTimeout)
	defer cancel()

	dt := devtool.New(devtoolsURL)
	targets, err := dt.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}
	for _, t := range targets {
		if t.Type == devtool.Page && strings.HasPrefix(t.URL, pageURL) {
			log.Printf("[DEVTOOLS_ACTIVATE] [%s] [%s]", t.ID, t.URL)
			if err := dt.Activate(ctx, t); err != nil {
				return fmt.Errorf("failed to activate target %s: %w", t.ID, err)
			}
			return nil
		}
	}
	t, err := dt.CreateURL(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", pageURL, err)
	}
	log.Printf("[DEVTOOLS_OPEN] [%s] [%s]", t.ID, pageURL)
	return nil
}

// detectDevtoolsHost finds the remote debugging address of a running
// Chrome from the DevToolsActivePort file in its profile directory. When no
// profile yields a port it returns defaultDevtoolsHost with an error saying
// why.
func detectDevtoolsHost(baseDir string) (string, error) {
	profiles := chromeProfiles(baseDir)
	if len(profiles) == 0 {
		return defaultDevtoolsHost, fmt.Errorf("no chrome profile under %s", baseDir)
	}
	var errs []error
	for _, dir := range profiles {
		port, err := readActivePort(dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), nil
	}
	return defaultDevtoolsHost, errors.Join(errs...)
}

// chromeProfiles lists BROWSER_PROFILE_DIR if set, else the Chrome and
// Chromium profile directories directly under baseDir.
func chromeProfiles(baseDir string) []string {
	if pd, ok := os.LookupEnv("BROWSER_PROFILE_DIR"); ok {
		return []string{pd}
	}
	var dirs []string
	for _, pattern := range []string{".com.google.Chrome*", ".org.chromium.Chromium*"} {
		matches, _ := filepath.Glob(filepath.Join(baseDir, pattern))
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && fi.IsDir() {
				dirs = append(dirs, m)
			}
		}
	}
	return dirs
}

// readActivePort parses the first line of dir/DevToolsActivePort.
func readActivePort(dir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dir, "DevToolsActivePort"))
	if err != nil {
		return 0, err
	}
	first, _, _ := strings.Cut(string(data), "\n")
	port, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s: bad DevToolsActivePort %q", dir, first)
	}
	return port, nil
}
