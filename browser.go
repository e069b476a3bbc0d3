package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pkg/browser"
)

func init() {
	// xdg-open and friends chatter on stdout, which carries the banner.
	browser.Stdout = io.Discard
}

type openFunc func(ctx context.Context, url string) error

// launchBrowser opens url once after delay. It is fire-and-forget: errors
// are logged and the goroutine is abandoned if ctx ends first.
func launchBrowser(ctx context.Context, delay time.Duration, url string, open openFunc) {
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if err := open(ctx, url); err != nil {
			log.Printf("[BROWSER_ERROR] [%v]", err)
		}
	}()
}

// browserOpener tries a debuggable Chrome first and falls back to the
// system default browser.
func browserOpener(baseDir string, system openFunc) openFunc {
	return func(ctx context.Context, url string) error {
		host, err := detectDevtoolsHost(baseDir)
		if err != nil {
			log.Printf("[DEVTOOLS_HOST] [%v] [using %s]", err, host)
		}
		dtErr := openInDevtools(ctx, "http://"+host, url)
		if dtErr == nil {
			return nil
		}
		if err := system(ctx, url); err != nil {
			return fmt.Errorf("devtools: %v; system: %w", dtErr, err)
		}
		log.Printf("[BROWSER] [%s]", url)
		return nil
	}
}

// openSystemBrowser hands url to the platform's default browser.
// pkg/browser takes no context, so ctx is ignored.
func openSystemBrowser(_ context.Context, url string) error {
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("default browser: %w", err)
	}
	return nil
}
