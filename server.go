package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"
)

const shutdownTimeout = 3 * time.Second

// BindError reports that the listening socket could not be opened.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to listen on %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

func root(dir string) http.Handler {
	return accessLog(noCache(http.FileServer(http.Dir(dir))))
}

func listen(port int) (net.Listener, error) {
	addr := net.JoinHostPort("", strconv.Itoa(port))
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}
	return l, nil
}

// Run binds cfg.Port and serves cfg's document root until ctx is done.
// Cancellation is a clean stop and yields a nil error.
func Run(ctx context.Context, cfg Config, out io.Writer, open openFunc) error {
	dir, err := cfg.resolveRoot()
	if err != nil {
		return err
	}
	l, err := listen(cfg.Port)
	if err != nil {
		return err
	}
	defer l.Close()
	return serve(ctx, l, dir, cfg, out, open)
}

func serve(ctx context.Context, l net.Listener, dir string, cfg Config, out io.Writer, open openFunc) error {
	port := l.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://localhost:%d/", port)

	printBanner(out, port, dir)

	server := &http.Server{
		Handler:           root(dir),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if cfg.OpenBrowser && open != nil {
		launchBrowser(ctx, cfg.BrowserDelay, url, open)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(l)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[SHUTDOWN_ERROR] [%v]", err)
		server.Close()
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "🛑 Server stopped by user")
	return nil
}

func printBanner(out io.Writer, port int, dir string) {
	fmt.Fprintf(out, "🚀 Development server running at http://localhost:%d\n", port)
	fmt.Fprintf(out, "📂 Serving %s\n", dir)
	fmt.Fprintf(out, "📱 Test on mobile: http://%s:%d\n", lanHost(), port)
	fmt.Fprintln(out, "🔧 Press Ctrl+C to stop the server")
}

// lanHost returns the first non-loopback IPv4 address of this machine so
// that phones on the same network can reach the server.
func lanHost() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "localhost"
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.IsLinkLocalUnicast() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return "localhost"
}
