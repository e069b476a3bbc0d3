package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

func parsePort(args []string) (int, error) {
	switch len(args) {
	case 0:
		return defaultPort, nil
	case 1:
		port, err := strconv.Atoi(args[0])
		if err != nil || port < 0 || port > 65535 {
			return 0, fmt.Errorf("invalid port %q", args[0])
		}
		return port, nil
	default:
		return 0, fmt.Errorf("too many arguments: %v", args)
	}
}

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [port]\n\n", prog)
	fmt.Fprintf(w, "Serves the directory holding this program on port (default %d).\n\n", defaultPort)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %s\tdirectory to serve instead (needed under go run, whose binary lives in a temp dir)\n", envRoot)
	fmt.Fprintf(w, "  %s\tset to anything to skip opening a browser\n", envNoBrowser)
	fmt.Fprintln(w, "  BROWSER_PROFILE_DIR\tChrome profile holding DevToolsActivePort")
}

func main() {
	flag.Usage = func() { usage(flag.CommandLine.Output(), os.Args[0]) }
	flag.Parse()

	cfg := defaultConfig()
	port, err := parsePort(flag.Args())
	if err != nil {
		fmt.Fprintln(flag.CommandLine.Output(), err)
		flag.Usage()
		os.Exit(2)
	}
	cfg.Port = port
	cfg.applyEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	open := browserOpener(cfg.DevtoolsBaseDir, openSystemBrowser)
	if err := Run(ctx, cfg, os.Stdout, open); err != nil {
		stop()
		log.Fatalf("[INIT_ERROR] [%v]", err)
	}
}
