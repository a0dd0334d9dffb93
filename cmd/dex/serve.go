package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dex/internal/platform/httpapi"
	"github.com/vovakirdan/tui-dex/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagHTTPAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rosters over SSH or HTTP",
	Long: `Start a long-running server.

  dex serve ssh   - the roster browser for anyone with an SSH client
  dex serve http  - a JSON API over the cached rosters`,
}

var serveSSHCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Serve the roster browser over SSH",
	Long: `Start an SSH server where every connection gets its own roster browser.

Rosters and search history are shared by all sessions. Spreadsheet export
is disabled over SSH.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dex/host_key

Examples:
  dex serve ssh                           # Listen on the configured address
  dex serve ssh --addr :2222              # Listen on port 2222
  dex serve ssh --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServeSSH,
}

var serveHTTPCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve rosters as JSON over HTTP",
	Long: `Start an HTTP server with the roster API:

  GET /api/regions
  GET /api/:region/?q=&type1=&type2=&limit=&offset=&<k>_op=&<k>_line=
  GET /api/stats?base=&hp=
  GET /healthz

Examples:
  dex serve http
  dex serve http --addr :9000
  curl 'localhost:8080/api/national/?type1=fire&s_op=gte&s_line=100'`,
	RunE: runServeHTTP,
}

func init() {
	serveSSHCmd.Flags().StringVar(&flagSSHAddr, "addr", "", "SSH server address (host:port, default from config)")
	serveSSHCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveSSHCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")

	serveHTTPCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP server address (host:port, default from config)")

	serveCmd.AddCommand(serveSSHCmd)
	serveCmd.AddCommand(serveHTTPCmd)
}

func runServeSSH(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := tui.SSHServerConfig{
		Address:     a.cfg.SSH.Address,
		HostKeyPath: a.cfg.SSH.HostKey,
		IdleTimeout: a.cfg.SSH.IdleTimeout,
		Browser: tui.BrowserOptions{
			Service:    a.svc,
			Region:     a.region,
			PerPage:    a.cfg.Browse.PerPage,
			ShowActual: a.cfg.Browse.ShowActualStats,
		},
		History: a.store,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting dex SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

func runServeHTTP(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.HTTP.Address
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}

	logger := newLogger("dex-http")
	e := httpapi.New(httpapi.NewHandler(a.svc, a.cfg.HTTP.MaxLimit, logger))

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serveHTTP(ctx, e, addr, logger)
}

// serveHTTP runs e until ctx is done and shuts it down. A failure to start
// is returned after the shutdown.
func serveHTTP(ctx context.Context, e *echo.Echo, addr string, logger *log.Logger) error {
	startErr := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
	}()

	var serveErr error
	select {
	case serveErr = <-startErr:
		logger.Error("server error", "error", serveErr)
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}
