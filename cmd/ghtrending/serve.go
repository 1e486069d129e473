package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdulachik/ghtrending/internal/app"
	"github.com/abdulachik/ghtrending/internal/config"
	"github.com/abdulachik/ghtrending/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort      int
	serveNoBrowser bool
	serveDebug     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Run the web server that exposes GET /api/trending and a small
front end for browsing trending repositories.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from PORT or 8080)")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "do not open the browser on startup")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "enable debug logging and gin debug mode")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if serveNoBrowser {
		cfg.OpenBrowser = false
	}

	if err := cfg.ValidateForServe(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	if serveDebug {
		setupLogging("debug")
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.Server().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Bind before announcing so a taken port fails without a banner.
	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting web server", "addr", ln.Addr().String(), "base_url", cfg.BaseURL)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	localURL := fmt.Sprintf("http://localhost:%d", cfg.Port)
	printBanner(cmd.OutOrStdout(), localURL, networkURL(cfg.Port))

	if cfg.OpenBrowser {
		web.OpenBrowser(localURL, web.BrowserDelay)
	}

	return g.Wait()
}

func printBanner(w io.Writer, local, network string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "🔥 GitHub Trending server running")
	fmt.Fprintf(w, "   Local:   %s\n", local)
	if network != "" {
		fmt.Fprintf(w, "   Network: %s\n", network)
	}
	fmt.Fprintf(w, "   API:     %s/api/trending?since=daily\n", local)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Ctrl+C to stop")
	fmt.Fprintln(w)
}

// networkURL returns the server URL on the first non-loopback IPv4
// address, or "" when there is none.
func networkURL(port int) string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip := ipNet.IP.To4(); ip != nil {
			return fmt.Sprintf("http://%s:%d", ip, port)
		}
	}
	return ""
}
