// pageform-tui renders the two pages in a terminal. With --serve it also
// runs the web pages on the same store, so a browser submission shows up on
// the terminal's page two and the other way around.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"pageform/internal/config"
	apphttp "pageform/internal/http"
	"pageform/internal/logging"
	"pageform/internal/state"
	"pageform/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var serve bool
	var logOutput string

	flags := pflag.NewFlagSet("pageform-tui", pflag.ContinueOnError)
	config.AddFlags(flags)
	flags.BoolVar(&serve, "serve", false, "also serve the web pages on the same store")
	flags.StringVar(&logOutput, "log-output", "", "write logs to this file (discarded otherwise)")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var out io.Writer = io.Discard
	if logOutput != "" {
		file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log output: %w", err)
		}
		defer file.Close()
		out = file
	}
	logger, err := logging.New(out, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	store := state.NewStore(logger)

	if serve {
		serveCtx, cancelServe := context.WithCancel(context.Background())
		srv := startServer(serveCtx, cfg, store, logger)
		defer func() {
			cancelServe()
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warnf("http shutdown: %v", err)
			}
		}()
	}

	model := tui.NewModel(store, cfg.DebugFormat())
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func startServer(ctx context.Context, cfg config.Config, store *state.Store, logger *logrus.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	apphttp.NewHandler(store, logger, cfg.DebugFormat(), cfg.Server.KeepAlive).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("http server: %v", err)
		}
	}()
	return srv
}
