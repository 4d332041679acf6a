package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vathanak/portfolio/internal/config"
	"github.com/vathanak/portfolio/internal/content"
	"github.com/vathanak/portfolio/internal/logging"
	"github.com/vathanak/portfolio/internal/server"
)

const shutdownTimeout = 10 * time.Second

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Run the web server. The content document is fetched once at startup and
kept in memory for both languages. A local document is reloaded when the file
changes, unless CONTENT_WATCH=false.

Example:
  portfolio serve
  PORT=3000 CONTENT_SOURCE=https://example.com/data.json portfolio serve`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if getVerbose() {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if os.Getenv(gin.EnvGinMode) == "" && cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib := content.NewLibrary(content.NewSource(cfg.ContentSource, cfg.ContentTimeout), logger)
	if _, err := lib.Document(ctx); err != nil {
		// Pages show the loading state until a later request succeeds.
		logger.Warn("content not available at startup",
			zap.String("source", cfg.ContentSource), zap.Error(err))
	}
	if cfg.ContentWatch && !cfg.IsRemoteContent() {
		go func() {
			if err := content.Watch(ctx, lib, cfg.ContentSource, logger); err != nil {
				logger.Error("content watcher stopped", zap.Error(err))
			}
		}()
	}

	if cfg.MailTransport == config.TransportEmailJS && !cfg.EmailJS.Configured() {
		logger.Warn("EmailJS credentials missing, contact form will fail")
	}

	srv, err := server.New(server.Options{
		Library:   lib,
		Sender:    cfg.Sender(),
		Logger:    logger,
		StaticDir: cfg.StaticDir,
	})
	if err != nil {
		return errors.Wrap(err, "failed to build server")
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Info("server listening",
		zap.String("addr", cfg.Addr()),
		zap.String("content", cfg.ContentSource),
		zap.String("mail", cfg.MailTransport))

	select {
	case <-ctx.Done():
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server failed")
		}
		return nil
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = httpServer.Shutdown(shutdownCtx)
	if err != nil {
		return errors.Wrap(err, "failed to shut down cleanly")
	}
	return nil
}
