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

	"gitlab.com/dirk.krummacker/customer-crm/internal/config"
	"gitlab.com/dirk.krummacker/customer-crm/internal/logger"
	"gitlab.com/dirk.krummacker/customer-crm/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Usage example on the command line:
// > PORT=8080 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	sqlDB, err := service.CreateDatabase(cfg)
	if err != nil {
		return err
	}
	s, err := service.New(sqlDB, log)
	if err != nil {
		sqlDB.Close()
		return err
	}
	defer s.Close()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Router(cfg.RequestLogging()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
