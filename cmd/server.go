package cmd

import (
	"context"
	"errors"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"goodwill-valuation/internal/delivery/http"
	"goodwill-valuation/internal/repository"
	"goodwill-valuation/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the valuation API server",
	RunE:  Start,
}

func Start(cmd *cobra.Command, args []string) error {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := appDep.Close(); err != nil {
			appDep.log.Error("Failed to close app dependency", zap.Error(err))
		}
	}()

	repo := repository.NewRepository(appDep.cfg, appDep.cache, appDep.db.DB)
	services := service.NewService(appDep.log, repo, appDep.publisher)
	httpHandler := http.NewHttpAPIHandler(appDep.cfg.API, appDep.log, appDep.echo, appDep.validator, services, appDep.db)
	apiServer := NewHTTPServer(appDep, httpHandler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := apiServer.Start(); err != nil && !errors.Is(err, httpNet.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appDep.log.Info("Shutting down gracefully...")
		return apiServer.Stop()
	})

	return g.Wait()
}
