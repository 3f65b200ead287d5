package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/serrano-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/config"
	"github.com/GregMSThompson/serrano-dashboard/internal/handlers"
	"github.com/GregMSThompson/serrano-dashboard/internal/layout"
	"github.com/GregMSThompson/serrano-dashboard/internal/middleware"
	"github.com/GregMSThompson/serrano-dashboard/internal/response"
	"github.com/GregMSThompson/serrano-dashboard/internal/router"
	"github.com/GregMSThompson/serrano-dashboard/internal/services"
	"github.com/GregMSThompson/serrano-dashboard/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	root := &cobra.Command{
		Use:          "api",
		Short:        "Serve the dashboard widget API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	defer bs.Close()
	exitOnError("bootstrap failed", err, bs.Log)

	cat := catalog.Default()

	// stores
	rstore := store.NewRosterStore(bs.DB)
	mstore := store.NewMarketStore(bs.DB)
	lstore := store.NewLayoutStore(bs.Firestore)

	var kpiCache services.KPICache
	if bs.Redis != nil {
		kpiCache = store.NewKPICache(bs.Redis, cfg.KPICacheTTL)
	}

	// services
	geosvc := services.NewGeoService(rstore)
	rostersvc := services.NewRosterService(rstore)
	marketsvc := services.NewMarketService(mstore)
	kpisvc := services.NewKPIService(rstore, mstore, kpiCache)
	dispatcher := services.NewDispatcher(geosvc, rostersvc, marketsvc, bs.Metrics)
	layoutsvc := services.NewLayoutService(cat, func(uid string) layout.Persister {
		return lstore.ForUser(uid)
	})

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.Catalog = cat
	deps.Dispatcher = dispatcher
	deps.KPISvc = kpisvc
	deps.GeoSvc = geosvc
	deps.LayoutSvc = layoutsvc

	opts := router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     bs.Metrics,
	}
	if cfg.AuthEnabled {
		opts.Auth = middleware.NewMiddleware(bs.Firebase).FirebaseAuth
	} else {
		bs.Log.Warn("authentication disabled, all requests act as the local user")
	}

	// router
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.NewRouter(deps, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		bs.Log.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			exitOnError("server start failed", err, bs.Log)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	bs.Log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
