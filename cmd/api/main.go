package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tapto-backend/internal/auth"
	"tapto-backend/internal/config"
	"tapto-backend/internal/db"
	"tapto-backend/internal/httpserver"
	"tapto-backend/internal/metrics"
	activityrepo "tapto-backend/internal/repository/activity"
	addressrepo "tapto-backend/internal/repository/address"
	cartrepo "tapto-backend/internal/repository/cart"
	driverrepo "tapto-backend/internal/repository/driver"
	jobrepo "tapto-backend/internal/repository/job"
	orderrepo "tapto-backend/internal/repository/order"
	productrepo "tapto-backend/internal/repository/product"
	statsrepo "tapto-backend/internal/repository/stats"
	userrepo "tapto-backend/internal/repository/user"
	"tapto-backend/internal/scheduler"
	activitysvc "tapto-backend/internal/service/activity"
	addrsvc "tapto-backend/internal/service/address"
	adminsvc "tapto-backend/internal/service/admin"
	cartsvc "tapto-backend/internal/service/cart"
	driversvc "tapto-backend/internal/service/driver"
	ordersvc "tapto-backend/internal/service/order"
	productsvc "tapto-backend/internal/service/product"
	usersvc "tapto-backend/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiry)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	addressRepo := addressrepo.NewPostgres(dbpool)
	driverRepo := driverrepo.NewPostgres(dbpool)
	activityRepo := activityrepo.NewPostgres(dbpool)
	jobRepo := jobrepo.NewPostgres(dbpool)
	statsRepo := statsrepo.NewPostgres(dbpool)

	userService := usersvc.New(userRepo, tokens, activityRepo, logger)
	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	orderService := ordersvc.New(orderRepo, productRepo, addressRepo, driverRepo, jobRepo, cfg.ConfirmDelay, logger)
	addressService := addrsvc.New(addressRepo)
	driverService := driversvc.New(driverRepo)
	activityService := activitysvc.New(activityRepo)
	adminService := adminsvc.New(statsRepo)

	worker := scheduler.New(jobRepo, orderService, cfg.WorkerInterval, logger)
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go worker.Run(workerCtx)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Users:       userService,
		Carts:       cartService,
		Orders:      orderService,
		Products:    productService,
		Addresses:   addressService,
		Drivers:     driverService,
		Activities:  activityService,
		Admin:       adminService,
		Tokens:      tokens,
		Metrics:     metrics.NewServerMetrics("api"),
		CORSOrigins: cfg.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
