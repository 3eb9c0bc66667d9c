package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kol-marketplace/internal/cache"
	"kol-marketplace/internal/config"
	"kol-marketplace/internal/db"
	"kol-marketplace/internal/httpserver"
	"kol-marketplace/internal/importer"
	"kol-marketplace/internal/invoice"
	cartrepo "kol-marketplace/internal/repository/cart"
	checkoutrepo "kol-marketplace/internal/repository/checkout"
	couponrepo "kol-marketplace/internal/repository/coupon"
	influencerrepo "kol-marketplace/internal/repository/influencer"
	invoicerepo "kol-marketplace/internal/repository/invoice"
	onboardingrepo "kol-marketplace/internal/repository/onboarding"
	pkgrepo "kol-marketplace/internal/repository/pkg"
	userrepo "kol-marketplace/internal/repository/user"
	cartsvc "kol-marketplace/internal/service/cart"
	checkoutsvc "kol-marketplace/internal/service/checkout"
	couponsvc "kol-marketplace/internal/service/coupon"
	influencersvc "kol-marketplace/internal/service/influencer"
	invoicesvc "kol-marketplace/internal/service/invoice"
	onboardingsvc "kol-marketplace/internal/service/onboarding"
	pkgsvc "kol-marketplace/internal/service/pkg"
	"kol-marketplace/internal/storage"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg := config.Load(logger)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	cch, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, logger)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	if cch != nil {
		defer cch.Close()
	}

	store, err := storage.Connect(ctx, storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	}, logger)
	if err != nil {
		logger.Fatalf("connect to minio: %v", err)
	}

	influencerRepo := influencerrepo.NewPostgres(dbpool, logger)
	packageRepo := pkgrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	couponRepo := couponrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	onboardingRepo := onboardingrepo.NewPostgres(dbpool, logger)
	checkoutRepo := checkoutrepo.NewPostgres(dbpool, logger)
	invoiceRepo := invoicerepo.NewPostgres(dbpool, logger)

	couponService := couponsvc.New(couponRepo, cch, logger)
	influencerService := influencersvc.New(influencerRepo, cch)
	packageService := pkgsvc.New(packageRepo)
	cartService := cartsvc.New(cartRepo, couponService)
	onboardingService := onboardingsvc.New(onboardingRepo, userRepo, logger)
	checkoutService := checkoutsvc.New(checkoutRepo, cartService, couponService, cfg.StripeSecretKey, logger)
	renderer := invoice.NewRenderer(cfg.InvoiceCompany, cfg.InvoiceIBAN, cfg.InvoiceBIC)
	invoiceService := invoicesvc.New(invoiceRepo, checkoutService, cartService, userRepo, renderer, store, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Influencers: influencerService,
		Packages:    packageService,
		Carts:       cartService,
		Coupons:     couponService,
		Onboarding:  onboardingService,
		Checkouts:   checkoutService,
		Invoices:    invoiceService,
		Import: func(ctx context.Context, r io.Reader) (int, error) {
			return importer.ArchiveAndRun(ctx, r, packageRepo, store, logger)
		},
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
