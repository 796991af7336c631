package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/chanqt/boardinghouse/internal/config"
	"github.com/chanqt/boardinghouse/internal/repository/mongodb"
	"github.com/chanqt/boardinghouse/internal/repository/recordstore"
	"github.com/chanqt/boardinghouse/internal/repository/sheets"
	"github.com/chanqt/boardinghouse/internal/scheduler"
	"github.com/chanqt/boardinghouse/internal/server/handlers"
	"github.com/chanqt/boardinghouse/internal/server/router"
	"github.com/chanqt/boardinghouse/internal/service/alerts"
	"github.com/chanqt/boardinghouse/internal/service/engine"
	"github.com/chanqt/boardinghouse/internal/service/ledger"
	reportingsvc "github.com/chanqt/boardinghouse/internal/service/reporting"
	"github.com/chanqt/boardinghouse/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ledgerStore, err := mongodb.NewLedgerStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init removal ledger store", zap.Error(err))
	}
	defer func() {
		if err := ledgerStore.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	removedSvc, err := ledger.NewService(context.Background(), ledgerStore, baseLogger.Named("svc.ledger"))
	if err != nil {
		baseLogger.Fatal("failed to load removal ledger", zap.Error(err))
	}

	recordStore := recordstore.NewAPIRepository(cfg.RecordStore.BaseURL, baseLogger.Named("repo.recordstore"))

	// The sheet export is optional; without credentials the report stays
	// available over HTTP only.
	var reportSink sheets.ReportSink
	if cfg.SheetsEnabled() {
		reportSink, err = sheets.NewGoogleSheetSink(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets report sink", zap.Error(err))
		}
		baseLogger.Info("sheets report export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, report export disabled")
	}

	scanner := alerts.NewScanner(cfg.Alerts.SpanDays, cfg.Alerts.HorizonDays, baseLogger.Named("svc.alerts"))
	eng := engine.New(recordStore, removedSvc, scanner, baseLogger.Named("svc.engine"))
	reportingSvc := reportingsvc.NewService(recordStore, removedSvc, reportSink, baseLogger.Named("svc.reporting"))

	engineHandler := handlers.NewEngineHandler(eng, baseLogger.Named("handlers.engine"))
	tenantHandler := handlers.NewTenantHandler(removedSvc, reportingSvc, baseLogger.Named("handlers.tenant"))
	ginEngine := router.New(engineHandler, tenantHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, eng, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      ginEngine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
