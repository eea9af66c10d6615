package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadbridge/domain/model"
	"leadbridge/domain/repository"
	"leadbridge/infrastructure/cache"
	"leadbridge/infrastructure/clients/salesforce"
	"leadbridge/infrastructure/configuration"
	"leadbridge/infrastructure/errorlog"
	"leadbridge/infrastructure/logger"
	"leadbridge/infrastructure/utils"
	httpHandler "leadbridge/interfaces/http"
	"leadbridge/server"
	"leadbridge/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	operator := flag.String("token", "", "print an API bearer token for this operator and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the token printed by -token")
	flag.Parse()

	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// Env files never override variables already set in the process.
	configuration.LoadEnvFromFile("config.env", ".env")

	config, err := configuration.Load()
	if err != nil {
		var cfgErr *model.ConfigError
		if errors.As(err, &cfgErr) {
			logger.GetLogger().WithField("missing", cfgErr.Missing).Fatal("Missing required configuration")
		}
		logger.GetLogger().WithField("error", err).Fatal("Error while loading configuration")
	}
	logger.Configure(config.Logger.Format, config.Logger.Level)

	if *operator != "" {
		token, err := utils.GenerateOperatorToken(*operator, config.App.SecretKey, *tokenTTL)
		if err != nil {
			logger.GetLogger().WithField("error", err).Fatal("Error while generating operator token")
		}
		fmt.Println(token)
		return
	}

	reports := initiateReportStore(ctx, config)

	tokenProvider := salesforce.NewTokenProvider(salesforce.Config{
		ClientID:     config.Salesforce.ClientID,
		ClientSecret: config.Salesforce.ClientSecret,
		Username:     config.Salesforce.Username,
		Password:     config.Salesforce.Password,
		TokenURL:     config.Salesforce.TokenURL,
		Timeout:      config.Batch.RequestTimeout,
	})
	leadSender := salesforce.NewLeadSender(config.Batch.RequestTimeout)

	leadUsecase := usecase.NewLeadUsecase(tokenProvider, leadSender, reports, errorlog.New(), usecase.LeadSettings{
		Campaigns: config.Lead.Campaigns,
		Platforms: config.Lead.Platforms,
		MaxRows:   config.Batch.MaxRows,
	})

	router := server.InitiateRouter(
		httpHandler.NewHealthHandler(),
		httpHandler.NewLeadHandler(leadUsecase),
		config.App.SecretKey,
		config.App.AllowedOrigins,
	)

	g, ctx := errgroup.WithContext(ctx)

	port := config.App.Port
	logger.GetLogger().WithFields(map[string]interface{}{
		"port":      port,
		"campaigns": config.Lead.Campaigns,
		"platforms": config.Lead.Platforms,
	}).Info("Starting application")
	httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.Batch.RequestTimeout+5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Graceful shutdown did not complete")
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// initiateReportStore uses Redis when configured and reachable, otherwise process memory.
func initiateReportStore(ctx context.Context, config *configuration.Config) repository.IReportStore {
	if !config.RedisClient.Enabled() {
		logger.GetLogger().Info("Redis not configured, keeping batch reports in memory")
		return cache.NewMemoryReportStore(config.Batch.ReportTTL)
	}

	redisClient, err := cache.NewCache(
		ctx,
		config.RedisClient.Addr(),
		config.RedisClient.Username,
		config.RedisClient.Password,
		config.RedisClient.DB,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - keeping batch reports in memory")
		return cache.NewMemoryReportStore(config.Batch.ReportTTL)
	}
	logger.GetLogger().WithField("addr", config.RedisClient.Addr()).Info("Redis client initialized successfully.")
	return cache.NewRedisReportStore(redisClient, config.Batch.ReportTTL)
}
