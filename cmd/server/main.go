package main

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/horizonbank/banking-api/internal/api"
	"github.com/horizonbank/banking-api/internal/core/service"
	"github.com/horizonbank/banking-api/internal/crypto"
	"github.com/horizonbank/banking-api/internal/infrastructure/aggregator"
	mongodb "github.com/horizonbank/banking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/horizonbank/banking-api/internal/infrastructure/db/redis"
	"github.com/horizonbank/banking-api/internal/infrastructure/payments"
	"github.com/horizonbank/banking-api/internal/pkg/config"
	"github.com/horizonbank/banking-api/pkg/logger"
)

const sessionTTL = 24 * time.Hour

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	identityRepo := mongodb.NewIdentityRepository(db, cfg.Mongo.AccountCollection)
	userRepo := mongodb.NewUserRepository(db, cfg.Mongo.UserCollection)
	bankRepo := mongodb.NewBankRepository(db, cfg.Mongo.BankCollection)
	if err := identityRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure account indexes")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := bankRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure bank indexes")
	}

	sessionStore := redisdb.NewSessionStore(rdb)
	homeCache := redisdb.NewHomeCache(rdb)

	// --- Vendor clients ---
	aggregatorClient := aggregator.NewClient(aggregator.Config{
		BaseURL:  cfg.Aggregator.BaseURL,
		ClientID: cfg.Aggregator.ClientID,
		Secret:   cfg.Aggregator.Secret,
	}, log)

	paymentsClient := payments.NewClient(payments.Config{
		BaseURL: cfg.Payments.BaseURL,
		Key:     cfg.Payments.Key,
		Secret:  cfg.Payments.Secret,
	}, log)

	key, err := hex.DecodeString(cfg.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("ENCRYPTION_KEY must be hex encoded")
	}
	encryptor, err := crypto.NewEncryptor(key)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise encryptor")
	}

	// --- Services ---
	authService := service.NewAuthService(identityRepo, userRepo, sessionStore, paymentsClient, cfg.JWTSecret, sessionTTL, log)
	linkService := service.NewLinkService(aggregatorClient, paymentsClient, bankRepo, encryptor, homeCache, log)
	bankService := service.NewBankService(userRepo, bankRepo, aggregatorClient, homeCache, log)
	transferService := service.NewTransferService(bankService, paymentsClient, encryptor, log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Link:      linkService,
		Banks:     bankService,
		Transfers: transferService,
		Mongo:     db,
		Redis:     rdb,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
