package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"kalaha/internal/adapters"
	"kalaha/internal/bootstrap"
	"kalaha/internal/bot"
	gameDelivery "kalaha/internal/delivery/game"
	ownMiddleware "kalaha/internal/middleware"
	"kalaha/internal/repository"
	gameuc "kalaha/internal/usecase/game"
	botRPC "kalaha/microservices/proto"
)

const shutdownTimeout = 5 * time.Second

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func (d *dataBaseAdapters) Close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
}

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		panic("failed to setup configuration: " + err.Error())
	}
	logger := NewLogger(cfg.LogDevelopment)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	databaseAdapters := &dataBaseAdapters{}
	defer databaseAdapters.Close(context.Background())

	store, moves := initStorage(ctx, logger, cfg, databaseAdapters)

	picker, closePicker := initBotPicker(logger, cfg)
	defer closePicker()

	gameUC := gameuc.NewGameUseCase(cfg.Board(), store, moves, picker, logger)

	r := chi.NewRouter()
	Router(r, cfg.IsLocalCors, gameDelivery.NewGameHandler(logger, gameUC))

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %v", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("Failed to start server", "error", err)
	}
}

func NewLogger(development bool) *zap.SugaredLogger {
	build := zap.NewProduction
	if development {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func Router(r *chi.Mux, isLocalCors bool, game *gameDelivery.GameHandler) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	game.Routes(r)
}

func initStorage(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config, databaseAdapters *dataBaseAdapters) (gameuc.GameStore, gameuc.MoveLog) {
	if cfg.Storage == bootstrap.StorageMemory {
		log.Info("Using in-memory storage")
		return repository.NewGameMapStorage(), repository.NewMoveLogMap()
	}

	databaseAdapters.mongoAdapter = adapters.NewAdapterMongo(cfg, log)
	if err := databaseAdapters.mongoAdapter.Init(ctx); err != nil {
		log.Fatalw("Failed to initialize MongoDB", "error", err)
	}

	databaseAdapters.redisAdapter = adapters.NewAdapterRedis(cfg, log)
	if err := databaseAdapters.redisAdapter.Init(ctx); err != nil {
		log.Fatalw("Failed to initialize Redis", "error", err)
	}

	games := repository.NewGameMongoStorage(log, databaseAdapters.mongoAdapter.Database)
	if err := games.EnsureIndexes(ctx); err != nil {
		log.Fatalw("Failed to create game indexes", "error", err)
	}

	log.Info("Database adapters initialized")
	return games, repository.NewMoveLogRedis(databaseAdapters.redisAdapter.GetClient(), log)
}

func initBotPicker(log *zap.SugaredLogger, cfg *bootstrap.Config) (gameuc.MovePicker, func()) {
	if cfg.BotGrpcAddr == "" {
		return bot.NewRandomPicker(nil), func() {}
	}

	conn, err := grpc.NewClient(cfg.BotGrpcAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		log.Fatalw("Failed to dial bot service", "error", err)
	}
	log.Infof("Using bot service at %s", cfg.BotGrpcAddr)
	return botRPC.NewRemotePicker(conn), func() { _ = conn.Close() }
}
