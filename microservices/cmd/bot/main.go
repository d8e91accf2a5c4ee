package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"kalaha/internal/bootstrap"
	"kalaha/internal/bot"
	botRPC "kalaha/microservices/proto"
	"kalaha/microservices/usecase"
)

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		panic("failed to setup configuration: " + err.Error())
	}
	logger := NewLogger(cfg.LogDevelopment)
	defer logger.Sync()

	lis, err := net.Listen("tcp", ":"+cfg.BotServicePort)
	if err != nil {
		logger.Fatalf("cant listen port %s: %v", cfg.BotServicePort, err)
	}

	server := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	botRPC.RegisterBotServiceServer(server, usecase.NewBotUseCase(bot.NewRandomPicker(nil), logger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(botRPC.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		logger.Info("Received shutdown signal")
		healthServer.Shutdown()
		server.GracefulStop()
	}()

	logger.Infof("starting bot service at :%s", cfg.BotServicePort)
	if err = server.Serve(lis); err != nil {
		logger.Fatalw("bot service stopped", "error", err)
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
