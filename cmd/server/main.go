package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"

	"github.com/farhapartex/random-wiki/internal/config"
	"github.com/farhapartex/random-wiki/internal/fetchers"
	grpcServer "github.com/farhapartex/random-wiki/internal/grpc"
	"github.com/farhapartex/random-wiki/internal/handlers"
	"github.com/farhapartex/random-wiki/internal/logging"
	"github.com/farhapartex/random-wiki/internal/metrics"
	pb "github.com/farhapartex/random-wiki/proto"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(cfg.Logging, os.Stderr)

	logger.Info().
		Str("grpc_port", cfg.Server.GRPCPort).
		Str("metrics_port", cfg.Server.MetricsPort).
		Dur("server_timeout", cfg.Server.ServerTimeout).
		Dur("request_timeout", cfg.Wikipedia.RequestTimeout).
		Strs("languages", cfg.Fetch.Languages).
		Msg("configuration loaded")

	address := fmt.Sprintf(":%s", cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", address)
	if err != nil {
		logger.Fatal().Err(err).Str("address", address).Msg("failed to listen")
	}

	m := metrics.New()
	source := fetchers.NewWikipediaFetcher(cfg.Wikipedia)
	articleHandler := handlers.NewArticleHandler(cfg, fetchers.NewArticleFetcher(source, logger), m, logger)

	grpcSrv := grpc.NewServer(
		grpc.MaxConcurrentStreams(100),
	)
	pb.RegisterWikiTextServiceServer(grpcSrv, grpcServer.NewServer(cfg, articleHandler, logger))

	var metricsSrv *http.Server
	if cfg.Server.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		metricsSrv = &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.Server.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("received shutdown signal, gracefully stopping server")
		if metricsSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = metricsSrv.Shutdown(ctx)
			cancel()
		}
		grpcSrv.GracefulStop()
		logger.Info().Msg("server stopped")
	}()

	logger.Info().Str("address", address).Msg("serving gRPC")
	if err := grpcSrv.Serve(lis); err != nil {
		logger.Fatal().Err(err).Msg("failed to serve")
	}
}
