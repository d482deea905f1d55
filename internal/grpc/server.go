package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/farhapartex/random-wiki/internal/config"
	"github.com/farhapartex/random-wiki/internal/handlers"
	pb "github.com/farhapartex/random-wiki/proto"
)

// ServiceVersion is reported by HealthCheck
const ServiceVersion = "1.0.0"

type Server struct {
	pb.UnimplementedWikiTextServiceServer
	articleHandler *handlers.ArticleHandler
	config         *config.Config
	logger         zerolog.Logger
}

func NewServer(cfg *config.Config, articleHandler *handlers.ArticleHandler, logger zerolog.Logger) *Server {
	return &Server{
		articleHandler: articleHandler,
		config:         cfg,
		logger:         logger,
	}
}

func (s *Server) RandomArticle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := InputFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	event := s.logger.Info().Str("lang", in.Language)
	if in.MinLength != nil {
		event = event.Int("min_length", *in.MinLength)
	}
	event.Int("max_length", in.MaxLength).
		Int("max_retries", in.MaxRetries).
		Msg("received random article request")

	fetchCtx, cancel := context.WithTimeout(ctx, s.config.Server.ServerTimeout)
	defer cancel()

	result, err := s.articleHandler.RandomArticle(fetchCtx, in)
	if err != nil {
		if errors.Is(err, handlers.ErrInvalidRequest) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.logger.Error().Err(err).Msg("random article failed")
		return nil, status.Error(codes.Internal, fmt.Sprintf("random article failed: %v", err))
	}

	response, err := ResultToStruct(result)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("failed to encode response: %v", err))
	}

	return response, nil
}

func (s *Server) HealthCheck(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	s.logger.Debug().Str("service", req.GetFields()["service"].GetStringValue()).Msg("health check requested")

	languages := make([]any, 0, len(s.config.Fetch.Languages))
	for _, lang := range s.articleHandler.Languages() {
		languages = append(languages, lang)
	}

	response, err := structpb.NewStruct(map[string]any{
		"status":    "healthy",
		"version":   ServiceVersion,
		"timestamp": time.Now().Unix(),
		"languages": languages,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return response, nil
}
