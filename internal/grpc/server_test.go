package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/farhapartex/random-wiki/internal/config"
	"github.com/farhapartex/random-wiki/internal/handlers"
	"github.com/farhapartex/random-wiki/internal/models"
	pb "github.com/farhapartex/random-wiki/proto"
)

type scriptedFetcher struct {
	last models.FetchRequest
}

func (f *scriptedFetcher) Fetch(_ context.Context, req models.FetchRequest) *models.FetchResult {
	f.last = req
	result := models.NewFetchResult(req.Language)
	result.Attempts = []models.Attempt{
		{Number: 1, Reason: models.ReasonNotFound, Title: "Gone", Err: assert.AnError},
		{Number: 2, Reason: models.ReasonAccepted, Title: "Seoul", Length: 12, Duration: 3 * time.Millisecond},
	}
	if req.Language == "ja" {
		result.Fail("")
		return result
	}
	result.Accept("Seoul", "Seoul is big", "https://"+req.Language+".wikipedia.org/wiki/Seoul")
	return result
}

func startServer(t *testing.T) (*Client, *scriptedFetcher) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{ServerTimeout: 5 * time.Second},
		Fetch: config.FetchConfig{
			Language:   "en",
			Languages:  []string{"en", "ko", "ja"},
			MinLength:  1,
			MaxLength:  100,
			MaxRetries: 3,
		},
	}

	fetcher := &scriptedFetcher{}
	handler := handlers.NewArticleHandler(cfg, fetcher, nil, zerolog.Nop())

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pb.RegisterWikiTextServiceServer(srv, NewServer(cfg, handler, zerolog.Nop()))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	client, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, fetcher
}

func TestServer_RandomArticle(t *testing.T) {
	client, fetcher := startServer(t)

	result, err := client.RandomArticle(context.Background(), handlers.ArticleInput{Language: "ko", MaxLength: 50})
	require.NoError(t, err)

	assert.Equal(t, models.FetchRequest{Language: "ko", MinLength: 1, MaxLength: 50, MaxRetries: 3}, fetcher.last)

	assert.True(t, result.Success)
	assert.Equal(t, "Seoul is big", result.Text)
	assert.Equal(t, "https://ko.wikipedia.org/wiki/Seoul", result.SourceURL)
	assert.Equal(t, "ko", result.Language)
	require.Len(t, result.Attempts, 2)
	assert.Equal(t, models.ReasonNotFound, result.Attempts[0].Reason)
	assert.EqualError(t, result.Attempts[0].Err, assert.AnError.Error())
	assert.Equal(t, models.ReasonAccepted, result.Attempts[1].Reason)
	assert.Equal(t, 12, result.Attempts[1].Length)
	assert.Equal(t, 3*time.Millisecond, result.Attempts[1].Duration)
}

func TestServer_RandomArticleFailureInBand(t *testing.T) {
	client, _ := startServer(t)

	result, err := client.RandomArticle(context.Background(), handlers.ArticleInput{Language: "ja"})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, models.DefaultFailureMessage, result.Message)
	assert.Len(t, result.Attempts, 2)
}

func TestServer_RandomArticleInvalidArgument(t *testing.T) {
	client, _ := startServer(t)

	tests := map[string]map[string]any{
		"unsupported language": {"language": "fr"},
		"unknown field":        {"lang": "en"},
		"wrong type":           {"max_retries": "three"},
		"fractional number":    {"min_length": 1.5},
		"max below min":        {"min_length": 10, "max_length": 5},
	}

	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := structpb.NewStruct(fields)
			require.NoError(t, err)

			_, err = client.rpc.RandomArticle(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestServer_HealthCheck(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.rpc.HealthCheck(context.Background(), &structpb.Struct{})
	require.NoError(t, err)

	fields := resp.GetFields()
	assert.Equal(t, "healthy", fields["status"].GetStringValue())
	assert.Equal(t, ServiceVersion, fields["version"].GetStringValue())
	assert.Len(t, fields["languages"].GetListValue().GetValues(), 3)
}

func TestServer_RandomArticleExplicitZeroMin(t *testing.T) {
	client, fetcher := startServer(t)
	zero := 0

	_, err := client.RandomArticle(context.Background(), handlers.ArticleInput{MinLength: &zero})
	require.NoError(t, err)

	assert.Equal(t, 0, fetcher.last.MinLength)
}

func TestInputStructRoundTrip(t *testing.T) {
	minLength := 5
	in := handlers.ArticleInput{Language: "en", MinLength: &minLength, MaxRetries: 2, DisableTruncation: true}

	s, err := InputToStruct(in)
	require.NoError(t, err)
	_, hasMax := s.GetFields()["max_length"]
	assert.False(t, hasMax)

	got, err := InputFromStruct(s)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestInputStructKeepsZeroMin(t *testing.T) {
	zero := 0

	s, err := InputToStruct(handlers.ArticleInput{MinLength: &zero})
	require.NoError(t, err)
	require.Contains(t, s.GetFields(), "min_length")

	got, err := InputFromStruct(s)
	require.NoError(t, err)
	require.NotNil(t, got.MinLength)
	assert.Equal(t, 0, *got.MinLength)

	unset, err := InputFromStruct(&structpb.Struct{})
	require.NoError(t, err)
	assert.Nil(t, unset.MinLength)
}
