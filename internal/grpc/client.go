package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/farhapartex/random-wiki/internal/handlers"
	"github.com/farhapartex/random-wiki/internal/models"
	pb "github.com/farhapartex/random-wiki/proto"
)

// Client calls a remote WikiTextService
type Client struct {
	conn *grpc.ClientConn
	rpc  pb.WikiTextServiceClient
}

// Dial connects to addr without transport security
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	return &Client{conn: conn, rpc: pb.NewWikiTextServiceClient(conn)}, nil
}

// RandomArticle runs one remote fetch
func (c *Client) RandomArticle(ctx context.Context, in handlers.ArticleInput) (*models.FetchResult, error) {
	req, err := InputToStruct(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.rpc.RandomArticle(ctx, req)
	if err != nil {
		return nil, err
	}

	return ResultFromStruct(resp), nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
