package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/farhapartex/random-wiki/internal/config"
	"github.com/farhapartex/random-wiki/internal/metrics"
	"github.com/farhapartex/random-wiki/internal/models"
)

// ErrInvalidRequest is returned for input that fails validation
var ErrInvalidRequest = errors.New("invalid request")

// Fetcher runs one fetch to completion
type Fetcher interface {
	Fetch(ctx context.Context, req models.FetchRequest) *models.FetchResult
}

// ArticleInput is caller input; zero fields take the configured defaults.
// MinLength is a pointer because 0 is a valid minimum.
type ArticleInput struct {
	Language          string
	MinLength         *int
	MaxLength         int
	MaxRetries        int
	DisableTruncation bool
}

// ArticleHandler turns caller input into a fetch against the configured
// language set and records the outcome
type ArticleHandler struct {
	fetcher Fetcher
	metrics *metrics.Metrics
	config  *config.Config
	logger  zerolog.Logger
}

// NewArticleHandler creates a new article handler. m may be nil.
func NewArticleHandler(cfg *config.Config, fetcher Fetcher, m *metrics.Metrics, logger zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		fetcher: fetcher,
		metrics: m,
		config:  cfg,
		logger:  logger,
	}
}

// Languages returns the configured language set
func (h *ArticleHandler) Languages() []string {
	return append([]string(nil), h.config.Fetch.Languages...)
}

// Request resolves defaults and validates in
func (h *ArticleHandler) Request(in ArticleInput) (models.FetchRequest, error) {
	defaults := h.config.Fetch

	req := models.FetchRequest{
		Language:          strings.ToLower(strings.TrimSpace(in.Language)),
		MinLength:         defaults.MinLength,
		MaxLength:         in.MaxLength,
		MaxRetries:        in.MaxRetries,
		DisableTruncation: in.DisableTruncation,
	}

	if req.Language == "" {
		req.Language = defaults.Language
	}
	if in.MinLength != nil {
		req.MinLength = *in.MinLength
	}
	if req.MaxLength == 0 {
		req.MaxLength = defaults.MaxLength
	}
	if req.MaxRetries == 0 {
		req.MaxRetries = defaults.MaxRetries
	}

	if !defaults.Supports(req.Language) {
		return req, fmt.Errorf("%w: unsupported language %q (valid: %s)",
			ErrInvalidRequest, req.Language, strings.Join(defaults.Languages, ", "))
	}

	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return req, nil
}

// RandomArticle fetches one random article. The error is non-nil only for
// invalid input; a fetch that exhausts its retries is a failed result.
func (h *ArticleHandler) RandomArticle(ctx context.Context, in ArticleInput) (*models.FetchResult, error) {
	req, err := h.Request(in)
	if err != nil {
		return nil, err
	}

	result := h.fetcher.Fetch(ctx, req)

	if h.metrics != nil {
		h.metrics.Observe(result)
	}

	h.logger.Info().
		Str("lang", result.Language).
		Bool("success", result.Success).
		Int("attempts", len(result.Attempts)).
		Dur("duration", result.Duration).
		Msg("random article request completed")

	return result, nil
}
