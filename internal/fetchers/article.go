package fetchers

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/farhapartex/random-wiki/internal/models"
)

// ArticleFetcher runs the bounded retry loop that turns random titles into an
// accepted extract.
type ArticleFetcher struct {
	source Source
	logger zerolog.Logger
}

// NewArticleFetcher creates a new article fetcher over source
func NewArticleFetcher(source Source, logger zerolog.Logger) *ArticleFetcher {
	return &ArticleFetcher{
		source: source,
		logger: logger.With().Str("source", source.Name()).Logger(),
	}
}

// Fetch tries up to req.MaxRetries random articles and returns the first one
// whose extract is at least req.MinLength characters long, truncated to
// req.MaxLength. Every per-attempt failure is retried; only exhaustion of the
// budget or cancellation of ctx ends the loop without a result.
func (f *ArticleFetcher) Fetch(ctx context.Context, req models.FetchRequest) *models.FetchResult {
	startTime := time.Now()
	result := models.NewFetchResult(req.Language)
	defer func() { result.Duration = time.Since(startTime) }()

	log := f.logger.With().
		Str("request_id", uuid.NewString()).
		Str("lang", req.Language).
		Logger()

	if err := req.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid fetch request")
		result.Fail(err.Error())
		return result
	}

	log.Info().
		Int("min_length", req.MinLength).
		Int("max_length", req.MaxLength).
		Int("max_retries", req.MaxRetries).
		Msg("fetching a random article")

	var lastErr error
	for n := 1; n <= req.MaxRetries; n++ {
		attempt, text, sourceURL := f.attempt(ctx, req, n)
		result.Attempts = append(result.Attempts, attempt)

		event := log.Info()
		if attempt.Reason != models.ReasonAccepted {
			event = log.Warn().Err(attempt.Err)
		}
		event.
			Int("attempt", n).
			Str("title", attempt.Title).
			Str("reason", string(attempt.Reason)).
			Int("length", attempt.Length).
			Bool("truncated", attempt.Truncated).
			Dur("duration", attempt.Duration).
			Msg("attempt finished")

		switch {
		case attempt.Reason == models.ReasonAccepted:
			result.Accept(attempt.Title, text, sourceURL)
			log.Info().Str("title", attempt.Title).Str("url", sourceURL).Int("attempts", n).Msg("article accepted")
			return result
		case attempt.Reason == models.ReasonCanceled:
			message := attempt.Err.Error()
			if ctx.Err() != nil {
				message = "fetch canceled: " + context.Cause(ctx).Error()
			}
			result.Fail(message)
			log.Error().Err(attempt.Err).Int("attempts", n).Msg("fetch canceled")
			return result
		case attempt.Reason.IsError():
			lastErr = attempt.Err
		}
	}

	message := models.DefaultFailureMessage
	if lastErr != nil {
		message = lastErr.Error()
	}
	result.Fail(message)

	log.Error().Str("message", message).Int("attempts", req.MaxRetries).Msg("no suitable article found")
	return result
}

func (f *ArticleFetcher) attempt(ctx context.Context, req models.FetchRequest, n int) (models.Attempt, string, string) {
	startTime := time.Now()
	attempt := models.Attempt{Number: n}

	reject := func(title string, err error) (models.Attempt, string, string) {
		attempt.Title = title
		attempt.Reason = classify(ctx, err)
		attempt.Err = &AttemptError{Reason: attempt.Reason, Title: title, Err: err}
		attempt.Duration = time.Since(startTime)
		return attempt, "", ""
	}

	if err := ctx.Err(); err != nil {
		return reject("", err)
	}

	title, err := f.source.RandomTitle(ctx, req.Language)
	if err != nil {
		return reject("", fmt.Errorf("error fetching random article title: %w", err))
	}
	f.logger.Debug().Int("attempt", n).Str("title", title).Msg("found random article")

	sourceURL := f.source.ArticleURL(req.Language, title)

	text, err := f.source.Extract(ctx, req.Language, title)
	if err != nil {
		return reject(title, fmt.Errorf("error fetching content of %q: %w", title, err))
	}

	length := utf8.RuneCountInString(text)
	attempt.Length = length

	if length < req.MinLength {
		return reject(title, fmt.Errorf("%w: %d < %d characters", ErrTooShort, length, req.MinLength))
	}

	if length > req.MaxLength && !req.DisableTruncation {
		text = Truncate(text, req.MaxLength)
		attempt.Truncated = true
	}

	attempt.Title = title
	attempt.Reason = models.ReasonAccepted
	attempt.Duration = time.Since(startTime)
	return attempt, text, sourceURL
}

// Truncate cuts s to at most maxLength characters, ignoring word boundaries
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	n := 0
	for i := range s {
		if n == maxLength {
			return s[:i]
		}
		n++
	}
	return s
}
