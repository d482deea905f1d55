// Package presenter drives the host application's text surfaces from a fetch
// result. The host is reached only through the collaborator interfaces below.
package presenter

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/farhapartex/random-wiki/internal/handlers"
	"github.com/farhapartex/random-wiki/internal/models"
)

// ErrNoDocument is returned when there is nothing to put the text into
var ErrNoDocument = errors.New("no document is open, please open a document first")

// Document is the host's document and text view model
type Document interface {
	HasOpenDocument() bool
	HasActiveTextView() bool
	SetActiveText(text string) error
	OpenTextView(text string) error
}

// Console is the host's log window
type Console interface {
	Clear()
	Show()
}

// Browser opens links outside the host
type Browser interface {
	Open(url string) error
}

// ArticleSource produces fetch results, locally or over the network
type ArticleSource interface {
	RandomArticle(ctx context.Context, in handlers.ArticleInput) (*models.FetchResult, error)
}

// FetchFailedError reports a fetch that ended without an accepted article
type FetchFailedError struct {
	Message  string
	Attempts int
}

func (e *FetchFailedError) Error() string {
	return fmt.Sprintf("failed to fetch Wikipedia text after %d attempts: %s", e.Attempts, e.Message)
}

// Options select how an accepted article is shown
type Options struct {
	// NewView opens a new text view even when one is active
	NewView bool
	// OpenInBrowser opens the source article after the text is placed
	OpenInBrowser bool
}

type Presenter struct {
	document Document
	console  Console
	browser  Browser
	logger   zerolog.Logger
}

// New creates a presenter. browser may be nil when links are never opened.
func New(document Document, console Console, browser Browser, logger zerolog.Logger) *Presenter {
	return &Presenter{
		document: document,
		console:  console,
		browser:  browser,
		logger:   logger,
	}
}

// Run fetches one article and places it into the document
func (p *Presenter) Run(ctx context.Context, source ArticleSource, in handlers.ArticleInput, opts Options) (*models.FetchResult, error) {
	p.console.Clear()

	if !p.document.HasOpenDocument() {
		p.logger.Error().Msg(ErrNoDocument.Error())
		p.console.Show()
		return nil, ErrNoDocument
	}

	result, err := source.RandomArticle(ctx, in)
	if err != nil {
		p.logger.Error().Err(err).Msg("fetch request rejected")
		p.console.Show()
		return nil, err
	}

	if err := p.Present(result, opts); err != nil {
		return result, err
	}
	return result, nil
}

// Present places an accepted article into the document, or surfaces the
// failure on the console
func (p *Presenter) Present(result *models.FetchResult, opts Options) error {
	if !result.Success {
		err := &FetchFailedError{Message: result.Message, Attempts: len(result.Attempts)}
		p.logger.Error().Err(err).Msg("failed to fetch or display Wikipedia text")
		p.console.Show()
		return err
	}

	var err error
	if opts.NewView || !p.document.HasActiveTextView() {
		err = p.document.OpenTextView(result.Text)
	} else {
		err = p.document.SetActiveText(result.Text)
	}
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to display Wikipedia text")
		p.console.Show()
		return fmt.Errorf("failed to display text: %w", err)
	}

	p.logger.Info().
		Str("title", result.Title).
		Str("url", result.SourceURL).
		Msg("successfully displayed random Wikipedia text")

	if opts.OpenInBrowser && p.browser != nil {
		if err := p.browser.Open(result.SourceURL); err != nil {
			p.logger.Warn().Err(err).Str("url", result.SourceURL).Msg("failed to open article in browser")
		}
	}

	return nil
}
