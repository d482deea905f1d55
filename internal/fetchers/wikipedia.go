package fetchers

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/farhapartex/random-wiki/internal/config"
)

// notFoundPageID is the page id the API reports for a title with no page
const notFoundPageID = "-1"

// WikipediaFetcher talks to the MediaWiki action API of a Wikipedia edition
type WikipediaFetcher struct {
	apiURL     string
	articleURL string
	userAgent  string
	client     *http.Client
}

// NewWikipediaFetcher creates a new Wikipedia fetcher. TLS certificates are
// verified unless cfg.InsecureSkipVerify is set.
func NewWikipediaFetcher(cfg config.WikipediaConfig) *WikipediaFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-in
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WikipediaFetcher{
		apiURL:     cfg.APIURL,
		articleURL: cfg.ArticleURL,
		userAgent:  cfg.UserAgent,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Name returns the backend name
func (w *WikipediaFetcher) Name() string {
	return "wikipedia"
}

// RandomTitle asks list=random for one article title in namespace 0
func (w *WikipediaFetcher) RandomTitle(ctx context.Context, lang string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "random")
	params.Set("format", "json")
	params.Set("rnnamespace", "0")
	params.Set("rnlimit", "1")

	body, err := w.get(ctx, lang, params)
	if err != nil {
		return "", err
	}

	title := gjson.GetBytes(body, "query.random.0.title")
	if !title.Exists() || title.Type != gjson.String {
		return "", fmt.Errorf("%w: response has no query.random[0].title", ErrDecode)
	}

	return title.String(), nil
}

// Extract fetches the plain-text extract of title, following redirects
func (w *WikipediaFetcher) Extract(ctx context.Context, lang, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("titles", title)
	params.Set("prop", "extracts")
	params.Set("explaintext", "true")
	params.Set("redirects", "1")

	body, err := w.get(ctx, lang, params)
	if err != nil {
		return "", err
	}

	pages := gjson.GetBytes(body, "query.pages")
	if !pages.IsObject() {
		return "", fmt.Errorf("%w: response has no query.pages object", ErrDecode)
	}

	// Only one title is requested, so the first page is the answer
	var pageID string
	var page gjson.Result
	pages.ForEach(func(key, value gjson.Result) bool {
		pageID = key.String()
		page = value
		return false
	})

	if pageID == "" {
		return "", fmt.Errorf("%w: query.pages is empty", ErrDecode)
	}
	if pageID == notFoundPageID {
		return "", fmt.Errorf("%w: article %q", ErrNotFound, title)
	}

	return page.Get("extract").String(), nil
}

// ArticleURL builds the canonical link: spaces become underscores and the
// title is percent-encoded.
func (w *WikipediaFetcher) ArticleURL(lang, title string) string {
	escaped := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	return strings.NewReplacer("{lang}", lang, "{title}", escaped).Replace(w.articleURL)
}

func (w *WikipediaFetcher) get(ctx context.Context, lang string, params url.Values) ([]byte, error) {
	endpoint := strings.ReplaceAll(w.apiURL, "{lang}", lang) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}

	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: Wikipedia API error: status=%d, body=%s", ErrTransport, resp.StatusCode, Truncate(string(body), 200))
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrDecode)
	}

	return body, nil
}
