package fetchers

import (
	"context"
)

// Source is the interface an article backend must implement
type Source interface {
	// RandomTitle returns the title of a random main-namespace article
	RandomTitle(ctx context.Context, lang string) (string, error)

	// Extract returns the plain-text body of the article with the given title
	Extract(ctx context.Context, lang, title string) (string, error)

	// ArticleURL returns the canonical link to the article
	ArticleURL(lang, title string) string

	// Name returns the backend name
	Name() string
}
