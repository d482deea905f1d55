package fetchers

import (
	"context"
	"errors"

	"github.com/farhapartex/random-wiki/internal/models"
)

var (
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("decode error")
	ErrNotFound  = errors.New("page not found")
	ErrTooShort  = errors.New("extract too short")
)

// AttemptError is the typed rejection of one retry-loop iteration
type AttemptError struct {
	Reason models.Reason
	Title  string
	Err    error
}

func (e *AttemptError) Error() string {
	return e.Err.Error()
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

func classify(ctx context.Context, err error) models.Reason {
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		return models.ReasonCanceled
	case errors.Is(err, ErrNotFound):
		return models.ReasonNotFound
	case errors.Is(err, ErrDecode):
		return models.ReasonDecode
	case errors.Is(err, ErrTooShort):
		return models.ReasonTooShort
	default:
		return models.ReasonTransport
	}
}
