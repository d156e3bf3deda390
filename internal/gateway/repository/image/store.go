// Package image persists generated persona images and hands back a URL the
// browser can load.
package image

import (
	"context"
	"errors"

	"questio/internal/types"
)

var ErrEmptyImage = errors.New("image is empty")

type Store interface {
	// Save stores img for a session and returns a URL for it.
	Save(ctx context.Context, sessionID string, img *types.PersonaImage) (string, error)
}

// InlineStore keeps nothing; the URL is the image itself as a data URL.
type InlineStore struct{}

func NewInlineStore() *InlineStore { return &InlineStore{} }

func (InlineStore) Save(_ context.Context, _ string, img *types.PersonaImage) (string, error) {
	url := img.DataURL()
	if url == "" {
		return "", ErrEmptyImage
	}
	return url, nil
}
