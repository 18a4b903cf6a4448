package storage

import (
	"context"
	"errors"
)

var ErrDisabled = errors.New("image storage is not configured")

// ImageStore keeps uploaded images and returns the public URL of each one.
type ImageStore interface {
	Put(ctx context.Context, key string, contentType string, body []byte) (string, error)
}

// Disabled rejects every upload.
type Disabled struct{}

func (Disabled) Put(context.Context, string, string, []byte) (string, error) {
	return "", ErrDisabled
}
