// Package storage provides durable key-value slots. A slot holds one small
// serialized value per key; the application uses it to remember the signed
// in identity between restarts.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no value is stored under the key.
var ErrNotFound = errors.New("slot: not found")

type Slot interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("slot: empty key")
	}
	return nil
}
