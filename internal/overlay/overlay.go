package overlay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has no durable record.
var ErrNotFound = errors.New("overlay: key not found")

// Store is the durable tier: composite-string keyed, survives a full
// process restart while the in-memory store does not. Reads through it
// win over in-memory defaults; writes go through it together with the
// in-memory write, and a failed Put must surface to the caller so memory
// never silently runs ahead of storage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Key builds the composite key entity:id:subkey.
func Key(entity string, id interface{}, subkey string) string {
	return fmt.Sprintf("%s:%v:%s", entity, id, subkey)
}

// GetJSON reads and decodes a durable record. Returns ErrNotFound when
// the slot is empty.
func GetJSON[T any](ctx context.Context, s Store, key string) (*T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("overlay: decode %s: %w", key, err)
	}
	return &v, nil
}

// PutJSON encodes and writes a durable record.
func PutJSON(ctx context.Context, s Store, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("overlay: encode %s: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}
