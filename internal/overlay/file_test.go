package overlay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "overlay.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	key := Key("staff", 5, "draft")
	assert.Equal(t, "staff:5:draft", key)

	require.NoError(t, s.Put(ctx, key, []byte(`{"step":3}`)))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":3}`, string(got))
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "overlay.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "hospital:1:profile", []byte(`{"website":"example.org"}`)))

	// a new store over the same file stands in for a process restart
	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "hospital:1:profile")
	require.NoError(t, err)
	assert.JSONEq(t, `{"website":"example.org"}`, string(got))
}

func TestFileStoreMissingKey(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "overlay.json"))
	require.NoError(t, err)

	_, err = s.Get(ctx, "staff:9:draft")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "overlay.json"))
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "staff:1:draft", []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, "staff:1:draft"))
	// deleting again is a no-op success
	require.NoError(t, s.Delete(ctx, "staff:1:draft"))

	_, err = s.Get(ctx, "staff:1:draft")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreKeysPrefix(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "overlay.json"))
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "staff:1:draft", []byte(`{}`)))
	require.NoError(t, s.Put(ctx, "staff:1:salary", []byte(`{}`)))
	require.NoError(t, s.Put(ctx, "patient:2:extended", []byte(`{}`)))

	keys, err := s.Keys(ctx, "staff:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"staff:1:draft", "staff:1:salary"}, keys)
}

func TestGetJSONPutJSON(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "overlay.json"))
	require.NoError(t, err)

	type payload struct {
		Step int    `json:"step"`
		Note string `json:"note"`
	}

	require.NoError(t, PutJSON(ctx, s, "staff:3:draft", payload{Step: 2, Note: "wip"}))

	got, err := GetJSON[payload](ctx, s, "staff:3:draft")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Step)
	assert.Equal(t, "wip", got.Note)

	_, err = GetJSON[payload](ctx, s, "staff:4:draft")
	assert.ErrorIs(t, err, ErrNotFound)
}
