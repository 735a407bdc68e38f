package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutGetDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("raw upload bytes")

	require.NoError(t, store.Put(ctx, "id-1-report.txt", data, "text/plain"))

	got, err := store.Get(ctx, "id-1-report.txt")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "id-1-report.txt"))

	_, err = store.Get(ctx, "id-1-report.txt")
	assert.Error(t, err)
}

func TestLocalStoreGetMissingKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "nope")
	assert.Error(t, err)
}

func TestLocalStoreRejectsTraversalKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	tests := []string{"../escape", "a/b", "..", "."}
	for _, key := range tests {
		assert.Error(t, store.Put(ctx, key, []byte("x"), ""), "key %q", key)
	}
}
