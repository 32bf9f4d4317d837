package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	value, err := store.Get(ctx, "users")
	require.NoError(t, err)
	assert.Nil(t, value, "отсутствующий ключ должен давать nil без ошибки")

	require.NoError(t, store.Put(ctx, "users", []byte(`[]`)))

	value, err = store.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)

	require.NoError(t, store.Delete(ctx, "users"))

	value, err = store.Get(ctx, "users")
	require.NoError(t, err)
	assert.Nil(t, value)

	// повторное удаление не ошибка
	require.NoError(t, store.Delete(ctx, "users"))
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	original := []byte(`{"a":1}`)
	require.NoError(t, store.Put(ctx, "key", original))
	original[0] = 'X'

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), value)

	value[0] = 'Y'
	again, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), again)
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemory()

	_, err := store.Get(ctx, "users")
	assert.Error(t, err)
	assert.Error(t, store.Put(ctx, "users", nil))
	assert.Error(t, store.Delete(ctx, "users"))
}
