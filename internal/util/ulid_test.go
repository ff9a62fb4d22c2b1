package util

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	_, err := ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.Len(t, a, ulid.EncodedSize)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "ids from one process are monotonic")
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
}

func TestIsULID(t *testing.T) {
	assert.True(t, IsULID(NewULID()))
	assert.False(t, IsULID(""))
	assert.False(t, IsULID("caller-supplied"))
	assert.False(t, IsULID("flashgen:flashcards:result:x"))
	assert.False(t, IsULID(NewULID()+"0"))
}
