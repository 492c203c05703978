package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	assert.Empty(t, RequestIDFromCtx(ctx))

	id := NewRequestID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, RequestIDFromCtx(WithRequestID(ctx, id)))
}

func TestUserID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, ok := UserIDFromCtx(ctx)
	assert.False(t, ok)

	_, ok = UserIDFromCtx(WithUserID(ctx, ""))
	assert.False(t, ok)

	id, ok := UserIDFromCtx(WithUserID(ctx, "u-1"))
	assert.True(t, ok)
	assert.Equal(t, "u-1", id)
}
