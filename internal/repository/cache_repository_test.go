package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	assert.False(t, repo.Enabled())
	var dest map[string]string
	assert.ErrorIs(t, repo.Get(ctx, "gym:trainers:detail:1", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "gym:trainers:detail:1", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "gym:trainers:*"))
	assert.NoError(t, repo.Ping(ctx))
}
